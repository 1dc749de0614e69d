package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"virtualab_backend/internals/features/audit/model"
	helper "virtualab_backend/internals/helpers"
	"virtualab_backend/internals/helpers/queryx"
)

type ActivityLogController struct {
	DB *gorm.DB
}

func NewActivityLogController(db *gorm.DB) *ActivityLogController {
	return &ActivityLogController{DB: db}
}

var logSortable = map[string]string{
	"created_at": "created_at",
	"action":     "action",
	"status":     "status",
}

// List is admin-only (guarded at the route). Read-only: there is no
// update or delete endpoint for activity logs.
func (ctrl *ActivityLogController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, "created_at", "desc", helper.AdminOpts)

	qb := queryx.New().
		WhereIf(c.Query("user_id") != "", "user_id = ?", c.Query("user_id")).
		WhereIf(c.Query("action") != "", "action = ?", c.Query("action")).
		WhereIf(c.Query("status") != "", "status = ?", c.Query("status")).
		WhereIf(c.Query("resource_type") != "", "resource_type = ?", c.Query("resource_type")).
		Search(p.Search, "action", "resource_type", "error_message")

	if from := strings.TrimSpace(c.Query("from")); from != "" {
		if ts, err := time.Parse(time.RFC3339, from); err == nil {
			qb.Where("created_at >= ?", ts)
		}
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		if ts, err := time.Parse(time.RFC3339, to); err == nil {
			qb.Where("created_at <= ?", ts)
		}
	}

	base := qb.Apply(ctrl.DB.WithContext(c.Context()).Model(&model.ActivityLogModel{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to count activity logs")
	}

	order, err := p.SafeOrderClause(logSortable, "created_at")
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "invalid sort configuration")
	}

	var rows []model.ActivityLogModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list activity logs")
	}

	return helper.Success(c, "activity logs", fiber.Map{
		"items": rows,
		"meta":  helper.BuildPageMeta(total, p),
	})
}
