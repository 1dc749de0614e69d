package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/features/lms/announcements/dto"
	"virtualab_backend/internals/features/lms/announcements/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
	"virtualab_backend/internals/helpers/queryx"
)

type AnnouncementController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditService.Logger
}

func NewAnnouncementController(db *gorm.DB, v *validator.Validate, audit *auditService.Logger) *AnnouncementController {
	return &AnnouncementController{DB: db, Validate: v, Audit: audit}
}

// List: pinned first, newest after, filtered by course and by the
// caller's role audience.
func (ctrl *AnnouncementController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, "created_at", "desc", helper.DefaultOpts)
	role := helperAuth.GetUserRole(c)

	qb := queryx.New().
		WhereIf(c.Query("course_id") != "", "announcement_course_id = ?", c.Query("course_id")).
		Where("(announcement_audience = '' OR announcement_audience IS NULL OR announcement_audience = ?)", role).
		Search(p.Search, "announcement_title", "announcement_body")

	base := qb.Apply(ctrl.DB.WithContext(c.Context()).Model(&model.AnnouncementModel{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to count announcements")
	}

	var rows []model.AnnouncementModel
	if err := base.Order("announcement_pinned DESC, created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list announcements")
	}

	return helper.Success(c, "announcements", fiber.Map{
		"items": rows,
		"meta":  helper.BuildPageMeta(total, p),
	})
}

func (ctrl *AnnouncementController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// course-scoped announcements need write access to the course;
	// site-wide ones need the announcement permission
	if req.AnnouncementCourseID != nil {
		ok, accessErr := helperAuth.CanAccessCourse(ctrl.DB.WithContext(c.Context()), userID, *req.AnnouncementCourseID, constants.AccessWrite)
		if accessErr != nil {
			return helper.Error(c, http.StatusInternalServerError, "internal server error")
		}
		if !ok {
			return helper.Error(c, http.StatusForbidden, "no write access to this course")
		}
	} else {
		ok, permErr := helperAuth.HasPermission(ctrl.DB.WithContext(c.Context()), userID, constants.ResAnnouncement, constants.ActCreate)
		if permErr != nil {
			return helper.Error(c, http.StatusInternalServerError, "internal server error")
		}
		if !ok {
			return helper.Error(c, http.StatusForbidden, "missing permission announcement:create")
		}
	}

	row := model.AnnouncementModel{
		AnnouncementCourseID: req.AnnouncementCourseID,
		AnnouncementAuthorID: userID,
		AnnouncementTitle:    req.AnnouncementTitle,
		AnnouncementBody:     req.AnnouncementBody,
		AnnouncementAudience: req.AnnouncementAudience,
		AnnouncementPinned:   req.AnnouncementPinned,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to create announcement")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResAnnouncement, row.AnnouncementID.String(),
		auditDTO.DataChangePayload{Operation: "create", Changed: map[string]interface{}{"title": row.AnnouncementTitle}})

	return helper.SuccessWithCode(c, http.StatusCreated, "announcement created", row)
}

func (ctrl *AnnouncementController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid announcement id")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	var row model.AnnouncementModel
	if err := ctrl.DB.WithContext(c.Context()).First(&row, "announcement_id = ?", id).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "announcement not found")
	}

	if row.AnnouncementAuthorID != userID && !helperAuth.IsAdminTier(c) {
		return helper.Error(c, http.StatusForbidden, "only the author or an admin may edit")
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.AnnouncementTitle != nil {
		updates["announcement_title"] = *req.AnnouncementTitle
	}
	if req.AnnouncementBody != nil {
		updates["announcement_body"] = *req.AnnouncementBody
	}
	if req.AnnouncementAudience != nil {
		updates["announcement_audience"] = *req.AnnouncementAudience
	}
	if req.AnnouncementPinned != nil {
		updates["announcement_pinned"] = *req.AnnouncementPinned
	}
	if len(updates) == 0 {
		return helper.Success(c, "nothing to update", row)
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&row).Updates(updates).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to update announcement")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResAnnouncement, id.String(),
		auditDTO.DataChangePayload{Operation: "update", Changed: updates})

	return helper.Success(c, "announcement updated", row)
}

func (ctrl *AnnouncementController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid announcement id")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	var row model.AnnouncementModel
	if err := ctrl.DB.WithContext(c.Context()).First(&row, "announcement_id = ?", id).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "announcement not found")
	}
	if row.AnnouncementAuthorID != userID && !helperAuth.IsAdminTier(c) {
		return helper.Error(c, http.StatusForbidden, "only the author or an admin may delete")
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Delete(&model.AnnouncementModel{}, "announcement_id = ?", id).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to delete announcement")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResAnnouncement, id.String(),
		auditDTO.DataChangePayload{Operation: "delete", Changed: nil})

	return helper.Success(c, "announcement deleted", nil)
}
