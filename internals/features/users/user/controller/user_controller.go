package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/features/users/user/dto"
	"virtualab_backend/internals/features/users/user/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
	"virtualab_backend/internals/helpers/queryx"
)

// UserController is the admin-facing user management surface. Routes are
// registered behind the admin gate.
type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditService.Logger
}

func NewUserController(db *gorm.DB, v *validator.Validate, audit *auditService.Logger) *UserController {
	return &UserController{DB: db, Validate: v, Audit: audit}
}

var userSortable = map[string]string{
	"created_at": "created_at",
	"user_name":  "user_name",
	"email":      "email",
}

func (ctrl *UserController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, "created_at", "desc", helper.AdminOpts)

	qb := queryx.New().
		WhereIf(c.Query("role_id") != "", "role_id = ?", c.Query("role_id")).
		WhereIf(c.Query("is_active") != "", "is_active = ?", c.Query("is_active") == "true").
		Search(p.Search, "user_name", "email")

	base := qb.Apply(ctrl.DB.WithContext(c.Context()).Model(&model.UserModel{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to count users")
	}

	order, err := p.SafeOrderClause(userSortable, "created_at")
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "invalid sort configuration")
	}

	var users []model.UserModel
	if err := base.Preload("Role").Order(order).
		Limit(p.Limit()).Offset(p.Offset()).Find(&users).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list users")
	}

	return helper.Success(c, "users", fiber.Map{
		"items": users,
		"meta":  helper.BuildPageMeta(total, p),
	})
}

func (ctrl *UserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid user id")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).Preload("Role").
		First(&user, "id = ?", id).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "user not found")
	}
	return helper.Success(c, "user", user)
}

func (ctrl *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).First(&user, "id = ?", id).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "user not found")
	}

	updates := map[string]interface{}{}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.RoleID != nil {
		roleID, parseErr := uuid.Parse(*req.RoleID)
		if parseErr != nil {
			return helper.Error(c, http.StatusBadRequest, "invalid role id")
		}
		var role model.RoleModel
		if err := ctrl.DB.WithContext(c.Context()).First(&role, "id = ?", roleID).Error; err != nil {
			return helper.Error(c, http.StatusBadRequest, "role does not exist")
		}
		updates["role_id"] = roleID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Success(c, "nothing to update", user)
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&user).Updates(updates).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to update user")
	}

	if actor, actorErr := helperAuth.GetUserID(c); actorErr == nil {
		ctrl.Audit.LogDataChange(c.Context(), actor, constants.ResUser, id.String(),
			auditDTO.DataChangePayload{Operation: "update", Changed: updates})
	}
	return helper.Success(c, "user updated", user)
}

/* =========================
   Parent links
   ========================= */

func (ctrl *UserController) CreateParentLink(c *fiber.Ctx) error {
	var req dto.CreateParentLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	link := model.ParentLinkModel{
		ParentID:  req.ParentID,
		StudentID: req.StudentID,
		Verified:  false,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&link).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to create parent link")
	}
	return helper.SuccessWithCode(c, http.StatusCreated, "parent link created", link)
}

// VerifyParentLink flips the verified flag; only verified links grant
// read access to a student's courses.
func (ctrl *UserController) VerifyParentLink(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid link id")
	}

	var link model.ParentLinkModel
	if err := ctrl.DB.WithContext(c.Context()).First(&link, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, http.StatusNotFound, "parent link not found")
		}
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&link).
		UpdateColumn("verified", true).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to verify parent link")
	}

	if actor, actorErr := helperAuth.GetUserID(c); actorErr == nil {
		ctrl.Audit.LogDataChange(c.Context(), actor, constants.ResUser, link.StudentID.String(),
			auditDTO.DataChangePayload{Operation: "update", Changed: map[string]interface{}{"parent_link_verified": true}})
	}
	return helper.Success(c, "parent link verified", link)
}
