package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/features/lms/labs/dto"
	"virtualab_backend/internals/features/lms/labs/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
	"virtualab_backend/internals/helpers/queryx"
)

type LabController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditService.Logger
}

func NewLabController(db *gorm.DB, v *validator.Validate, audit *auditService.Logger) *LabController {
	return &LabController{DB: db, Validate: v, Audit: audit}
}

var labSortable = map[string]string{
	"created_at": "created_at",
	"title":      "lab_title",
}

// requireCourseAccess loads the lab and checks course access at the
// given level in one place.
func (ctrl *LabController) requireCourseAccess(c *fiber.Ctx, labID uuid.UUID, level string) (*model.LabModel, error) {
	var lab model.LabModel
	if err := ctrl.DB.WithContext(c.Context()).First(&lab, "lab_id = ?", labID).Error; err != nil {
		return nil, fiber.NewError(http.StatusNotFound, "lab not found")
	}

	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return nil, fiber.NewError(http.StatusUnauthorized, "not logged in")
	}
	ok, err := helperAuth.CanAccessCourse(ctrl.DB.WithContext(c.Context()), userID, lab.LabCourseID, level)
	if err != nil {
		return nil, fiber.NewError(http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return nil, fiber.NewError(http.StatusForbidden, "no access to this lab's course")
	}
	return &lab, nil
}

func (ctrl *LabController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, "created_at", "desc", helper.DefaultOpts)

	qb := queryx.New().
		WhereIf(c.Query("course_id") != "", "lab_course_id = ?", c.Query("course_id")).
		WhereIf(c.Query("published") != "", "lab_is_published = ?", c.Query("published") == "true").
		Search(p.Search, "lab_title", "lab_description")

	base := qb.Apply(ctrl.DB.WithContext(c.Context()).Model(&model.LabModel{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to count labs")
	}

	order, err := p.SafeOrderClause(labSortable, "created_at")
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "invalid sort configuration")
	}

	var labs []model.LabModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&labs).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list labs")
	}

	return helper.Success(c, "labs", fiber.Map{
		"items": labs,
		"meta":  helper.BuildPageMeta(total, p),
	})
}

func (ctrl *LabController) GetByID(c *fiber.Ctx) error {
	labID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid lab id")
	}

	lab, accessErr := ctrl.requireCourseAccess(c, labID, constants.AccessRead)
	if accessErr != nil {
		return accessErr
	}

	var sims []model.SimulationModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("simulation_lab_id = ?", labID).
		Order("created_at").Find(&sims).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to load simulations")
	}

	return helper.Success(c, "lab", fiber.Map{
		"lab":         lab,
		"simulations": sims,
	})
}

func (ctrl *LabController) Create(c *fiber.Ctx) error {
	var req dto.CreateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	ok, err := helperAuth.CanAccessCourse(ctrl.DB.WithContext(c.Context()), userID, req.LabCourseID, constants.AccessWrite)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return helper.Error(c, http.StatusForbidden, "no write access to this course")
	}

	lab := model.LabModel{
		LabCourseID:    req.LabCourseID,
		LabTitle:       req.LabTitle,
		LabDescription: req.LabDescription,
		LabEquipment:   pq.StringArray(req.LabEquipment),
		LabConfig:      req.LabConfig,
		LabMaxScore:    req.LabMaxScore,
	}
	if lab.LabMaxScore == 0 {
		lab.LabMaxScore = 100
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&lab).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to create lab")
	}

	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResLab, lab.LabID.String(),
		auditDTO.DataChangePayload{Operation: "create", Changed: map[string]interface{}{"lab_title": lab.LabTitle}})

	return helper.SuccessWithCode(c, http.StatusCreated, "lab created", lab)
}

func (ctrl *LabController) Update(c *fiber.Ctx) error {
	labID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid lab id")
	}

	lab, accessErr := ctrl.requireCourseAccess(c, labID, constants.AccessWrite)
	if accessErr != nil {
		return accessErr
	}

	var req dto.UpdateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.LabTitle != nil {
		updates["lab_title"] = *req.LabTitle
	}
	if req.LabDescription != nil {
		updates["lab_description"] = *req.LabDescription
	}
	if req.LabEquipment != nil {
		updates["lab_equipment"] = pq.StringArray(*req.LabEquipment)
	}
	if req.LabConfig != nil {
		updates["lab_config"] = *req.LabConfig
	}
	if req.LabMaxScore != nil {
		updates["lab_max_score"] = *req.LabMaxScore
	}
	if req.LabIsPublished != nil {
		updates["lab_is_published"] = *req.LabIsPublished
	}
	if len(updates) == 0 {
		return helper.Success(c, "nothing to update", lab)
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(lab).Updates(updates).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to update lab")
	}

	userID, _ := helperAuth.GetUserID(c)
	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResLab, labID.String(),
		auditDTO.DataChangePayload{Operation: "update", Changed: updates})

	return helper.Success(c, "lab updated", lab)
}

func (ctrl *LabController) Delete(c *fiber.Ctx) error {
	labID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid lab id")
	}

	if _, accessErr := ctrl.requireCourseAccess(c, labID, constants.AccessAdmin); accessErr != nil {
		return accessErr
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("simulation_lab_id = ?", labID).
			Delete(&model.SimulationModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.LabModel{}, "lab_id = ?", labID).Error
	})
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to delete lab")
	}

	userID, _ := helperAuth.GetUserID(c)
	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResLab, labID.String(),
		auditDTO.DataChangePayload{Operation: "delete", Changed: nil})

	return helper.Success(c, "lab deleted", nil)
}
