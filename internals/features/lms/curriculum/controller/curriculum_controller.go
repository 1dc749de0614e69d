package controller

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/features/lms/curriculum/dto"
	"virtualab_backend/internals/features/lms/curriculum/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

type CurriculumController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditService.Logger
}

func NewCurriculumController(db *gorm.DB, v *validator.Validate, audit *auditService.Logger) *CurriculumController {
	return &CurriculumController{DB: db, Validate: v, Audit: audit}
}

func (ctrl *CurriculumController) requireCourseAccess(c *fiber.Ctx, courseID uuid.UUID, level string) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "not logged in")
	}
	ok, err := helperAuth.CanAccessCourse(ctrl.DB.WithContext(c.Context()), userID, courseID, level)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "internal server error")
	}
	if !ok {
		return fiber.NewError(http.StatusForbidden, "no access to this course")
	}
	return nil
}

// ListByCourse returns units in position order.
func (ctrl *CurriculumController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid course id")
	}
	if accessErr := ctrl.requireCourseAccess(c, courseID, constants.AccessRead); accessErr != nil {
		return accessErr
	}

	var units []model.CurriculumUnitModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("unit_course_id = ?", courseID).
		Order("unit_position").Find(&units).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list curriculum units")
	}

	return helper.Success(c, "curriculum", units)
}

// Create appends the unit at the end of the course's ordering.
func (ctrl *CurriculumController) Create(c *fiber.Ctx) error {
	var req dto.CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if accessErr := ctrl.requireCourseAccess(c, req.UnitCourseID, constants.AccessWrite); accessErr != nil {
		return accessErr
	}

	unit := model.CurriculumUnitModel{
		UnitCourseID:    req.UnitCourseID,
		UnitTitle:       req.UnitTitle,
		UnitDescription: req.UnitDescription,
		UnitLabID:       req.UnitLabID,
	}

	err := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		row := tx.Model(&model.CurriculumUnitModel{}).
			Where("unit_course_id = ?", req.UnitCourseID).
			Select("COALESCE(MAX(unit_position), 0)")
		if err := row.Scan(&maxPos).Error; err != nil {
			return err
		}
		unit.UnitPosition = maxPos + 1
		return tx.Create(&unit).Error
	})
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to create curriculum unit")
	}

	userID, _ := helperAuth.GetUserID(c)
	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResCurriculum, unit.UnitID.String(),
		auditDTO.DataChangePayload{Operation: "create", Changed: map[string]interface{}{"unit_title": unit.UnitTitle}})

	return helper.SuccessWithCode(c, http.StatusCreated, "curriculum unit created", unit)
}

func (ctrl *CurriculumController) Update(c *fiber.Ctx) error {
	unitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid unit id")
	}

	var unit model.CurriculumUnitModel
	if err := ctrl.DB.WithContext(c.Context()).First(&unit, "unit_id = ?", unitID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "curriculum unit not found")
	}
	if accessErr := ctrl.requireCourseAccess(c, unit.UnitCourseID, constants.AccessWrite); accessErr != nil {
		return accessErr
	}

	var req dto.UpdateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.UnitTitle != nil {
		updates["unit_title"] = *req.UnitTitle
	}
	if req.UnitDescription != nil {
		updates["unit_description"] = *req.UnitDescription
	}
	if req.UnitLabID != nil {
		updates["unit_lab_id"] = *req.UnitLabID
	}
	if len(updates) == 0 {
		return helper.Success(c, "nothing to update", unit)
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&unit).Updates(updates).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to update curriculum unit")
	}

	userID, _ := helperAuth.GetUserID(c)
	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResCurriculum, unitID.String(),
		auditDTO.DataChangePayload{Operation: "update", Changed: updates})

	return helper.Success(c, "curriculum unit updated", unit)
}

// Delete removes the unit and closes the position gap in one transaction.
func (ctrl *CurriculumController) Delete(c *fiber.Ctx) error {
	unitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid unit id")
	}

	var unit model.CurriculumUnitModel
	if err := ctrl.DB.WithContext(c.Context()).First(&unit, "unit_id = ?", unitID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "curriculum unit not found")
	}
	if accessErr := ctrl.requireCourseAccess(c, unit.UnitCourseID, constants.AccessWrite); accessErr != nil {
		return accessErr
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.CurriculumUnitModel{}, "unit_id = ?", unitID).Error; err != nil {
			return err
		}
		return tx.Model(&model.CurriculumUnitModel{}).
			Where("unit_course_id = ? AND unit_position > ?", unit.UnitCourseID, unit.UnitPosition).
			UpdateColumn("unit_position", gorm.Expr("unit_position - 1")).Error
	})
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to delete curriculum unit")
	}

	userID, _ := helperAuth.GetUserID(c)
	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResCurriculum, unitID.String(),
		auditDTO.DataChangePayload{Operation: "delete", Changed: nil})

	return helper.Success(c, "curriculum unit deleted", nil)
}

// Reorder replaces the course's ordering atomically. The request must
// name every unit of the course exactly once or nothing changes.
func (ctrl *CurriculumController) Reorder(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid course id")
	}
	if accessErr := ctrl.requireCourseAccess(c, courseID, constants.AccessWrite); accessErr != nil {
		return accessErr
	}

	var req dto.ReorderUnitsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	seen := make(map[uuid.UUID]bool, len(req.UnitIDs))
	for _, id := range req.UnitIDs {
		if seen[id] {
			return helper.Error(c, http.StatusBadRequest, "duplicate unit id in ordering")
		}
		seen[id] = true
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&model.CurriculumUnitModel{}).
			Where("unit_course_id = ?", courseID).Count(&total).Error; err != nil {
			return err
		}
		if total != int64(len(req.UnitIDs)) {
			return fmt.Errorf("ordering names %d units, course has %d", len(req.UnitIDs), total)
		}
		for i, id := range req.UnitIDs {
			res := tx.Model(&model.CurriculumUnitModel{}).
				Where("unit_id = ? AND unit_course_id = ?", id, courseID).
				UpdateColumn("unit_position", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("unit %s does not belong to this course", id)
			}
		}
		return nil
	})
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResCurriculum, courseID.String(),
		auditDTO.DataChangePayload{Operation: "reorder", Changed: map[string]interface{}{"unit_count": len(req.UnitIDs)}})

	var units []model.CurriculumUnitModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("unit_course_id = ?", courseID).
		Order("unit_position").Find(&units).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to reload curriculum")
	}
	return helper.Success(c, "curriculum reordered", units)
}
