package controller

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	"virtualab_backend/internals/features/lms/labs/dto"
	"virtualab_backend/internals/features/lms/labs/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

// Simulations are managed through the parent lab's course access.

func (ctrl *LabController) CreateSimulation(c *fiber.Ctx) error {
	var req dto.CreateSimulationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if _, accessErr := ctrl.requireCourseAccess(c, req.SimulationLabID, constants.AccessWrite); accessErr != nil {
		return accessErr
	}

	sim := model.SimulationModel{
		SimulationLabID:      req.SimulationLabID,
		SimulationTitle:      req.SimulationTitle,
		SimulationEngine:     req.SimulationEngine,
		SimulationParameters: req.SimulationParameters,
		SimulationAssetURL:   req.SimulationAssetURL,
	}
	if req.SimulationVersion != "" {
		sim.SimulationVersion = req.SimulationVersion
	} else {
		sim.SimulationVersion = "1.0.0"
	}

	if err := ctrl.DB.WithContext(c.Context()).Create(&sim).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to create simulation")
	}

	userID, _ := helperAuth.GetUserID(c)
	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResSimulation, sim.SimulationID.String(),
		auditDTO.DataChangePayload{Operation: "create", Changed: map[string]interface{}{"simulation_title": sim.SimulationTitle}})

	return helper.SuccessWithCode(c, http.StatusCreated, "simulation created", sim)
}

func (ctrl *LabController) GetSimulation(c *fiber.Ctx) error {
	simID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid simulation id")
	}

	var sim model.SimulationModel
	if err := ctrl.DB.WithContext(c.Context()).First(&sim, "simulation_id = ?", simID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "simulation not found")
	}

	if _, accessErr := ctrl.requireCourseAccess(c, sim.SimulationLabID, constants.AccessRead); accessErr != nil {
		return accessErr
	}
	return helper.Success(c, "simulation", sim)
}

func (ctrl *LabController) UpdateSimulation(c *fiber.Ctx) error {
	simID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid simulation id")
	}

	var sim model.SimulationModel
	if err := ctrl.DB.WithContext(c.Context()).First(&sim, "simulation_id = ?", simID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "simulation not found")
	}
	if _, accessErr := ctrl.requireCourseAccess(c, sim.SimulationLabID, constants.AccessWrite); accessErr != nil {
		return accessErr
	}

	var req dto.UpdateSimulationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.SimulationTitle != nil {
		updates["simulation_title"] = *req.SimulationTitle
	}
	if req.SimulationEngine != nil {
		updates["simulation_engine"] = *req.SimulationEngine
	}
	if req.SimulationParameters != nil {
		updates["simulation_parameters"] = *req.SimulationParameters
	}
	if req.SimulationVersion != nil {
		updates["simulation_version"] = *req.SimulationVersion
	}
	if req.SimulationAssetURL != nil {
		updates["simulation_asset_url"] = *req.SimulationAssetURL
	}
	if len(updates) == 0 {
		return helper.Success(c, "nothing to update", sim)
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&sim).Updates(updates).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to update simulation")
	}

	userID, _ := helperAuth.GetUserID(c)
	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResSimulation, simID.String(),
		auditDTO.DataChangePayload{Operation: "update", Changed: updates})

	return helper.Success(c, "simulation updated", sim)
}

func (ctrl *LabController) DeleteSimulation(c *fiber.Ctx) error {
	simID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid simulation id")
	}

	var sim model.SimulationModel
	if err := ctrl.DB.WithContext(c.Context()).First(&sim, "simulation_id = ?", simID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "simulation not found")
	}
	if _, accessErr := ctrl.requireCourseAccess(c, sim.SimulationLabID, constants.AccessAdmin); accessErr != nil {
		return accessErr
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Delete(&model.SimulationModel{}, "simulation_id = ?", simID).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to delete simulation")
	}

	userID, _ := helperAuth.GetUserID(c)
	ctrl.Audit.LogDataChange(c.Context(), userID, constants.ResSimulation, simID.String(),
		auditDTO.DataChangePayload{Operation: "delete", Changed: nil})

	return helper.Success(c, "simulation deleted", nil)
}
