package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateLabRequest struct {
	LabCourseID    uuid.UUID      `json:"lab_course_id" validate:"required"`
	LabTitle       string         `json:"lab_title" validate:"required,min=3,max=200"`
	LabDescription string         `json:"lab_description"`
	LabEquipment   []string       `json:"lab_equipment" validate:"max=50,dive,max=100"`
	LabConfig      datatypes.JSON `json:"lab_config"`
	LabMaxScore    int            `json:"lab_max_score" validate:"omitempty,min=1,max=1000"`
}

type UpdateLabRequest struct {
	LabTitle       *string         `json:"lab_title,omitempty" validate:"omitempty,min=3,max=200"`
	LabDescription *string         `json:"lab_description,omitempty"`
	LabEquipment   *[]string       `json:"lab_equipment,omitempty" validate:"omitempty,max=50,dive,max=100"`
	LabConfig      *datatypes.JSON `json:"lab_config,omitempty"`
	LabMaxScore    *int            `json:"lab_max_score,omitempty" validate:"omitempty,min=1,max=1000"`
	LabIsPublished *bool           `json:"lab_is_published,omitempty"`
}

type CreateSimulationRequest struct {
	SimulationLabID      uuid.UUID      `json:"simulation_lab_id" validate:"required"`
	SimulationTitle      string         `json:"simulation_title" validate:"required,min=3,max=200"`
	SimulationEngine     string         `json:"simulation_engine" validate:"required,max=50"`
	SimulationParameters datatypes.JSON `json:"simulation_parameters"`
	SimulationVersion    string         `json:"simulation_version" validate:"omitempty,max=20"`
	SimulationAssetURL   string         `json:"simulation_asset_url" validate:"omitempty,max=500"`
}

type UpdateSimulationRequest struct {
	SimulationTitle      *string         `json:"simulation_title,omitempty" validate:"omitempty,min=3,max=200"`
	SimulationEngine     *string         `json:"simulation_engine,omitempty" validate:"omitempty,max=50"`
	SimulationParameters *datatypes.JSON `json:"simulation_parameters,omitempty"`
	SimulationVersion    *string         `json:"simulation_version,omitempty" validate:"omitempty,max=20"`
	SimulationAssetURL   *string         `json:"simulation_asset_url,omitempty" validate:"omitempty,max=500"`
}
