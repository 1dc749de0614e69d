package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SimulationModel is a runnable simulation attached to a lab.
type SimulationModel struct {
	SimulationID         uuid.UUID      `gorm:"type:uuid;primaryKey;column:simulation_id" json:"simulation_id"`
	SimulationLabID      uuid.UUID      `gorm:"type:uuid;not null;index;column:simulation_lab_id" json:"simulation_lab_id"`
	SimulationTitle      string         `gorm:"size:200;not null;column:simulation_title" json:"simulation_title"`
	SimulationEngine     string         `gorm:"size:50;column:simulation_engine" json:"simulation_engine"` // e.g. circuit, kinematics
	SimulationParameters datatypes.JSON `gorm:"type:jsonb;column:simulation_parameters" json:"simulation_parameters,omitempty"`
	SimulationVersion    string         `gorm:"size:20;not null;default:'1.0.0';column:simulation_version" json:"simulation_version"`
	SimulationAssetURL   string         `gorm:"size:500;column:simulation_asset_url" json:"simulation_asset_url"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SimulationModel) TableName() string {
	return "simulations"
}

func (m *SimulationModel) BeforeCreate(tx *gorm.DB) error {
	if m.SimulationID == uuid.Nil {
		m.SimulationID = uuid.New()
	}
	return nil
}
