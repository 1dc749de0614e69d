package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CurriculumUnitModel struct {
	UnitID          uuid.UUID  `gorm:"type:uuid;primaryKey;column:unit_id" json:"unit_id"`
	UnitCourseID    uuid.UUID  `gorm:"type:uuid;not null;index;column:unit_course_id" json:"unit_course_id"`
	UnitTitle       string     `gorm:"size:200;not null;column:unit_title" json:"unit_title"`
	UnitDescription string     `gorm:"type:text;column:unit_description" json:"unit_description"`
	UnitPosition    int        `gorm:"not null;column:unit_position" json:"unit_position"`
	UnitLabID       *uuid.UUID `gorm:"type:uuid;column:unit_lab_id" json:"unit_lab_id,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CurriculumUnitModel) TableName() string {
	return "curriculum_units"
}

func (m *CurriculumUnitModel) BeforeCreate(tx *gorm.DB) error {
	if m.UnitID == uuid.Nil {
		m.UnitID = uuid.New()
	}
	return nil
}
