package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LabModel is one lab activity inside a course. LabConfig carries the
// authoring-tool payload (apparatus layout, measurement setup) verbatim.
type LabModel struct {
	LabID          uuid.UUID      `gorm:"type:uuid;primaryKey;column:lab_id" json:"lab_id"`
	LabCourseID    uuid.UUID      `gorm:"type:uuid;not null;index;column:lab_course_id" json:"lab_course_id"`
	LabTitle       string         `gorm:"size:200;not null;column:lab_title" json:"lab_title"`
	LabDescription string         `gorm:"type:text;column:lab_description" json:"lab_description"`
	LabEquipment   pq.StringArray `gorm:"type:text[];column:lab_equipment" json:"lab_equipment"`
	LabConfig      datatypes.JSON `gorm:"type:jsonb;column:lab_config" json:"lab_config,omitempty"`
	LabMaxScore    int            `gorm:"not null;default:100;column:lab_max_score" json:"lab_max_score"`
	LabIsPublished bool           `gorm:"not null;default:false;column:lab_is_published" json:"lab_is_published"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LabModel) TableName() string {
	return "labs"
}

func (m *LabModel) BeforeCreate(tx *gorm.DB) error {
	if m.LabID == uuid.Nil {
		m.LabID = uuid.New()
	}
	return nil
}
