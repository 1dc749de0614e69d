package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// ProgressModel is one row per student per lab, upserted as the
// student works through attempts.
type ProgressModel struct {
	ProgressID          uuid.UUID  `gorm:"type:uuid;primaryKey;column:progress_id" json:"progress_id"`
	ProgressStudentID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_student_lab;column:progress_student_id" json:"progress_student_id"`
	ProgressLabID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_student_lab;column:progress_lab_id" json:"progress_lab_id"`
	ProgressStatus      string     `gorm:"size:20;not null;default:'not_started';column:progress_status" json:"progress_status"`
	ProgressScore       *float64   `gorm:"column:progress_score" json:"progress_score,omitempty"`
	ProgressAttempts    int        `gorm:"not null;default:0;column:progress_attempts" json:"progress_attempts"`
	ProgressTimeSpentS  int        `gorm:"not null;default:0;column:progress_time_spent_s" json:"progress_time_spent_s"`
	ProgressCompletedAt *time.Time `gorm:"column:progress_completed_at" json:"progress_completed_at,omitempty"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProgressModel) TableName() string {
	return "lab_progress"
}

func (m *ProgressModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProgressID == uuid.Nil {
		m.ProgressID = uuid.New()
	}
	return nil
}
