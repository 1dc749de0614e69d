package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `gorm:"type:uuid;primaryKey;column:enrollment_id" json:"enrollment_id"`
	EnrollmentCourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_student;column:enrollment_course_id" json:"enrollment_course_id"`
	EnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_student;column:enrollment_student_id" json:"enrollment_student_id"`
	EnrollmentStatus    string    `gorm:"size:20;not null;default:'active';column:enrollment_status" json:"enrollment_status"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EnrollmentModel) TableName() string {
	return "course_enrollments"
}

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	return nil
}
