package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID           uuid.UUID      `gorm:"type:uuid;primaryKey;column:course_id" json:"course_id"`
	CourseTitle        string         `gorm:"size:200;not null;column:course_title" json:"course_title"`
	CourseCode         string         `gorm:"size:30;uniqueIndex;not null;column:course_code" json:"course_code"`
	CourseDescription  string         `gorm:"type:text;column:course_description" json:"course_description"`
	CourseSubject      string         `gorm:"size:50;index;column:course_subject" json:"course_subject"`
	CourseGradeLevel   string         `gorm:"size:30;column:course_grade_level" json:"course_grade_level"`
	CourseTags         pq.StringArray `gorm:"type:text[];column:course_tags" json:"course_tags"`
	CourseInstructorID uuid.UUID      `gorm:"type:uuid;index;column:course_instructor_id" json:"course_instructor_id"`
	CourseIsPublished  bool           `gorm:"not null;default:false;column:course_is_published" json:"course_is_published"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CourseModel) TableName() string {
	return "courses"
}

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}
