package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseScheduleModel holds one weekly meeting slot. Schedule rows are
// replaced wholesale inside the course-update transaction, never patched
// one by one.
type CourseScheduleModel struct {
	CourseScheduleID        uuid.UUID `gorm:"type:uuid;primaryKey;column:course_schedule_id" json:"course_schedule_id"`
	CourseScheduleCourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_slot;column:course_schedule_course_id" json:"course_schedule_course_id"`
	CourseScheduleDayOfWeek int       `gorm:"not null;uniqueIndex:idx_course_slot;column:course_schedule_day_of_week" json:"course_schedule_day_of_week"`
	CourseScheduleStartsAt  string    `gorm:"size:5;not null;uniqueIndex:idx_course_slot;column:course_schedule_starts_at" json:"course_schedule_starts_at"` // HH:MM
	CourseScheduleEndsAt    string    `gorm:"size:5;not null;column:course_schedule_ends_at" json:"course_schedule_ends_at"`
	CourseScheduleRoom      string    `gorm:"size:50;column:course_schedule_room" json:"course_schedule_room"`
	CreatedAt               time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CourseScheduleModel) TableName() string {
	return "course_schedules"
}

func (m *CourseScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseScheduleID == uuid.Nil {
		m.CourseScheduleID = uuid.New()
	}
	return nil
}
