package dto

import "github.com/google/uuid"

type ScheduleSlot struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartsAt  string `json:"starts_at" validate:"required,len=5"` // HH:MM
	EndsAt    string `json:"ends_at" validate:"required,len=5"`
	Room      string `json:"room" validate:"max=50"`
}

type CreateCourseRequest struct {
	CourseTitle        string         `json:"course_title" validate:"required,min=3,max=200"`
	CourseCode         string         `json:"course_code" validate:"required,min=2,max=30"`
	CourseDescription  string         `json:"course_description"`
	CourseSubject      string         `json:"course_subject" validate:"required,max=50"`
	CourseGradeLevel   string         `json:"course_grade_level" validate:"max=30"`
	CourseTags         []string       `json:"course_tags" validate:"max=20,dive,max=40"`
	CourseInstructorID uuid.UUID      `json:"course_instructor_id"`
	Schedules          []ScheduleSlot `json:"schedules" validate:"dive"`
}

// UpdateCourseRequest: nil means "leave alone". A non-nil Schedules slice
// replaces every existing slot atomically with the rest of the update.
type UpdateCourseRequest struct {
	CourseTitle       *string         `json:"course_title,omitempty" validate:"omitempty,min=3,max=200"`
	CourseDescription *string         `json:"course_description,omitempty"`
	CourseSubject     *string         `json:"course_subject,omitempty" validate:"omitempty,max=50"`
	CourseGradeLevel  *string         `json:"course_grade_level,omitempty" validate:"omitempty,max=30"`
	CourseTags        *[]string       `json:"course_tags,omitempty" validate:"omitempty,max=20,dive,max=40"`
	CourseIsPublished *bool           `json:"course_is_published,omitempty"`
	Schedules         *[]ScheduleSlot `json:"schedules,omitempty" validate:"omitempty,dive"`
}

type AssignInstructorRequest struct {
	InstructorID uuid.UUID `json:"instructor_id" validate:"required"`
}

type BulkEnrollRequest struct {
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1,max=500"`
}
