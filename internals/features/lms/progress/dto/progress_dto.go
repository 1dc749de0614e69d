package dto

import "github.com/google/uuid"

type RecordProgressRequest struct {
	ProgressLabID      uuid.UUID `json:"progress_lab_id" validate:"required"`
	ProgressStatus     string    `json:"progress_status" validate:"required,oneof=not_started in_progress completed"`
	ProgressScore      *float64  `json:"progress_score,omitempty" validate:"omitempty,gte=0"`
	ProgressTimeSpentS int       `json:"progress_time_spent_s" validate:"gte=0"`
}

// CourseProgressSummary aggregates one course's lab completion.
type CourseProgressSummary struct {
	LabID          uuid.UUID `json:"lab_id"`
	LabTitle       string    `json:"lab_title"`
	StudentsTotal  int64     `json:"students_total"`
	StudentsDone   int64     `json:"students_done"`
	AverageScore   float64   `json:"average_score"`
	AverageSeconds float64   `json:"average_seconds"`
}
