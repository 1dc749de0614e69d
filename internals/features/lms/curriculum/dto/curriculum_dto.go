package dto

import "github.com/google/uuid"

type CreateUnitRequest struct {
	UnitCourseID    uuid.UUID  `json:"unit_course_id" validate:"required"`
	UnitTitle       string     `json:"unit_title" validate:"required,min=3,max=200"`
	UnitDescription string     `json:"unit_description"`
	UnitLabID       *uuid.UUID `json:"unit_lab_id,omitempty"`
}

type UpdateUnitRequest struct {
	UnitTitle       *string    `json:"unit_title,omitempty" validate:"omitempty,min=3,max=200"`
	UnitDescription *string    `json:"unit_description,omitempty"`
	UnitLabID       *uuid.UUID `json:"unit_lab_id,omitempty"`
}

// ReorderUnitsRequest carries the complete new ordering. Every unit of
// the course must appear exactly once.
type ReorderUnitsRequest struct {
	UnitIDs []uuid.UUID `json:"unit_ids" validate:"required,min=1"`
}
