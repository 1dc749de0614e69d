package dto

import "github.com/google/uuid"

type UpdateUserRequest struct {
	UserName *string `json:"user_name,omitempty" validate:"omitempty,min=3,max=50"`
	RoleID   *string `json:"role_id,omitempty" validate:"omitempty,uuid4"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type CreateParentLinkRequest struct {
	ParentID  uuid.UUID `json:"parent_id" validate:"required"`
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}
