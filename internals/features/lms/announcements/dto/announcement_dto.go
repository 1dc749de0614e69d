package dto

import "github.com/google/uuid"

type CreateAnnouncementRequest struct {
	AnnouncementCourseID *uuid.UUID `json:"announcement_course_id,omitempty"`
	AnnouncementTitle    string     `json:"announcement_title" validate:"required,min=3,max=200"`
	AnnouncementBody     string     `json:"announcement_body" validate:"required"`
	AnnouncementAudience string     `json:"announcement_audience" validate:"omitempty,max=30"`
	AnnouncementPinned   bool       `json:"announcement_pinned"`
}

type UpdateAnnouncementRequest struct {
	AnnouncementTitle    *string `json:"announcement_title,omitempty" validate:"omitempty,min=3,max=200"`
	AnnouncementBody     *string `json:"announcement_body,omitempty"`
	AnnouncementAudience *string `json:"announcement_audience,omitempty" validate:"omitempty,max=30"`
	AnnouncementPinned   *bool   `json:"announcement_pinned,omitempty"`
}
