package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnnouncementModel: course-scoped when AnnouncementCourseID is set,
// site-wide otherwise. AnnouncementAudience optionally narrows to one
// role name.
type AnnouncementModel struct {
	AnnouncementID       uuid.UUID  `gorm:"type:uuid;primaryKey;column:announcement_id" json:"announcement_id"`
	AnnouncementCourseID *uuid.UUID `gorm:"type:uuid;index;column:announcement_course_id" json:"announcement_course_id,omitempty"`
	AnnouncementAuthorID uuid.UUID  `gorm:"type:uuid;not null;column:announcement_author_id" json:"announcement_author_id"`
	AnnouncementTitle    string     `gorm:"size:200;not null;column:announcement_title" json:"announcement_title"`
	AnnouncementBody     string     `gorm:"type:text;not null;column:announcement_body" json:"announcement_body"`
	AnnouncementAudience string     `gorm:"size:30;column:announcement_audience" json:"announcement_audience"`
	AnnouncementPinned   bool       `gorm:"not null;default:false;column:announcement_pinned" json:"announcement_pinned"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AnnouncementModel) TableName() string {
	return "announcements"
}

func (m *AnnouncementModel) BeforeCreate(tx *gorm.DB) error {
	if m.AnnouncementID == uuid.Nil {
		m.AnnouncementID = uuid.New()
	}
	return nil
}
