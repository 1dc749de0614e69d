package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParentLinkModel ties a parent account to a student account. Only verified
// links grant the parent read access to the student's courses.
type ParentLinkModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ParentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_parent_student" json:"parent_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_parent_student" json:"student_id"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ParentLinkModel) TableName() string {
	return "parent_links"
}

func (l *ParentLinkModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
