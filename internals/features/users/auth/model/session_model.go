package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionModel represents the user_sessions table. Lifecycle:
// created at login, last_seen bumped per authenticated request,
// terminal at expiry or explicit logout (revoked_at set).
type SessionModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Token      string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt  time.Time  `gorm:"not null;index" json:"expires_at"`
	LastSeenAt time.Time  `gorm:"not null" json:"last_seen_at"`
	IP         string     `gorm:"size:45" json:"ip"`
	UserAgent  string     `gorm:"size:255" json:"user_agent"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (SessionModel) TableName() string {
	return "user_sessions"
}

func (s *SessionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Alive reports whether the session is neither revoked nor expired.
func (s *SessionModel) Alive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
