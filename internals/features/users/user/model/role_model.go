package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleModel represents the roles table. A user has exactly one role; every
// permission check resolves through it (no per-user overrides).
type RoleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleName  string    `gorm:"size:30;uniqueIndex;not null" json:"role_name" validate:"required,min=3,max=30"`
	AdminTier bool      `gorm:"not null;default:false" json:"admin_tier"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RoleModel) TableName() string {
	return "roles"
}

func (r *RoleModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RolePermissionModel grants one (resource, action) pair to a role.
type RolePermissionModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_resource_action" json:"role_id"`
	Resource   string    `gorm:"size:50;not null;uniqueIndex:idx_role_resource_action" json:"resource"`
	Action     string    `gorm:"size:30;not null;uniqueIndex:idx_role_resource_action" json:"action"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

func (p *RolePermissionModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
