package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadedFileModel struct {
	FileID           uuid.UUID `gorm:"type:uuid;primaryKey;column:file_id" json:"file_id"`
	FileOwnerID      uuid.UUID `gorm:"type:uuid;not null;index;column:file_owner_id" json:"file_owner_id"`
	FileTitle        string    `gorm:"size:200;column:file_title" json:"file_title"`
	FileOriginalName string    `gorm:"size:255;not null;column:file_original_name" json:"file_original_name"`
	FileURL          string    `gorm:"size:500;not null;column:file_url" json:"file_url"`
	FileContentType  string    `gorm:"size:100;not null;column:file_content_type" json:"file_content_type"`
	FileSizeBytes    int64     `gorm:"not null;column:file_size_bytes" json:"file_size_bytes"`
	FileResourceType string    `gorm:"size:50;column:file_resource_type" json:"file_resource_type"`
	FileVersion      string    `gorm:"size:20;default:'1';column:file_version" json:"file_version"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UploadedFileModel) TableName() string {
	return "uploaded_files"
}

func (m *UploadedFileModel) BeforeCreate(tx *gorm.DB) error {
	if m.FileID == uuid.Nil {
		m.FileID = uuid.New()
	}
	return nil
}
