package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageModel struct {
	MessageID          uuid.UUID  `gorm:"type:uuid;primaryKey;column:message_id" json:"message_id"`
	MessageSenderID    uuid.UUID  `gorm:"type:uuid;not null;index;column:message_sender_id" json:"message_sender_id"`
	MessageRecipientID uuid.UUID  `gorm:"type:uuid;not null;index;column:message_recipient_id" json:"message_recipient_id"`
	MessageSubject     string     `gorm:"size:200;column:message_subject" json:"message_subject"`
	MessageBody        string     `gorm:"type:text;not null;column:message_body" json:"message_body"`
	MessageReadAt      *time.Time `gorm:"column:message_read_at" json:"message_read_at,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (MessageModel) TableName() string {
	return "messages"
}

func (m *MessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
