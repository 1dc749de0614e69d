package dto

import "github.com/google/uuid"

type SendMessageRequest struct {
	MessageRecipientID uuid.UUID `json:"message_recipient_id" validate:"required"`
	MessageSubject     string    `json:"message_subject" validate:"omitempty,max=200"`
	MessageBody        string    `json:"message_body" validate:"required,min=1"`
}
