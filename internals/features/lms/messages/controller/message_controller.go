package controller

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/features/lms/messages/dto"
	"virtualab_backend/internals/features/lms/messages/model"
	userModel "virtualab_backend/internals/features/users/user/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

type MessageController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditService.Logger
}

func NewMessageController(db *gorm.DB, v *validator.Validate, audit *auditService.Logger) *MessageController {
	return &MessageController{DB: db, Validate: v, Audit: audit}
}

func (ctrl *MessageController) Send(c *fiber.Ctx) error {
	senderID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.MessageRecipientID == senderID {
		return helper.Error(c, http.StatusBadRequest, "cannot send a message to yourself")
	}

	var count int64
	if err := ctrl.DB.WithContext(c.Context()).Model(&userModel.UserModel{}).
		Where("id = ? AND is_active = ?", req.MessageRecipientID, true).
		Count(&count).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}
	if count == 0 {
		return helper.Error(c, http.StatusNotFound, "recipient not found")
	}

	msg := model.MessageModel{
		MessageSenderID:    senderID,
		MessageRecipientID: req.MessageRecipientID,
		MessageSubject:     req.MessageSubject,
		MessageBody:        req.MessageBody,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&msg).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to send message")
	}

	return helper.SuccessWithCode(c, http.StatusCreated, "message sent", msg)
}

func (ctrl *MessageController) Inbox(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	p := helper.ParsePage(c, "created_at", "desc", helper.DefaultOpts)

	base := ctrl.DB.WithContext(c.Context()).Model(&model.MessageModel{}).
		Where("message_recipient_id = ?", userID)
	if c.Query("unread") == "true" {
		base = base.Where("message_read_at IS NULL")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to count messages")
	}

	var rows []model.MessageModel
	if err := base.Order("created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list messages")
	}

	return helper.Success(c, "inbox", fiber.Map{
		"items": rows,
		"meta":  helper.BuildPageMeta(total, p),
	})
}

func (ctrl *MessageController) Sent(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	p := helper.ParsePage(c, "created_at", "desc", helper.DefaultOpts)

	base := ctrl.DB.WithContext(c.Context()).Model(&model.MessageModel{}).
		Where("message_sender_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to count messages")
	}

	var rows []model.MessageModel
	if err := base.Order("created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to list messages")
	}

	return helper.Success(c, "sent messages", fiber.Map{
		"items": rows,
		"meta":  helper.BuildPageMeta(total, p),
	})
}

// MarkRead sets message_read_at once; re-reads keep the first timestamp.
func (ctrl *MessageController) MarkRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	msgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid message id")
	}

	var msg model.MessageModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&msg, "message_id = ? AND message_recipient_id = ?", msgID, userID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "message not found")
	}

	if msg.MessageReadAt == nil {
		now := time.Now()
		if err := ctrl.DB.WithContext(c.Context()).Model(&msg).
			Update("message_read_at", now).Error; err != nil {
			return helper.Error(c, http.StatusInternalServerError, "failed to mark message read")
		}
		msg.MessageReadAt = &now
	}

	return helper.Success(c, "message read", msg)
}

func (ctrl *MessageController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	var count int64
	if err := ctrl.DB.WithContext(c.Context()).Model(&model.MessageModel{}).
		Where("message_recipient_id = ? AND message_read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to count unread messages")
	}

	return helper.Success(c, "unread count", fiber.Map{"unread": count})
}
