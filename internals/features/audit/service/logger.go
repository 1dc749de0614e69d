package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"virtualab_backend/internals/features/audit/dto"
	"virtualab_backend/internals/features/audit/model"
)

// Logger appends activity records. It is constructed once and injected
// into middlewares and controllers; there is no package-level instance.
//
// Logging is never on the critical path: every failure is swallowed and
// written to the process log instead of propagating to the request that
// is being described.
type Logger struct {
	DB     *gorm.DB
	Timers *Timers
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{DB: db, Timers: NewTimers()}
}

// Entry is the write-side shape; Details go through Redact before they
// are serialized.
type Entry struct {
	UserID       *uuid.UUID
	SessionID    string
	Action       string
	ResourceType string
	ResourceID   string
	Details      dto.Payload
	IP           string
	UserAgent    string
	Status       string
	ErrorMessage string
	DurationMs   int64
}

// Log appends one record. Side effect only; errors never reach the caller.
func (l *Logger) Log(ctx context.Context, e Entry) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] activity log panic: %v", r)
		}
	}()

	var details datatypes.JSON
	if e.Details != nil {
		redacted := Redact(e.Details.Fields())
		raw, err := json.Marshal(redacted)
		if err != nil {
			log.Printf("[ERROR] activity log marshal: %v", err)
		} else {
			details = datatypes.JSON(raw)
		}
	}

	if e.Status == "" {
		e.Status = model.StatusSuccess
	}

	row := model.ActivityLogModel{
		UserID:       e.UserID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      details,
		IP:           e.IP,
		UserAgent:    e.UserAgent,
		Status:       e.Status,
		ErrorMessage: e.ErrorMessage,
		DurationMs:   e.DurationMs,
	}
	if e.SessionID != "" {
		sid := e.SessionID
		row.SessionID = &sid
	}

	if err := l.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("[ERROR] activity log write: %v", err)
	}
}

/* =========================
   Specialized helpers
   ========================= */

func (l *Logger) LogLogin(ctx context.Context, userID *uuid.UUID, sessionID, ip, userAgent string, p dto.LoginPayload) {
	status := model.StatusSuccess
	if !p.Succeeded {
		status = model.StatusFailure
	}
	l.Log(ctx, Entry{
		UserID:    userID,
		SessionID: sessionID,
		Action:    "auth.login",
		IP:        ip,
		UserAgent: userAgent,
		Status:    status,
		Details:   p,
	})
}

func (l *Logger) LogLogout(ctx context.Context, userID uuid.UUID, sessionID string, p dto.LogoutPayload) {
	l.Log(ctx, Entry{
		UserID:    &userID,
		SessionID: sessionID,
		Action:    "auth.logout",
		Details:   p,
	})
}

func (l *Logger) LogDataChange(ctx context.Context, userID uuid.UUID, resourceType, resourceID string, p dto.DataChangePayload) {
	l.Log(ctx, Entry{
		UserID:       &userID,
		Action:       resourceType + "." + p.Operation,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      p,
	})
}

func (l *Logger) LogBulkOperation(ctx context.Context, userID uuid.UUID, p dto.BulkSummaryPayload) {
	status := model.StatusSuccess
	if p.ErrorCount > 0 {
		status = model.StatusFailure
	}
	l.Log(ctx, Entry{
		UserID:  &userID,
		Action:  "bulk." + p.OperationType,
		Status:  status,
		Details: p,
	})
}

func (l *Logger) LogSecurityEvent(ctx context.Context, userID *uuid.UUID, ip, userAgent string, p dto.SecurityEventPayload) {
	status := model.StatusFailure
	if p.Succeeded {
		status = model.StatusSuccess
	}
	l.Log(ctx, Entry{
		UserID:    userID,
		Action:    "security." + p.Event,
		IP:        ip,
		UserAgent: userAgent,
		Status:    status,
		Details:   p,
	})
}
