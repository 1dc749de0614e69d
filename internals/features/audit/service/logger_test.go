package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"virtualab_backend/internals/features/audit/dto"
	"virtualab_backend/internals/features/audit/model"
)

func newTestLogger(t *testing.T) (*Logger, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.ActivityLogModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewLogger(db), db
}

func TestLogWritesRowWithRedactedDetails(t *testing.T) {
	l, db := newTestLogger(t)
	userID := uuid.New()

	l.Log(context.Background(), Entry{
		UserID:       &userID,
		Action:       "auth.login",
		ResourceType: "user",
		Details:      dto.LoginPayload{Email: "a@b.co", Method: "password", Succeeded: true},
	})

	var row model.ActivityLogModel
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("expected one log row: %v", err)
	}
	if row.Action != "auth.login" {
		t.Errorf("action = %q", row.Action)
	}
	if row.Status != model.StatusSuccess {
		t.Errorf("status = %q, want default success", row.Status)
	}
	if row.UserID == nil || *row.UserID != userID {
		t.Errorf("user id not stored")
	}
}

func TestLogRedactsSensitivePayloadFields(t *testing.T) {
	l, db := newTestLogger(t)
	userID := uuid.New()

	l.LogDataChange(context.Background(), userID, "user", userID.String(), dto.DataChangePayload{
		Operation: "update",
		Changed:   map[string]interface{}{"password": "plaintext", "user_name": "ada"},
	})

	var row model.ActivityLogModel
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("log row missing: %v", err)
	}

	var details map[string]interface{}
	if err := json.Unmarshal(row.Details, &details); err != nil {
		t.Fatalf("details not valid json: %v", err)
	}
	changed := details["changed"].(map[string]interface{})
	if changed["password"] != RedactedMarker {
		t.Errorf("password in stored details = %v, want marker", changed["password"])
	}
	if changed["user_name"] != "ada" {
		t.Errorf("user_name = %v, want untouched", changed["user_name"])
	}
}

func TestLogLoginFailureStatus(t *testing.T) {
	l, db := newTestLogger(t)

	// unknown account: nullable user id
	l.LogLogin(context.Background(), nil, "", "1.2.3.4", "ua", dto.LoginPayload{
		Email: "ghost@b.co", Method: "password", Succeeded: false, Reason: "unknown email",
	})

	var row model.ActivityLogModel
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("log row missing: %v", err)
	}
	if row.Status != model.StatusFailure {
		t.Errorf("status = %q, want failure", row.Status)
	}
	if row.UserID != nil {
		t.Errorf("user id = %v, want nil", row.UserID)
	}
}

func TestLogSecurityEventShape(t *testing.T) {
	l, db := newTestLogger(t)
	userID := uuid.New()

	l.LogSecurityEvent(context.Background(), &userID, "1.2.3.4", "ua", dto.SecurityEventPayload{
		Severity: model.SeverityMedium,
		Event:    "rate_limit_exceeded",
		Context:  map[string]interface{}{"path": "/api/u/labs"},
	})

	var row model.ActivityLogModel
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("log row missing: %v", err)
	}
	if row.Action != "security.rate_limit_exceeded" {
		t.Errorf("action = %q", row.Action)
	}
	if row.Status != model.StatusFailure {
		t.Errorf("status = %q, want failure", row.Status)
	}

	var details map[string]interface{}
	if err := json.Unmarshal(row.Details, &details); err != nil {
		t.Fatalf("details not valid json: %v", err)
	}
	if details["severity"] != model.SeverityMedium {
		t.Errorf("severity = %v", details["severity"])
	}
}

func TestLogSecurityEventSucceededStatus(t *testing.T) {
	l, db := newTestLogger(t)
	userID := uuid.New()

	l.LogSecurityEvent(context.Background(), &userID, "1.2.3.4", "ua", dto.SecurityEventPayload{
		Severity:  model.SeverityLow,
		Event:     "password_reset",
		Succeeded: true,
		Context:   map[string]interface{}{"user_id": userID.String()},
	})

	var row model.ActivityLogModel
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("log row missing: %v", err)
	}
	if row.Action != "security.password_reset" {
		t.Errorf("action = %q", row.Action)
	}
	if row.Status != model.StatusSuccess {
		t.Errorf("status = %q, want success", row.Status)
	}
}

func TestLogSurvivesBrokenDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// no migration: the insert will fail, the call must not panic or error
	l := NewLogger(db)
	l.Log(context.Background(), Entry{Action: "auth.login"})
}
