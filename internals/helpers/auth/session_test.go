package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	sessionModel "virtualab_backend/internals/features/users/auth/model"
)

func openSessionDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&sessionModel.SessionModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mkSession(t *testing.T, db *gorm.DB, expiresAt time.Time, revoked bool) sessionModel.SessionModel {
	t.Helper()
	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	s := sessionModel.SessionModel{
		Token:      token,
		UserID:     uuid.New(),
		ExpiresAt:  expiresAt,
		LastSeenAt: time.Now().Add(-time.Hour),
	}
	if revoked {
		now := time.Now()
		s.RevokedAt = &now
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	return s
}

func TestResolveSessionLiveBumpsLastSeen(t *testing.T) {
	db := openSessionDB(t)
	created := mkSession(t, db, time.Now().Add(time.Hour), false)

	got, err := ResolveSession(db, created.Token)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.UserID != created.UserID {
		t.Fatalf("live session not resolved: %+v", got)
	}

	var stored sessionModel.SessionModel
	if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !stored.LastSeenAt.After(created.LastSeenAt) {
		t.Errorf("last_seen_at not bumped: %v -> %v", created.LastSeenAt, stored.LastSeenAt)
	}
}

func TestResolveSessionDeadTokensAreNilNotError(t *testing.T) {
	db := openSessionDB(t)
	expired := mkSession(t, db, time.Now().Add(-time.Minute), false)
	revoked := mkSession(t, db, time.Now().Add(time.Hour), true)

	cases := map[string]string{
		"expired": expired.Token,
		"revoked": revoked.Token,
		"unknown": "deadbeef",
		"empty":   "",
	}
	for name, token := range cases {
		got, err := ResolveSession(db, token)
		if err != nil {
			t.Errorf("%s: err = %v, want nil", name, err)
		}
		if got != nil {
			t.Errorf("%s: session = %+v, want nil", name, got)
		}
	}
}

func TestNewSessionTokenShapeAndUniqueness(t *testing.T) {
	a, err := NewSessionToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSessionToken()
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 64 || len(b) != 64 {
		t.Errorf("token length = %d/%d, want 64", len(a), len(b))
	}
	if a == b {
		t.Error("two tokens should not collide")
	}
}

func TestExtractSessionTokenPrefersBearerHeader(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/x", func(c *fiber.Ctx) error {
		got = ExtractSessionToken(c)
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}
	if got != "header-token" {
		t.Errorf("token = %q, want the header value over the cookie", got)
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
	if _, err := app.Test(req); err != nil {
		t.Fatal(err)
	}
	if got != "cookie-token" {
		t.Errorf("token = %q, want the cookie fallback", got)
	}
}
