package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionModel "virtualab_backend/internals/features/users/auth/model"
)

// SessionCookieName is the browser transport; API clients may send the same
// token as a Bearer header instead.
const SessionCookieName = "virtual_lab_session"

const SessionTTL = 24 * time.Hour

// NewSessionToken returns a 64-char hex token from crypto/rand.
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ExtractSessionToken pulls the token from the Authorization header or the
// session cookie, in that order.
func ExtractSessionToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if strings.HasPrefix(h, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
	}
	return c.Cookies(SessionCookieName)
}

// ResolveSession looks up a live session by token. Missing, expired and
// revoked sessions all resolve to (nil, nil); only data-access faults
// return an error. On success the last-seen timestamp is bumped
// best-effort.
func ResolveSession(db *gorm.DB, token string) (*sessionModel.SessionModel, error) {
	if token == "" {
		return nil, nil
	}

	var s sessionModel.SessionModel
	err := db.Where("token = ?", token).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !s.Alive(now) {
		return nil, nil
	}

	s.LastSeenAt = now
	db.Model(&sessionModel.SessionModel{}).
		Where("id = ?", s.ID).
		UpdateColumn("last_seen_at", now)

	return &s, nil
}
