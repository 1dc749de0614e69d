package controller

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"virtualab_backend/internals/configs"
)

const resetTokenTTL = 15 * time.Minute

var errResetDisabled = errors.New("password reset is not configured")

func signResetToken(userID uuid.UUID) (string, error) {
	if configs.JWTSecret == "" {
		return "", errResetDisabled
	}
	claims := jwt.MapClaims{
		"sub":     userID.String(),
		"purpose": "password_reset",
		"exp":     time.Now().Add(resetTokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

func parseResetToken(token string) (uuid.UUID, error) {
	if configs.JWTSecret == "" {
		return uuid.Nil, errResetDisabled
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return uuid.Nil, errors.New("wrong token purpose")
	}
	sub, _ := claims["sub"].(string)
	return uuid.Parse(sub)
}
