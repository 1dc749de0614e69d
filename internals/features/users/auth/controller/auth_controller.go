package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"virtualab_backend/internals/configs"
	"virtualab_backend/internals/constants"
	auditDTO "virtualab_backend/internals/features/audit/dto"
	auditModel "virtualab_backend/internals/features/audit/model"
	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/features/users/auth/dto"
	sessionModel "virtualab_backend/internals/features/users/auth/model"
	userModel "virtualab_backend/internals/features/users/user/model"
	helper "virtualab_backend/internals/helpers"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Audit    *auditService.Logger
}

func NewAuthController(db *gorm.DB, v *validator.Validate, audit *auditService.Logger) *AuthController {
	return &AuthController{DB: db, Validate: v, Audit: audit}
}

/* =========================
   Register / Login / Logout
   ========================= */

func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to hash password")
	}

	var studentRole userModel.RoleModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&studentRole, "role_name = ?", constants.RoleStudent).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "default role is missing")
	}

	user := userModel.UserModel{
		UserName:     req.UserName,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		RoleID:       studentRole.ID,
		IsActive:     true,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.Error(c, http.StatusBadRequest, "email is already registered")
		}
		return helper.Error(c, http.StatusInternalServerError, "failed to create user")
	}

	ctrl.Audit.LogDataChange(c.Context(), user.ID, constants.ResUser, user.ID.String(),
		auditDTO.DataChangePayload{Operation: "create", Changed: map[string]interface{}{"email": user.Email}})

	return helper.SuccessWithCode(c, http.StatusCreated, "account created", fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
	})
}

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user userModel.UserModel
	err := ctrl.DB.WithContext(c.Context()).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctrl.Audit.LogLogin(c.Context(), nil, "", c.IP(), c.Get(fiber.HeaderUserAgent),
			auditDTO.LoginPayload{Email: email, Method: "password", Succeeded: false, Reason: "unknown email"})
		return helper.Error(c, http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		ctrl.Audit.LogLogin(c.Context(), &user.ID, "", c.IP(), c.Get(fiber.HeaderUserAgent),
			auditDTO.LoginPayload{Email: email, Method: "password", Succeeded: false, Reason: "wrong password"})
		return helper.Error(c, http.StatusUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return helper.Error(c, http.StatusForbidden, "account is deactivated")
	}

	return ctrl.openSession(c, &user, "password")
}

func (ctrl *AuthController) openSession(c *fiber.Ctx, user *userModel.UserModel, method string) error {
	token, err := helperAuth.NewSessionToken()
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to create session")
	}

	now := time.Now()
	sess := sessionModel.SessionModel{
		Token:      token,
		UserID:     user.ID,
		ExpiresAt:  now.Add(helperAuth.SessionTTL),
		LastSeenAt: now,
		IP:         c.IP(),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&sess).Error; err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     helperAuth.SessionCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
		Expires:  sess.ExpiresAt,
	})

	ctrl.Audit.LogLogin(c.Context(), &user.ID, sess.ID.String(), c.IP(), c.Get(fiber.HeaderUserAgent),
		auditDTO.LoginPayload{Email: user.Email, Method: method, Succeeded: true})

	return helper.Success(c, "logged in", dto.SessionResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt.Format(time.RFC3339),
	})
}

func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}
	sessionID := helperAuth.GetSessionID(c)

	var sess sessionModel.SessionModel
	if err := ctrl.DB.WithContext(c.Context()).First(&sess, "id = ?", sessionID).Error; err == nil {
		now := time.Now()
		ctrl.DB.WithContext(c.Context()).Model(&sess).UpdateColumn("revoked_at", now)
		ctrl.Audit.LogLogout(c.Context(), userID, sessionID,
			auditDTO.LogoutPayload{SessionAge: now.Sub(sess.CreatedAt).Round(time.Second).String()})
	}

	c.Cookie(&fiber.Cookie{
		Name:    helperAuth.SessionCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})
	return helper.Success(c, "logged out", nil)
}

func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "not logged in")
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).Preload("Role").
		First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, http.StatusNotFound, "user not found")
	}
	return helper.Success(c, "profile", user)
}

/* =========================
   Google sign-in
   ========================= */

func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	if configs.GoogleClientID == "" {
		return helper.Error(c, http.StatusNotImplemented, "google sign-in is not configured")
	}

	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		ctrl.Audit.LogLogin(c.Context(), nil, "", c.IP(), c.Get(fiber.HeaderUserAgent),
			auditDTO.LoginPayload{Method: "google", Succeeded: false, Reason: "invalid id token"})
		return helper.Error(c, http.StatusUnauthorized, "invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to decode ID token")
	}

	googleID := claimSet.Sub
	var user userModel.UserModel
	err = ctrl.DB.WithContext(c.Context()).First(&user, "google_id = ?", googleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var studentRole userModel.RoleModel
		if err := ctrl.DB.WithContext(c.Context()).
			First(&studentRole, "role_name = ?", constants.RoleStudent).Error; err != nil {
			return helper.Error(c, http.StatusInternalServerError, "default role is missing")
		}
		dummy, hashErr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if hashErr != nil {
			return helper.Error(c, http.StatusInternalServerError, "failed to create user")
		}
		user = userModel.UserModel{
			UserName:     claimSet.Name,
			Email:        strings.ToLower(claimSet.Email),
			PasswordHash: string(dummy),
			GoogleID:     &googleID,
			RoleID:       studentRole.ID,
			IsActive:     true,
		}
		if err := ctrl.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
			return helper.Error(c, http.StatusInternalServerError, "failed to create user")
		}
	} else if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "internal server error")
	}

	if !user.IsActive {
		return helper.Error(c, http.StatusForbidden, "account is deactivated")
	}
	return ctrl.openSession(c, &user, "google")
}

/* =========================
   Password reset
   ========================= */

// RequestPasswordReset always answers 200 so the endpoint cannot be used
// to probe which emails exist. Mail delivery is out of scope; the token
// lands in the process log.
func (ctrl *AuthController) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	err := ctrl.DB.WithContext(c.Context()).
		First(&user, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error
	if err == nil {
		token, signErr := signResetToken(user.ID)
		if signErr != nil {
			log.Printf("[ERROR] reset token sign: %v", signErr)
		} else {
			log.Printf("[INFO] password reset token for %s issued", user.Email)
			_ = token // delivered out of band
		}
	}

	return helper.Success(c, "if the address exists, a reset link has been sent", nil)
}

func (ctrl *AuthController) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := parseResetToken(req.Token)
	if err != nil {
		return helper.Error(c, http.StatusUnauthorized, "invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to hash password")
	}

	now := time.Now()
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", userID).
			UpdateColumn("password_hash", string(hash)).Error; err != nil {
			return err
		}
		// a reset invalidates every open session for the account
		return tx.Model(&sessionModel.SessionModel{}).
			Where("user_id = ? AND revoked_at IS NULL", userID).
			UpdateColumn("revoked_at", now).Error
	})
	if err != nil {
		return helper.Error(c, http.StatusInternalServerError, "failed to reset password")
	}

	ctrl.Audit.LogSecurityEvent(c.Context(), &userID, c.IP(), c.Get(fiber.HeaderUserAgent),
		auditDTO.SecurityEventPayload{
			Severity:  auditModel.SeverityLow,
			Event:     "password_reset",
			Succeeded: true,
			Context:   map[string]interface{}{"user_id": userID.String()},
		})
	return helper.Success(c, "password updated", nil)
}
