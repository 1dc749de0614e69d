package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	auditDTO "virtualab_backend/internals/features/audit/dto"
	"virtualab_backend/internals/features/audit/model"
	auditService "virtualab_backend/internals/features/audit/service"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

// AuditRequests writes one activity record per API request after the
// handler settles. The request id keys a one-shot timer; status is
// classified error > failure(>=400) > success. Request bodies are only
// attached for mutating requests and pass through redaction before they
// are stored (auth payloads carry passwords).
func AuditRequests(logger *auditService.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/health" || strings.HasPrefix(path, "/uploads") {
			return c.Next()
		}

		reqID, _ := c.Locals("reqid").(string)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		logger.Timers.Start(reqID)

		var body map[string]interface{}
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
			_ = c.BodyParser(&body) // best effort; non-JSON bodies stay out
		}

		err := c.Next()

		status := model.StatusSuccess
		errMsg := ""
		code := c.Response().StatusCode()
		if err != nil {
			status = model.StatusError
			errMsg = err.Error()
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
				if fe.Code < 500 {
					status = model.StatusFailure
				}
			}
		} else if code >= 400 {
			status = model.StatusFailure
		}

		var userID *uuid.UUID
		if id, uidErr := helperAuth.GetUserID(c); uidErr == nil {
			userID = &id
		}

		logger.Log(c.Context(), auditService.Entry{
			UserID:       userID,
			SessionID:    helperAuth.GetSessionID(c),
			Action:       "api." + strings.ToLower(c.Method()),
			ResourceType: "http",
			ResourceID:   path,
			IP:           c.IP(),
			UserAgent:    c.Get(fiber.HeaderUserAgent),
			Status:       status,
			ErrorMessage: errMsg,
			DurationMs:   logger.Timers.Elapsed(reqID).Milliseconds(),
			Details: auditDTO.RequestPayload{
				Method: c.Method(),
				Path:   path,
				Query:  string(c.Request().URI().QueryString()),
				Body:   body,
			},
		})

		return err
	}
}
