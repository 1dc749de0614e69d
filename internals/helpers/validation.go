package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Validate is the shared validator instance for DTO structs.
func Validate() *validator.Validate { return validate }

func ValidateEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func ValidateUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ValidateRequiredFields returns the names of fields that are absent or
// empty in the payload. Callers decide what to do with the result.
func ValidateRequiredFields(payload map[string]interface{}, fields []string) []string {
	var missing []string
	for _, f := range fields {
		v, ok := payload[f]
		if !ok || v == nil {
			missing = append(missing, f)
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
