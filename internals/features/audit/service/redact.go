package service

import "strings"

// RedactedMarker replaces every value whose key smells sensitive.
const RedactedMarker = "[REDACTED]"

// sensitiveKeyParts is matched as a case-insensitive substring of the key
// name. Name-based matching can false-positive ("keyword") and
// false-negative (unlisted synonyms); that is the accepted trade-off.
var sensitiveKeyParts = []string{
	"password", "token", "secret", "key", "auth", "credit_card", "ssn",
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// Redact returns a copy of details with sensitive values replaced,
// recursing through nested maps and slices. The input is not mutated.
func Redact(details map[string]interface{}) map[string]interface{} {
	if details == nil {
		return nil
	}
	out := make(map[string]interface{}, len(details))
	for k, v := range details {
		if isSensitiveKey(k) {
			out[k] = RedactedMarker
			continue
		}
		out[k] = redactValue(v)
	}
	return out
}

func redactValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return Redact(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = redactValue(item)
		}
		return out
	default:
		return v
	}
}
