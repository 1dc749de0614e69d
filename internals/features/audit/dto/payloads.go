// Package dto holds the typed payloads behind activity-log details. Each
// action category gets its own struct; the generic key-value shape only
// appears at the serialization boundary (Fields()).
package dto

// Payload is anything that can flatten itself into log details.
type Payload interface {
	Fields() map[string]interface{}
}

type LoginPayload struct {
	Email     string
	Method    string // password | google
	Succeeded bool
	Reason    string // only on failure
}

func (p LoginPayload) Fields() map[string]interface{} {
	f := map[string]interface{}{
		"email":     p.Email,
		"method":    p.Method,
		"succeeded": p.Succeeded,
	}
	if p.Reason != "" {
		f["reason"] = p.Reason
	}
	return f
}

type LogoutPayload struct {
	SessionAge string
}

func (p LogoutPayload) Fields() map[string]interface{} {
	return map[string]interface{}{"session_age": p.SessionAge}
}

type DataChangePayload struct {
	Operation string // create | update | delete
	Changed   map[string]interface{}
}

func (p DataChangePayload) Fields() map[string]interface{} {
	return map[string]interface{}{
		"operation": p.Operation,
		"changed":   p.Changed,
	}
}

type BulkSummaryPayload struct {
	OperationType string
	TotalItems    int
	SuccessCount  int
	ErrorCount    int
	Errors        []BulkItemError
}

type BulkItemError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (p BulkSummaryPayload) Fields() map[string]interface{} {
	return map[string]interface{}{
		"operation_type": p.OperationType,
		"total_items":    p.TotalItems,
		"success_count":  p.SuccessCount,
		"error_count":    p.ErrorCount,
		"errors":         p.Errors,
	}
}

type SecurityEventPayload struct {
	Severity  string // low | medium | high | critical
	Event     string
	Succeeded bool // false for denials (rate limits, escalation attempts)
	Context   map[string]interface{}
}

func (p SecurityEventPayload) Fields() map[string]interface{} {
	return map[string]interface{}{
		"severity":  p.Severity,
		"event":     p.Event,
		"succeeded": p.Succeeded,
		"context":   p.Context,
	}
}

type RequestPayload struct {
	Method string
	Path   string
	Query  string
	Body   map[string]interface{}
}

func (p RequestPayload) Fields() map[string]interface{} {
	f := map[string]interface{}{
		"method": p.Method,
		"path":   p.Path,
	}
	if p.Query != "" {
		f["query"] = p.Query
	}
	if p.Body != nil {
		f["body"] = p.Body
	}
	return f
}
