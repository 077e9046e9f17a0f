package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an API failure so callers can branch without inspecting
// status codes or response bodies themselves.
type Kind string

const (
	// KindAuth is a 401: the session is over, tokens have been cleared.
	KindAuth Kind = "auth"
	// KindForbidden is a 403: the user lacks permission, session stays up.
	KindForbidden Kind = "forbidden"
	// KindValidation is a 4xx carrying per-field errors from the backend.
	KindValidation Kind = "validation"
	// KindNotFound is a 404 on a detail endpoint.
	KindNotFound Kind = "not_found"
	// KindNetwork is a transport-level failure (no HTTP response at all).
	KindNetwork Kind = "network"
	// KindServer is a 5xx: the backend failed, retrying may help.
	KindServer Kind = "server"
	// KindUnknown is everything else.
	KindUnknown Kind = "unknown"
)

// Error is the single error type surfaced by the HTTP client.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Fields maps field name to the first server-side validation message
	// for that field. Only set when Kind == KindValidation.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return e.Message
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// FieldErrors extracts the validation field map from err, or nil.
func FieldErrors(err error) map[string]string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindValidation {
		return apiErr.Fields
	}
	return nil
}

// reserved top-level keys that are never field names
var nonFieldKeys = map[string]bool{
	"detail":           true,
	"message":          true,
	"success":          true,
	"non_field_errors": true,
	"code":             true,
}

// parseError turns a non-2xx response into an *Error. The backend speaks
// two dialects: plain DRF ({"detail": ...} or {"field": ["msg"]}) and the
// wrapped form ({"success": false, "message": ..., "errors": {...}}), so
// the parser accepts both.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{
		Status:  status,
		Kind:    kindForStatus(status),
		Message: http.StatusText(status),
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		if msg := strings.TrimSpace(string(body)); msg != "" {
			apiErr.Message = msg
		}
		return apiErr
	}

	if msg := firstString(raw, "detail", "message", "error"); msg != "" {
		apiErr.Message = msg
	}

	// Wrapped envelopes nest field errors under "errors".
	fieldSrc := raw
	if inner, ok := raw["errors"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(inner, &nested); err == nil {
			fieldSrc = nested
		}
	}

	fields := map[string]string{}
	for key, val := range fieldSrc {
		if nonFieldKeys[key] || key == "errors" {
			continue
		}
		if msg := firstMessage(val); msg != "" {
			fields[key] = msg
		}
	}

	if len(fields) > 0 && apiErr.Kind == KindUnknown {
		apiErr.Kind = KindValidation
		apiErr.Fields = fields
		if apiErr.Message == http.StatusText(status) {
			apiErr.Message = "validation failed"
		}
	}

	// Non-field errors still mark a 400 as validation so forms can show
	// a global message.
	if nfe, ok := raw["non_field_errors"]; ok && apiErr.Kind == KindUnknown {
		if msg := firstMessage(nfe); msg != "" {
			apiErr.Kind = KindValidation
			apiErr.Message = msg
		}
	}

	return apiErr
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	}
	if status >= 500 {
		return KindServer
	}
	return KindUnknown
}

func firstString(raw map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		val, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// firstMessage decodes either "msg" or ["msg", ...] into the first message.
func firstMessage(val json.RawMessage) string {
	var s string
	if err := json.Unmarshal(val, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(val, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}
