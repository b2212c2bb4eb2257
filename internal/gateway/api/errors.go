package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mekedron/city-discovery/internal/result"
)

const maxErrorBodyPreview = 800

const (
	messageTimeout      = "Request timeout. Please try again."
	messageNetwork      = "Network error. Please check your connection."
	messageUnauthorized = "Unauthorized. Please login again."
	messageForbidden    = "Access forbidden."
	messageNotFound     = "Resource not found."
	messageValidation   = "Validation error."
	messageServer       = "Server error. Please try again later."
	messageGeneric      = "An error occurred."
)

// UpstreamRequestError carries HTTP context for failed API calls.
type UpstreamRequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	// Message is the user-facing text taken from the error body or derived from the status.
	Message string
	Timeout bool
	// ErrorKind overrides the status-derived classification when set.
	ErrorKind result.Kind
	Cause     error
}

func (e *UpstreamRequestError) Error() string {
	parts := []string{ErrUpstream.Error()}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	method := strings.TrimSpace(e.Method)
	url := strings.TrimSpace(e.URL)
	if method != "" || url != "" {
		parts = append(parts, strings.TrimSpace(method+" "+url))
	}
	if e.Message != "" {
		parts = append(parts, fmt.Sprintf("message=%q", e.Message))
	}
	if trimmed := compactBodyPreview(e.Body); trimmed != "" {
		parts = append(parts, fmt.Sprintf("body=%q", trimmed))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}
	return strings.Join(parts, "; ")
}

func (e *UpstreamRequestError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Cause}
}

// Kind classifies the failure for the result layer.
func (e *UpstreamRequestError) Kind() result.Kind {
	if e.ErrorKind != "" {
		return e.ErrorKind
	}
	if e.Timeout || e.StatusCode == 0 {
		return result.NetworkFailure
	}
	return kindForStatus(e.StatusCode)
}

// Retryable reports whether repeating the call may succeed.
func (e *UpstreamRequestError) Retryable() bool {
	return e.Timeout
}

// UserMessage is the text shown to the user.
func (e *UpstreamRequestError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Timeout {
		return messageTimeout
	}
	if e.StatusCode == 0 {
		return messageNetwork
	}
	return defaultMessageForStatus(e.StatusCode)
}

func kindForStatus(status int) result.Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return result.AuthFailure
	case http.StatusNotFound:
		return result.NotFoundFailure
	case http.StatusUnprocessableEntity:
		return result.ValidationFailure
	default:
		return result.NetworkFailure
	}
}

// defaultMessageForStatus is only the fallback; a message from the response body takes precedence.
func defaultMessageForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return messageUnauthorized
	case http.StatusForbidden:
		return messageForbidden
	case http.StatusNotFound:
		return messageNotFound
	case http.StatusUnprocessableEntity:
		return messageValidation
	case http.StatusInternalServerError:
		return messageServer
	default:
		return messageGeneric
	}
}

func statusText(status int) string {
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}

func compactBodyPreview(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	body = strings.ReplaceAll(body, "\n", " ")
	body = strings.ReplaceAll(body, "\r", " ")
	body = strings.Join(strings.Fields(body), " ")
	if len(body) > maxErrorBodyPreview {
		return body[:maxErrorBodyPreview] + "..."
	}
	return body
}
