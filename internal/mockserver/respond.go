package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mekedron/city-discovery/internal/result"
)

type ctxKey struct{}

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message})
}

type kinded interface {
	Kind() result.Kind
}

type retryable interface {
	Retryable() bool
}

// writeError maps a backend error kind onto the status the live client classifies back.
func writeError(w http.ResponseWriter, err error) {
	writeMessage(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	var kind result.Kind
	var appErr *result.AppError
	var withKind kinded
	switch {
	case errors.As(err, &appErr):
		kind = appErr.Kind
	case errors.As(err, &withKind):
		kind = withKind.Kind()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}

	switch kind {
	case result.AuthFailure:
		return http.StatusUnauthorized
	case result.ValidationFailure:
		return http.StatusUnprocessableEntity
	case result.NotFoundFailure:
		return http.StatusNotFound
	case result.NetworkFailure:
		var r retryable
		if errors.As(err, &r) && r.Retryable() {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, out any) error {
	defer func() {
		_ = r.Body.Close()
	}()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		return result.NewError(result.ValidationFailure, "invalid request body")
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// authenticated rejects requests without a valid access token and stores the caller id.
func (s *Server) authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.tokens.verify(bearerToken(r), tokenAccess)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func callerID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}
