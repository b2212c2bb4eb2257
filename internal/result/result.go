// Package result carries the success-or-failure outcome of every repository call.
package result

import (
	"context"
	"errors"
	"strings"
)

// Kind classifies an AppError.
type Kind string

const (
	NetworkFailure    Kind = "NetworkError"
	AuthFailure       Kind = "AuthError"
	ValidationFailure Kind = "ValidationError"
	NotFoundFailure   Kind = "NotFoundError"
	UnknownFailure    Kind = "UnknownError"
)

func (k Kind) String() string {
	return string(k)
}

// AppError is the failure payload of a Result.
type AppError struct {
	Message   string
	Kind      Kind
	Code      string
	Retryable bool
	cause     error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the classified error when one exists.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewError builds an AppError of the given kind.
func NewError(kind Kind, message string) *AppError {
	return &AppError{Message: message, Kind: kind}
}

// WithCode returns a copy carrying a machine-readable code.
func (e *AppError) WithCode(code string) *AppError {
	out := *e
	out.Code = code
	return &out
}

// kinded is implemented by transport and mock errors that know their own classification.
type kinded interface {
	Kind() Kind
}

type retryable interface {
	Retryable() bool
}

// FromError converts any error into an AppError. Classification is structural:
// an *AppError is returned as is, errors exposing Kind() keep their kind, deadline
// errors are network failures and anything else is unknown. The fallback message
// is used when err carries no message of its own.
func FromError(err error, fallbackMessage string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	message := messageOf(err, fallbackMessage)

	var withKind kinded
	if errors.As(err, &withKind) {
		out := &AppError{Message: message, Kind: withKind.Kind(), cause: err}
		var r retryable
		if errors.As(err, &r) {
			out.Retryable = r.Retryable()
		}
		return out
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Message: message, Kind: NetworkFailure, Retryable: true, cause: err}
	}

	return &AppError{Message: message, Kind: UnknownFailure, cause: err}
}

type messager interface {
	UserMessage() string
}

func messageOf(err error, fallback string) string {
	var m messager
	if errors.As(err, &m) {
		if msg := strings.TrimSpace(m.UserMessage()); msg != "" {
			return msg
		}
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// Result holds either a value or an *AppError, never both.
type Result[T any] struct {
	value T
	err   *AppError
}

// Success wraps a value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps an error. A nil error becomes an UnknownFailure so the
// result stays a failure.
func Failure[T any](err *AppError) Result[T] {
	if err == nil {
		err = NewError(UnknownFailure, "unknown error")
	}
	return Result[T]{err: err}
}

// Fail is shorthand for Failure(NewError(kind, message)).
func Fail[T any](kind Kind, message string) Result[T] {
	return Failure[T](NewError(kind, message))
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// Value returns the success value. It panics on a failure.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic("result: Value called on failure: " + r.err.Message)
	}
	return r.value
}

// Err returns the failure. It panics on a success.
func (r Result[T]) Err() *AppError {
	if r.err == nil {
		panic("result: Err called on success")
	}
	return r.err
}

// Unpack returns both branches; exactly one is meaningful.
func (r Result[T]) Unpack() (T, *AppError) {
	return r.value, r.err
}

// Map transforms the success value and passes failures through.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return Success(fn(r.value))
}
