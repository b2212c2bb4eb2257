package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mekedron/city-discovery/internal/result"
)

// run executes fn and converts its outcome into a Result. Panics are recovered as
// unknown failures so nothing escapes the repository boundary.
func run[T any](ctx context.Context, logger *slog.Logger, op, fallback string, fn func(context.Context) (T, error)) (res result.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			appErr := result.NewError(result.UnknownFailure, fallback)
			logger.Error("repository panic", "op", op, "panic", fmt.Sprint(r))
			res = result.Failure[T](appErr)
		}
	}()

	value, err := fn(ctx)
	if err != nil {
		appErr := result.FromError(err, fallback)
		logger.Warn("repository call failed", "op", op, "kind", appErr.Kind, "error", err)
		return result.Failure[T](appErr)
	}
	return result.Success(value)
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
