package viewmodel

import (
	"context"
	"sync"

	"github.com/mekedron/city-discovery/internal/result"
)

// Query is a use-case taking parameters. The usecase package types satisfy it.
type Query[P, T any] interface {
	Execute(ctx context.Context, params P) result.Result[T]
}

// Loader is a use-case without parameters.
type Loader[T any] interface {
	Execute(ctx context.Context) result.Result[T]
}

// QueryFunc adapts a function to Query.
type QueryFunc[P, T any] func(ctx context.Context, params P) result.Result[T]

func (f QueryFunc[P, T]) Execute(ctx context.Context, params P) result.Result[T] {
	return f(ctx, params)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc[T any] func(ctx context.Context) result.Result[T]

func (f LoaderFunc[T]) Execute(ctx context.Context) result.Result[T] {
	return f(ctx)
}

// retrier remembers the last load so Retry can re-run it.
type retrier struct {
	mu   sync.Mutex
	last func(context.Context)
}

func (r *retrier) remember(fn func(context.Context)) {
	r.mu.Lock()
	r.last = fn
	r.mu.Unlock()
}

// retry re-runs the remembered load. It reports false when nothing was loaded yet.
func (r *retrier) retry(ctx context.Context) bool {
	r.mu.Lock()
	last := r.last
	r.mu.Unlock()
	if last == nil {
		return false
	}
	last(ctx)
	return true
}

// unwrap turns a Result into the value and error pair errgroup expects.
func unwrap[T any](res result.Result[T]) (T, error) {
	value, err := res.Unpack()
	if err != nil {
		return value, err
	}
	return value, nil
}
