package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRejected marks a result that arrived in time but failed validation.
var ErrRejected = errors.New("result rejected")

// ErrPanicked wraps a panic recovered from a bounded operation.
var ErrPanicked = errors.New("operation panicked")

// Bounded runs op under a deadline of timeout. A timeout, an error or a
// rejected result yields fallback(). The fallback runs in the caller's
// goroutine; op's goroutine is abandoned if it overstays the deadline and its
// result discarded. A panic in op is recovered and treated as an error.
func Bounded[T any](ctx context.Context, timeout time.Duration, op func(context.Context) (T, error), fallback func(error) T) T {
	if timeout <= 0 {
		v, err := safely(ctx, op)
		if err != nil {
			return fallback(err)
		}
		return v
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := safely(ctx, op)
		done <- outcome{value: v, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return fallback(out.err)
		}
		return out.value
	case <-ctx.Done():
		return fallback(ctx.Err())
	}
}

func safely[T any](ctx context.Context, op func(context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return op(ctx)
}
