package main

import (
	"context"
	"time"
)

// withRetryResult calls fn up to attempts times with a linear backoff.
func withRetryResult[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		value, callErr := fn()
		if callErr == nil {
			return value, nil
		}
		err = callErr
		if i == attempts || ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(time.Duration(i) * 400 * time.Millisecond):
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}
	return zero, err
}
