package middleware

import (
	"context"
	"time"
)

// Timeout fails the invocation with a *TimeoutError when the action runs
// longer than duration. The action keeps running in its goroutine but its
// context is canceled, so well-behaved actions watching Done return early.
func Timeout(duration time.Duration) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			parent := context.Background()
			if c, ok := any(ctx).(interface{ Context() context.Context }); ok {
				parent = c.Context()
			}
			timeoutCtx, cancel := context.WithTimeout(parent, duration)
			defer cancel()

			result := make(chan error, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						result <- &RecoveryError{Panic: r, Command: getCommandName(ctx)}
					}
				}()
				result <- next(ctx)
			}()

			select {
			case err := <-result:
				return err
			case <-timeoutCtx.Done():
				ctx.Cancel()
				if parent.Err() != nil {
					return parent.Err()
				}
				return &TimeoutError{Duration: duration, Command: getCommandName(ctx)}
			}
		}
	}
}

// TimeoutWithDefault uses the configured default timeout.
func TimeoutWithDefault(options ...MiddlewareOption) Middleware {
	return Timeout(newConfig(options).DefaultTimeout)
}
