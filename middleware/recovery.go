package middleware

import (
	"fmt"
	"runtime"
)

// Recovery turns a panicking action into a *RecoveryError.
func Recovery(options ...MiddlewareOption) Middleware {
	config := newConfig(options)

	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				recoveryErr := &RecoveryError{Panic: r, Command: getCommandName(ctx)}
				if config.PrintStack {
					stack := make([]byte, config.StackSize)
					recoveryErr.Stack = stack[:runtime.Stack(stack, false)]
					if config.Output != nil {
						fmt.Fprintf(config.Output, "PANIC in command '%s': %v\n", recoveryErr.Command, r)
						fmt.Fprintf(config.Output, "Stack trace:\n%s\n", recoveryErr.Stack)
					}
				}
				err = recoveryErr
			}()

			return next(ctx)
		}
	}
}

// RecoveryWithHandler recovers panics and lets handler decide the error.
func RecoveryWithHandler(handler func(panicVal any, command string) error) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = handler(r, getCommandName(ctx))
				}
			}()
			return next(ctx)
		}
	}
}

// RecoveryToError converts panics to errors without printing stacks.
func RecoveryToError() Middleware {
	return Recovery(WithStackTrace(false))
}
