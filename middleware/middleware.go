// Package middleware provides the execution chain wrapped around a resolved
// command's action: Logger, Recovery, Timeout and Validator.
package middleware

import (
	"fmt"
	"io"
	"os"
	"time"
)

// The capo package imports this one, so the types it hands to middleware
// are described by interfaces here.

// Context describes what middleware can read from a resolved invocation.
// It is implemented by *capo.Context.
type Context interface {
	// Done is closed when the invocation is canceled or times out.
	Done() <-chan struct{}

	// Cancel requests cancellation of the invocation. It is idempotent.
	Cancel()

	// Args returns the raw argument vector that was resolved.
	Args() []string

	// Set stores a value for later middleware or the action.
	Set(key string, value any)

	// Get returns a value stored with Set, or nil.
	Get(key string) any

	// Param returns a bound positional parameter. Absent optional
	// parameters report false.
	Param(name string) (any, bool)

	// Option returns a compiled option value. Options that were not given
	// and have no default report false.
	Option(name string) (any, bool)

	// Command describes the resolved command.
	Command() Command
}

// Command is satisfied by *capo.Command.
type Command interface {
	Name() string
	Description() string
}

// ActionFunc represents command action function signature
type ActionFunc func(ctx Context) error

// Middleware defines the middleware function signature
type Middleware func(next ActionFunc) ActionFunc

// MiddlewareChain represents a chain of middleware functions
type MiddlewareChain []Middleware

// Apply wraps action so that the first middleware of the chain runs first.
func (chain MiddlewareChain) Apply(action ActionFunc) ActionFunc {
	for i := len(chain) - 1; i >= 0; i-- {
		action = chain[i](action)
	}
	return action
}

// Use returns a new chain with the provided middleware appended.
func (chain MiddlewareChain) Use(middleware ...Middleware) MiddlewareChain {
	out := make(MiddlewareChain, 0, len(chain)+len(middleware))
	out = append(out, chain...)
	return append(out, middleware...)
}

// Chain creates a new middleware chain from the provided middleware, preserving
// order.
func Chain(middleware ...Middleware) MiddlewareChain {
	return MiddlewareChain(middleware)
}

// Before adapts a plain check into a middleware that runs before the action
// and stops the chain when it fails.
func Before(check func(ctx Context) error) Middleware {
	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			if err := check(ctx); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Value   any
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// TimeoutError represents a timeout error
type TimeoutError struct {
	Duration time.Duration
	Command  string
}

func (e *TimeoutError) Error() string {
	return "command '" + e.Command + "' timed out after " + e.Duration.String()
}

// RecoveryError represents a panic recovery
type RecoveryError struct {
	Panic   any
	Command string
	Stack   []byte
}

func (e *RecoveryError) Error() string {
	return "command '" + e.Command + "' panicked: " + toString(e.Panic)
}

// MiddlewareConfig contains configuration for middleware behavior
type MiddlewareConfig struct {
	LogLevel       LogLevel
	LogFormat      LogFormat
	Output         io.Writer
	IncludeArgs    bool
	PrintStack     bool
	StackSize      int
	DefaultTimeout time.Duration
}

// LogLevel represents logging levels
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// LogFormat represents log formats
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// MiddlewareOption configures a middleware.
type MiddlewareOption func(config *MiddlewareConfig)

// DefaultConfig returns the configuration every middleware starts from.
func DefaultConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		LogLevel:       LogLevelInfo,
		LogFormat:      LogFormatText,
		Output:         os.Stderr,
		IncludeArgs:    true,
		PrintStack:     true,
		StackSize:      4096,
		DefaultTimeout: 30 * time.Second,
	}
}

func newConfig(options []MiddlewareOption) *MiddlewareConfig {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}
	return config
}

func WithLogLevel(level LogLevel) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogLevel = level
	}
}

func WithLogFormat(format LogFormat) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogFormat = format
	}
}

// WithOutput sets the writer used by Logger and Recovery. A nil writer
// silences them.
func WithOutput(w io.Writer) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.Output = w
	}
}

func WithArgs(enabled bool) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.IncludeArgs = enabled
	}
}

func WithTimeout(timeout time.Duration) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.DefaultTimeout = timeout
	}
}

func WithStackTrace(enabled bool) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.PrintStack = enabled
	}
}

func toString(v any) string {
	switch value := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return value
	case error:
		return value.Error()
	default:
		return fmt.Sprint(value)
	}
}

func getCommandName(ctx Context) string {
	cmd := ctx.Command()
	if cmd == nil {
		return "unknown"
	}
	if name := cmd.Name(); name != "" {
		return name
	}
	return "(root)"
}
