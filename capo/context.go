package capo

import (
	"context"
	stdio "io"
	"time"

	capoio "github.com/dzonerzy/go-capo/io"
	"github.com/dzonerzy/go-capo/middleware"
)

// ActionFunc runs a resolved command.
type ActionFunc func(*Context) error

// Context is handed to actions and middleware for one invocation.
type Context struct {
	App        *App
	Invocation *Invocation

	args     []string
	ctx      context.Context
	cancel   context.CancelFunc
	metadata map[string]any
}

// Context returns the underlying Go context for cancellation/timeouts
func (c *Context) Context() context.Context {
	return c.ctx
}

// Deadline returns the time when work done on behalf of this context should be canceled
func (c *Context) Deadline() (time.Time, bool) {
	return c.ctx.Deadline()
}

// Done returns a channel that's closed when work done on behalf of this context should be canceled
func (c *Context) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Err returns a non-nil error value after Done is closed
func (c *Context) Err() error {
	return c.ctx.Err()
}

// Cancel cancels the context
func (c *Context) Cancel() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Set stores a key-value pair in the context metadata
func (c *Context) Set(key string, value any) {
	if c.metadata == nil {
		c.metadata = make(map[string]any)
	}
	c.metadata[key] = value
}

// Get retrieves a value from the context metadata
func (c *Context) Get(key string) any {
	return c.metadata[key]
}

// Exit asks the app to terminate with code once the action returns.
func (c *Context) Exit(code int) {
	c.Set(exitErrorKey, &ExitError{Code: code})
	c.Cancel()
}

// ExitWithError is Exit carrying the error to report.
func (c *Context) ExitWithError(err error, code int) {
	c.Set(exitErrorKey, &ExitError{Code: code, Err: err})
	c.Cancel()
}

// Args returns the raw argument vector.
func (c *Context) Args() []string { return c.args }

// Command returns the resolved command (implements middleware.Context interface)
func (c *Context) Command() middleware.Command {
	return c.Invocation.Command
}

// Params returns every bound parameter.
func (c *Context) Params() Params { return c.Invocation.Params }

// Options returns every declared option, nil when not given.
func (c *Context) Options() Options { return c.Invocation.Options }

// Param returns a bound parameter.
func (c *Context) Param(name string) (any, bool) {
	v, ok := c.Invocation.Params[name]
	return v, ok && v != nil
}

// Option returns a compiled option value.
func (c *Context) Option(name string) (any, bool) {
	v, ok := c.Invocation.Options[name]
	return v, ok && v != nil
}

// String reads a string parameter, falling back to an option.
func (c *Context) String(name string) (string, bool) {
	s, ok := c.value(name).(string)
	return s, ok
}

// MustString is String with a fallback.
func (c *Context) MustString(name, defaultValue string) string {
	if s, ok := c.String(name); ok {
		return s
	}
	return defaultValue
}

// Number reads a number parameter, falling back to an option.
func (c *Context) Number(name string) (float64, bool) {
	f, ok := c.value(name).(float64)
	return f, ok
}

// MustNumber is Number with a fallback.
func (c *Context) MustNumber(name string, defaultValue float64) float64 {
	if f, ok := c.Number(name); ok {
		return f
	}
	return defaultValue
}

// Bool reads a boolean option.
func (c *Context) Bool(name string) (bool, bool) {
	b, ok := c.value(name).(bool)
	return b, ok
}

// MustBool is Bool with a fallback.
func (c *Context) MustBool(name string, defaultValue bool) bool {
	if b, ok := c.Bool(name); ok {
		return b
	}
	return defaultValue
}

// Values reads a variadic parameter.
func (c *Context) Values(name string) ([]any, bool) {
	v, ok := c.value(name).([]any)
	return v, ok
}

// Strings reads a variadic parameter as strings, formatting numbers.
func (c *Context) Strings(name string) ([]string, bool) {
	values, ok := c.Values(name)
	if !ok {
		return nil, false
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = formatScalar(v)
	}
	return out, true
}

func (c *Context) value(name string) any {
	if v, ok := c.Param(name); ok {
		return v
	}
	v, _ := c.Option(name)
	return v
}

// IO accessors
func (c *Context) IO() *capoio.IOManager  { return c.App.IO() }
func (c *Context) Logger() *capoio.Logger { return c.App.Logger() }
func (c *Context) Stdout() stdio.Writer   { return c.App.IO().Out() }
func (c *Context) Stderr() stdio.Writer   { return c.App.IO().Err() }
func (c *Context) Stdin() stdio.Reader    { return c.App.IO().In() }
