// Package capo interprets command lines against a registry of declared
// commands. An argument vector is tokenized, expanded into every way its
// ambiguous options could be read, and each reading is matched against
// the stored signatures; exactly one surviving invocation is run.
package capo

import (
	"context"
	"errors"
	"os"
	"reflect"

	capoio "github.com/dzonerzy/go-capo/io"
	"github.com/dzonerzy/go-capo/middleware"
)

// suggestionDistance bounds the edit distance of "did you mean" hints.
const suggestionDistance = 2

// NotFoundHandler decides what happens when no command matches argv.
type NotFoundHandler func(app *App, argv []string, err *CLIError) error

// App represents the main CLI application
type App struct {
	name        string
	description string
	version     string

	store *Store
	mode  Mode

	middleware []middleware.Middleware
	notFound   NotFoundHandler
	lookupEnv  func(string) (string, bool)

	helpEnabled bool

	ioManager *capoio.IOManager
	logger    *capoio.Logger
	exitCodes *ExitCodeManager
}

// New creates a new CLI application with fluent API
func New(name, description string) *App {
	return &App{
		name:        name,
		description: description,
		store:       NewStore(),
		mode:        UnixMode,
		middleware:  make([]middleware.Middleware, 0),
		notFound:    defaultNotFound,
		lookupEnv:   os.LookupEnv,
		helpEnabled: true,
		ioManager:   capoio.New(),
	}
}

// Name returns the application name.
func (a *App) Name() string { return a.name }

// Version sets the application version
func (a *App) Version(version string) *App {
	a.version = version
	return a
}

// Use adds global middleware run around every action, before command middleware.
func (a *App) Use(middleware ...middleware.Middleware) *App {
	a.middleware = append(a.middleware, middleware...)
	return a
}

// Mode sets the option syntax. It panics when mode is misconfigured.
func (a *App) Mode(mode Mode) *App {
	mode.mustValidate()
	a.mode = mode
	return a
}

// NotFound replaces the handler run when no command matches.
func (a *App) NotFound(handler NotFoundHandler) *App {
	if handler == nil {
		handler = defaultNotFound
	}
	a.notFound = handler
	return a
}

// Env replaces the environment lookup used for option fallbacks.
func (a *App) Env(lookup func(string) (string, bool)) *App {
	a.lookupEnv = lookup
	return a
}

// DisableHelp removes the built-in help command.
func (a *App) DisableHelp() *App {
	a.helpEnabled = false
	return a
}

// IO returns the IO manager for this app
func (a *App) IO() *capoio.IOManager {
	return a.ioManager
}

// Logger returns the user-facing logger, bound to IO().
func (a *App) Logger() *capoio.Logger {
	if a.logger == nil {
		a.logger = capoio.NewLogger(a.ioManager)
	}
	return a.logger
}

// Store returns the command registry.
func (a *App) Store() *Store {
	return a.store
}

// ExitCodes returns the exit-code manager for this app. Use it to override
// defaults or register custom mappings.
func (a *App) ExitCodes() *ExitCodeManager {
	if a.exitCodes == nil {
		a.exitCodes = newExitCodeManager()
	}
	return a.exitCodes
}

// Register stores cmd, replacing any command with the same signature path.
func (a *App) Register(cmd *Command) error {
	if cmd == nil {
		return definitionError("command", "", "nil command")
	}
	a.store.Set(cmd)
	return nil
}

// Command defines a command from plain data and registers it.
func (a *App) Command(def CommandDefinition, action ActionFunc, middlewares ...middleware.Middleware) error {
	cmd, err := DefineCommand(def, action, middlewares...)
	if err != nil {
		return err
	}
	return a.Register(cmd)
}

// Resolve finds the single invocation argv designates. It returns an
// ErrorTypeUnknownCommand or ErrorTypeAmbiguousCommand *CLIError when
// zero or several invocations survive.
func (a *App) Resolve(argv []string) (*Invocation, error) {
	a.registerHelp()

	var matches []*Invocation
	for _, combination := range Parse(argv, a.mode) {
		for _, cmd := range a.store.Look(combination.Command) {
			invocation, ok := cmd.compile(combination, a.environment)
			if !ok || containsInvocation(matches, invocation) {
				continue
			}
			matches = append(matches, invocation)
		}
	}

	switch len(matches) {
	case 0:
		return nil, unknownCommandError(argv, a.store.Commands(), suggestionDistance)
	case 1:
		return matches[0], nil
	default:
		return nil, ambiguousCommandError(argv, matches)
	}
}

// environment reads the variable bound to option under the app name.
func (a *App) environment(option *Option) (string, bool) {
	if a.lookupEnv == nil {
		return "", false
	}
	name, enabled := option.EnvironmentVariable(a.name)
	if !enabled {
		return "", false
	}
	return a.lookupEnv(name)
}

// containsInvocation reports whether an identical invocation was already
// collected. Repeated options can yield the same reading twice.
func containsInvocation(matches []*Invocation, candidate *Invocation) bool {
	for _, m := range matches {
		if m.Command == candidate.Command &&
			reflect.DeepEqual(m.Params, candidate.Params) &&
			reflect.DeepEqual(m.Options, candidate.Options) {
			return true
		}
	}
	return false
}

// Run executes the app against os.Args[1:].
func (a *App) Run(ctx context.Context) error {
	return a.RunWithArgs(ctx, os.Args[1:])
}

// RunWithArgs resolves args and runs the matched action through the
// global and command middleware.
func (a *App) RunWithArgs(ctx context.Context, args []string) error {
	invocation, err := a.Resolve(args)
	if err != nil {
		var cliErr *CLIError
		if !errors.As(err, &cliErr) {
			return err
		}
		if cliErr.Type == ErrorTypeUnknownCommand {
			return a.notFound(a, args, cliErr)
		}
		a.Logger().Error("%s", cliErr.Format())
		return cliErr
	}

	ctxWithCancel, cancel := context.WithCancel(ctx)
	defer cancel()
	execCtx := &Context{
		App:        a,
		Invocation: invocation,
		args:       args,
		ctx:        ctxWithCancel,
		cancel:     cancel,
		metadata:   make(map[string]any),
	}

	actionErr := a.wrapActionWithMiddleware(invocation.Command)(execCtx)

	// If the action requested exit via context, prefer that
	if ee, ok := execCtx.Get(exitErrorKey).(*ExitError); ok && ee != nil {
		return ee
	}
	return actionFailed(invocation.Command, actionErr)
}

// actionFailed tags plain action errors with the command that produced them.
func actionFailed(cmd *Command, err error) error {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	var exitErr *ExitError
	if errors.As(err, &cliErr) || errors.As(err, &exitErr) {
		return err
	}
	return NewError(ErrorTypeActionFailed, err.Error()).
		WithCause(err).
		WithContext("command", cmd.Name())
}

// RunAndGetExitCode executes the app and returns the mapped exit code according
// to ExitCodes(). Useful for embedding in your own main() without os.Exit.
func (a *App) RunAndGetExitCode() int {
	return a.ExitCodes().Resolve(a.Run(context.Background()))
}

// RunAndExit executes the app and terminates the process with the mapped exit
// code. Equivalent to os.Exit(a.RunAndGetExitCode()).
func (a *App) RunAndExit() {
	os.Exit(a.RunAndGetExitCode())
}

// wrapActionWithMiddleware wraps the action with app-level and command-level middleware
func (a *App) wrapActionWithMiddleware(cmd *Command) ActionFunc {
	allMiddleware := make([]middleware.Middleware, 0, len(a.middleware)+len(cmd.middlewares))
	allMiddleware = append(allMiddleware, a.middleware...)
	allMiddleware = append(allMiddleware, cmd.middlewares...)

	if len(allMiddleware) == 0 {
		return cmd.action
	}

	middlewareAction := func(ctx middleware.Context) error {
		capoCtx, ok := ctx.(*Context)
		if !ok {
			return NewError(ErrorTypeInternal, "invalid middleware context type")
		}
		return cmd.action(capoCtx)
	}
	wrapped := middleware.Chain(allMiddleware...).Apply(middlewareAction)

	return func(ctx *Context) error {
		return wrapped(ctx)
	}
}

// defaultNotFound prints the error and the registered usage, then
// returns the error so it maps to the misuse exit code.
func defaultNotFound(app *App, _ []string, err *CLIError) error {
	app.Logger().Error("%s", err.Format())
	_ = render(app.IO().Err(), app.writeUsage)
	return err
}
