package capo

import (
	"errors"
	"reflect"

	"github.com/dzonerzy/go-capo/middleware"
)

const exitErrorKey = "__exit_error__"

// ExitError requests a specific exit code from inside actions.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	AmbiguousError  int // default: 3
	ValidationError int // default: 4
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, AmbiguousError: 3, ValidationError: 4}
}

// typeCode maps one concrete error type to an exit code.
type typeCode struct {
	typ  reflect.Type
	code int
}

// ExitCodeManager maps errors to process exit codes.
type ExitCodeManager struct {
	codesByType []typeCode // checked in registration order
	codesByCLI  map[ErrorType]int
	defaults    ExitCodeDefaults
}

func newExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByCLI: make(map[ErrorType]int),
		defaults:   defaultExitDefaults(),
	}
	m.codesByCLI[ErrorTypeUnknownCommand] = m.defaults.MisusageError
	m.codesByCLI[ErrorTypeAmbiguousCommand] = m.defaults.AmbiguousError

	m.DefineError(&middleware.ValidationError{}, m.defaults.ValidationError)
	m.DefineError(&middleware.TimeoutError{}, m.defaults.GeneralError)
	m.DefineError(&middleware.RecoveryError{}, m.defaults.GeneralError)
	return m
}

// DefineError maps a concrete error type to an exit code. Types are
// checked in the order they were first defined; redefining a type keeps
// its position and replaces the code.
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	t := reflect.TypeOf(err)
	for i := range e.codesByType {
		if e.codesByType[i].typ == t {
			e.codesByType[i].code = code
			return e
		}
	}
	e.codesByType = append(e.codesByType, typeCode{typ: t, code: code})
	return e
}

// DefineCLI overrides the exit code of a CLIError category.
func (e *ExitCodeManager) DefineCLI(typ ErrorType, code int) *ExitCodeManager {
	e.codesByCLI[typ] = code
	return e
}

// Default replaces the default codes used when nothing else matches.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	e.defaults = d
	return e
}

// Resolve converts an error to an exit code.
// Precedence:
//  1. ExitError (requested code)
//  2. CLIError category mapping (DefineCLI)
//  3. Concrete error type mapping (DefineError), through any CLIError cause
//  4. Default codes
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var cli *CLIError
	if errors.As(err, &cli) {
		if code, ok := e.codesByCLI[cli.Type]; ok {
			return code
		}
	}

	for _, tc := range e.codesByType {
		if errors.As(err, reflect.New(tc.typ).Interface()) {
			return tc.code
		}
	}
	return e.defaults.GeneralError
}
