package capo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dzonerzy/go-capo/internal/fuzzy"
)

// ErrorType represents error categories for resolution and definitions.
// These categories drive suggestion logic and exit-code mapping (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeInvalidDefinition ErrorType = "invalid_definition"
	ErrorTypeUnknownCommand    ErrorType = "unknown_command"
	ErrorTypeAmbiguousCommand  ErrorType = "ambiguous_command"
	ErrorTypeInvalidManifest   ErrorType = "invalid_manifest"
	ErrorTypeActionFailed      ErrorType = "action_failed"
	ErrorTypeInternal          ErrorType = "internal_error"
)

// DefinitionError is returned when a parameter, signature, option,
// example or command is declared with an invalid shape.
type DefinitionError struct {
	Subject string // "parameter", "signature", "option", "example", "command"
	Name    string
	Reason  string
}

func (e *DefinitionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid %s: %s", e.Subject, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Subject, e.Name, e.Reason)
}

func definitionError(subject, name, format string, args ...any) *DefinitionError {
	return &DefinitionError{Subject: subject, Name: name, Reason: fmt.Sprintf(format, args...)}
}

// CLIError is the error surfaced by the dispatcher for unknown or
// ambiguous invocations.
type CLIError struct {
	Type        ErrorType
	Message     string
	Suggestions []string
	Candidates  []*Command
	Cause       error
	Context     map[string]any
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewError creates a new CLIError with the given type and message
func NewError(typ ErrorType, message string) *CLIError {
	return &CLIError{
		Type:        typ,
		Message:     message,
		Suggestions: make([]string, 0),
		Context:     make(map[string]any),
	}
}

// WithSuggestion adds a suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithCause adds an underlying cause to the error
func (e *CLIError) WithCause(cause error) *CLIError {
	e.Cause = cause
	return e
}

// WithContext adds context information to the error
func (e *CLIError) WithContext(key string, value any) *CLIError {
	e.Context[key] = value
	return e
}

// Format renders the message followed by one indented line per suggestion.
func (e *CLIError) Format() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, candidate := range e.Candidates {
		b.WriteString("\n  ")
		b.WriteString(candidate.Usage())
	}
	for _, suggestion := range e.Suggestions {
		b.WriteString("\n  ")
		b.WriteString(suggestion)
	}
	return b.String()
}

// IsUnknownCommand reports whether err is a command-not-found error.
func IsUnknownCommand(err error) bool {
	return hasType(err, ErrorTypeUnknownCommand)
}

// IsAmbiguous reports whether err reports more than one matching command.
func IsAmbiguous(err error) bool {
	return hasType(err, ErrorTypeAmbiguousCommand)
}

func hasType(err error, typ ErrorType) bool {
	var cli *CLIError
	return errors.As(err, &cli) && cli.Type == typ
}

func unknownCommandError(argv []string, known []*Command, maxDistance int) *CLIError {
	input := strings.Join(argv, " ")
	err := NewError(ErrorTypeUnknownCommand, fmt.Sprintf("unknown command: %q", input)).
		WithContext("args", argv)
	if input == "" {
		err.Message = "no command given"
		return err
	}

	names := make([]string, 0, len(known))
	seen := make(map[string]bool, len(known))
	for _, cmd := range known {
		name := strings.Join(cmd.Signature().Command(), " ")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	// Compare against as many leading words as the candidate has.
	for _, suggestion := range fuzzy.SuggestPrefix(argv, names, maxDistance, 3) {
		err.WithSuggestion(fmt.Sprintf("Did you mean '%s'?", suggestion))
	}
	return err
}

func ambiguousCommandError(argv []string, matches []*Invocation) *CLIError {
	err := NewError(ErrorTypeAmbiguousCommand,
		fmt.Sprintf("ambiguous command: %q matches %d commands", strings.Join(argv, " "), len(matches))).
		WithContext("args", argv)
	for _, match := range matches {
		err.Candidates = append(err.Candidates, match.Command)
	}
	return err
}
