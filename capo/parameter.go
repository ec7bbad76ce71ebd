package capo

import (
	"regexp"
	"strings"
)

var parameterNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_-]*$`)

// ParameterConfig declares one positional slot.
type ParameterConfig struct {
	Name        string
	Description string
	Types       Types
	Optional    bool
	Variadic    bool
}

// Parameter is a typed positional slot of a signature.
type Parameter struct {
	name        string
	description string
	types       Types
	optional    bool
	variadic    bool
}

// NewParameter validates cfg. Boolean is not a valid positional type.
func NewParameter(cfg ParameterConfig) (*Parameter, error) {
	if !parameterNamePattern.MatchString(cfg.Name) {
		return nil, definitionError("parameter", cfg.Name, "name must be a non-empty word")
	}
	if err := cfg.Types.validate(); err != nil {
		return nil, definitionError("parameter", cfg.Name, "%v", err)
	}
	if cfg.Types.Has(TypeBoolean) {
		return nil, definitionError("parameter", cfg.Name, "boolean is not a positional type")
	}
	return &Parameter{
		name:        cfg.Name,
		description: strings.TrimSpace(cfg.Description),
		types:       append(Types(nil), cfg.Types...),
		optional:    cfg.Optional,
		variadic:    cfg.Variadic,
	}, nil
}

// MustParameter is NewParameter that panics on error.
func MustParameter(cfg ParameterConfig) *Parameter {
	p, err := NewParameter(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Parameter) Name() string        { return p.name }
func (p *Parameter) Description() string { return p.description }
func (p *Parameter) Types() Types        { return p.types }
func (p *Parameter) IsOptional() bool    { return p.optional }
func (p *Parameter) IsRequired() bool    { return !p.optional }
func (p *Parameter) IsVariadic() bool    { return p.variadic }

// Matches reports whether the word group fits the parameter: at most one
// word unless variadic, at least one unless optional, and every word
// coercible to one of the types.
func (p *Parameter) Matches(words []string) bool {
	return matchWords(p.types, p.optional, p.variadic, words)
}

// Bind coerces a matching word group. Variadic parameters yield []any,
// others the single value or nil for an empty optional group.
func (p *Parameter) Bind(words []string) (any, bool) {
	if !p.Matches(words) {
		return nil, false
	}
	values, _ := evaluateAll(p.types, words)
	if p.variadic {
		return values, true
	}
	if len(values) == 0 {
		return nil, true
	}
	return values[0], true
}

// String renders <name>, [name], <name...> or [name...].
func (p *Parameter) String() string {
	return renderSlot(p.name, p.optional, p.variadic)
}

func renderSlot(label string, optional, variadic bool) string {
	open, closing := "<", ">"
	if optional {
		open, closing = "[", "]"
	}
	if variadic {
		label += "..."
	}
	return open + label + closing
}
