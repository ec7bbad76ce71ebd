package capo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Example documents one invocation of a command in its help.
type Example struct {
	Description string
	Parameters  []any          // strings or numbers
	Options     map[string]any // strings, numbers or booleans
}

// Validate checks that the example is not empty and only holds scalars.
func (e Example) Validate() error {
	if e.Description == "" && len(e.Parameters) == 0 && len(e.Options) == 0 {
		return definitionError("example", "", "empty example")
	}
	for _, p := range e.Parameters {
		if _, isBool := p.(bool); isBool || !(TypeString.Matches(p) || TypeNumber.Matches(p)) {
			return definitionError("example", e.Description, "parameter %v must be a string or a number", p)
		}
	}
	for name, value := range e.Options {
		if !validOptionName(name) {
			return definitionError("example", e.Description, "invalid option name %q", name)
		}
		if !(Types{TypeString, TypeNumber, TypeBoolean}).Matches(value) {
			return definitionError("example", e.Description, "option %q value %v must be a scalar", name, value)
		}
	}
	return nil
}

// Render formats the example as a shell line, options sorted by name.
func (e Example) Render(prefix string, mode Mode) string {
	parts := []string{}
	if prefix != "" {
		parts = append(parts, prefix)
	}
	for _, p := range e.Parameters {
		parts = append(parts, shellWord(p))
	}

	names := make([]string, 0, len(e.Options))
	for name := range e.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch value := e.Options[name].(type) {
		case bool:
			if value {
				parts = append(parts, mode.OptionString(name))
			}
		default:
			parts = append(parts, mode.OptionString(name), shellWord(value))
		}
	}
	return strings.Join(parts, " ")
}

// formatScalar prints numbers without exponent or trailing zeros.
func formatScalar(v any) string {
	if _, isBool := v.(bool); !isBool {
		if f, ok := toFloat(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return fmt.Sprint(v)
}

// shellWord quotes words the shell would split or expand.
func shellWord(v any) string {
	s := formatScalar(v)
	if s == "" || strings.ContainsAny(s, " \t\n'\"\\$`*?;&|<>()[]{}#~!") {
		return strconv.Quote(s)
	}
	return s
}
