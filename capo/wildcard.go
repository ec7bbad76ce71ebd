package capo

import (
	"fmt"
	"regexp"
	"strings"
)

var wildcardPattern = regexp.MustCompile(`^([[<])([a-z,]+)(\.\.\.)?([\]>])$`)

// Wildcard is the store edge for a parameter: its types and cardinality
// without its name.
type Wildcard struct {
	Types    Types
	Optional bool
	Variadic bool
}

// WildcardFromParameter drops the name of p.
func WildcardFromParameter(p *Parameter) Wildcard {
	return Wildcard{Types: p.types, Optional: p.optional, Variadic: p.variadic}
}

// ParseWildcard reads labels such as "<string>" or "[number,string...]".
func ParseWildcard(label string) (Wildcard, error) {
	match := wildcardPattern.FindStringSubmatch(label)
	if match == nil {
		return Wildcard{}, fmt.Errorf("invalid wildcard %q", label)
	}
	open, closing := match[1], match[4]
	if (open == "<") != (closing == ">") {
		return Wildcard{}, fmt.Errorf("unbalanced wildcard %q", label)
	}
	types, err := ParseTypes(strings.Split(match[2], ",")...)
	if err != nil {
		return Wildcard{}, fmt.Errorf("invalid wildcard %q: %w", label, err)
	}
	return Wildcard{Types: types, Optional: open == "[", Variadic: match[3] != ""}, nil
}

// Matches applies the same rules as Parameter.Matches.
func (w Wildcard) Matches(words []string) bool {
	return matchWords(w.Types, w.Optional, w.Variadic, words)
}

// String renders the canonical label, e.g. "<string,number...>".
func (w Wildcard) String() string {
	return renderSlot(w.Types.String(), w.Optional, w.Variadic)
}
