package capo

import "strings"

// Params holds bound parameter values by name. Numbers are float64,
// variadic parameters are []any.
type Params map[string]any

// Signature is a literal command prefix followed by positional parameters.
type Signature struct {
	command    []string
	parameters []*Parameter
}

// NewSignature trims the command words and checks parameter ordering:
// no required parameter after an optional one, a variadic parameter only
// in last position, and unique names.
func NewSignature(command []string, parameters ...*Parameter) (*Signature, error) {
	words := make([]string, 0, len(command))
	for _, word := range command {
		word = strings.TrimSpace(word)
		if word == "" || strings.ContainsAny(word, " \t\n") {
			return nil, definitionError("signature", strings.Join(command, " "), "command words must be single non-empty words")
		}
		words = append(words, word)
	}

	seen := make(map[string]bool, len(parameters))
	optionalSeen := false
	for i, p := range parameters {
		if p == nil {
			return nil, definitionError("signature", strings.Join(words, " "), "parameter %d is nil", i)
		}
		if seen[p.name] {
			return nil, definitionError("signature", strings.Join(words, " "), "duplicated parameter %q", p.name)
		}
		seen[p.name] = true

		if p.variadic && i != len(parameters)-1 {
			return nil, definitionError("signature", strings.Join(words, " "), "variadic parameter %q must be the last one", p.name)
		}
		if p.optional {
			optionalSeen = true
		} else if optionalSeen {
			return nil, definitionError("signature", strings.Join(words, " "), "required parameter %q follows an optional one", p.name)
		}
	}

	return &Signature{
		command:    words,
		parameters: append([]*Parameter(nil), parameters...),
	}, nil
}

// MustSignature is NewSignature that panics on error.
func MustSignature(command []string, parameters ...*Parameter) *Signature {
	s, err := NewSignature(command, parameters...)
	if err != nil {
		panic(err)
	}
	return s
}

// Command returns the literal command words.
func (s *Signature) Command() []string { return s.command }

// Parameters returns the positional parameters in order.
func (s *Signature) Parameters() []*Parameter { return s.parameters }

// Path is the store path: command words then one wildcard label per parameter.
func (s *Signature) Path() []string {
	path := make([]string, 0, len(s.command)+len(s.parameters))
	path = append(path, s.command...)
	for _, p := range s.parameters {
		path = append(path, WildcardFromParameter(p).String())
	}
	return path
}

// Match binds argv against the signature. It fails when the literal prefix
// differs, a parameter rejects its word group, or words are left over.
// Absent optional parameters are left out of the result.
func (s *Signature) Match(argv []string) (Params, bool) {
	if len(argv) < len(s.command) {
		return nil, false
	}
	for i, word := range s.command {
		if argv[i] != word {
			return nil, false
		}
	}

	args := argv[len(s.command):]
	params := make(Params, len(s.parameters))
	consumed := 0
	for i, p := range s.parameters {
		var group []string
		switch {
		case i >= len(args):
		case p.variadic:
			group = args[i:]
		default:
			group = args[i : i+1]
		}

		value, ok := p.Bind(group)
		if !ok {
			return nil, false
		}
		consumed += len(group)
		if value != nil {
			params[p.name] = value
		}
	}

	if consumed < len(args) {
		return nil, false
	}
	return params, true
}

// Matches reports whether Match succeeds.
func (s *Signature) Matches(argv []string) bool {
	_, ok := s.Match(argv)
	return ok
}

// String renders "foo bar <baz> [qux...]".
func (s *Signature) String() string {
	parts := make([]string, 0, len(s.command)+len(s.parameters))
	parts = append(parts, s.command...)
	for _, p := range s.parameters {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}
