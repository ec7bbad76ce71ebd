//nolint:testpackage // using package name 'capo' to access unexported fields for testing
package capo

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLooksLikeNumber(t *testing.T) {
	tests := []struct {
		word     string
		expected bool
	}{
		{"1", true},
		{"-1", true},
		{"+42", true},
		{"3.51", true},
		{".5", true},
		{"5.", true},
		{"1e3", true},
		{"-2.5E-2", true},
		{"", false},
		{" ", false},
		{"1aa", false},
		{"0x10", false},
		{"1_000", false},
		{"Infinity", false},
		{"NaN", false},
		{"1e999", false},
		{"--1", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := LooksLikeNumber(tt.word); got != tt.expected {
				t.Errorf("LooksLikeNumber(%q): expected %v, got %v", tt.word, tt.expected, got)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		types    Types
		word     string
		expected any
		ok       bool
	}{
		{"boolean first", Types{TypeString, TypeBoolean}, "true", true, true},
		{"boolean false", Types{TypeBoolean}, "false", false, true},
		{"boolean rejects words", Types{TypeBoolean}, "yes", nil, false},
		{"boolean is case sensitive", Types{TypeBoolean}, "TRUE", nil, false},
		{"number before string", Types{TypeString, TypeNumber}, "7", 7.0, true},
		{"number only", Types{TypeNumber}, "3.5", 3.5, true},
		{"number rejects words", Types{TypeNumber}, "foo", nil, false},
		{"string fallback", Types{TypeNumber, TypeString}, "foo", "foo", true},
		{"string keeps booleans", Types{TypeString}, "true", "true", true},
		{"empty string", Types{TypeString}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Evaluate(tt.types, tt.word)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got != tt.expected {
				t.Errorf("Expected %#v, got %#v", tt.expected, got)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		expected Tokens
	}{
		{
			name: "short option",
			argv: []string{"-f"},
			expected: Tokens{
				{Type: TokenOption, Name: "f", Index: 0},
			},
		},
		{
			name: "multi-word long option",
			argv: []string{"--dry-run"},
			expected: Tokens{
				{Type: TokenOption, Name: "dry-run", Index: 0},
			},
		},
		{
			name: "complex set",
			argv: []string{"flash", "-c", "--drive", "/dev/disk2", "-y"},
			expected: Tokens{
				{Type: TokenWord, Name: "flash", Index: 0},
				{Type: TokenOption, Name: "c", Index: 1},
				{Type: TokenOption, Name: "drive", Index: 2},
				{Type: TokenWord, Name: "/dev/disk2", Index: 3},
				{Type: TokenOption, Name: "y", Index: 4},
			},
		},
		{
			name: "windows options are words",
			argv: []string{"/x", "/foo"},
			expected: Tokens{
				{Type: TokenWord, Name: "/x", Index: 0},
				{Type: TokenWord, Name: "/foo", Index: 1},
			},
		},
		{
			name: "not options",
			argv: []string{"-", "-foo", "---foo", ""},
			expected: Tokens{
				{Type: TokenWord, Name: "-", Index: 0},
				{Type: TokenWord, Name: "-foo", Index: 1},
				{Type: TokenWord, Name: "---foo", Index: 2},
				{Type: TokenWord, Name: "", Index: 3},
			},
		},
		{
			name: "end of options",
			argv: []string{"flash", "-c", "--", "--drive", "/dev/disk2", "-y"},
			expected: Tokens{
				{Type: TokenWord, Name: "flash", Index: 0},
				{Type: TokenOption, Name: "c", Index: 1},
				{Type: TokenWord, Name: "--drive", Index: 2, Verbatim: true},
				{Type: TokenWord, Name: "/dev/disk2", Index: 3, Verbatim: true},
				{Type: TokenWord, Name: "-y", Index: 4, Verbatim: true},
			},
		},
		{
			name: "second marker is a word",
			argv: []string{"--", "--"},
			expected: Tokens{
				{Type: TokenWord, Name: "--", Index: 0, Verbatim: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, Tokenize(tt.argv, UnixMode)); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.argv, diff)
			}
		})
	}
}

func TestTokensNeighbours(t *testing.T) {
	tokens := Tokenize([]string{"a", "-b", "c"}, UnixMode)

	next, ok := tokens.Next(tokens[0])
	if !ok || next.Name != "b" {
		t.Errorf("Expected next token b, got %v", next)
	}
	previous, ok := tokens.Previous(tokens[2])
	if !ok || previous.Name != "b" {
		t.Errorf("Expected previous token b, got %v", previous)
	}
	if _, ok := tokens.Next(tokens[2]); ok {
		t.Errorf("Expected no token after the last one")
	}
	if _, ok := tokens.Previous(tokens[0]); ok {
		t.Errorf("Expected no token before the first one")
	}
}

func TestTokenizePanicsOnBrokenMode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for a mode without end of options symbol")
		}
	}()
	broken := UnixMode
	broken.EndOfOptions = ""
	Tokenize([]string{"foo"}, broken)
}

func TestCustomMode(t *testing.T) {
	windows := Mode{
		Name:         "windows",
		OptionShort:  regexp.MustCompile(`^/([a-zA-Z0-9])$`),
		OptionLong:   regexp.MustCompile(`^/([a-zA-Z0-9][a-zA-Z0-9-]+)$`),
		EndOfOptions: "//",
		OptionString: func(name string) string { return "/" + name },
	}

	got := Parse([]string{"build", "/v", "//", "/x"}, windows)
	expected := []Combination{
		{Command: []string{"build", "/x"}, Options: map[string]any{"v": true}},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCombinations(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		expected []Combination
	}{
		{
			name: "no arguments",
			argv: []string{},
			expected: []Combination{
				{Command: []string{}, Options: map[string]any{}},
			},
		},
		{
			name: "leading ambiguous option",
			argv: []string{"-v", "foo", "bar"},
			expected: []Combination{
				{Command: []string{"bar"}, Options: map[string]any{"v": "foo"}},
				{Command: []string{"foo", "bar"}, Options: map[string]any{"v": true}},
			},
		},
		{
			name: "repeated option is a flag",
			argv: []string{"-v", "-v", "foo", "-v", "bar"},
			expected: []Combination{
				{Command: []string{"foo", "bar"}, Options: map[string]any{"v": true}},
			},
		},
		{
			name: "trailing option is a flag",
			argv: []string{"greet", "John", "--exclamate"},
			expected: []Combination{
				{Command: []string{"greet", "John"}, Options: map[string]any{"exclamate": true}},
			},
		},
		{
			name: "two ambiguous options",
			argv: []string{"-a", "x", "-b", "y"},
			expected: []Combination{
				{Command: []string{}, Options: map[string]any{"a": "x", "b": "y"}},
				{Command: []string{"y"}, Options: map[string]any{"a": "x", "b": true}},
				{Command: []string{"x"}, Options: map[string]any{"a": true, "b": "y"}},
				{Command: []string{"x", "y"}, Options: map[string]any{"a": true, "b": true}},
			},
		},
		{
			name: "option before end of options is a flag",
			argv: []string{"foo", "-c", "--", "--drive"},
			expected: []Combination{
				{Command: []string{"foo", "--drive"}, Options: map[string]any{"c": true}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, Parse(tt.argv, UnixMode)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.argv, diff)
			}
		})
	}
}

func TestAmbiguousOptionsAreBounded(t *testing.T) {
	argv := make([]string, 0, 2*(MaxAmbiguousOptions+2))
	for i := 0; i < MaxAmbiguousOptions+2; i++ {
		argv = append(argv, "--opt-"+string(rune('a'+i)), "value")
	}

	combinations := Parse(argv, UnixMode)
	if len(combinations) != 1<<MaxAmbiguousOptions {
		t.Fatalf("Expected %d combinations, got %d", 1<<MaxAmbiguousOptions, len(combinations))
	}
	last := combinations[0].Options["opt-"+string(rune('a'+MaxAmbiguousOptions+1))]
	if last != true {
		t.Errorf("Expected surplus ambiguous option to be read as a flag, got %v", last)
	}
}
