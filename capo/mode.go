package capo

import (
	"fmt"
	"regexp"
)

// Mode describes an argument syntax: how options are spelled and which
// word ends option parsing.
type Mode struct {
	Name string

	// OptionShort and OptionLong must capture the option name in group 1.
	OptionShort *regexp.Regexp
	OptionLong  *regexp.Regexp

	// EndOfOptions turns every following argument into a plain word.
	EndOfOptions string

	// OptionString renders an option name the way users type it.
	OptionString func(name string) string
}

// UnixMode accepts -x and --name options with -- as end of options.
var UnixMode = Mode{
	Name:         "unix",
	OptionShort:  regexp.MustCompile(`^-([a-zA-Z0-9])$`),
	OptionLong:   regexp.MustCompile(`^--([a-zA-Z0-9][a-zA-Z0-9-]+)$`),
	EndOfOptions: "--",
	OptionString: unixOptionString,
}

func unixOptionString(name string) string {
	if len(name) > 1 {
		return "--" + name
	}
	return "-" + name
}

// mustValidate panics on a misconfigured mode. A broken mode is a
// programming error, so it fails once per call rather than per token.
func (m Mode) mustValidate() {
	switch {
	case m.OptionShort == nil || m.OptionLong == nil:
		panic(fmt.Sprintf("capo: mode %q is missing option patterns", m.Name))
	case m.OptionShort.NumSubexp() < 1 || m.OptionLong.NumSubexp() < 1:
		panic(fmt.Sprintf("capo: mode %q option patterns must capture the option name", m.Name))
	case m.EndOfOptions == "":
		panic(fmt.Sprintf("capo: mode %q has no end of options symbol", m.Name))
	case m.OptionString == nil:
		panic(fmt.Sprintf("capo: mode %q has no option renderer", m.Name))
	}
}

// optionName returns the captured option name when arg is an option.
func (m Mode) optionName(arg string) (string, bool) {
	if match := m.OptionShort.FindStringSubmatch(arg); match != nil {
		return match[1], true
	}
	if match := m.OptionLong.FindStringSubmatch(arg); match != nil {
		return match[1], true
	}
	return "", false
}
