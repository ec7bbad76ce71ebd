package capo

import (
	"strings"

	"github.com/dzonerzy/go-capo/middleware"
)

// Options holds compiled option values by option name. Every declared
// option has an entry, nil when it was not given and has no default.
type Options map[string]any

// Invocation is a command bound to one combination.
type Invocation struct {
	Command *Command
	Params  Params
	Options Options
}

// CommandConfig declares a command.
type CommandConfig struct {
	Signature   *Signature
	Options     []*Option
	Description string
	Help        string
	Examples    []Example
	Middlewares []middleware.Middleware
	Action      ActionFunc
}

// Command couples a signature with options and an action.
type Command struct {
	signature   *Signature
	options     []*Option
	description string
	help        string
	examples    []Example
	middlewares []middleware.Middleware
	action      ActionFunc
}

// NewCommand validates cfg. Option names must be unique and no alias may
// shadow another option's name or alias.
func NewCommand(cfg CommandConfig) (*Command, error) {
	if cfg.Signature == nil {
		return nil, definitionError("command", "", "missing signature")
	}
	name := cfg.Signature.String()
	if cfg.Action == nil {
		return nil, definitionError("command", name, "missing action")
	}

	owners := make(map[string]string)
	for _, option := range cfg.Options {
		if option == nil {
			return nil, definitionError("command", name, "nil option")
		}
		for _, key := range option.Names() {
			if owner, taken := owners[key]; taken {
				return nil, definitionError("command", name, "option %q clashes with option %q", key, owner)
			}
			owners[key] = option.name
		}
	}

	for _, example := range cfg.Examples {
		if err := example.Validate(); err != nil {
			return nil, err
		}
	}

	return &Command{
		signature:   cfg.Signature,
		options:     append([]*Option(nil), cfg.Options...),
		description: strings.TrimSpace(cfg.Description),
		help:        dedent(cfg.Help),
		examples:    append([]Example(nil), cfg.Examples...),
		middlewares: append([]middleware.Middleware(nil), cfg.Middlewares...),
		action:      cfg.Action,
	}, nil
}

func (c *Command) Signature() *Signature               { return c.signature }
func (c *Command) Options() []*Option                  { return c.options }
func (c *Command) Help() string                        { return c.help }
func (c *Command) Examples() []Example                 { return c.examples }
func (c *Command) Middlewares() []middleware.Middleware { return c.middlewares }
func (c *Command) Action() ActionFunc                  { return c.action }

// Name returns the command words joined by spaces. It satisfies
// middleware.Command.
func (c *Command) Name() string { return strings.Join(c.signature.command, " ") }

// Description satisfies middleware.Command.
func (c *Command) Description() string { return c.description }

// Option returns the declared option named name.
func (c *Command) Option(name string) (*Option, bool) {
	for _, option := range c.options {
		if option.name == name {
			return option, true
		}
	}
	return nil, false
}

// Usage renders the signature followed by the options.
func (c *Command) Usage() string {
	parts := []string{c.signature.String()}
	for _, option := range c.options {
		parts = append(parts, option.String())
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Compile binds the combination's words to the signature and its options
// to the declared options. Any rejected value or unknown option fails.
func (c *Command) Compile(values Combination) (*Invocation, bool) {
	return c.compile(values, nil)
}

// envFunc supplies a raw value for an option absent from the command line.
type envFunc func(*Option) (string, bool)

func (c *Command) compile(values Combination, env envFunc) (*Invocation, bool) {
	params, ok := c.signature.Match(values.Command)
	if !ok {
		return nil, false
	}

	consumed := make(map[string]bool, len(values.Options))
	options := make(Options, len(c.options))
	for _, option := range c.options {
		raw, key, found := option.Lookup(values.Options)
		if found {
			consumed[key] = true
		} else if value, ok := fromEnvironment(option, env); ok {
			options[option.name] = value
			continue
		}

		value, valid := option.Compile(raw)
		if !valid {
			return nil, false
		}
		options[option.name] = value
	}

	for key := range values.Options {
		if !consumed[key] {
			return nil, false
		}
	}

	return &Invocation{Command: c, Params: params, Options: options}, true
}

// fromEnvironment compiles the variable bound to option. Values the
// option rejects are ignored so the option falls back to its default.
func fromEnvironment(option *Option, env envFunc) (any, bool) {
	if env == nil {
		return nil, false
	}
	raw, set := env(option)
	if !set {
		return nil, false
	}
	value, valid := option.Compile(raw)
	if !valid || value == nil {
		return nil, false
	}
	return value, true
}

// dedent trims the text and removes the indentation common to all
// non-blank lines.
func dedent(text string) string {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent > 0 {
		for i, line := range lines {
			if len(line) >= indent {
				lines[i] = line[indent:]
			} else {
				lines[i] = strings.TrimLeft(line, " \t")
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
