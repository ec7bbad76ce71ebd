package capo

import (
	"regexp"
	"strings"
)

var (
	optionShortNamePattern = regexp.MustCompile(`^[a-zA-Z0-9]$`)
	optionLongNamePattern  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)
	environmentPattern     = regexp.MustCompile(`^[a-zA-Z_]+$`)
)

const defaultPlaceholder = "value"

// OptionConfig declares a named option. Options are optional unless
// Required is set, and read an environment variable unless NoEnvironment
// is set.
type OptionConfig struct {
	Name        string
	Description string
	Types       Types
	Default     any
	Aliases     []string
	Placeholder string
	Multiple    bool
	Required    bool

	// Environment overrides the variable suffix; the option name is used otherwise.
	Environment   string
	NoEnvironment bool
}

// Option is a named flag or value option.
type Option struct {
	name        string
	description string
	types       Types
	def         any
	aliases     []string
	placeholder string
	multiple    bool
	optional    bool
	environment string
	envDisabled bool
}

// NewOption validates cfg.
func NewOption(cfg OptionConfig) (*Option, error) {
	if !validOptionName(cfg.Name) {
		return nil, definitionError("option", cfg.Name, "invalid name")
	}
	if err := cfg.Types.validate(); err != nil {
		return nil, definitionError("option", cfg.Name, "%v", err)
	}
	if cfg.Types.Has(TypeBoolean) && len(cfg.Types) > 1 {
		return nil, definitionError("option", cfg.Name, "boolean options cannot accept other types")
	}

	def := normalize(cfg.Default)
	if def != nil && !cfg.Types.Matches(def) {
		return nil, definitionError("option", cfg.Name, "default %v is not a %s", cfg.Default, cfg.Types)
	}

	seen := map[string]bool{cfg.Name: true}
	for _, alias := range cfg.Aliases {
		if !validOptionName(alias) {
			return nil, definitionError("option", cfg.Name, "invalid alias %q", alias)
		}
		if seen[alias] {
			return nil, definitionError("option", cfg.Name, "duplicated alias %q", alias)
		}
		seen[alias] = true
	}

	placeholder := defaultPlaceholder
	if cfg.Placeholder != "" {
		placeholder = strings.TrimSpace(cfg.Placeholder)
		if placeholder == "" {
			return nil, definitionError("option", cfg.Name, "blank placeholder")
		}
	}

	if cfg.Environment != "" && !environmentPattern.MatchString(cfg.Environment) {
		return nil, definitionError("option", cfg.Name, "invalid environment variable %q", cfg.Environment)
	}

	return &Option{
		name:        cfg.Name,
		description: strings.TrimSpace(cfg.Description),
		types:       append(Types(nil), cfg.Types...),
		def:         def,
		aliases:     append([]string(nil), cfg.Aliases...),
		placeholder: placeholder,
		multiple:    cfg.Multiple,
		optional:    !cfg.Required,
		environment: cfg.Environment,
		envDisabled: cfg.NoEnvironment,
	}, nil
}

// MustOption is NewOption that panics on error.
func MustOption(cfg OptionConfig) *Option {
	o, err := NewOption(cfg)
	if err != nil {
		panic(err)
	}
	return o
}

func validOptionName(name string) bool {
	if len(name) == 1 {
		return optionShortNamePattern.MatchString(name)
	}
	return optionLongNamePattern.MatchString(name) && !strings.Contains(name, "--")
}

func (o *Option) Name() string        { return o.name }
func (o *Option) Description() string { return o.description }
func (o *Option) Types() Types        { return o.types }
func (o *Option) Default() any        { return o.def }
func (o *Option) Aliases() []string   { return o.aliases }
func (o *Option) Placeholder() string { return o.placeholder }
func (o *Option) IsMultiple() bool    { return o.multiple }
func (o *Option) IsOptional() bool    { return o.optional }

// IsBoolean reports whether the option is a flag.
func (o *Option) IsBoolean() bool {
	return o.types.Has(TypeBoolean)
}

// Names returns the option name followed by its aliases.
func (o *Option) Names() []string {
	return append([]string{o.name}, o.aliases...)
}

// EnvironmentVariable returns the variable read for this option under the
// given application name, e.g. MYAPP_DRY_RUN.
func (o *Option) EnvironmentVariable(app string) (string, bool) {
	if o.envDisabled {
		return "", false
	}
	suffix := o.environment
	if suffix == "" {
		suffix = o.name
	}
	name := suffix
	if app != "" {
		name = app + "_" + suffix
	}
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_")), true
}

// Lookup finds the raw value by name, then by alias in declaration order.
func (o *Option) Lookup(values map[string]any) (raw any, key string, found bool) {
	for _, name := range o.Names() {
		if value, ok := values[name]; ok && value != nil {
			return value, name, true
		}
	}
	return nil, "", false
}

// Compile turns a raw value into a typed one. A nil raw value means the
// option was not given. The result is (nil, true) for a valid absence
// and (_, false) when the value or the absence is not acceptable.
func (o *Option) Compile(raw any) (any, bool) {
	if raw == nil || (raw == "" && o.types.Has(TypeString)) {
		return o.absent()
	}

	switch v := raw.(type) {
	case bool:
		if o.IsBoolean() {
			return v, true
		}
		return nil, false
	case string:
		return Evaluate(o.types, v)
	default:
		v = normalize(v)
		if o.types.Matches(v) {
			return v, true
		}
		return nil, false
	}
}

func (o *Option) absent() (any, bool) {
	switch {
	case o.def != nil:
		return o.def, true
	case !o.optional:
		return nil, false
	case o.IsBoolean():
		return false, true
	default:
		return nil, true
	}
}

// String renders the option in UNIX syntax, e.g. "[--foo, -f <value>]".
func (o *Option) String() string {
	return o.Format(UnixMode)
}

// Format renders the option under mode.
func (o *Option) Format(mode Mode) string {
	names := o.Names()
	for i, name := range names {
		names[i] = mode.OptionString(name)
	}
	s := strings.Join(names, ", ")
	if !o.IsBoolean() {
		s += " <" + o.placeholder + ">"
	}
	if o.optional {
		s = "[" + s + "]"
	}
	if o.multiple {
		s += "..."
	}
	return s
}
