package capo

import (
	"github.com/dzonerzy/go-capo/middleware"
)

// ParameterDefinition is the plain-data form of a Parameter.
type ParameterDefinition struct {
	Name        string   `yaml:"name" toml:"name"`
	Description string   `yaml:"description" toml:"description"`
	Types       []string `yaml:"type" toml:"type"`
	Optional    bool     `yaml:"optional" toml:"optional"`
	Variadic    bool     `yaml:"variadic" toml:"variadic"`
}

// SignatureDefinition is the plain-data form of a Signature.
type SignatureDefinition struct {
	Command    []string              `yaml:"command" toml:"command"`
	Parameters []ParameterDefinition `yaml:"parameters" toml:"parameters"`
}

// OptionDefinition is the plain-data form of an Option.
type OptionDefinition struct {
	Name          string   `yaml:"name" toml:"name"`
	Description   string   `yaml:"description" toml:"description"`
	Types         []string `yaml:"type" toml:"type"`
	Default       any      `yaml:"default" toml:"default"`
	Aliases       []string `yaml:"aliases" toml:"aliases"`
	Placeholder   string   `yaml:"placeholder" toml:"placeholder"`
	Multiple      bool     `yaml:"multiple" toml:"multiple"`
	Required      bool     `yaml:"required" toml:"required"`
	Environment   string   `yaml:"environment" toml:"environment"`
	NoEnvironment bool     `yaml:"no_environment" toml:"no_environment"`
}

// ExampleDefinition is the plain-data form of an Example.
type ExampleDefinition struct {
	Description string         `yaml:"description" toml:"description"`
	Parameters  []any          `yaml:"parameters" toml:"parameters"`
	Options     map[string]any `yaml:"options" toml:"options"`
}

// CommandDefinition declares a command as plain data, the shape manifests
// decode into. Action names the action in an action registry and is
// ignored by DefineCommand.
type CommandDefinition struct {
	Signature   SignatureDefinition `yaml:"signature" toml:"signature"`
	Options     []OptionDefinition  `yaml:"options" toml:"options"`
	Description string              `yaml:"description" toml:"description"`
	Help        string              `yaml:"help" toml:"help"`
	Examples    []ExampleDefinition `yaml:"examples" toml:"examples"`
	Action      string              `yaml:"action" toml:"action"`
}

// DefineCommand builds a Command from def. Every shape error surfaces
// here as a *DefinitionError.
func DefineCommand(def CommandDefinition, action ActionFunc, middlewares ...middleware.Middleware) (*Command, error) {
	params := make([]*Parameter, 0, len(def.Signature.Parameters))
	for _, pd := range def.Signature.Parameters {
		types, err := ParseTypes(pd.Types...)
		if err != nil {
			return nil, definitionError("parameter", pd.Name, "%v", err)
		}
		p, err := NewParameter(ParameterConfig{
			Name:        pd.Name,
			Description: pd.Description,
			Types:       types,
			Optional:    pd.Optional,
			Variadic:    pd.Variadic,
		})
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	signature, err := NewSignature(def.Signature.Command, params...)
	if err != nil {
		return nil, err
	}

	options := make([]*Option, 0, len(def.Options))
	for _, od := range def.Options {
		types, err := ParseTypes(od.Types...)
		if err != nil {
			return nil, definitionError("option", od.Name, "%v", err)
		}
		o, err := NewOption(OptionConfig{
			Name:          od.Name,
			Description:   od.Description,
			Types:         types,
			Default:       od.Default,
			Aliases:       od.Aliases,
			Placeholder:   od.Placeholder,
			Multiple:      od.Multiple,
			Required:      od.Required,
			Environment:   od.Environment,
			NoEnvironment: od.NoEnvironment,
		})
		if err != nil {
			return nil, err
		}
		options = append(options, o)
	}

	examples := make([]Example, 0, len(def.Examples))
	for _, ed := range def.Examples {
		examples = append(examples, Example{
			Description: ed.Description,
			Parameters:  ed.Parameters,
			Options:     ed.Options,
		})
	}

	return NewCommand(CommandConfig{
		Signature:   signature,
		Options:     options,
		Description: def.Description,
		Help:        def.Help,
		Examples:    examples,
		Middlewares: middlewares,
		Action:      action,
	})
}
