// Package manifest loads command declarations from YAML or TOML files and
// registers them on a capo application, binding each command to a named
// action.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-capo/capo"
	"github.com/dzonerzy/go-capo/middleware"
)

// Version is the manifest schema version understood by this package.
const Version = 1

// Format selects the manifest decoder.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Manifest is a decoded command manifest.
type Manifest struct {
	Version     int                      `yaml:"version" toml:"version"`
	Name        string                   `yaml:"name" toml:"name"`
	Description string                   `yaml:"description" toml:"description"`
	Commands    []capo.CommandDefinition `yaml:"commands" toml:"commands"`
}

// Action binds a manifest action name to code.
type Action struct {
	Run         capo.ActionFunc
	Middlewares []middleware.Middleware
}

// ActionRegistry maps the action names used in manifests to actions.
type ActionRegistry map[string]Action

// Add registers run under name and returns the registry for chaining.
func (r ActionRegistry) Add(name string, run capo.ActionFunc, middlewares ...middleware.Middleware) ActionRegistry {
	r[name] = Action{Run: run, Middlewares: middlewares}
	return r
}

// Names returns the registered action names, sorted.
func (r ActionRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", invalid(fmt.Sprintf("unsupported manifest extension %q", filepath.Ext(path)), nil).
			WithContext("path", path)
	}
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, invalid("failed to read "+path, err).WithContext("path", path)
	}
	m, err := Parse(data, format)
	if err != nil {
		var cliErr *capo.CLIError
		if errors.As(err, &cliErr) {
			cliErr.WithContext("path", path)
		}
		return nil, err
	}
	return m, nil
}

// Parse decodes data. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, invalid("failed to parse yaml manifest", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, invalid("failed to parse toml manifest", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			return nil, invalid("unknown manifest keys: "+strings.Join(keys, ", "), nil)
		}
	default:
		return nil, invalid(fmt.Sprintf("unsupported manifest format %q", format), nil)
	}

	if m.Version == 0 {
		m.Version = Version
	}
	if m.Version != Version {
		return nil, invalid(fmt.Sprintf("unsupported manifest version %d", m.Version), nil)
	}
	return &m, nil
}

// Build defines every declared command, binding actions by name.
func (m *Manifest) Build(actions ActionRegistry) ([]*capo.Command, error) {
	commands := make([]*capo.Command, 0, len(m.Commands))
	for i, def := range m.Commands {
		name := strings.Join(def.Signature.Command, " ")
		if def.Action == "" {
			return nil, invalid(fmt.Sprintf("command %d (%q) has no action", i, name), nil).
				WithContext("command", name)
		}
		action, ok := actions[def.Action]
		if !ok || action.Run == nil {
			err := invalid(fmt.Sprintf("command %q uses unknown action %q", name, def.Action), nil).
				WithContext("command", name)
			if known := actions.Names(); len(known) > 0 {
				err.WithSuggestion("Registered actions: " + strings.Join(known, ", "))
			}
			return nil, err
		}

		cmd, err := capo.DefineCommand(def, action.Run, action.Middlewares...)
		if err != nil {
			return nil, invalid(fmt.Sprintf("command %q: %v", name, err), err).WithContext("command", name)
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// Register builds the manifest commands and registers them on app.
// Nothing is registered when any command fails.
func Register(app *capo.App, m *Manifest, actions ActionRegistry) error {
	commands, err := m.Build(actions)
	if err != nil {
		return err
	}
	for _, cmd := range commands {
		if err := app.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// LoadAndRegister is Load followed by Register.
func LoadAndRegister(app *capo.App, path string, actions ActionRegistry) (*Manifest, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := Register(app, m, actions); err != nil {
		return nil, err
	}
	return m, nil
}

func invalid(message string, cause error) *capo.CLIError {
	err := capo.NewError(capo.ErrorTypeInvalidManifest, message)
	if cause != nil {
		err.WithCause(cause)
	}
	return err
}
