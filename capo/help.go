package capo

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dzonerzy/go-capo/internal/pool"
)

const helpCommand = "help"

// registerHelp adds "help [command...]" unless disabled or already defined.
func (a *App) registerHelp() {
	if !a.helpEnabled {
		return
	}
	for _, cmd := range a.store.Commands() {
		if cmd.Name() == helpCommand {
			return
		}
	}

	topic := MustParameter(ParameterConfig{
		Name:        "command",
		Description: "command to describe",
		Types:       Types{TypeString},
		Optional:    true,
		Variadic:    true,
	})
	cmd, err := NewCommand(CommandConfig{
		Signature:   MustSignature([]string{helpCommand}, topic),
		Description: "show help for a command",
		Action:      a.helpAction,
	})
	if err != nil {
		panic(err)
	}
	a.store.Set(cmd)
}

func (a *App) helpAction(ctx *Context) error {
	words, _ := ctx.Strings("command")
	if len(words) == 0 {
		return render(ctx.Stdout(), a.writeUsage)
	}

	matched := a.commandsWithPrefix(words)
	if len(matched) == 0 {
		return a.notFound(a, words, unknownCommandError(words, a.store.Commands(), suggestionDistance))
	}
	return render(ctx.Stdout(), func(w io.Writer) {
		for i, cmd := range matched {
			if i > 0 {
				fmt.Fprintln(w)
			}
			a.writeCommandHelp(w, cmd)
		}
	})
}

// render builds a page in a pooled buffer and writes it in one call.
func render(w io.Writer, page func(io.Writer)) error {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)
	page(buf)
	_, err := w.Write(buf.Bytes())
	return err
}

// commandsWithPrefix returns the commands whose words start with words.
func (a *App) commandsWithPrefix(words []string) []*Command {
	var matched []*Command
	for _, cmd := range a.store.Commands() {
		command := cmd.signature.command
		if len(command) < len(words) {
			continue
		}
		prefix := true
		for i, word := range words {
			if command[i] != word {
				prefix = false
				break
			}
		}
		if prefix {
			matched = append(matched, cmd)
		}
	}
	return matched
}

func (a *App) heading(title string) string {
	return a.IO().Colorize(title, color.Bold, color.Underline)
}

// writeUsage renders the application overview and one line per command.
func (a *App) writeUsage(w io.Writer) {
	if a.description != "" {
		fmt.Fprintln(w, a.description)
		fmt.Fprintln(w)
	}
	if a.version != "" {
		fmt.Fprintf(w, "Version: %s\n\n", a.version)
	}

	fmt.Fprintln(w, a.heading("Usage:"))
	fmt.Fprintf(w, "  %s <command> [options]\n", a.name)

	commands := a.store.Commands()
	if len(commands) == 0 {
		return
	}

	usages := make([]string, len(commands))
	width := 0
	for i, cmd := range commands {
		usages[i] = cmd.signature.String()
		width = max(width, len(usages[i]))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, a.heading("Commands:"))
	for i, cmd := range commands {
		if cmd.description == "" {
			fmt.Fprintf(w, "  %s\n", usages[i])
			continue
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, usages[i], cmd.description)
	}

	if a.helpEnabled {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Use \"%s help <command>\" for more information about a command.\n", a.name)
	}
}

// writeCommandHelp renders usage, description, help text, options and examples.
func (a *App) writeCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, a.heading("Usage:"))
	fmt.Fprintf(w, "  %s %s\n", a.name, cmd.signature.String())

	if cmd.description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cmd.description)
	}
	if cmd.help != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cmd.help)
	}

	if params := cmd.signature.parameters; len(params) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, a.heading("Parameters:"))
		width := 0
		for _, p := range params {
			width = max(width, len(p.String()))
		}
		for _, p := range params {
			fmt.Fprintf(w, "  %-*s  %s\n", width, p.String(), describe(p.description, p.types))
		}
	}

	if len(cmd.options) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, a.heading("Options:"))
		labels := make([]string, len(cmd.options))
		width := 0
		for i, option := range cmd.options {
			labels[i] = option.Format(a.mode)
			width = max(width, len(labels[i]))
		}
		for i, option := range cmd.options {
			desc := describe(option.description, option.types)
			if option.def != nil {
				desc += fmt.Sprintf(" (default: %s)", formatScalar(option.def))
			}
			if env, ok := option.EnvironmentVariable(a.name); ok {
				desc += fmt.Sprintf(" [$%s]", env)
			}
			fmt.Fprintf(w, "  %-*s  %s\n", width, labels[i], strings.TrimSpace(desc))
		}
	}

	if len(cmd.examples) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, a.heading("Examples:"))
		prefix := strings.TrimSpace(a.name + " " + cmd.Name())
		for _, example := range cmd.examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  $ %s\n", example.Render(prefix, a.mode))
		}
	}
}

func describe(description string, types Types) string {
	if description == "" {
		return "(" + types.String() + ")"
	}
	return description + " (" + types.String() + ")"
}
