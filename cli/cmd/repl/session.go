package repl

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/tracer/trace"
)

// replFile is the file name rendered as the call site of emitted messages.
const replFile = "repl"

// command is one entry of the REPL command table.
type command struct {
	name string
	args string
	help string
	// complete returns the candidates for the argument following name.
	complete func() []string
	run      func(s *session, args []string, rest string) (string, error)
}

// commands is the REPL command table in help order. The model handles clear
// and quit, and execute handles help.
var commands = []command{
	{
		name:     "severity",
		args:     "[list]",
		help:     "Show or set the enabled severities",
		complete: func() []string { return slices.Collect(trace.Severities()) },
		run:      (*session).severity,
	},
	{
		name:     "medium",
		args:     "[name]",
		help:     "Show or set the output medium",
		complete: func() []string { return slices.Collect(trace.Mediums()) },
		run:      (*session).medium,
	},
	{name: "log", args: "<text>", help: "Emit a log message", run: emitter(trace.SeverityLog)},
	{name: "error", args: "<text>", help: "Emit an error message", run: emitter(trace.SeverityError)},
	{name: "warn", args: "<text>", help: "Emit a warning message", run: emitter(trace.SeverityWarning)},
	{name: "call", args: "<text>", help: "Emit a call trace message", run: emitter(trace.SeverityCallTrace)},
	{name: "nimp", args: "[text]", help: "Emit a not-implemented message", run: emitter(trace.SeverityNotImplemented)},
	{name: "dump", args: "<text>", help: "Emit a dump message", run: emitter(trace.SeverityDump)},
	{name: "hex", args: "<cols> <text>", help: "Hex dump text with cols bytes per row", run: (*session).hex},
	{name: "where", help: "Show the location of the active medium", run: (*session).where},
	{name: "help", help: "Print this cruft"},
	{name: "clear", help: "Clear screen"},
	{name: "quit", help: "Exit REPL"},
}

// commandNames returns the names of every REPL command.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

func lookupCommand(name string) (command, bool) {
	i := slices.IndexFunc(commands, func(c command) bool { return c.name == name })
	if i < 0 {
		return command{}, false
	}

	return commands[i], true
}

// session interprets REPL commands against a registry whose console output
// is captured for display above the prompt.
type session struct {
	reg     *trace.Registry
	console *bytes.Buffer
}

// execute runs one command line and returns its result text.
func (s *session) execute(input string) (string, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(input), " ")
	rest = strings.TrimSpace(rest)

	if name == "help" {
		return helpMessage(), nil
	}

	cmd, ok := lookupCommand(name)
	if !ok || cmd.run == nil {
		return "", fmt.Errorf("%w: %s (try 'help')", ErrUnknownCommand, name)
	}

	return cmd.run(s, strings.Fields(rest), rest)
}

// drain returns and clears the console output captured so far.
func (s *session) drain() string {
	out := strings.TrimSuffix(s.console.String(), "\n")
	s.console.Reset()

	return out
}

func (s *session) severity(args []string, rest string) (string, error) {
	if len(args) > 0 {
		sev, err := trace.ParseSeverity(rest)
		if err != nil {
			return "", err
		}

		s.reg.SetSeverity(sev)
	}

	return "severity: " + s.reg.Severity().String(), nil
}

func (s *session) medium(args []string, _ string) (string, error) {
	if len(args) > 0 {
		m, err := trace.ParseMedium(args[0])
		if err != nil {
			return "", err
		}

		s.reg.SetMedium(m)
	}

	return s.where(nil, "")
}

func (s *session) where([]string, string) (string, error) {
	return fmt.Sprintf("medium: %s (%s)", s.reg.Medium(), s.reg.Location()), nil
}

func (s *session) hex(args []string, rest string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: cols", ErrMissingArgument)
	}

	cols, err := strconv.Atoi(args[0])
	if err != nil || cols < 1 {
		return "", fmt.Errorf("invalid column count %q", args[0])
	}

	text := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
	s.reg.HexDump(replFile, []byte(text), cols)

	return "", nil
}

// emitter returns a command writing its text at sev from the REPL call site.
func emitter(sev trace.Severity) func(*session, []string, string) (string, error) {
	return func(s *session, _ []string, rest string) (string, error) {
		if rest == "" && sev != trace.SeverityNotImplemented {
			return "", fmt.Errorf("%w: text", ErrMissingArgument)
		}

		if !s.reg.IsEnabled(sev) {
			return hintStyle.Render("(" + sev.String() + " disabled)"), nil
		}

		s.reg.Emitf(sev, replFile, replFile, "%s", rest)

		return "", nil
	}
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("\nCommands:\n\n")

	for _, c := range commands {
		usage := strings.TrimSpace(c.name + " " + c.args)
		fmt.Fprintf(&b, "  %-20s %s\n", usage, c.help)
	}

	b.WriteString(`
Usage:
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`)

	return b.String()
}
