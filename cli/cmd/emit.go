package cmd

import (
	"log/slog"
	"strings"

	"github.com/ardnew/tracer/trace"
)

// Emit writes one message at each named severity from a single call site.
type Emit struct {
	Severity trace.Severity `arg:"" help:"Severities of the message (${severities})."`
	Message  []string       `arg:"" help:"Message text."                             optional:""`

	Quiet bool `help:"Omit the entry and exit lines." short:"q"`
}

// Run executes the emit command.
func (e *Emit) Run(reg *trace.Registry) error {
	if e.Severity == trace.SeverityNone {
		return ErrEmit.
			With(slog.String("severity", e.Severity.String())).
			Wrap(ErrNoSeverity)
	}

	var sc *trace.Scope
	if e.Quiet {
		sc = reg.EnterQuiet()
	} else {
		sc = reg.Enter()
	}
	defer sc.Exit()

	emitMessage(reg, sc, e.Severity, strings.Join(e.Message, " "))

	return nil
}

// emitMessage writes msg through sc once for every severity set in mask.
func emitMessage(reg *trace.Registry, sc *trace.Scope, mask trace.Severity, msg string) {
	for sev := range mask.Kinds() {
		switch sev {
		case trace.SeverityError:
			sc.Errorf("%s", msg)
		case trace.SeverityWarning:
			sc.Warnf("%s", msg)
		case trace.SeverityLog:
			sc.Logf("%s", msg)
		case trace.SeverityNotImplemented:
			if msg == "" {
				sc.NotImplemented()
			} else {
				sc.NotImplementedf("%s", msg)
			}
		case trace.SeverityDump:
			sc.Dumpf("%s", msg)
		default:
			reg.Emitf(sev, sc.File(), sc.Function(), "%s", msg)
		}
	}
}
