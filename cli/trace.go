package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tracer/log"
	"github.com/ardnew/tracer/pkg"
	"github.com/ardnew/tracer/trace"
)

// traceSeverity configures the default registry's enabled mask as a side
// effect of parsing via encoding.TextUnmarshaler, so the mask applies to
// diagnostics written while the rest of the command line is parsed.
type traceSeverity trace.Severity

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *traceSeverity) UnmarshalText(text []byte) error {
	sev, err := trace.ParseSeverity(string(text))
	if err != nil {
		return err
	}

	*s = traceSeverity(sev)
	trace.SetSeverity(sev)

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s traceSeverity) MarshalText() ([]byte, error) {
	return trace.Severity(s).MarshalText()
}

// traceMedium configures the default registry's medium as a side effect of
// parsing via encoding.TextUnmarshaler.
type traceMedium trace.Medium

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *traceMedium) UnmarshalText(text []byte) error {
	med, err := trace.ParseMedium(string(text))
	if err != nil {
		return err
	}

	*m = traceMedium(med)
	trace.SetMedium(med)

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m traceMedium) MarshalText() ([]byte, error) {
	return trace.Medium(m).MarshalText()
}

type traceConfig struct {
	Severity traceSeverity `default:"all"              help:"Enabled severities (${traceSeverities}) joined by ',', '|' or '+'." placeholder:"LIST" short:"s"`
	Medium   traceMedium   `default:"console"          help:"Output medium (${traceMediums})."                                   placeholder:"NAME" short:"m"`
	Dir      string        `default:"."                help:"Directory of log files written by the file medium."                                            type:"path"`
	Prefix   string        `default:"${tracePrefix}"   help:"File name prefix of log files written by the file medium."`
	Capacity int           `default:"${traceCapacity}" help:"Maximum size of one rendered line in bytes."`
	Root     string        `default:"${traceRoot}"     help:"Path segment at which rendered file names begin (empty keeps full paths)."`
}

func (*traceConfig) vars() kong.Vars {
	return kong.Vars{
		"traceSeverities": strings.Join(slices.Collect(trace.Severities()), ", "),
		"traceMediums":    strings.Join(slices.Collect(trace.Mediums()), ", "),
		"tracePrefix":     pkg.Name,
		"traceCapacity":   strconv.Itoa(trace.DefaultCapacity),
		"traceRoot":       trace.DefaultRootMarker,
	}
}

func (*traceConfig) group() kong.Group {
	var group kong.Group

	group.Key = "trace"
	group.Title = "Tracing options"

	return group
}

// options returns the registry options selected by the parsed flags.
func (f *traceConfig) options() []trace.Option {
	return []trace.Option{
		trace.WithSeverity(trace.Severity(f.Severity)),
		trace.WithMedium(trace.Medium(f.Medium)),
		trace.WithDirectory(f.Dir),
		trace.WithPrefix(f.Prefix),
		trace.WithCapacity(f.Capacity),
		trace.WithRootMarker(f.Root),
	}
}

// start replaces the default registry with one configured by the parsed
// flags. The returned function destroys its Output.
func (f *traceConfig) start(ctx context.Context) (*trace.Registry, func()) {
	reg := trace.Reset(f.options()...)

	log.DebugContext(ctx, "tracer initialized",
		slog.String("severity", trace.Severity(f.Severity).String()),
		slog.String("medium", trace.Medium(f.Medium).String()),
		slog.String("dir", f.Dir),
		slog.String("prefix", f.Prefix),
		slog.Int("capacity", f.Capacity),
	)

	return reg, reg.Destroy
}
