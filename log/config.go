package log

import (
	"iter"
	"log/slog"
	"strings"
	"sync"

	"github.com/ardnew/tracer/pkg"
	"github.com/ardnew/tracer/trace"
)

// Level represents the severity of a log message.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)  // trace
	LevelDebug Level = Level(slog.LevelDebug) // debug
	LevelInfo  Level = Level(slog.LevelInfo)  // info
	LevelWarn  Level = Level(slog.LevelWarn)  // warn
	LevelError Level = Level(slog.LevelError) // error
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

var levelNames = []struct {
	level Level
	name  string
}{
	{LevelTrace, "trace"},
	{LevelDebug, "debug"},
	{LevelInfo, "info"},
	{LevelWarn, "warn"},
	{LevelError, "error"},
}

// String returns the lower-case name of l, or slog's offset form for levels
// between the named ones.
func (l Level) String() string {
	for _, n := range levelNames {
		if l == n.level {
			return n.name
		}
	}

	return strings.ToLower(slog.Level(l).String())
}

// Levels returns an iterator over all defined log levels.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range levelNames {
			if !yield(n.name) {
				return
			}
		}
	}
}

// ParseLevel parses a string representation of a log level.
// Valid level strings are "TRACE", "DEBUG", "INFO", "WARN", and "ERROR",
// optionally followed by a "+" or "-" and an integer offset.
// See [slog.Level.UnmarshalText] for details.
func ParseLevel(s string) Level {
	// slog.Level.UnmarshalText doesn't recognize "trace"
	if strings.EqualFold(strings.TrimSpace(s), "trace") {
		return LevelTrace
	}

	l := new(slog.Level)

	err := l.UnmarshalText([]byte(strings.TrimSpace(s)))
	if err != nil {
		return DefaultLevel
	}

	return Level(*l)
}

// Severity returns the trace severity a record at level l is emitted with.
//
//	error and above   -> [trace.SeverityError]
//	warn              -> [trace.SeverityWarning]
//	info              -> [trace.SeverityLog]
//	debug and trace   -> [trace.SeverityCallTrace]
func (l Level) Severity() trace.Severity {
	switch {
	case l >= LevelError:
		return trace.SeverityError
	case l >= LevelWarn:
		return trace.SeverityWarning
	case l >= LevelInfo:
		return trace.SeverityLog
	default:
		return trace.SeverityCallTrace
	}
}

// Format selects how record attributes are rendered into the trace message.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the default attribute format.
const DefaultFormat = FormatText

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Formats returns an iterator over all defined log formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{
			FormatText,
			FormatJSON,
		} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat parses a string representation of a log format.
// Valid format strings are "json" and "text".
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}

// DefaultCaller is the default setting for including caller information
// in log output.
const DefaultCaller = false

// DefaultName is the function name rendered for records logged without
// caller information.
const DefaultName = pkg.Name

// config holds the configuration options for a Logger.
type config struct {
	mutex    *sync.RWMutex
	registry *trace.Registry
	name     string
	level    Level
	format   Format
	caller   bool
}

// makeConfig creates a new config with defaults applied, overridden by any
// provided options.
func makeConfig(reg *trace.Registry, opts ...Option) config {
	var c config

	c.mutex = &sync.RWMutex{}

	return apply(apply(c, WithDefaults(reg)), opts...)
}

// clone creates a copy of the config with a separate mutex and applies any
// provided options.
func (c config) clone(opts ...Option) config {
	c.mutex = &sync.RWMutex{}

	return apply(c, opts...)
}

// handler creates a [Handler] based on the current configuration.
func (c config) handler() *Handler {
	return newHandler(c)
}

// WithDefaults returns a functional option that sets the default
// configuration. A nil registry resolves to [trace.Default] each time a record
// is handled.
func WithDefaults(reg *trace.Registry) Option {
	return func(c config) config {
		c.registry = reg
		c.name = DefaultName
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller

		return c
	}
}

// WithRegistry returns a functional option that sets the registry records
// are written through.
func WithRegistry(reg *trace.Registry) Option {
	return func(c config) config {
		c.registry = reg

		return c
	}
}

// WithLevel returns a functional option that sets the minimum log level.
// Messages below this level are discarded.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat returns a functional option that sets how attributes are
// rendered after the message.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithCaller returns a functional option that controls whether the file and
// function of the logging call are rendered in place of the logger name.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithName returns a functional option that sets the function name rendered
// for records logged without caller information. Empty names are ignored.
func WithName(name string) Option {
	return func(c config) config {
		if name = strings.TrimSpace(name); name != "" {
			c.name = name
		}

		return c
	}
}
