package trace

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/ardnew/tracer/pkg"
)

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// DefaultCapacity is the maximum size in bytes of one rendered line. The
// limit covers the whole line including timestamp, tag and call site, not
// just the message payload. Longer lines are cut at this boundary without
// notice.
const DefaultCapacity = 6144

// DefaultRootMarker is the path segment at which rendered file names begin.
const DefaultRootMarker = "src"

// DefaultLayout is the template of every rendered line except dumps.
const DefaultLayout = "[{time}] [{tag}] [{file}] {func}(): {message}"

// DefaultDumpLayout is the template of lines rendered at [SeverityDump].
const DefaultDumpLayout = "[{time}] [{tag}] {message}"

// DefaultTimeLayout renders timestamps as DD.MM.YYYY HH:MM:SS.
const DefaultTimeLayout = "02.01.2006 15:04:05"

// config holds the settings a Registry is constructed with.
type config struct {
	console    io.Writer
	now        func() time.Time
	dir        string
	prefix     string
	rootMarker string
	layout     string
	dumpLayout string
	capacity   int
	severity   Severity
	medium     Medium
}

func makeConfig(opts ...Option) config {
	return apply(config{
		console:    os.Stdout,
		now:        time.Now,
		prefix:     pkg.Name,
		rootMarker: DefaultRootMarker,
		layout:     DefaultLayout,
		dumpLayout: DefaultDumpLayout,
		capacity:   DefaultCapacity,
		severity:   DefaultSeverity,
		medium:     DefaultMedium,
	}, opts...)
}

// WithSeverity sets the initial enabled-severity mask.
func WithSeverity(sev Severity) Option {
	return func(c config) config {
		c.severity = sev

		return c
	}
}

// WithMedium sets the initial medium selector.
func WithMedium(m Medium) Option {
	return func(c config) config {
		c.medium = m

		return c
	}
}

// WithConsole sets the writer used by the console medium and for
// diagnostics. A nil writer discards console output.
func WithConsole(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.console = w

		return c
	}
}

// WithDirectory sets the directory in which the file medium creates its log
// files. The directory is created on first use if it does not exist.
// An empty directory means the working directory.
func WithDirectory(dir string) Option {
	return func(c config) config {
		c.dir = strings.TrimSpace(dir)

		return c
	}
}

// WithPrefix sets the fixed prefix of log file names.
// An empty prefix keeps the current one.
func WithPrefix(prefix string) Option {
	return func(c config) config {
		if p := strings.TrimSpace(prefix); p != "" {
			c.prefix = p
		}

		return c
	}
}

// WithCapacity sets the maximum size in bytes of one rendered line.
// Values below one keep the current capacity.
func WithCapacity(n int) Option {
	return func(c config) config {
		if n > 0 {
			c.capacity = n
		}

		return c
	}
}

// WithRootMarker sets the path segment at which rendered file names begin.
// An empty marker disables file name normalization.
func WithRootMarker(marker string) Option {
	return func(c config) config {
		c.rootMarker = strings.Trim(marker, `/\`)

		return c
	}
}

// WithLayout sets the templates of rendered lines. Placeholders are
// {time}, {tag}, {file}, {func} and {message}. An empty template keeps the
// current one.
func WithLayout(layout, dumpLayout string) Option {
	return func(c config) config {
		if layout != "" {
			c.layout = layout
		}

		if dumpLayout != "" {
			c.dumpLayout = dumpLayout
		}

		return c
	}
}

// WithClock sets the source of timestamps for rendered lines and log file
// names.
func WithClock(now func() time.Time) Option {
	return func(c config) config {
		if now != nil {
			c.now = now
		}

		return c
	}
}
