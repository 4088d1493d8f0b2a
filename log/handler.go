package log

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/ardnew/tracer/trace"
)

// Handler is a [slog.Handler] that writes each record as one trace line.
//
// The record level selects the trace severity (see [Level.Severity]), so a
// record is dropped when either the handler's minimum level or the registry's
// enabled mask excludes it. Attributes are rendered after the message using
// the configured [Format].
type Handler struct {
	registry *trace.Registry
	attrs    *attrRenderer
	name     string
	level    Level
	caller   bool
}

// attrRenderer renders record attributes with a standard slog handler that
// omits the built-in time, level and message keys.
type attrRenderer struct {
	mu    *sync.Mutex
	buf   *bytes.Buffer
	inner slog.Handler
}

// NewHandler returns a Handler configured by opts.
// A nil registry resolves to [trace.Default] each time a record is handled.
func NewHandler(reg *trace.Registry, opts ...Option) *Handler {
	return newHandler(makeConfig(reg, opts...))
}

func newHandler(c config) *Handler {
	var (
		buf  = new(bytes.Buffer)
		opts = &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 {
					switch a.Key {
					case slog.TimeKey, slog.LevelKey, slog.MessageKey:
						return slog.Attr{}
					}
				}

				return a
			},
		}
		inner slog.Handler
	)

	switch c.format {
	case FormatJSON:
		inner = slog.NewJSONHandler(buf, opts)
	default:
		inner = slog.NewTextHandler(buf, opts)
	}

	return &Handler{
		registry: c.registry,
		attrs:    &attrRenderer{mu: &sync.Mutex{}, buf: buf, inner: inner},
		name:     c.name,
		level:    c.level,
		caller:   c.caller,
	}
}

func (h *Handler) reg() *trace.Registry {
	if h.registry == nil {
		return trace.Default()
	}

	return h.registry
}

// Enabled reports whether a record at level would be written.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	l := Level(level)

	return l >= h.level && h.reg().IsEnabled(l.Severity())
}

// Handle writes r as one trace line.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	sev := Level(r.Level).Severity()

	reg := h.reg()
	if !reg.IsEnabled(sev) {
		return nil
	}

	file, function := "", h.name

	if h.caller && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		file, function = frame.File, shortFunction(frame.Function)
	}

	msg := r.Message

	attrs, err := h.attrs.render(ctx, r)
	if err != nil {
		return err
	}

	if attrs != "" {
		msg += " " + attrs
	}

	reg.Emitf(sev, file, function, "%s", msg)

	return nil
}

// WithAttrs returns a Handler that renders attrs with every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = h.attrs.with(h.attrs.inner.WithAttrs(attrs))

	return &c
}

// WithGroup returns a Handler that qualifies subsequent attributes with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.attrs = h.attrs.with(h.attrs.inner.WithGroup(name))

	return &c
}

func (a *attrRenderer) with(inner slog.Handler) *attrRenderer {
	return &attrRenderer{mu: a.mu, buf: a.buf, inner: inner}
}

// render returns the attributes of r on one line, or "" if there are none.
func (a *attrRenderer) render(ctx context.Context, r slog.Record) (string, error) {
	rec := slog.NewRecord(r.Time, r.Level, "", 0)
	r.Attrs(func(attr slog.Attr) bool {
		rec.AddAttrs(attr)

		return true
	})

	a.mu.Lock()
	defer a.mu.Unlock()

	a.buf.Reset()

	if err := a.inner.Handle(ctx, rec); err != nil {
		return "", err
	}

	s := strings.TrimSpace(a.buf.String())
	if s == "{}" {
		return "", nil
	}

	return s, nil
}

// shortFunction strips the import path from a fully-qualified function name.
func shortFunction(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}

	return name
}
