package trace

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
)

// Template placeholders understood by [Formatter].
const (
	tagTime    = "time"
	tagLevel   = "tag"
	tagFile    = "file"
	tagFunc    = "func"
	tagMessage = "message"
)

// Formatter renders trace messages into lines.
//
// A Formatter is immutable after construction and safe for concurrent use.
type Formatter struct {
	layout     *fasttemplate.Template
	dumpLayout *fasttemplate.Template
	now        func() time.Time
	rootMarker string
	capacity   int
}

// NewFormatter returns a Formatter configured by the layout, capacity, clock
// and root marker options. Other options are ignored.
func NewFormatter(opts ...Option) *Formatter {
	return newFormatter(makeConfig(opts...))
}

func newFormatter(c config) *Formatter {
	return &Formatter{
		layout:     parseLayout(c.layout, DefaultLayout),
		dumpLayout: parseLayout(c.dumpLayout, DefaultDumpLayout),
		now:        c.now,
		rootMarker: c.rootMarker,
		capacity:   c.capacity,
	}
}

// parseLayout compiles layout, falling back to def when layout has an
// unterminated placeholder.
func parseLayout(layout, def string) *fasttemplate.Template {
	t, err := fasttemplate.NewTemplate(layout, "{", "}")
	if err != nil {
		return fasttemplate.New(def, "{", "}")
	}

	return t
}

// Capacity returns the maximum size in bytes of a rendered line.
func (f *Formatter) Capacity() int { return f.capacity }

// Render renders a line stamped with the current time.
func (f *Formatter) Render(
	sev Severity,
	file, function string,
	format string,
	args ...any,
) string {
	return f.RenderAt(f.now(), sev, file, function, format, args...)
}

// RenderAt renders a line stamped with t.
//
// The payload is format with args substituted by [fmt.Sprintf]. The file and
// function are omitted for [SeverityDump]. Lines longer than the capacity are
// cut at the capacity boundary.
func (f *Formatter) RenderAt(
	t time.Time,
	sev Severity,
	file, function string,
	format string,
	args ...any,
) string {
	layout := f.layout
	if sev == SeverityDump {
		layout = f.dumpLayout
	}

	line := layout.ExecuteString(map[string]any{
		tagTime:    t.Format(DefaultTimeLayout),
		tagLevel:   sev.Tag(),
		tagFile:    f.NormalizeFile(file),
		tagFunc:    function,
		tagMessage: fmt.Sprintf(format, args...),
	})

	return f.truncate(line)
}

func (f *Formatter) truncate(line string) string {
	if f.capacity > 0 && len(line) > f.capacity {
		return line[:f.capacity]
	}

	return line
}

// NormalizeFile returns the suffix of path beginning at the first segment
// equal to the root marker, or path unchanged when there is no such segment.
func (f *Formatter) NormalizeFile(path string) string {
	marker := f.rootMarker
	if marker == "" {
		return path
	}

	for from := 0; from < len(path); {
		i := strings.Index(path[from:], marker)
		if i < 0 {
			break
		}

		i += from
		end := i + len(marker)

		if (i == 0 || isSeparator(path[i-1])) &&
			(end == len(path) || isSeparator(path[end])) {
			return path[i:]
		}

		from = i + 1
	}

	return path
}

func isSeparator(c byte) bool { return c == '/' || c == '\\' }
