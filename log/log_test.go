package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ardnew/tracer/trace"
)

// lockedBuffer is a bytes.Buffer safe for concurrent use.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func (b *lockedBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Len()
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf.Reset()
}

func testClock() time.Time {
	return time.Date(2023, 10, 15, 14, 30, 45, 0, time.Local)
}

// newRegistry returns a registry writing console lines to a buffer.
func newRegistry(t testing.TB, opts ...trace.Option) (*trace.Registry, *lockedBuffer) {
	t.Helper()

	buf := new(lockedBuffer)
	reg := trace.New(append([]trace.Option{
		trace.WithConsole(buf),
		trace.WithClock(testClock),
	}, opts...)...)

	t.Cleanup(reg.Destroy)

	return reg, buf
}

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	reg, _ := newRegistry(t)
	logger := Make(reg)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.Level())
	}
	if logger.config.caller {
		t.Error("expected caller disabled by default")
	}
	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}
	if logger.config.name != DefaultName {
		t.Errorf("expected default name %q, got %q", DefaultName, logger.config.name)
	}
}

func TestLogger_Info_RendersTraceLine(t *testing.T) {
	reg, buf := newRegistry(t)
	logger := Make(reg)

	logger.Info("server started", slog.Int("port", 8080), slog.String("mode", "dev mode"))

	want := `[15.10.2023 14:30:45] [LOG ] [] tracer(): server started port=8080 mode="dev mode"` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output =\n%q\nwant\n%q", got, want)
	}
}

func TestLogger_Levels_MapToSeverity(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...slog.Attr)
		tag     string
	}{
		{"trace", Logger.Trace, "[CALL]"},
		{"debug", Logger.Debug, "[CALL]"},
		{"info", Logger.Info, "[LOG ]"},
		{"warn", Logger.Warn, "[WARN]"},
		{"error", Logger.Error, "[ERR ]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, buf := newRegistry(t)
			logger := Make(reg, WithLevel(LevelTrace))

			tt.logFunc(logger, "test message")

			output := buf.String()
			if !strings.Contains(output, tt.tag) {
				t.Errorf("expected output to contain %q, got: %s", tt.tag, output)
			}
			if !strings.HasSuffix(output, "(): test message\n") {
				t.Errorf("expected message at end of line, got: %s", output)
			}
		})
	}
}

func TestLogger_LogMethods_RespectLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"debug at debug", (Logger).Debug, LevelDebug, true},
		{"debug at info", (Logger).Debug, LevelInfo, false},
		{"info at info", (Logger).Info, LevelInfo, true},
		{"info at warn", (Logger).Info, LevelWarn, false},
		{"warn at warn", (Logger).Warn, LevelWarn, true},
		{"warn at error", (Logger).Warn, LevelError, false},
		{"error at error", (Logger).Error, LevelError, true},
		{"error at debug", (Logger).Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, buf := newRegistry(t)
			logger := Make(reg, WithLevel(tt.minLevel))
			tt.logFunc(logger, "test message")

			hasOutput := buf.Len() > 0
			if hasOutput != tt.logged {
				t.Errorf(
					"expected logged=%v, got output length=%d",
					tt.logged,
					buf.Len(),
				)
			}
		})
	}
}

func TestLogger_SeverityMask_FiltersRecords(t *testing.T) {
	reg, buf := newRegistry(t, trace.WithSeverity(trace.SeverityError))
	logger := Make(reg, WithLevel(LevelTrace))

	if logger.Enabled(DefaultContextProvider(), slog.LevelInfo) {
		t.Error("info enabled while LOG is masked off")
	}

	logger.Info("masked")
	logger.Debug("masked")
	logger.Error("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "(): shown") {
		t.Errorf("expected only the error line, got %q", lines)
	}
}

func TestLogger_WithCaller_RendersCallSite(t *testing.T) {
	reg, buf := newRegistry(t)

	Make(reg, WithCaller(true)).Info("test message")

	output := buf.String()
	if !strings.Contains(output, "log_test.go] log.TestLogger_WithCaller_RendersCallSite(): test message") {
		t.Errorf("caller not rendered, got: %s", output)
	}

	buf.Reset()
	Make(reg, WithCaller(false), WithName("api")).Info("test message")

	if got := buf.String(); !strings.Contains(got, "[] api(): test message") {
		t.Errorf("name not rendered, got: %s", got)
	}
}

func TestLogger_WithFormat_RendersAttributes(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		reg, buf := newRegistry(t)
		logger := Make(reg, WithFormat(FormatJSON))
		logger.Info("test message", slog.String("key", "value"), slog.Int("n", 3))

		_, payload, ok := strings.Cut(strings.TrimSpace(buf.String()), "(): test message ")
		if !ok {
			t.Fatalf("message not found in output: %s", buf.String())
		}

		var result map[string]any
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			t.Fatalf("failed to parse JSON attributes %q: %v", payload, err)
		}
		if result["key"] != "value" {
			t.Errorf("expected key=value, got %v", result["key"])
		}
		if result["n"] != float64(3) {
			t.Errorf("expected n=3, got %v", result["n"])
		}
		if _, ok := result["msg"]; ok {
			t.Error("built-in msg key leaked into attributes")
		}
	})

	t.Run("text", func(t *testing.T) {
		reg, buf := newRegistry(t)
		logger := Make(reg, WithFormat(FormatText))
		logger.Info("test message", slog.String("key", "value"))

		if got := buf.String(); !strings.HasSuffix(got, "(): test message key=value\n") {
			t.Errorf("unexpected text output: %s", got)
		}
	})

	t.Run("json without attributes", func(t *testing.T) {
		reg, buf := newRegistry(t)
		Make(reg, WithFormat(FormatJSON)).Info("bare")

		if got := buf.String(); !strings.HasSuffix(got, "(): bare\n") {
			t.Errorf("unexpected output: %s", got)
		}
	})
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	reg, buf := newRegistry(t)
	logger := Make(reg).With(slog.String("component", "api"))

	logger.Info("request", slog.String("method", "GET"))

	if got := buf.String(); !strings.HasSuffix(got, "(): request component=api method=GET\n") {
		t.Errorf("unexpected output: %s", got)
	}
}

func TestLogger_WithGroup_QualifiesKeys(t *testing.T) {
	reg, buf := newRegistry(t)
	logger := slog.New(NewHandler(reg)).WithGroup("req")

	logger.Info("done", "status", 200)

	if got := buf.String(); !strings.HasSuffix(got, "(): done req.status=200\n") {
		t.Errorf("unexpected output: %s", got)
	}
}

func TestLogger_Wrap_OverridesOptions(t *testing.T) {
	reg, buf := newRegistry(t)
	base := Make(reg, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError {
		t.Errorf("Wrap modified the base level: %v", base.Level())
	}

	wrapped.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Error("wrapped logger did not apply the new level")
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	reg, buf := newRegistry(t)
	logger := Make(reg, WithFormat(FormatJSON)).With(slog.String("shared", "yes"))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("concurrent message", slog.Int("id", id))
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Fatalf("expected 100 log lines, got %d", len(lines))
	}

	for _, line := range lines {
		if !strings.Contains(line, `{"shared":"yes","id":`) {
			t.Errorf("attributes of concurrent records were mixed: %q", line)
		}
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var l Logger
	// Should not panic
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	l2 := l.With(slog.String("key", "value"))
	if l2.Logger != nil {
		t.Error("expected nil logger from zero value With")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("zero value should report defaults")
	}
}

func TestLogger_ContextMethods_LogSuccessfully(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...slog.Attr)
	}{
		{"trace", func(l Logger, msg string, attrs ...slog.Attr) {
			l.TraceContext(DefaultContextProvider(), msg, attrs...)
		}},
		{"debug", func(l Logger, msg string, attrs ...slog.Attr) {
			l.DebugContext(DefaultContextProvider(), msg, attrs...)
		}},
		{"info", func(l Logger, msg string, attrs ...slog.Attr) {
			l.InfoContext(DefaultContextProvider(), msg, attrs...)
		}},
		{"warn", func(l Logger, msg string, attrs ...slog.Attr) {
			l.WarnContext(DefaultContextProvider(), msg, attrs...)
		}},
		{"error", func(l Logger, msg string, attrs ...slog.Attr) {
			l.ErrorContext(DefaultContextProvider(), msg, attrs...)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, buf := newRegistry(t)
			logger := Make(reg, WithLevel(LevelTrace))

			tt.logFunc(logger, "test message")

			if !strings.Contains(buf.String(), "test message") {
				t.Errorf("expected %s message to be logged", tt.name)
			}
		})
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	reg, _ := newRegistry(b, trace.WithConsole(nil))
	logger := Make(reg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Info_WithCaller(b *testing.B) {
	reg, _ := newRegistry(b, trace.WithConsole(nil))
	logger := Make(reg, WithCaller(true))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Info_Concurrent(b *testing.B) {
	reg, _ := newRegistry(b, trace.WithConsole(nil))
	logger := Make(reg)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			logger.Info("concurrent message", slog.Int("id", i))
			i++
		}
	})
}
