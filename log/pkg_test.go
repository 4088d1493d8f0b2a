package log

import (
	"log/slog"
	"strings"
	"testing"
)

// swapDefault installs logger as the default for the duration of the test.
func swapDefault(t *testing.T, logger Logger) {
	t.Helper()

	defaultMu.Lock()
	original := defaultLog
	defaultLog = logger
	defaultMu.Unlock()

	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	})
}

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	reg, buf := newRegistry(t)
	swapDefault(t, Make(reg, WithLevel(LevelTrace)))

	tests := []struct {
		name string
		fn   func(string, ...slog.Attr)
		tag  string
		msg  string
	}{
		{"Trace", Trace, "[CALL]", "trace message"},
		{"Debug", Debug, "[CALL]", "debug message"},
		{"Info", Info, "[LOG ]", "info message"},
		{"Warn", Warn, "[WARN]", "warn message"},
		{"Error", Error, "[ERR ]", "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.msg, slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, tt.msg+" key=value") {
				t.Errorf("expected output to contain message %q, got: %s", tt.msg, output)
			}
			if !strings.Contains(output, tt.tag) {
				t.Errorf("expected output to contain tag %q, got: %s", tt.tag, output)
			}
		})
	}
}

func TestPackage_ContextFunctions_UseDefaultLogger(t *testing.T) {
	reg, buf := newRegistry(t)
	swapDefault(t, Make(reg))

	tests := []struct {
		name    string
		logFunc func(string, ...slog.Attr)
	}{
		{"TraceContext", func(msg string, attrs ...slog.Attr) {
			TraceContext(DefaultContextProvider(), msg, attrs...)
		}},
		{"DebugContext", func(msg string, attrs ...slog.Attr) {
			DebugContext(DefaultContextProvider(), msg, attrs...)
		}},
		{"InfoContext", func(msg string, attrs ...slog.Attr) {
			InfoContext(DefaultContextProvider(), msg, attrs...)
		}},
		{"WarnContext", func(msg string, attrs ...slog.Attr) {
			WarnContext(DefaultContextProvider(), msg, attrs...)
		}},
		{"ErrorContext", func(msg string, attrs ...slog.Attr) {
			ErrorContext(DefaultContextProvider(), msg, attrs...)
		}},
	}

	Config(WithLevel(LevelTrace))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("package context test")

			if !strings.Contains(buf.String(), "package context test") {
				t.Error("expected message to be logged using package context function")
			}
		})
	}
}

func TestPackage_Config_WrapsDefault(t *testing.T) {
	reg, buf := newRegistry(t)
	swapDefault(t, Make(reg, WithLevel(LevelError)))

	Info("hidden")
	Config(WithLevel(LevelInfo), WithCaller(true))
	Info("shown")

	if Default().Level() != LevelInfo {
		t.Errorf("Config did not update the level: %v", Default().Level())
	}

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("record below the original level was written")
	}

	if !strings.Contains(output, "pkg_test.go] log.TestPackage_Config_WrapsDefault(): shown") {
		t.Errorf("caller of the package function not rendered, got: %s", output)
	}
}

func TestPackage_With_UsesDefault(t *testing.T) {
	reg, buf := newRegistry(t)
	swapDefault(t, Make(reg))

	With(slog.String("scope", "pkg")).Warn("attributed")

	if got := buf.String(); !strings.Contains(got, "attributed scope=pkg") {
		t.Errorf("unexpected output: %s", got)
	}
}
