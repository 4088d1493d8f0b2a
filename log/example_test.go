package log_test

import (
	"log/slog"
	"os"
	"time"

	"github.com/ardnew/tracer/log"
	"github.com/ardnew/tracer/trace"
)

func exampleRegistry() *trace.Registry {
	return trace.New(
		trace.WithConsole(os.Stdout),
		trace.WithClock(func() time.Time {
			return time.Date(2024, time.March, 5, 7, 8, 9, 0, time.Local)
		}),
	)
}

func Example_basic() {
	reg := exampleRegistry()
	defer reg.Destroy()

	logger := log.Make(reg)
	logger.Info("application started", slog.String("version", "1.0.0"))

	// Output:
	// [05.03.2024 07:08:09] [LOG ] [] tracer(): application started version=1.0.0
}

func Example_levels() {
	reg := exampleRegistry()
	defer reg.Destroy()

	logger := log.Make(reg, log.WithLevel(log.LevelWarn), log.WithName("db"))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	logger.Error("error message", slog.String("error", "something failed"))

	// Output:
	// [05.03.2024 07:08:09] [WARN] [] db(): warning message key=value
	// [05.03.2024 07:08:09] [ERR ] [] db(): error message error="something failed"
}

func Example_jsonFormat() {
	reg := exampleRegistry()
	defer reg.Destroy()

	logger := log.Make(reg, log.WithFormat(log.FormatJSON))
	logger = logger.With(slog.String("request_id", "12345"))

	logger.Info("processing request", slog.String("method", "GET"))

	// Output:
	// [05.03.2024 07:08:09] [LOG ] [] tracer(): processing request {"request_id":"12345","method":"GET"}
}

func Example_slogHandler() {
	reg := exampleRegistry()
	defer reg.Destroy()

	logger := slog.New(log.NewHandler(reg, log.WithName("worker")))
	logger.Warn("queue full", "depth", 128)

	// Output:
	// [05.03.2024 07:08:09] [WARN] [] worker(): queue full depth=128
}
