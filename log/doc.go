// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog] that writes through the tracer.
//
// Every record becomes one trace line, so log output shares the tracer's
// medium, line layout and enabled-severity mask. Levels map to severities:
//
//	error -> ERR
//	warn  -> WARN
//	info  -> LOG
//	debug -> CALL
//	trace -> CALL
//
// # Basic Usage
//
//	logger := log.Make(trace.Default())
//	logger.Info("application started", slog.String("version", "1.0.0"))
//	logger.Error("failed to connect", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(reg,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// Without caller information the logger's name ([WithName]) is rendered in
// place of the function and the file is left empty.
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("component", "api"))
//	logger.Info("request received") // ... request received component=api
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant.
// Context-unaware functions use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Standard Library Interop
//
// [Handler] implements [slog.Handler], so any [slog.Logger] can write through
// the tracer:
//
//	slog.SetDefault(slog.New(log.NewHandler(reg)))
package log
