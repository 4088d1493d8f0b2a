// Package cli contains the command line interface for tracer.
//
// # Usage
//
// Global flags configure the tracer before any command runs:
//
//	tracer --trace-severity=error,warning --trace-medium=file demo
//
// The default command is demo, which walks every severity through the
// console medium and then the file medium.
//
// # Commands
//
//   - demo: exercise every severity and a hex dump on both media
//   - emit: write one message at each severity named in a list
//   - dump: hex dump the contents of files or stdin
//   - repl: drive a tracer interactively with completion and history
//   - init: write the effective flags to the configuration file
//
// # Configuration Loader
//
// Flags may also be read from a YAML configuration file ([resolve]). Keys are
// flag names with or without their group prefix nested as maps:
//
//	trace:
//	  severity: error|warning
//	  medium: file
//	log:
//	  level: debug
//
// # Tracing Options
//
//   - --trace-severity: Enabled severities joined by ',', '|' or '+'
//   - --trace-medium: Output medium (console, file, network)
//   - --trace-dir: Directory of log files written by the file medium
//   - --trace-prefix: File name prefix of log files
//   - --trace-capacity: Maximum size of one rendered line in bytes
//   - --trace-root: Path segment at which rendered file names begin
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log message format (text, json)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tracer .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/tracer/pprof)
package cli
