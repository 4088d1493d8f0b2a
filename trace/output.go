package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ConsoleLocation identifies the console medium.
const ConsoleLocation = "console::stdout"

// NetworkNotImplemented is printed to the console when the network medium is
// selected.
const NetworkNotImplemented = "Network Medium not implemented. " +
	"Please use either Console or File Medium"

// sink is one physical output destination. Implementations are called only
// while the owning registry's lock is held.
type sink interface {
	write(line string)
	location() string
	close() error
}

// Output is the active output medium of a [Registry].
//
// Every Output constructed by a Registry shares that registry's lock, so
// writes through any of them are mutually exclusive with each other and with
// medium switches. An Output retired by [Registry.SetMedium] or
// [Registry.Destroy] drops all further writes.
type Output struct {
	mu      *sync.Mutex
	sink    sink
	medium  Medium
	retired bool
}

// Write appends line and a trailing newline to the medium.
func (o *Output) Write(line string) {
	if o == nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.writeLocked(line)
}

func (o *Output) writeLocked(line string) {
	if o.retired {
		return
	}

	o.sink.write(line)
}

// Location returns a human-readable identifier of the medium's sink.
func (o *Output) Location() string {
	if o == nil {
		return ""
	}

	return o.sink.location()
}

// Medium returns the selector this Output was constructed for.
func (o *Output) Medium() Medium {
	if o == nil {
		return -1
	}

	return o.medium
}

// retireLocked closes the sink and marks o retired.
func (o *Output) retireLocked() {
	if o.retired {
		return
	}

	o.retired = true
	_ = o.sink.close()
}

// newOutputLocked constructs the Output variant selected by m.
// It returns nil for unrecognized selectors.
func newOutputLocked(mu *sync.Mutex, m Medium, c config) *Output {
	var s sink

	switch m {
	case MediumConsole:
		s = newConsoleSink(c.console)
	case MediumFile:
		s = newFileSink(c)
	case MediumNetwork:
		s = newNetworkSink(c.console)
	default:
		return nil
	}

	return &Output{mu: mu, sink: s, medium: m}
}

// flusher is implemented by buffered writers.
type flusher interface{ Flush() error }

type consoleSink struct {
	w io.Writer
}

func newConsoleSink(w io.Writer) *consoleSink {
	return &consoleSink{w: w}
}

func (s *consoleSink) write(line string) {
	_, _ = io.WriteString(s.w, line+"\n")

	if f, ok := s.w.(flusher); ok {
		_ = f.Flush()
	}
}

func (s *consoleSink) location() string { return ConsoleLocation }

func (s *consoleSink) close() error {
	if f, ok := s.w.(flusher); ok {
		return f.Flush()
	}

	return nil
}

// fileSink appends to a log file named after the time it was opened.
// A fileSink whose file could not be opened drops every write.
type fileSink struct {
	file *os.File
	path string
}

// FileName returns the base name of a log file opened at the time stamped in
// prefix_YYYYMMDD_HHMMSS.log form.
func FileName(prefix string, t time.Time) string {
	return prefix + "_" + t.Format("20060102_150405") + ".log"
}

func newFileSink(c config) *fileSink {
	s := &fileSink{path: filepath.Join(c.dir, FileName(c.prefix, c.now()))}

	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			fmt.Fprintln(c.console, "Failed to open a log file:", s.path)

			return s
		}
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(c.console, "Failed to open a log file:", s.path)

		return s
	}

	s.file = file

	return s
}

func (s *fileSink) write(line string) {
	if s.file == nil {
		return
	}

	_, _ = s.file.WriteString(line + "\n")
}

func (s *fileSink) location() string { return s.path }

func (s *fileSink) close() error {
	if s.file == nil {
		return nil
	}

	err := s.file.Close()
	s.file = nil

	return err
}

// networkSink is a placeholder for a remote medium. It writes nothing.
type networkSink struct{}

func newNetworkSink(console io.Writer) networkSink {
	fmt.Fprintln(console, NetworkNotImplemented)

	return networkSink{}
}

func (networkSink) write(string) {}

func (networkSink) location() string { return "" }

func (networkSink) close() error { return nil }
