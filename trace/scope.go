package trace

import (
	"runtime"
	"strings"
	"sync/atomic"
)

// Scope identifies the call site of a group of trace messages.
//
// A Scope is active from construction until [Scope.Exit], after which it is
// retired and drops every message. When constructed with entry/exit tracing,
// construction emits an "entry" line and Exit emits an "exit" line at
// [SeverityCallTrace]. Pair construction with a deferred Exit so the exit line
// is written on every return path:
//
//	sc := reg.Enter()
//	defer sc.Exit()
//
// The zero Scope is inert: it has no call site or registry and drops every
// message.
type Scope struct {
	reg       *Registry
	file      string
	function  string
	line      int
	entryExit bool
	retired   atomic.Bool
}

// Enter returns a Scope for the calling function with entry/exit tracing.
func (r *Registry) Enter() *Scope {
	file, function, line := callSite(1)

	return r.Begin(file, function, line, true)
}

// EnterQuiet returns a Scope for the calling function without entry/exit
// tracing.
func (r *Registry) EnterQuiet() *Scope {
	file, function, line := callSite(1)

	return r.Begin(file, function, line, false)
}

// Begin returns a Scope for an explicit call site. If entryExit is true and
// [SeverityCallTrace] is enabled, an "entry" line is emitted immediately.
func (r *Registry) Begin(
	file, function string,
	line int,
	entryExit bool,
) *Scope {
	s := &Scope{
		reg:       r,
		file:      file,
		function:  function,
		line:      line,
		entryExit: entryExit,
	}

	if entryExit {
		r.emit(SeverityCallTrace, file, function, "entry")
	}

	return s
}

// Within runs fn inside a Scope for the calling function. The exit line is
// written after fn returns or panics.
func (r *Registry) Within(fn func(*Scope) error) error {
	file, function, line := callSite(1)

	s := r.Begin(file, function, line, true)
	defer s.Exit()

	return fn(s)
}

// callSite returns the location of the caller skip frames above the caller
// of callSite.
func callSite(skip int) (file, function string, line int) {
	var pcs [1]uintptr

	// Skip runtime.Callers and callSite.
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return "", "", 0
	}

	frame, _ := runtime.CallersFrames(pcs[:]).Next()

	return frame.File, shortFunction(frame.Function), frame.Line
}

// shortFunction strips the import path from a fully-qualified function name.
func shortFunction(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// File returns the source file of the call site.
func (s *Scope) File() string { return s.file }

// Function returns the function name of the call site.
func (s *Scope) Function() string { return s.function }

// Line returns the line number of the call site.
func (s *Scope) Line() int { return s.line }

// Active reports whether s has not been retired by Exit.
func (s *Scope) Active() bool { return s != nil && !s.retired.Load() }

// Exit retires s. If s was constructed with entry/exit tracing and
// [SeverityCallTrace] is enabled, an "exit" line is emitted. Only the first
// call has any effect.
func (s *Scope) Exit() {
	if s == nil || !s.retired.CompareAndSwap(false, true) {
		return
	}

	if s.entryExit && s.reg != nil {
		s.reg.emit(SeverityCallTrace, s.file, s.function, "exit")
	}
}

func (s *Scope) emit(sev Severity, format string, args ...any) {
	if !s.Active() || s.reg == nil {
		return
	}

	s.reg.emit(sev, s.file, s.function, format, args...)
}

// Logf emits a message at [SeverityLog].
func (s *Scope) Logf(format string, args ...any) {
	s.emit(SeverityLog, format, args...)
}

// Errorf emits a message at [SeverityError].
func (s *Scope) Errorf(format string, args ...any) {
	s.emit(SeverityError, format, args...)
}

// Warnf emits a message at [SeverityWarning].
func (s *Scope) Warnf(format string, args ...any) {
	s.emit(SeverityWarning, format, args...)
}

// NotImplementedf emits a message at [SeverityNotImplemented].
func (s *Scope) NotImplementedf(format string, args ...any) {
	s.emit(SeverityNotImplemented, format, args...)
}

// NotImplemented emits an empty message at [SeverityNotImplemented].
func (s *Scope) NotImplemented() {
	s.emit(SeverityNotImplemented, "")
}

// Dumpf emits a message at [SeverityDump]. Dump lines carry no call site.
func (s *Scope) Dumpf(format string, args ...any) {
	s.emit(SeverityDump, format, args...)
}
