package trace

import "sync/atomic"

// defaultRegistry backs the package-level functions.
var defaultRegistry atomic.Pointer[Registry]

func init() {
	defaultRegistry.Store(New())
}

// Default returns the process-wide registry used by the package-level
// functions and by zero [Scope] values.
func Default() *Registry {
	return defaultRegistry.Load()
}

// Reset replaces the default registry with one configured by opts and
// destroys the Output of the registry it replaces.
func Reset(opts ...Option) *Registry {
	r := New(opts...)

	if old := defaultRegistry.Swap(r); old != nil {
		old.Destroy()
	}

	return r
}

// SetSeverity replaces the enabled-severity mask of the default registry.
func SetSeverity(sev Severity) { Default().SetSeverity(sev) }

// SetMedium replaces the medium selector of the default registry and
// destroys its active Output.
func SetMedium(m Medium) { Default().SetMedium(m) }

// IsEnabled reports whether sev is enabled in the default registry.
func IsEnabled(sev Severity) bool { return Default().IsEnabled(sev) }

// Instance returns the active Output of the default registry.
func Instance() *Output { return Default().Instance() }

// Destroy closes the active Output of the default registry.
func Destroy() { Default().Destroy() }

// HexDump writes a hex dump through the default registry (see [Registry.HexDump]).
// It is not filtered by the enabled mask.
func HexDump(title string, data []byte, columns int) {
	Default().HexDump(title, data, columns)
}

// Enter returns a Scope of the default registry for the calling function
// with entry/exit tracing.
func Enter() *Scope {
	file, function, line := callSite(1)

	return Default().Begin(file, function, line, true)
}

// EnterQuiet returns a Scope of the default registry for the calling
// function without entry/exit tracing.
func EnterQuiet() *Scope {
	file, function, line := callSite(1)

	return Default().Begin(file, function, line, false)
}

// Within runs fn inside a Scope of the default registry for the calling
// function.
func Within(fn func(*Scope) error) error {
	file, function, line := callSite(1)

	s := Default().Begin(file, function, line, true)
	defer s.Exit()

	return fn(s)
}
