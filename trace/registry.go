package trace

import (
	"sync"
	"sync/atomic"
)

// Registry owns the enabled-severity mask, the medium selector and the one
// active [Output].
//
// The mask and selector are read without locking on every emit. The active
// Output is created lazily on first use and torn down by [Registry.SetMedium]
// and [Registry.Destroy]. Construction, teardown and every write happen under
// a single lock, so a medium switch never interleaves with a write.
type Registry struct {
	mu       sync.Mutex
	output   *Output
	format   *Formatter
	config   config
	severity atomic.Uint32
	medium   atomic.Int64
}

// New returns a Registry configured by opts. The default configuration is
// [DefaultSeverity], [DefaultMedium] and [DefaultCapacity] with console output
// on [os.Stdout].
func New(opts ...Option) *Registry {
	cfg := makeConfig(opts...)

	r := &Registry{
		config: cfg,
		format: newFormatter(cfg),
	}

	r.severity.Store(uint32(cfg.severity))
	r.medium.Store(int64(cfg.medium))

	return r
}

// Formatter returns the formatter used to render lines.
func (r *Registry) Formatter() *Formatter { return r.format }

// Severity returns the enabled-severity mask.
func (r *Registry) Severity() Severity {
	return Severity(r.severity.Load())
}

// SetSeverity replaces the enabled-severity mask. It takes effect for every
// subsequent emit.
func (r *Registry) SetSeverity(sev Severity) {
	r.severity.Store(uint32(sev))
}

// IsEnabled reports whether any bit of sev is set in the enabled mask.
func (r *Registry) IsEnabled(sev Severity) bool {
	return r.Severity()&sev != 0
}

// Medium returns the medium selector.
func (r *Registry) Medium() Medium {
	return Medium(r.medium.Load())
}

// SetMedium replaces the medium selector and destroys the active Output.
// The next write constructs an Output for the new selector.
func (r *Registry) SetMedium(m Medium) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.medium.Store(int64(m))
	r.destroyLocked()
}

// Instance returns the active Output, constructing it for the current
// selector if none exists. It returns nil when the selector is not a known
// medium.
func (r *Registry) Instance() *Output {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.instanceLocked()
}

func (r *Registry) instanceLocked() *Output {
	if r.output == nil {
		r.output = newOutputLocked(&r.mu, r.Medium(), r.config)
	}

	return r.output
}

// Destroy closes and forgets the active Output. It is safe to call when no
// Output exists.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.destroyLocked()
}

func (r *Registry) destroyLocked() {
	if r.output == nil {
		return
	}

	r.output.retireLocked()
	r.output = nil
}

// Location returns the location of the active Output, constructing it if
// needed.
func (r *Registry) Location() string {
	return r.Instance().Location()
}

// Write appends line to the active Output regardless of the enabled mask.
// The line is dropped when the selector is not a known medium.
func (r *Registry) Write(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if out := r.instanceLocked(); out != nil {
		out.writeLocked(line)
	}
}

// Emitf renders and writes one line at sev for an explicit call site if sev
// is enabled. It is the entry point for adapters that resolve their own
// call sites, such as log handlers.
func (r *Registry) Emitf(
	sev Severity,
	file, function string,
	format string,
	args ...any,
) {
	r.emit(sev, file, function, format, args...)
}

// emit renders and writes one line if sev is enabled. Nothing is formatted
// for a disabled severity.
func (r *Registry) emit(
	sev Severity,
	file, function string,
	format string,
	args ...any,
) {
	if !r.IsEnabled(sev) {
		return
	}

	r.Write(r.format.Render(sev, file, function, format, args...))
}

// HexDump writes the block rendered by [RenderHexDump] to the active Output.
// It is not filtered by the enabled mask. When the active medium has no real
// sink (network, or an unrecognized selector) the block goes to the console
// writer instead, so a dump is never lost.
func (r *Registry) HexDump(title string, data []byte, columns int) {
	block := RenderHexDump(title, data, columns)

	r.mu.Lock()
	defer r.mu.Unlock()

	if out := r.instanceLocked(); out != nil && out.medium != MediumNetwork {
		out.writeLocked(block)

		return
	}

	newConsoleSink(r.config.console).write(block)
}
