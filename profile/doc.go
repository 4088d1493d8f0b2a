// Package profile provides optional runtime profiling for the tracer
// command.
//
// Profiling is compiled in only with the "pprof" build tag ([Tag]) and wraps
// [github.com/pkg/profile]. Without the tag, [Profiler.Start] always returns
// a no-op and [Modes] is empty.
//
//	p := profile.Make(
//		profile.WithMode("mutex"),
//		profile.WithPath(dir),
//	)
//	defer p.Start().Stop()
//
// The "mutex" and "block" modes are the useful ones for the tracer: every
// write and medium switch serializes on one lock per registry, and these
// profiles show how long emitters wait on it.
//
// Profile files are written to the configured directory with names matching
// the mode (cpu.pprof, mutex.pprof, ...) and analyzed with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/tracer/pprof/mutex.pprof
//
// Builds with the tag also import [net/http/pprof], registering its handlers
// on [net/http.DefaultServeMux].
package profile
