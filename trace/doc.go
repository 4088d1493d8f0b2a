// Package trace provides leveled, printf-style trace messages rendered with a
// timestamp, a severity tag and the originating call site, and written to a
// selectable output medium.
//
// # Basic Usage
//
//	func process() {
//		sc := trace.Enter() // writes an "entry" line
//		defer sc.Exit()     // writes an "exit" line
//
//		sc.Logf("processing %d items", n)
//		sc.Errorf("failed: %v", err)
//	}
//
// Each line has the form:
//
//	[DD.MM.YYYY HH:MM:SS] [TAG ] [file] function(): message
//
// Lines at [SeverityDump] omit the file and function.
//
// # Severities
//
// The enabled severities form a bitmask set with [SetSeverity]. A message
// whose severity is not enabled is dropped before it is formatted.
//
//	trace.SetSeverity(trace.SeverityError | trace.SeverityWarning)
//	trace.SetSeverity(trace.SeverityNone) // silence everything but HexDump
//
// # Mediums
//
// Lines are written to exactly one [Output] at a time, selected with
// [SetMedium]: [MediumConsole] (standard output), [MediumFile] (a file named
// <prefix>_<YYYYMMDD>_<HHMMSS>.log) or [MediumNetwork] (not implemented; writes
// nothing). Switching mediums closes the active Output; the next line opens
// the new one.
//
// # Registries
//
// The package-level functions operate on a process-wide default [Registry].
// Independent registries are created with [New] and configured with
// functional options:
//
//	reg := trace.New(
//		trace.WithMedium(trace.MediumFile),
//		trace.WithDirectory("logs"),
//		trace.WithSeverity(trace.SeverityAll))
//
// # Concurrency
//
// All methods are safe for concurrent use. Writes to the active Output are
// serialized by one lock per registry, which is also held while the Output is
// constructed or torn down, so lines are never interleaved and a medium
// switch never races an in-flight write.
package trace
