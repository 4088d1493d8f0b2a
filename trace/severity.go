package trace

import (
	"iter"
	"strings"

	"github.com/ardnew/tracer/pkg"
)

// Severity is a bitset over the kinds of trace message.
// A message of kind S is emitted only when the enabled mask has S set.
type Severity uint32

const (
	SeverityError          Severity = 1 << iota // error
	SeverityWarning                             // warning
	SeverityLog                                 // log
	SeverityCallTrace                           // call
	SeverityNotImplemented                      // nimp
	SeverityDump                                // dump
)

const (
	// SeverityNone disables every severity.
	SeverityNone Severity = 0
	// SeverityAll enables every severity, including bits not yet named.
	SeverityAll Severity = ^SeverityNone
)

// DefaultSeverity is the mask a new [Registry] starts with.
const DefaultSeverity = SeverityAll

var severityNames = []struct {
	sev  Severity
	name string
	tag  string
}{
	{SeverityError, "error", "ERR "},
	{SeverityWarning, "warning", "WARN"},
	{SeverityLog, "log", "LOG "},
	{SeverityCallTrace, "call", "CALL"},
	{SeverityNotImplemented, "nimp", "NIMP"},
	{SeverityDump, "dump", "DUMP"},
}

// severityAlias maps alternate spellings accepted by [ParseSeverity].
var severityAlias = map[string]Severity{
	"err":             SeverityError,
	"warn":            SeverityWarning,
	"calltrace":       SeverityCallTrace,
	"trace":           SeverityCallTrace,
	"notimplemented":  SeverityNotImplemented,
	"not-implemented": SeverityNotImplemented,
}

// Tag returns the fixed four-character label rendered for a single severity.
// Masks with zero or several bits set have a blank tag.
func (s Severity) Tag() string {
	for _, n := range severityNames {
		if s == n.sev {
			return n.tag
		}
	}

	return "    "
}

// Has reports whether every bit of other is set in s.
func (s Severity) Has(other Severity) bool {
	return other != SeverityNone && s&other == other
}

// Kinds returns an iterator over the named severities set in s.
func (s Severity) Kinds() iter.Seq[Severity] {
	return func(yield func(Severity) bool) {
		for _, n := range severityNames {
			if s&n.sev != 0 && !yield(n.sev) {
				return
			}
		}
	}
}

// String returns the lower-case names of the severities in s joined by "|".
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityAll:
		return "all"
	}

	var names []string

	for _, n := range severityNames {
		if s&n.sev != 0 {
			names = append(names, n.name)
		}
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}

// Severities returns an iterator over the names accepted by [ParseSeverity].
func Severities() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range severityNames {
			if !yield(n.name) {
				return
			}
		}

		for _, name := range []string{"all", "none"} {
			if !yield(name) {
				return
			}
		}
	}
}

// ParseSeverity parses a list of severity names separated by commas, pipes,
// plus signs or whitespace. The special names "all" and "none" select
// [SeverityAll] and [SeverityNone]. Matching is case-insensitive.
//
// Unknown names are reported with [pkg.ErrUnknownSeverity]; the mask built
// from the recognized names is still returned.
func ParseSeverity(s string) (Severity, error) {
	var (
		mask    Severity
		unknown []string
	)

	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		switch r {
		case ',', '|', '+', ' ', '\t', '\n':
			return true
		}

		return false
	})

	for _, f := range fields {
		if sev, ok := lookupSeverity(f); ok {
			mask |= sev

			continue
		}

		unknown = append(unknown, f)
	}

	if len(unknown) > 0 {
		return mask, pkg.ErrUnknownSeverity.Wrapf("%s", strings.Join(unknown, ", "))
	}

	return mask, nil
}

func lookupSeverity(name string) (Severity, bool) {
	switch name {
	case "all":
		return SeverityAll, true
	case "none":
		return SeverityNone, true
	}

	for _, n := range severityNames {
		if name == n.name {
			return n.sev, true
		}
	}

	sev, ok := severityAlias[name]

	return sev, ok
}

// MarshalText implements [encoding.TextMarshaler].
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}

	*s = sev

	return nil
}
