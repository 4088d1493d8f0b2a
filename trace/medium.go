package trace

import (
	"iter"
	"strings"

	"github.com/ardnew/tracer/pkg"
)

// Medium selects the output destination of rendered lines.
type Medium int

const (
	MediumConsole Medium = iota // console
	MediumFile                  // file
	MediumNetwork               // network
)

// DefaultMedium is the medium a new [Registry] starts with.
const DefaultMedium = MediumConsole

var mediumNames = [...]string{
	MediumConsole: "console",
	MediumFile:    "file",
	MediumNetwork: "network",
}

// Valid reports whether m names a known medium.
func (m Medium) Valid() bool {
	return m >= 0 && int(m) < len(mediumNames)
}

func (m Medium) String() string {
	if !m.Valid() {
		return "unknown"
	}

	return mediumNames[m]
}

// Mediums returns an iterator over the names accepted by [ParseMedium].
func Mediums() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range mediumNames {
			if !yield(name) {
				return
			}
		}
	}
}

// ParseMedium parses a medium name (case-insensitive).
// Unknown names return [DefaultMedium] and [pkg.ErrUnknownMedium].
func ParseMedium(s string) (Medium, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for m, n := range mediumNames {
		if name == n {
			return Medium(m), nil
		}
	}

	switch name {
	case "stdout", "con":
		return MediumConsole, nil
	case "net":
		return MediumNetwork, nil
	}

	return DefaultMedium, pkg.ErrUnknownMedium.Wrapf("%q", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (m Medium) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *Medium) UnmarshalText(text []byte) error {
	med, err := ParseMedium(string(text))
	if err != nil {
		return err
	}

	*m = med

	return nil
}
