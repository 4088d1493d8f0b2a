package cmd

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/tracer/pkg"
	"github.com/ardnew/tracer/trace"
)

// Dump writes the hex dump of its input sources through the active medium.
type Dump struct {
	Columns int      `default:"${columns}" help:"Bytes per row."                                  short:"c"`
	Title   string   `                     help:"Title of the dump block (default: source names)." short:"t"`
	Source  []string `arg:""               help:"Input file(s) or '-' for stdin."                            default:"-" optional:""`
}

// Run executes the dump command.
func (d *Dump) Run(reg *trace.Registry) (err error) {
	if d.Columns < 1 {
		return ErrHexDump.
			With(slog.Int("columns", d.Columns)).
			Wrap(pkg.ErrInvalidColumns)
	}

	src := buildSourceFiles(d.Source)
	if src == nil {
		return ErrHexDump.
			With(slog.Any("source", d.Source)).
			Wrap(pkg.ErrReadInput)
	}

	defer func() {
		if cerr := src.Close(); err == nil && cerr != nil {
			err = ErrHexDump.Wrap(pkg.ErrReadInput.Wrap(cerr))
		}
	}()

	data, err := io.ReadAll(src)
	if err != nil {
		return ErrHexDump.
			With(slog.Any("source", src.Names())).
			Wrap(pkg.ErrReadInput.Wrap(err))
	}

	title := d.Title
	if title == "" {
		title = strings.Join(src.Names(), ", ")
	}

	reg.HexDump(title, data, d.Columns)

	return nil
}
