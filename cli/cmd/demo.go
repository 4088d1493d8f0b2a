package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/tracer/log"
	"github.com/ardnew/tracer/pkg"
	"github.com/ardnew/tracer/trace"
)

// demoDataSize is the length of the counting buffer dumped by [Demo].
const demoDataSize = 128

// bannerStyle renders the section headings printed between demo passes.
var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// demoPass selects the enabled mask of one call to [printSomething].
type demoPass struct {
	mask trace.Severity
	desc string
}

var demoPasses = []demoPass{
	{trace.SeverityAll, "enabling all levels"},
	{trace.SeverityError | trace.SeverityWarning, "enabling error and warning levels"},
	{trace.SeverityNone, "disabling all levels"},
}

// Demo exercises every severity and a hex dump through the console medium
// and then the file medium.
type Demo struct {
	Columns []int `default:"10,32" help:"Hex dump column counts, one dump per value." sep:","`

	Stdout io.Writer `kong:"-"`
}

// Run executes the demo command. The registry's mask and medium are restored
// when the demo returns.
func (d *Demo) Run(ctx context.Context, reg *trace.Registry) error {
	for _, cols := range d.Columns {
		if cols < 1 {
			return ErrDemo.
				With(slog.Int("columns", cols)).
				Wrap(pkg.ErrInvalidColumns)
		}
	}

	out := d.Stdout
	if out == nil {
		out = os.Stdout
	}

	prevSeverity, prevMedium := reg.Severity(), reg.Medium()
	defer func() {
		reg.SetMedium(prevMedium)
		reg.SetSeverity(prevSeverity)
	}()

	for _, medium := range []trace.Medium{trace.MediumConsole, trace.MediumFile} {
		reg.SetMedium(medium)

		log.DebugContext(ctx, "demo medium",
			slog.String("medium", medium.String()),
			slog.String("location", reg.Location()),
		)

		banner(out, "Logging to %s", reg.Location())

		for _, pass := range demoPasses {
			reg.SetSeverity(pass.mask)
			banner(out, "Calling printSomething() after %s", pass.desc)
			printSomething(reg)
		}

		for _, cols := range d.Columns {
			banner(out, "Dumping hexadecimal values as %d columns", cols)
			dumpCounting(reg, cols)
		}
	}

	return nil
}

func banner(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "\n%s\n", bannerStyle.Render("*** "+fmt.Sprintf(format, args...)))
}

func printSomething(reg *trace.Registry) {
	sc := reg.Enter()
	defer sc.Exit()

	sc.Logf("Printing as Log scope")
	sc.Errorf("Printing as Error scope")
	sc.Warnf("Printing as Warn scope")
	sc.NotImplementedf("Printing as NotImplemented scope")
}

// dumpCounting dumps the bytes 0 through demoDataSize-1.
func dumpCounting(reg *trace.Registry, columns int) {
	sc := reg.Enter()
	defer sc.Exit()

	data := make([]byte, demoDataSize)
	for i := range data {
		data[i] = byte(i)
	}

	reg.HexDump("HexDumper", data, columns)
}
