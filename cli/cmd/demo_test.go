package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ardnew/tracer/pkg"
	"github.com/ardnew/tracer/trace"
)

// newRegistry returns a registry writing console output to a buffer and log
// files under a temporary directory.
func newRegistry(t *testing.T) (reg *trace.Registry, console *bytes.Buffer, dir string) {
	t.Helper()

	console = new(bytes.Buffer)
	dir = t.TempDir()

	reg = trace.New(
		trace.WithConsole(console),
		trace.WithDirectory(dir),
		trace.WithClock(func() time.Time {
			return time.Date(2024, time.March, 5, 7, 8, 9, 0, time.Local)
		}),
	)
	t.Cleanup(reg.Destroy)

	return reg, console, dir
}

func TestDemoRun(t *testing.T) {
	reg, console, dir := newRegistry(t)

	var stdout bytes.Buffer

	demo := &Demo{Columns: []int{10, 32}, Stdout: &stdout}
	if err := demo.Run(context.Background(), reg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if reg.Medium() != trace.MediumConsole || reg.Severity() != trace.SeverityAll {
		t.Errorf("registry not restored: medium=%v severity=%v", reg.Medium(), reg.Severity())
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one log file, got %v (%v)", matches, err)
	}

	file, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}

	for name, output := range map[string]string{
		"console": console.String(),
		"file":    string(file),
	} {
		t.Run(name, func(t *testing.T) {
			counts := []struct {
				substr string
				want   int
			}{
				// All, then Error|Warning, then None.
				{"[CALL]", 2},
				{"[LOG ] ", 1},
				{"[ERR ] ", 2},
				{"[WARN] ", 2},
				{"[NIMP] ", 1},
				{"printSomething(): Printing as Error scope", 2},
				// Dumps are written even with every severity disabled.
				{"HexDumper {Bytes[128]}", 2},
				{"00 01 02 03 04 05 06 07 08 09 \n", 1},
			}

			for _, c := range counts {
				if got := strings.Count(output, c.substr); got != c.want {
					t.Errorf("count(%q) = %d, want %d", c.substr, got, c.want)
				}
			}
		})
	}

	banners := stdout.String()
	for _, want := range []string{
		"Logging to " + trace.ConsoleLocation,
		"Logging to " + matches[0],
		"Calling printSomething() after disabling all levels",
		"Dumping hexadecimal values as 32 columns",
	} {
		if !strings.Contains(banners, want) {
			t.Errorf("banners missing %q:\n%s", want, banners)
		}
	}
}

func TestDemoRun_InvalidColumns(t *testing.T) {
	reg, console, _ := newRegistry(t)

	err := (&Demo{Columns: []int{10, 0}, Stdout: new(bytes.Buffer)}).Run(context.Background(), reg)
	if !errors.Is(err, pkg.ErrInvalidColumns) {
		t.Fatalf("expected ErrInvalidColumns, got %v", err)
	}

	if console.Len() != 0 {
		t.Errorf("demo wrote before validating columns: %q", console.String())
	}
}
