package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/tracer/pkg"
	"github.com/ardnew/tracer/trace"
)

func TestDumpRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "abc.bin", "ABCDE")

	tests := []struct {
		name    string
		title   string
		columns int
		want    string
	}{
		{"default_title", "", 4, trace.RenderHexDump(path, []byte("ABCDE"), 4)},
		{"explicit_title", "letters", 2, trace.RenderHexDump("letters", []byte("ABCDE"), 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, console, _ := newRegistry(t)

			// Dumps are not filtered by the enabled mask.
			reg.SetSeverity(trace.SeverityNone)

			d := &Dump{Columns: tt.columns, Title: tt.title, Source: []string{path}}
			if err := d.Run(reg); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got := strings.TrimSuffix(console.String(), "\n"); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestDumpRun_Stdin(t *testing.T) {
	reg, console, _ := newRegistry(t)

	pipeStdin(t, "\x00\xff")

	if err := (&Dump{Columns: 8, Source: []string{"-"}}).Run(reg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := trace.RenderHexDump("-", []byte{0x00, 0xff}, 8)
	if got := strings.TrimSuffix(console.String(), "\n"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dump    Dump
		wantErr error
	}{
		{"zero_columns", Dump{Columns: 0, Source: []string{"-"}}, pkg.ErrInvalidColumns},
		{"negative_columns", Dump{Columns: -3, Source: []string{"-"}}, pkg.ErrInvalidColumns},
		{"missing_source", Dump{Columns: 8, Source: []string{"/nonexistent/input.bin"}}, pkg.ErrReadInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, console, _ := newRegistry(t)

			err := tt.dump.Run(reg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if !errors.Is(err, ErrHexDump) {
				t.Errorf("expected the error to wrap ErrHexDump, got %v", err)
			}

			if console.Len() != 0 {
				t.Errorf("unexpected output: %q", console.String())
			}
		})
	}
}
