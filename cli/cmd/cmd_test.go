package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alecthomas/kong"
)

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// readSources builds a SourceFiles from sources and returns everything it
// reads, failing the test if no source could be opened.
func readSources(t *testing.T, sources ...string) (string, SourceFiles) {
	t.Helper()

	src := buildSourceFiles(sources)
	if src == nil {
		t.Fatal("buildSourceFiles returned nil for a readable source")
	}

	t.Cleanup(func() { _ = src.Close() })

	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("reading from source files: %v", err)
	}

	return string(data), src
}

// pipeStdin replaces os.Stdin with a pipe that yields content.
func pipeStdin(t *testing.T, content string) {
	t.Helper()

	oldStdin := os.Stdin
	t.Cleanup(func() { os.Stdin = oldStdin })

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	os.Stdin = r

	go func() {
		defer w.Close()
		_, _ = io.WriteString(w, content)
	}()
}

func TestWithContext(t *testing.T) {
	if kongContextFrom(context.Background()) != nil {
		t.Error("empty context returned a kong context")
	}

	var cli struct{}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := kongContextFrom(WithContext(context.Background(), ktx)); got != ktx {
		t.Error("kong context not recovered")
	}
}

// TestSourceFilesEmpty tests that an empty source list returns nil.
func TestSourceFilesEmpty(t *testing.T) {
	if buildSourceFiles(nil) != nil {
		t.Error("buildSourceFiles(nil) should return nil")
	}

	if buildSourceFiles([]string{}) != nil {
		t.Error("buildSourceFiles([]) should return nil")
	}
}

// TestSourceFilesMultipleFiles tests reading from multiple files in order.
func TestSourceFilesMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	file1 := writeFile(t, dir, "file1.bin", "first")
	file2 := writeFile(t, dir, "file2.bin", "second")

	data, src := readSources(t, file1, file2)
	if data != "firstsecond" {
		t.Errorf("got %q, want %q", data, "firstsecond")
	}

	if names := src.Names(); !slices.Equal(names, []string{file1, file2}) {
		t.Errorf("Names() = %v", names)
	}
}

// TestSourceFilesDuplicates tests that paths resolving to one file are read
// once.
func TestSourceFilesDuplicates(t *testing.T) {
	dir := t.TempDir()
	real := writeFile(t, dir, "real.bin", "unique")

	link := filepath.Join(dir, "link.bin")
	if err := os.Symlink(real, link); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	tests := []struct {
		name    string
		sources []string
	}{
		{"same_path", []string{real, real, real}},
		{"relative_absolute", []string{"real.bin", real}},
		{"symlink", []string{real, link}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, src := readSources(t, tt.sources...)
			if data != "unique" {
				t.Errorf("got %q, want %q (file should only be read once)", data, "unique")
			}

			if n := len(src.Names()); n != 1 {
				t.Errorf("expected 1 opened source, got %d", n)
			}
		})
	}
}

// TestSourceFilesStdinLast tests that stdin is read after every file no
// matter where "-" appears, and only once.
func TestSourceFilesStdinLast(t *testing.T) {
	file := writeFile(t, t.TempDir(), "file.bin", "file")

	pipeStdin(t, "stdin")

	data, src := readSources(t, "-", file, "-")
	if data != "filestdin" {
		t.Errorf("got %q, want %q (stdin should be last)", data, "filestdin")
	}

	if names := src.Names(); !slices.Equal(names, []string{file, stdinSource}) {
		t.Errorf("Names() = %v", names)
	}
}

// TestSourceFilesNonexistent tests that unreadable sources are skipped.
func TestSourceFilesNonexistent(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "exists.bin", "exists")

	data, _ := readSources(t, "/nonexistent/path/file.bin", file, dir)
	if data != "exists" {
		t.Errorf("got %q, want %q", data, "exists")
	}

	if src := buildSourceFiles([]string{
		"/nonexistent/path/file1.bin",
		"/nonexistent/path/file2.bin",
	}); src != nil {
		t.Error("buildSourceFiles should return nil when all files are nonexistent")
	}
}
