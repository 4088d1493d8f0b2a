package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// maxHistory is the number of entries kept in memory and on disk.
const maxHistory = 500

// History is the list of REPL command lines, oldest first, persisted one
// line per entry. Repeated lines collapse onto their most recent use.
type History struct {
	path    string
	entries []string
	limit   int
	mu      sync.RWMutex
}

// NewHistory returns an empty History persisted at path.
func NewHistory(path string) *History {
	return &History{path: path, limit: maxHistory}
}

// Load replaces the entries with those stored at the history path.
// A missing file leaves the history empty. Files holding more than the
// limit are compacted to their newest entries.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	var entries []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			entries = append(entries, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	h.entries = entries

	if h.trimLocked() {
		_, err = h.rewriteLocked()
	}

	return err
}

// Write records entry as the most recent line. Blank entries are ignored.
// An earlier copy of entry is removed, which rewrites the file; otherwise
// the entry is appended.
func (h *History) Write(entry string) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return 0, nil
	}

	rewrite := false
	if i := slices.Index(h.entries, entry); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
		rewrite = true
	}

	h.entries = append(h.entries, entry)

	if h.trimLocked() || rewrite {
		return h.rewriteLocked()
	}

	return h.appendLocked(entry)
}

// GetLine returns the entry at index i, where 0 is the oldest.
func (h *History) GetLine(i int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// trimLocked drops the oldest entries beyond the limit and reports whether
// any were dropped.
func (h *History) trimLocked() bool {
	if h.limit <= 0 || len(h.entries) <= h.limit {
		return false
	}

	h.entries = slices.Clone(h.entries[len(h.entries)-h.limit:])

	return true
}

func (h *History) appendLocked(entry string) (int, error) {
	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(entry + "\n")
}

// rewriteLocked replaces the file content with the current entries.
func (h *History) rewriteLocked() (int, error) {
	data := strings.Join(h.entries, "\n")
	if data != "" {
		data += "\n"
	}

	if err := os.WriteFile(h.path, []byte(data), 0o600); err != nil {
		return 0, err
	}

	return len(data), nil
}
