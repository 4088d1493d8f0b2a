package trace

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf.Reset()
}

// Lines returns the newline-terminated lines written so far.
func (b *syncBuffer) Lines() []string {
	s := b.String()
	if s == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// testTime renders as "05.03.2024 07:08:09".
var testTime = time.Date(2024, time.March, 5, 7, 8, 9, 0, time.Local)

func testClock() time.Time { return testTime }

// lineRegexp matches one complete rendered line.
var lineRegexp = regexp.MustCompile(
	`^\[\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}:\d{2}\] \[(ERR |WARN|LOG |CALL|NIMP)\] \[[^\]]*\] [^ ]+\(\): .*$`,
)

// newTestRegistry returns a registry writing console output to a buffer.
func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *syncBuffer) {
	t.Helper()

	var buf syncBuffer

	reg := New(append([]Option{WithConsole(&buf), WithClock(testClock)}, opts...)...)
	t.Cleanup(reg.Destroy)

	return reg, &buf
}
