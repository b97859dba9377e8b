// Package progress implements the best-effort progress line shown during a
// backup run.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Line rewrites a single terminal line per report. Safe for concurrent use,
// although a backup run reports from one goroutine.
type Line struct {
	mu      sync.Mutex
	w       io.Writer
	lastLen int
}

func New(w io.Writer) *Line {
	return &Line{w: w}
}

func (l *Line) Report(message string, percent int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%3d%%] %s", percent, message)
	pad := ""
	if n := l.lastLen - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(l.w, "\r%s%s", line, pad)
	l.lastLen = len(line)
}

// Done terminates the progress line so following output starts clean.
func (l *Line) Done() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lastLen > 0 {
		fmt.Fprintln(l.w)
		l.lastLen = 0
	}
}
