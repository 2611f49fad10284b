// Package render pushes the composed status line to a display surface.
//
// Renderers are deliberately fire-and-forget: the display surface is an
// external collaborator that may be temporarily unreachable (X server
// restarting, pipe consumer gone), and the next aggregator wake retries
// naturally. No renderer returns an error or panics.
package render

import (
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Renderer is the display surface contract: one operation, no result.
// Implementations must swallow failures.
type Renderer interface {
	// SetStatus replaces the displayed status line with text.
	SetStatus(text string)
}

// XRoot sets the X root window name via xsetroot(1), which is how dwm
// reads its status text.
type XRoot struct{}

// SetStatus invokes xsetroot. A missing binary or unreachable display
// fails silently.
func (XRoot) SetStatus(text string) {
	_ = exec.Command("xsetroot", "-name", text).Run()
}

// Writer renders each status line to an io.Writer, one line per update.
// Useful for bars that read stdin (lemonbar and friends) and for tests.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a [Writer] rendering to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// SetStatus writes text followed by a newline. Write errors are swallowed.
func (r *Writer) SetStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.w, text)
}
