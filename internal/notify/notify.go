// Package notify shows transient success and error messages in the terminal.
package notify

import (
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
)

// Toaster prints one prefixed line per message. It is safe for concurrent
// use; lines from overlapping checks never interleave.
type Toaster struct {
	mu      sync.Mutex
	success *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
	quiet   bool
}

// New returns a Toaster writing to w (stderr when nil).
func New(w io.Writer) *Toaster {
	if w == nil {
		w = os.Stderr
	}
	return &Toaster{
		success: pterm.Success.WithWriter(w),
		failure: pterm.Error.WithWriter(w),
	}
}

// Quiet suppresses success messages. Errors are always shown.
func (t *Toaster) Quiet(q bool) *Toaster {
	t.quiet = q
	return t
}

func (t *Toaster) Success(msg string) {
	if t.quiet {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.success.Println(msg)
}

func (t *Toaster) Error(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failure.Println(msg)
}
