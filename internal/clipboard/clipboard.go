// Package clipboard connects the grid to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// System reads and writes the OS clipboard. When no native clipboard tool
// is available (SSH sessions, minimal containers) writes fall back to an
// OSC 52 escape sequence, which most terminals forward to the local
// clipboard. Reads have no such fallback; pasting then relies on the
// terminal's bracketed paste.
type System struct {
	out   io.Writer
	read  func() (string, error)
	write func(string) error
}

// New returns a clipboard writing its OSC 52 fallback to out. A nil out
// disables the fallback.
func New(out io.Writer) *System {
	return &System{out: out, read: clipboard.ReadAll, write: clipboard.WriteAll}
}

// ReadText returns the clipboard contents.
func (s *System) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("clipboard: no clipboard utility found, use the terminal's paste")
	}
	text, err := s.read()
	if err != nil {
		return "", fmt.Errorf("clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard contents.
func (s *System) WriteText(text string) error {
	err := s.write(text)
	if err == nil || s.out == nil {
		return err
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, werr := seq.WriteTo(s.out); werr != nil {
		return fmt.Errorf("clipboard: %w", errors.Join(err, werr))
	}
	return nil
}
