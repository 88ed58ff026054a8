// Package clipboard copies result links to the user's clipboard.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

var ErrUnavailable = errors.New("clipboard unavailable")

// Writer places text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// System writes through the platform clipboard utility. When none is
// installed and the output is a terminal, it emits an OSC 52 sequence so
// terminal emulators that support it can set the clipboard themselves.
type System struct {
	out         io.Writer
	isTerminal  func() bool
	write       func(string) error
	unsupported bool
}

// NewSystem returns a System that falls back to OSC 52 on os.Stdout.
func NewSystem() *System {
	return &System{
		out:         os.Stdout,
		isTerminal:  func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
		write:       clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

func (s *System) WriteText(text string) error {
	var nativeErr error
	if !s.unsupported {
		if nativeErr = s.write(text); nativeErr == nil {
			return nil
		}
	}

	if s.out != nil && s.isTerminal != nil && s.isTerminal() {
		if _, err := io.WriteString(s.out, osc52(text)); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	}

	if nativeErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, nativeErr)
	}
	return ErrUnavailable
}

func osc52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}

// Memory is an in-process clipboard.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
	Err    error
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	m.writes++
	return nil
}

// Text returns the last written value.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes counts successful writes.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
