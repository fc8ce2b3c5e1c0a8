// Package clipboard reads and writes the system clipboard.
package clipboard

import (
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard is a text clipboard.
type Clipboard interface {
	// ReadText returns the clipboard text with surrounding whitespace removed.
	ReadText() (string, error)
	// WriteText replaces the clipboard contents with text.
	WriteText(text string) error
}

var (
	readAll  = clipboard.ReadAll
	writeAll = clipboard.WriteAll
)

// System is the OS clipboard.
type System struct{}

// Available reports whether a clipboard backend was found on this system.
func (System) Available() bool {
	return !clipboard.Unsupported
}

func (System) ReadText() (string, error) {
	text, err := readAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (System) WriteText(text string) error {
	if err := writeAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard, used when no system clipboard is wanted.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory creates a Memory clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.TrimSpace(m.text), nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Text returns the raw stored text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
