package osk

import "sync"

// Clipboard is the system clipboard as seen by the engine.
type Clipboard interface {
	SetText(text string) error
	Text() (string, error)
}

// MemoryClipboard is a process-local clipboard. It is the default when a
// host does not provide one.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

func (c *MemoryClipboard) SetText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

func (c *MemoryClipboard) Text() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}
