package tui

import (
	"bytes"
	"strings"
	"sync"
)

// Console collects text written by handlers and the logger so the view can
// show it under the controls. It is the default callback context of the
// terminal host.
type Console struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewConsole returns an empty console.
func NewConsole() *Console {
	return &Console{}
}

func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Lines returns the last n non-empty lines.
func (c *Console) Lines(n int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, line := range strings.Split(c.buf.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// Reset discards everything written so far.
func (c *Console) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Reset()
}
