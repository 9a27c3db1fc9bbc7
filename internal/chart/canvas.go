package chart

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-runewidth"
)

// Default canvas dimensions, in pixels for exported configs and in
// terminal cells divided by ten for the text renderer.
const (
	DefaultWidth  = 300
	DefaultHeight = 300
)

// Canvas is a drawing surface with a stable identity.
// A canvas is never reused across chart generations.
type Canvas struct {
	ID     string
	Width  int
	Height int

	content string
	message string
}

// Draw replaces the canvas content.
func (c *Canvas) Draw(s string) {
	c.content = s
	c.message = ""
}

// Clear wipes the canvas.
func (c *Canvas) Clear() {
	c.content = ""
	c.message = ""
}

// PaintMessage clears the canvas and shows msg centred on it.
func (c *Canvas) PaintMessage(msg string) {
	c.content = ""
	c.message = msg
}

// Message returns the centred message, if any.
func (c *Canvas) Message() string { return c.message }

// String renders the canvas for a terminal.
func (c *Canvas) String() string {
	if c.message == "" {
		return c.content
	}
	cols := c.Width / 10
	rows := c.Height / 30
	pad := (cols - runewidth.StringWidth(c.message)) / 2
	if pad < 0 {
		pad = 0
	}
	var b strings.Builder
	for i := 0; i < rows/2; i++ {
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(c.message)
	b.WriteByte('\n')
	return b.String()
}

// Surface hands out fresh canvases.
type Surface struct {
	seq atomic.Uint64
}

// NewCanvas returns a new canvas whose ID differs from every earlier one.
func (s *Surface) NewCanvas() *Canvas {
	n := s.seq.Add(1)
	return &Canvas{
		ID:     fmt.Sprintf("myChart-%d", n),
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}
