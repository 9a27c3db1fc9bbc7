package chart

import "sync"

// Instance is a chart bound to a canvas.
type Instance interface {
	Canvas() *Canvas
	Config() Config
	// Destroy releases the canvas. Calling it twice is a no-op.
	Destroy()
}

// Renderer draws a configuration onto a canvas.
type Renderer interface {
	Render(c *Canvas, cfg Config) (Instance, error)
}

// Slot holds at most one live chart instance.
type Slot struct {
	mu  sync.Mutex
	cur Instance
}

// Replace destroys the live instance, if any, then stores inst.
func (s *Slot) Replace(inst Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur != nil {
		s.cur.Destroy()
	}
	s.cur = inst
}

// Teardown destroys the live instance and leaves the slot empty.
func (s *Slot) Teardown() {
	s.Replace(nil)
}

// Current returns the live instance or nil.
func (s *Slot) Current() Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Live reports whether an instance is held.
func (s *Slot) Live() bool {
	return s.Current() != nil
}
