package cmd

import (
	"fmt"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/hako/durafmt"
	"github.com/pterm/pterm"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// spinner is a single-line busy indicator in a pterm area. The text can be
// changed while it runs. The zero value is ready to use.
type spinner struct {
	mu   sync.Mutex
	text string
	area *pterm.AreaPrinter
	stop chan struct{}
	wg   sync.WaitGroup
}

// Start shows the spinner with text, or only updates the text when it is
// already running.
func (s *spinner) Start(text string) {
	s.mu.Lock()
	s.text = text
	if s.area != nil {
		s.mu.Unlock()
		return
	}
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		s.mu.Unlock()
		cursor.Show()
		return
	}
	s.area = area
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		for {
			select {
			case <-t.C:
				i++
				s.mu.Lock()
				area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], s.text))
				s.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
}

// Stop removes the spinner line. Stopping a stopped spinner is a no-op.
func (s *spinner) Stop() {
	s.mu.Lock()
	if s.area == nil {
		s.mu.Unlock()
		return
	}
	close(s.stop)
	area := s.area
	s.area = nil
	s.mu.Unlock()

	s.wg.Wait()
	_ = area.Stop()
	cursor.Show()
}

// elapsed formats d for humans: whole seconds past ten seconds, tenths below.
func elapsed(d time.Duration) string {
	switch {
	case d >= 10*time.Second:
		d = d.Round(time.Second)
	case d >= 100*time.Millisecond:
		d = d.Round(100 * time.Millisecond)
	default:
		d = d.Round(time.Millisecond)
	}
	return durafmt.Parse(d).String()
}
