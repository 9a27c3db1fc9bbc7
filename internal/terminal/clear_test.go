package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestClearLines(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		width    int
		wantUp   int
		wantKill int
	}{
		{"empty input still clears prompt line", 0, 80, 1, 2},
		{"fits on one line", 40, 80, 1, 2},
		{"wraps to three lines", 170, 80, 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			clearLines(&buf, tt.length, tt.width)
			out := buf.String()
			if got := strings.Count(out, "\x1b[1A"); got != tt.wantUp {
				t.Errorf("cursor-up count = %d, want %d", got, tt.wantUp)
			}
			if got := strings.Count(out, "\x1b[2K"); got != tt.wantKill {
				t.Errorf("erase count = %d, want %d", got, tt.wantKill)
			}
		})
	}
}
