package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToaster(t *testing.T) {
	var buf bytes.Buffer
	n := New(&buf)
	n.Success("SQL Generated Successfully")
	n.Error("Atomic check failed!")
	out := buf.String()
	assert.Contains(t, out, "SQL Generated Successfully")
	assert.Contains(t, out, "Atomic check failed!")

	buf.Reset()
	n.Quiet(true)
	n.Success("hidden")
	n.Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
