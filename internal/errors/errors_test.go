// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "direct", err: New(Application, "bad"), want: Application},
		{name: "wrapped by fmt", err: fmt.Errorf("stage: %w", Wrap(Transport, "", io.EOF)), want: Transport},
		{name: "plain error", err: io.EOF, want: ""},
		{name: "nil", err: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestSentinelMatchesByKind(t *testing.T) {
	err := fmt.Errorf("submit: %w", New(Busy, "query already running"))
	assert.True(t, stderrors.Is(err, ErrBusy))
	assert.False(t, stderrors.Is(err, ErrNoSQL))
}

func TestUnwrapReachesCause(t *testing.T) {
	err := Wrap(Transport, "post failed", io.ErrUnexpectedEOF)
	assert.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, "transport: post failed: unexpected EOF", err.Error())
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Prompt is required", MessageOf(fmt.Errorf("x: %w", New(Application, "Prompt is required"))))
	assert.Equal(t, "", MessageOf(io.EOF))
}
