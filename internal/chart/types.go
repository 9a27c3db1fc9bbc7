// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package chart turns backend chart data into a rendered chart.
//
// A Config mirrors the Chart.js configuration object, so it can be exported
// as JSON and replayed in a browser. A Renderer draws a Config onto a Canvas
// and returns an Instance; a Slot holds at most one live Instance and
// destroys the old one before accepting a new one.
package chart

import (
	"fmt"
	"strings"
)

// Type is a Chart.js chart type name.
type Type string

const (
	Bar       Type = "bar"
	Line      Type = "line"
	Pie       Type = "pie"
	Doughnut  Type = "doughnut"
	PolarArea Type = "polarArea"
	Radar     Type = "radar"
)

// Types lists the selectable chart types in menu order.
func Types() []Type {
	return []Type{Bar, Line, Pie, Doughnut, PolarArea, Radar}
}

// ParseType accepts a type name case-insensitively. Empty selects Bar.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Bar, nil
	}
	for _, t := range Types() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown chart type %q", s)
}

// Circular reports whether t is drawn without cartesian axes.
func (t Type) Circular() bool {
	switch t {
	case Pie, Doughnut, PolarArea:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }

// Palette is the fixed dataset colour cycle.
var Palette = [...]string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// Color returns the palette colour for the i-th value.
func Color(i int) string {
	return Palette[i%len(Palette)]
}
