package chart

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"", Bar, false},
		{"bar", Bar, false},
		{"LINE", Line, false},
		{"polararea", PolarArea, false},
		{" doughnut ", Doughnut, false},
		{"scatter", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewConfig_Axes(t *testing.T) {
	d := Data{Labels: []string{"a", "b"}, Values: []float64{1, 2}}
	for _, typ := range Types() {
		cfg := NewConfig(typ, d)
		switch {
		case typ.Circular():
			assert.Nil(t, cfg.Options.Scales, typ)
		case typ == Radar:
			require.NotNil(t, cfg.Options.Scales, typ)
			assert.Nil(t, cfg.Options.Scales.Y, typ)
			require.NotNil(t, cfg.Options.Scales.R, typ)
			assert.True(t, cfg.Options.Scales.R.BeginAtZero, typ)
		default:
			require.NotNil(t, cfg.Options.Scales, typ)
			assert.Nil(t, cfg.Options.Scales.R, typ)
			require.NotNil(t, cfg.Options.Scales.Y, typ)
			assert.True(t, cfg.Options.Scales.Y.BeginAtZero, typ)
		}
	}
}

func TestNewConfig_RadarUsesRadialScale(t *testing.T) {
	cfg := NewConfig(Radar, Data{Labels: []string{"a"}, Values: []float64{1}})
	b, err := json.Marshal(cfg.Options.Scales)
	require.NoError(t, err)
	assert.JSONEq(t, `{"r":{"beginAtZero":true}}`, string(b))
}

func TestNewConfig_PaletteCycles(t *testing.T) {
	vals := make([]float64, 12)
	labels := make([]string, 12)
	cfg := NewConfig(Bar, Data{Labels: labels, Values: vals})
	colors := cfg.Data.Datasets[0].BackgroundColor
	require.Len(t, colors, 12)
	assert.Equal(t, "#4e79a7", colors[0])
	assert.Equal(t, "#bab0ab", colors[9])
	assert.Equal(t, "#4e79a7", colors[10])
}

func TestConfig_JSON(t *testing.T) {
	cfg := NewConfig(Pie, Data{Labels: []string{"x"}, Values: []float64{3}})
	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type":"pie",
		"data":{"labels":["x"],"datasets":[{"data":[3],"backgroundColor":["#4e79a7"],"borderColor":"#ffffff","borderWidth":1}]},
		"options":{"responsive":true,"maintainAspectRatio":false,"plugins":{"legend":{"position":"bottom","labels":{"boxWidth":10}}}}
	}`, string(b))
}

func TestSurface_DistinctCanvases(t *testing.T) {
	var s Surface
	a, b := s.NewCanvas(), s.NewCanvas()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, DefaultWidth, a.Width)
}

func TestCanvas_PaintMessage(t *testing.T) {
	var s Surface
	c := s.NewCanvas()
	c.Draw("bars")
	c.PaintMessage("No chart data available")
	assert.Equal(t, "No chart data available", c.Message())
	assert.Contains(t, c.String(), "No chart data available")
	assert.NotContains(t, c.String(), "bars")
	c.Clear()
	assert.Empty(t, c.String())
}

type countingInstance struct {
	canvas    *Canvas
	destroyed int
}

func (c *countingInstance) Canvas() *Canvas { return c.canvas }
func (c *countingInstance) Config() Config  { return Config{} }
func (c *countingInstance) Destroy()        { c.destroyed++ }

func TestSlot_ReplaceDestroysPrevious(t *testing.T) {
	var slot Slot
	first := &countingInstance{}
	second := &countingInstance{}

	slot.Replace(first)
	assert.True(t, slot.Live())
	slot.Replace(second)
	assert.Equal(t, 1, first.destroyed)
	assert.Equal(t, 0, second.destroyed)
	assert.Same(t, second, slot.Current())

	slot.Teardown()
	assert.Equal(t, 1, second.destroyed)
	assert.False(t, slot.Live())

	slot.Teardown()
	assert.Equal(t, 1, second.destroyed)
}

func TestTerminal_Render(t *testing.T) {
	var s Surface
	d := Data{Labels: []string{"North", "South"}, Values: []float64{30, 70}}

	c := s.NewCanvas()
	inst, err := Terminal{}.Render(c, NewConfig(Pie, d))
	require.NoError(t, err)
	out := c.String()
	assert.Contains(t, out, "North")
	assert.Contains(t, out, "70.0%")

	inst.Destroy()
	inst.Destroy()
	assert.Empty(t, c.String())

	c2 := s.NewCanvas()
	_, err = Terminal{}.Render(c2, NewConfig(Bar, d))
	require.NoError(t, err)
	assert.True(t, strings.Contains(c2.String(), "South"))
}

func TestScaleBars(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []int
	}{
		{"fractions", []float64{0.2, 0.05}, []int{200, 50}},
		{"negatives keep sign", []float64{-2.7, 3}, []int{-270, 300}},
		{"large values", []float64{12345, 500}, []int{123, 5}},
		{"all zero", []float64{0, 0}, []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scaleBars(tt.in))
		})
	}
}

func TestTerminal_RenderFractionalBars(t *testing.T) {
	var s Surface
	c := s.NewCanvas()
	d := Data{Labels: []string{"low", "loss", "gain"}, Values: []float64{0.2, -2.7, 3}}
	_, err := Terminal{}.Render(c, NewConfig(Bar, d))
	require.NoError(t, err)
	out := c.String()
	assert.Contains(t, out, "low (0.2)")
	assert.Contains(t, out, "loss (-2.7)")
	assert.Contains(t, out, "gain (3)")
}

func TestSwatch(t *testing.T) {
	for i := range Palette {
		assert.Contains(t, swatch(i), "■")
	}
}

func TestTerminal_RejectsMismatch(t *testing.T) {
	var s Surface
	cfg := NewConfig(Bar, Data{Labels: []string{"a"}, Values: []float64{1, 2}})
	_, err := Terminal{}.Render(s.NewCanvas(), cfg)
	assert.Error(t, err)
}
