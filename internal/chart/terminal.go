package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// Terminal renders charts as text with pterm. Cartesian types become a
// horizontal bar chart; circular types become a share breakdown.
type Terminal struct{}

// Render draws cfg onto c.
func (Terminal) Render(c *Canvas, cfg Config) (Instance, error) {
	if len(cfg.Data.Datasets) == 0 {
		return nil, errors.New("chart has no dataset")
	}
	ds := cfg.Data.Datasets[0]
	if len(ds.Data) != len(cfg.Data.Labels) {
		return nil, errors.New("chart labels and values differ in length")
	}

	var out string
	var err error
	if cfg.Type.Circular() {
		out = renderShares(cfg.Data.Labels, ds)
	} else {
		out, err = renderBars(cfg.Data.Labels, ds, c.Width/10)
	}
	if err != nil {
		return nil, err
	}
	c.Draw(out)
	return &terminalInstance{canvas: c, cfg: cfg}, nil
}

func renderBars(labels []string, ds Dataset, width int) (string, error) {
	scaled := scaleBars(ds.Data)
	bars := make(pterm.Bars, len(labels))
	for i, l := range labels {
		bars[i] = pterm.Bar{
			Label: fmt.Sprintf("%s (%s)", l, humanize.Commaf(ds.Data[i])),
			Value: scaled[i],
		}
	}
	return pterm.DefaultBarChart.
		WithBars(bars).
		WithHorizontal().
		WithWidth(width).
		Srender()
}

// scaleBars maps values onto integer bar lengths. pterm bars are integral,
// so every value is multiplied by one power of ten chosen to put the largest
// magnitude in [100, 1000). Signs and relative lengths are kept.
func scaleBars(values []float64) []int {
	var maxAbs float64
	for _, v := range values {
		if a := math.Abs(v); a > maxAbs && !math.IsInf(a, 0) {
			maxAbs = a
		}
	}
	factor := 1.0
	if maxAbs > 0 {
		factor = math.Pow(10, 2-math.Floor(math.Log10(maxAbs)))
	}
	out := make([]int, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = int(math.Round(v * factor))
	}
	return out
}

func renderShares(labels []string, ds Dataset) string {
	var total float64
	for _, v := range ds.Data {
		total += v
	}
	var b strings.Builder
	for i, l := range labels {
		share := 0.0
		if total != 0 {
			share = ds.Data[i] / total * 100
		}
		fmt.Fprintf(&b, "%s %-20s %12s  %5.1f%%\n", swatch(i), l, humanize.Commaf(ds.Data[i]), share)
	}
	return b.String()
}

type terminalInstance struct {
	once   sync.Once
	canvas *Canvas
	cfg    Config
}

func (t *terminalInstance) Canvas() *Canvas { return t.canvas }
func (t *terminalInstance) Config() Config  { return t.cfg }

func (t *terminalInstance) Destroy() {
	t.once.Do(t.canvas.Clear)
}

// swatch is a block in the i-th palette colour.
func swatch(i int) string {
	rgb, err := pterm.NewRGBFromHEX(Color(i))
	if err != nil {
		return "■"
	}
	return rgb.Sprint("■")
}
