package chart

// Data is the chart input: one label per value.
type Data struct {
	Labels []string
	Values []float64
}

// Config is a Chart.js configuration object.
type Config struct {
	Type    Type       `json:"type"`
	Data    ConfigData `json:"data"`
	Options Options    `json:"options"`
}

type ConfigData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

type Options struct {
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	Plugins             Plugins `json:"plugins"`
	// Scales is nil for circular types.
	Scales *Scales `json:"scales,omitempty"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
}

type Legend struct {
	Position string       `json:"position"`
	Labels   LegendLabels `json:"labels"`
}

type LegendLabels struct {
	BoxWidth int `json:"boxWidth"`
}

// Scales holds the cartesian y axis or, for radar, the radial r scale.
type Scales struct {
	Y *Axis `json:"y,omitempty"`
	R *Axis `json:"r,omitempty"`
}

type Axis struct {
	BeginAtZero bool `json:"beginAtZero"`
}

// NewConfig builds the single-dataset configuration for t.
func NewConfig(t Type, d Data) Config {
	colors := make([]string, len(d.Values))
	for i := range colors {
		colors[i] = Color(i)
	}
	cfg := Config{
		Type: t,
		Data: ConfigData{
			Labels: d.Labels,
			Datasets: []Dataset{{
				Data:            d.Values,
				BackgroundColor: colors,
				BorderColor:     "#ffffff",
				BorderWidth:     1,
			}},
		},
		Options: Options{
			Responsive:          true,
			MaintainAspectRatio: false,
			Plugins: Plugins{
				Legend: Legend{Position: "bottom", Labels: LegendLabels{BoxWidth: 10}},
			},
		},
	}
	switch {
	case t == Radar:
		cfg.Options.Scales = &Scales{R: &Axis{BeginAtZero: true}}
	case !t.Circular():
		cfg.Options.Scales = &Scales{Y: &Axis{BeginAtZero: true}}
	}
	return cfg
}
