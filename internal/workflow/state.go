package workflow

import (
	"askdb/cli/internal/chart"
)

// Phase is the position of the workflow in its state machine:
// Idle → Submitting → {Ready | Failed} → [ChartRequested → {ChartReady | ChartFailed}]*.
type Phase int

const (
	Idle Phase = iota
	Submitting
	Ready
	Failed
	ChartRequested
	ChartReady
	ChartFailed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case ChartRequested:
		return "chart_requested"
	case ChartReady:
		return "chart_ready"
	case ChartFailed:
		return "chart_failed"
	default:
		return "unknown"
	}
}

// Control is a clickable element: its caption and whether it can be used.
type Control struct {
	Label   string
	Enabled bool
	Visible bool
}

// CheckStatus is the outcome of testing one atomic check.
type CheckStatus int

const (
	// CheckUntested means no test has run since the block was rendered.
	CheckUntested CheckStatus = iota
	CheckRunning
	CheckPassed
	CheckFailed
)

// CheckView is one rendered atomic-check block.
type CheckView struct {
	// Number is the 1-based position shown to the user.
	Number      int
	Description string
	Query       string
	// Precomputed is the backend-supplied result text. Empty unless the
	// backend variant pre-runs checks.
	Precomputed string
	// Status and Output describe the latest test of this block.
	Status CheckStatus
	Output string
	// Test is the block's own test control.
	Test Control
}

// State is everything the user can see. Views receive copies of it.
type State struct {
	Phase Phase

	// MainText is the result area: the generated query, a notice or an error.
	MainText string
	// SQL is the cached main query used for chart generation. Empty means
	// none was captured.
	SQL string

	// Checks are in backend order. ChecksPlaceholder replaces them when the
	// backend returned none.
	Checks            []CheckView
	ChecksPlaceholder string
	ChecksVisible     bool

	Submit       Control
	ChartTrigger Control
	ToggleChecks Control

	ChartType           chart.Type
	ChartSectionVisible bool
	ChartResultText     string
	// Canvas is the current chart canvas, nil before the first generation
	// and after a Submit.
	Canvas *chart.Canvas
}

func initialState(t chart.Type) State {
	return State{
		Phase:        Idle,
		Submit:       Control{Label: LabelRunQuery, Enabled: true, Visible: true},
		ChartTrigger: Control{Label: LabelGenerateChart},
		ToggleChecks: Control{Label: LabelShowChecks},
		ChartType:    t,
	}
}

// clone copies s deeply enough that the caller cannot mutate controller state.
func (s State) clone() State {
	if s.Checks != nil {
		s.Checks = append([]CheckView(nil), s.Checks...)
	}
	return s
}
