package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"askdb/cli/internal/chart"
	"askdb/cli/internal/workflow"
	"askdb/cli/internal/xdg"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// terminalView keeps one spinner running while any control reports work in
// progress. Results are printed by the commands once an operation settles.
type terminalView struct {
	mu   sync.Mutex
	spin spinner
	last workflow.State
}

func (v *terminalView) Render(s workflow.State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.last = s
	if text := busyText(s); text != "" {
		v.spin.Start(text)
	} else {
		v.spin.Stop()
	}
}

// Close stops the spinner.
func (v *terminalView) Close() {
	v.spin.Stop()
}

// busyText names the work in flight, or "" when nothing runs.
func busyText(s workflow.State) string {
	var parts []string
	if !s.Submit.Enabled {
		parts = append(parts, s.Submit.Label)
	}
	if s.ChartTrigger.Visible && !s.ChartTrigger.Enabled && s.ChartTrigger.Label == workflow.LabelGeneratingChart {
		parts = append(parts, s.ChartTrigger.Label)
	}
	running := 0
	for _, c := range s.Checks {
		if c.Status == workflow.CheckRunning {
			running++
		}
	}
	if running == 1 {
		parts = append(parts, workflow.TextExecutingCheck)
	} else if running > 1 {
		parts = append(parts, fmt.Sprintf("Executing %d atomic queries...", running))
	}
	return strings.Join(parts, "  ")
}

func printMainResult(s workflow.State) {
	pterm.DefaultSection.Println("Main query")
	if s.SQL != "" {
		pterm.Println(pterm.NewStyle(pterm.FgLightBlue).Sprint(s.MainText))
	} else {
		pterm.Println(s.MainText)
	}
	pterm.Println()
}

func printChecks(s workflow.State) {
	if s.ChecksPlaceholder != "" {
		pterm.Info.Println(s.ChecksPlaceholder)
		return
	}
	if len(s.Checks) == 0 {
		return
	}
	if !s.ChecksVisible {
		pterm.Info.Printf("%d atomic checks available (%s with --show-checks)\n", len(s.Checks), strings.ToLower(s.ToggleChecks.Label))
		return
	}
	pterm.DefaultSection.Println("Atomic checks")
	for i := range s.Checks {
		printCheck(s.Checks[i])
	}
}

func printCheck(c workflow.CheckView) {
	pterm.Println(pterm.NewStyle(pterm.Bold).Sprintf("%d. %s", c.Number, c.Description))
	pterm.Println(pterm.NewStyle(pterm.FgGray).Sprint("   Query:"))
	pterm.Println(indent(c.Query, "   "))
	if c.Precomputed != "" {
		pterm.Println(pterm.NewStyle(pterm.FgGray).Sprint("   Result:"))
		pterm.Println(indent(c.Precomputed, "   "))
	}
	switch c.Status {
	case workflow.CheckPassed:
		pterm.Println(indent(pterm.Green(c.Output), "   "))
		if n := rowCount(c.Output); n >= 0 {
			pterm.Println(pterm.Gray("   " + humanize.Comma(int64(n)) + " rows"))
		}
	case workflow.CheckFailed:
		pterm.Println(indent(pterm.Red(c.Output), "   "))
	case workflow.CheckRunning:
		pterm.Println(indent(pterm.Yellow(c.Output), "   "))
	}
	pterm.Println()
}

func printChart(s workflow.State, inst chart.Instance) {
	if !s.ChartSectionVisible {
		return
	}
	title := fmt.Sprintf("Chart (%s)", s.ChartType)
	pterm.DefaultSection.Println(title)
	if s.Canvas != nil {
		out := s.Canvas.String()
		if s.Canvas.Message() != "" {
			out = pterm.Red(out)
		}
		pterm.Println(out)
	}
	if inst != nil {
		n := len(inst.Config().Data.Labels)
		pterm.Println(pterm.Gray(humanize.Comma(int64(n)) + " data points"))
	}
	pterm.DefaultSection.WithLevel(2).Println("Chart data result")
	pterm.Println(s.ChartResultText)
	pterm.Println()
}

// rowCount returns the length of a JSON array after a "Success: " prefix, or -1.
func rowCount(output string) int {
	body := strings.TrimPrefix(output, "Success: ")
	var rows []json.RawMessage
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		return -1
	}
	return len(rows)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// exportChart writes the live chart's Chart.js configuration to path, or to
// the state dir when path is empty.
func exportChart(inst chart.Instance, path string) error {
	if inst == nil {
		return fmt.Errorf("no chart to export")
	}
	if path == "" {
		dir, err := xdg.StateDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, inst.Canvas().ID+".json")
	}
	b, err := json.MarshalIndent(inst.Config(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	pterm.Success.Printf("Chart.js config written to %s\n", path)
	return nil
}
