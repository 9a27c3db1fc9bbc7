// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"askdb/cli/internal/chart"
	apperr "askdb/cli/internal/errors"
	"askdb/cli/internal/httperrors"
	"askdb/cli/internal/terminal"
	"askdb/cli/internal/workflow"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	askChart       bool
	askChartType   string
	askTestChecks  bool
	askShowChecks  bool
	askExport      string
	askInteractive bool
)

// askCmd submits a question and renders the generated query, its atomic
// checks and optionally a chart of the result.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Turn a question into SQL, then optionally chart and check it",
	Long: `The ask command sends a natural-language question to the backend and prints
the generated SQL together with the atomic checks the backend suggests for
validating it.

With --chart the backend executes the SQL and the result is drawn as a chart.
With --test-checks every atomic check is executed concurrently.
With -i an interactive menu lets you chart, switch chart types, test checks
and ask follow-up questions without leaving the session.`,
	Example: `  askdb ask "monthly revenue by region for 2024" --chart --type pie
  askdb ask "customers without orders" --show-checks --test-checks
  askdb ask -i`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		typ, err := a.chartType(askChartType)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		view := &terminalView{}
		defer view.Close()
		ctrl, err := a.controller(typ, view)
		if err != nil {
			return err
		}
		s := &askSession{app: a, ctrl: ctrl, view: view}

		question := strings.Join(args, " ")
		if question == "" {
			if !terminal.IsInteractive() {
				return errors.New("a question is required when stdin is not a terminal")
			}
			if question, err = pterm.DefaultInteractiveTextInput.Show("Your question"); err != nil {
				return err
			}
		}

		if err := s.submit(ctx, question); err != nil && !askInteractive {
			return err
		}
		if askShowChecks {
			ctrl.ToggleChecks()
		}
		if askTestChecks {
			s.testAllChecks(ctx)
		}
		if !askInteractive {
			printChecks(ctrl.State())
		}
		if askChart {
			if err := s.chart(ctx); err != nil && !askInteractive {
				return err
			}
		}
		if cmd.Flags().Changed("export") {
			if err := exportChart(ctrl.Chart(), askExport); err != nil {
				return err
			}
		}
		if askInteractive {
			return s.menu(ctx)
		}
		return nil
	},
}

// askSession drives one controller from the command line.
type askSession struct {
	app  *app
	ctrl *workflow.Controller
	view *terminalView
}

func (s *askSession) submit(ctx context.Context, question string) error {
	start := time.Now()
	err := s.ctrl.Submit(ctx, question)
	s.view.Close()
	st := s.ctrl.State()
	printMainResult(st)
	if err != nil {
		return s.explain(err, "generating SQL")
	}
	s.app.log.Info("query generated", s.app.log.Args("elapsed", elapsed(time.Since(start)), "checks", len(st.Checks)))
	return nil
}

func (s *askSession) chart(ctx context.Context) error {
	start := time.Now()
	err := s.ctrl.GenerateChart(ctx)
	s.view.Close()
	printChart(s.ctrl.State(), s.ctrl.Chart())
	if err != nil {
		return s.explain(err, "generating the chart")
	}
	s.app.log.Info("chart generated", s.app.log.Args("elapsed", elapsed(time.Since(start))))
	return nil
}

// testAllChecks runs every check concurrently; each result lands in its own block.
func (s *askSession) testAllChecks(ctx context.Context) {
	n := len(s.ctrl.State().Checks)
	if n == 0 {
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			// Failures are recorded on the block; keep the others running.
			_ = s.ctrl.TestCheck(gctx, i)
			return nil
		})
	}
	_ = g.Wait()
	s.view.Close()
	if !s.ctrl.State().ChecksVisible {
		s.ctrl.ToggleChecks()
	}
}

// explain reports err beyond the toast the controller already showed, and
// marks it as reported.
func (s *askSession) explain(err error, action string) error {
	switch apperr.KindOf(err) {
	case apperr.Transport:
		s.app.log.Debug("transport failure", s.app.log.Args("error", err.Error()))
		httperrors.Print(httperrors.Diagnose(err, s.app.manifest.HTTPBaseURL()), action)
	case apperr.Busy, apperr.InvalidInput:
		return err
	}
	return errReported
}

const (
	menuChart   = "Generate chart"
	menuType    = "Change chart type"
	menuToggle  = "Show/hide atomic checks"
	menuTest    = "Test an atomic check"
	menuTestAll = "Test all atomic checks"
	menuExport  = "Export chart config"
	menuAsk     = "Ask another question"
	menuQuit    = "Quit"
)

func (s *askSession) menu(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		st := s.ctrl.State()
		options := []string{}
		if st.ChartTrigger.Visible {
			options = append(options, menuChart, menuType)
		}
		if st.ToggleChecks.Enabled {
			options = append(options, st.ToggleChecks.Label, menuTest, menuTestAll)
		}
		if s.ctrl.Chart() != nil {
			options = append(options, menuExport)
		}
		options = append(options, menuAsk, menuQuit)

		choice, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Next step")
		if err != nil {
			return err
		}
		switch choice {
		case menuChart:
			_ = s.chart(ctx)
		case menuType:
			s.changeType(ctx)
		case workflow.LabelShowChecks, workflow.LabelHideChecks:
			s.ctrl.ToggleChecks()
			printChecks(s.ctrl.State())
		case menuTest:
			s.testOne(ctx)
		case menuTestAll:
			s.testAllChecks(ctx)
			printChecks(s.ctrl.State())
		case menuExport:
			path, err := pterm.DefaultInteractiveTextInput.Show("File (empty for the state dir)")
			if err == nil {
				if err := exportChart(s.ctrl.Chart(), path); err != nil {
					pterm.Error.Println(err)
				}
			}
		case menuAsk:
			q, err := pterm.DefaultInteractiveTextInput.Show("Your question")
			if err != nil {
				return err
			}
			_ = s.submit(ctx, q)
			printChecks(s.ctrl.State())
		case menuQuit:
			return nil
		}
	}
}

func (s *askSession) changeType(ctx context.Context) {
	names := make([]string, 0, len(chart.Types()))
	for _, t := range chart.Types() {
		names = append(names, string(t))
	}
	current := string(s.ctrl.State().ChartType)
	picked, err := pterm.DefaultInteractiveSelect.WithOptions(names).WithDefaultOption(current).Show("Chart type")
	if err != nil {
		return
	}
	sent, err := s.ctrl.ChangeChartType(ctx, chart.Type(picked))
	s.view.Close()
	if sent {
		printChart(s.ctrl.State(), s.ctrl.Chart())
		if err != nil {
			_ = s.explain(err, "regenerating the chart")
		}
		return
	}
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	pterm.Info.Printf("Chart type set to %s\n", picked)
}

func (s *askSession) testOne(ctx context.Context) {
	st := s.ctrl.State()
	options := make([]string, len(st.Checks))
	for i, c := range st.Checks {
		options[i] = fmt.Sprintf("%d. %s", c.Number, c.Description)
	}
	picked, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Atomic check")
	if err != nil {
		return
	}
	num, err := strconv.Atoi(strings.SplitN(picked, ".", 2)[0])
	if err != nil {
		return
	}
	err = s.ctrl.TestCheck(ctx, num-1)
	s.view.Close()
	printCheck(s.ctrl.State().Checks[num-1])
	if apperr.KindOf(err) == apperr.Transport {
		_ = s.explain(err, "testing the atomic check")
	}
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askChart, "chart", false, "Execute the generated SQL and draw a chart")
	askCmd.Flags().StringVar(&askChartType, "type", "", "Chart type: bar, line, pie, doughnut, polarArea, radar (default from config)")
	askCmd.Flags().BoolVar(&askTestChecks, "test-checks", false, "Execute every atomic check concurrently")
	askCmd.Flags().BoolVar(&askShowChecks, "show-checks", false, "Expand the atomic checks panel")
	askCmd.Flags().StringVar(&askExport, "export", "", "Write the chart's Chart.js configuration to this file (empty: state dir)")
	askCmd.Flags().BoolVarP(&askInteractive, "interactive", "i", false, "Keep the session open with an interactive menu")
}
