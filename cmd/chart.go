// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"os"
	"os/signal"
	"strings"

	"askdb/cli/internal/backend"

	"github.com/spf13/cobra"
)

var (
	chartSQL    string
	chartType   string
	chartExport string
)

// chartCmd charts a SQL query the user already has, skipping generation.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Execute a SQL query on the backend and draw the result",
	Example: `  askdb chart --sql "SELECT region, sum(total) FROM orders GROUP BY 1" --type doughnut
  askdb chart --sql "$(cat report.sql)" --export report-chart.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sql := strings.TrimSpace(chartSQL)
		if sql == "" {
			return errors.New("--sql is required")
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		typ, err := a.chartType(chartType)
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
		if err := ctrl.Adopt(&backend.QueryResult{HasData: true, MainQuery: sql, HasMainQuery: true}); err != nil {
			return err
		}
		s := &askSession{app: a, ctrl: ctrl, view: view}
		if err := s.chart(ctx); err != nil {
			return err
		}
		if cmd.Flags().Changed("export") {
			return exportChart(ctrl.Chart(), chartExport)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVar(&chartSQL, "sql", "", "SQL query to execute (required)")
	chartCmd.Flags().StringVar(&chartType, "type", "", "Chart type: bar, line, pie, doughnut, polarArea, radar (default from config)")
	chartCmd.Flags().StringVar(&chartExport, "export", "", "Write the chart's Chart.js configuration to this file (empty: state dir)")
}
