// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"askdb/cli/internal/backend"
	"askdb/cli/internal/workflow"

	"github.com/spf13/cobra"
)

// checkCmd runs one or more atomic queries through the check endpoint.
var checkCmd = &cobra.Command{
	Use:   "check <sql> [sql...]",
	Short: "Run atomic check queries on the backend",
	Long: `The check command executes each SQL argument as an atomic check, concurrently,
and prints every result under its own numbered block. A failing check does not
stop the others.`,
	Example: `  askdb check "SELECT count(*) FROM orders WHERE total < 0"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checks, err := adHocChecks(args)
		if err != nil {
			return err
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		typ, err := a.chartType("")
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

		res := &backend.QueryResult{HasData: true, Checks: checks}
		if err := ctrl.Adopt(res); err != nil {
			return err
		}

		s := &askSession{app: a, ctrl: ctrl, view: view}
		s.testAllChecks(ctx)
		printChecks(ctrl.State())

		for _, c := range ctrl.State().Checks {
			if c.Status != workflow.CheckPassed {
				return errReported
			}
		}
		return nil
	},
}

// adHocChecks turns the non-blank arguments into check blocks numbered in
// the order they will be shown.
func adHocChecks(args []string) ([]backend.AtomicCheck, error) {
	checks := make([]backend.AtomicCheck, 0, len(args))
	for _, q := range args {
		if q = strings.TrimSpace(q); q == "" {
			continue
		}
		checks = append(checks, backend.AtomicCheck{Description: fmt.Sprintf("Query %d", len(checks)+1), Query: q})
	}
	if len(checks) == 0 {
		return nil, errors.New("no query given: every argument is blank")
	}
	return checks, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
