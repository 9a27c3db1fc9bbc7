// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for askdb.
// It turns natural-language questions into SQL through the query backend,
// charts the results and runs the backend's atomic checks, using the Cobra
// CLI framework with pterm for terminal output.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"askdb/cli/internal/config"
	"askdb/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	verbose     bool
	configPath  string
	baseURLFlag string
	variantFlag string
)

// errReported signals that the failure was already shown to the user; the
// process only needs a non-zero exit status.
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "askdb",
	Short: "Ask your database questions in plain language",
	Long: `askdb sends a natural-language question to the query backend, which turns it
into SQL, suggests atomic checks that validate the answer, and can execute the
query to produce chart data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("askdb %s\n", Version)
			a, err := loadApp()
			if err == nil {
				fmt.Printf("backend %s (%s)\n", a.manifest.HTTPBaseURL(), a.manifest.Variant)
			}
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			pterm.Error.Println(logging.PresentError("askdb", err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and configured backend")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/askdb/config.json)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&variantFlag, "variant", "", "Query endpoint generation: generate_sql or gather_information")
}

// loadConfig reads the config file named by --config or the default path.
func loadConfig() (config.Config, string, error) {
	p := configPath
	if p == "" {
		var err error
		if p, err = config.Path(); err != nil {
			return config.Config{}, "", err
		}
	}
	cfg, err := config.LoadFrom(p)
	return cfg, p, err
}
