// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"askdb/cli/internal/chart"
	"askdb/cli/internal/config"
	"askdb/cli/internal/manifest"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// configCmd groups the commands that read and write the config file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change askdb settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, err := loadConfig()
		if err != nil {
			return err
		}
		data := pterm.TableData{{"Key", "Value"}}
		for _, k := range config.Keys() {
			v, _ := cfg.Get(k)
			data = append(data, []string{k, v})
		}
		pterm.Println(pterm.Gray(p))
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change one setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if _, err := manifest.ParseVariant(cfg.Variant); err != nil {
			return err
		}
		if _, err := chart.ParseType(cfg.ChartType); err != nil {
			return err
		}
		if err := config.SaveTo(p, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		pterm.Success.Printf("%s updated\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
