// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"strings"

	"askdb/cli/internal/logging"
	"askdb/cli/internal/session"
	"askdb/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// sessionCmd groups the commands that manage the backend session cookie.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the backend session cookie",
	Long: `askdb forwards a Django sessionid cookie with every request. Copy it from a
logged-in browser session and store it with "askdb session set"; it is kept in
the OS keychain. ` + session.EnvSessionID + ` overrides the stored value.`,
}

var sessionSetCmd = &cobra.Command{
	Use:   "set [sessionid]",
	Short: "Store the session cookie in the keychain",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		id := ""
		if len(args) == 1 {
			id = args[0]
		} else {
			if id, err = terminal.ReadPassword("sessionid: "); err != nil {
				return err
			}
		}
		if strings.TrimSpace(id) == "" {
			return errors.New("session id is empty")
		}
		if err := a.sessionService().Set(id); err != nil {
			return err
		}
		pterm.Success.Println("Session stored in the keychain")
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored session cookie",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		if err := a.sessionService().Clear(); err != nil {
			return err
		}
		pterm.Success.Println("Session removed")
		return nil
	},
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which session cookie requests will carry",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		id, src, err := a.sessionService().Resolve()
		if err != nil {
			return err
		}
		if id == "" {
			pterm.Info.Println("No session; requests go out anonymously")
			return nil
		}
		pterm.Info.Printf("Session from %s: %s\n", src, logging.Mask("sessionid="+id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionSetCmd, sessionClearCmd, sessionStatusCmd)
}
