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

	"askdb/cli/internal/backend"
	"askdb/cli/internal/dbprobe"
	"askdb/cli/internal/dsn"
	apperr "askdb/cli/internal/errors"
	"askdb/cli/internal/httperrors"
	"askdb/cli/internal/keychain"
	"askdb/cli/internal/terminal"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	dbEmail    string
	dbType     string
	dbHost     string
	dbPort     string
	dbUser     string
	dbPassword string
	dbDatabase string
	dbTable    string
	dbDSN      string
	dbVerify   bool
)

// dbConfigCmd groups the database settings commands.
var dbConfigCmd = &cobra.Command{
	Use:   "db-config",
	Short: "Manage the database settings the backend queries",
}

var dbConfigSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save database settings on the backend",
	Long: `Save the connection settings the backend uses to execute generated SQL.

Fields can be given one by one or parsed from a PostgreSQL DSN with --dsn.
Explicit flags override the DSN. When no password is given, askdb uses the one
stored in the keychain for the email, or asks for it.

With --verify the database is pinged from this machine before anything is
saved; the check only connects and reads catalog views.`,
	Example: `  askdb db-config set --email me@example.com --dsn "postgres://app:secret@db:5432/sales" --table orders
  askdb db-config set --email me@example.com --host db --user app --database sales --verify`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		form, err := dbConfigForm(cmd, a.cfg.UserEmail)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if dbVerify {
			if err := verifyDatabase(ctx, form); err != nil {
				return err
			}
		}

		api, err := a.backend()
		if err != nil {
			return err
		}
		var spin spinner
		spin.Start("Saving database settings...")
		msg, err := api.SaveDBConfig(ctx, form)
		spin.Stop()
		if err != nil {
			if apperr.KindOf(err) == apperr.Transport {
				httperrors.Print(httperrors.Diagnose(err, a.manifest.HTTPBaseURL()), "saving database settings")
				return errReported
			}
			return fmt.Errorf("save database settings: %s", apperr.MessageOf(err))
		}
		pterm.Success.Println(orText(msg, "Database settings saved."))

		if km, err := keychain.GetManager(); err == nil {
			if err := km.SaveDBPassword(form.UserEmail, form.DBPassword); err != nil {
				a.log.Warn("could not store the database password in the keychain", a.log.Args("error", err.Error()))
			}
		}
		return nil
	},
}

var dbConfigListCmd = &cobra.Command{
	Use:   "list",
	Short: "List database settings stored on the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		api, err := a.backend()
		if err != nil {
			return err
		}
		var spin spinner
		spin.Start("Loading database settings...")
		list, err := api.ListDBConfigs(cmd.Context())
		spin.Stop()
		if err != nil {
			if apperr.KindOf(err) == apperr.Transport {
				httperrors.Print(httperrors.Diagnose(err, a.manifest.HTTPBaseURL()), "listing database settings")
				return errReported
			}
			return fmt.Errorf("list database settings: %s", apperr.MessageOf(err))
		}
		if len(list) == 0 {
			pterm.Info.Println("No database settings stored.")
			return nil
		}
		data := pterm.TableData{{"Email", "Type", "Host", "Port", "User", "Password", "Database", "Table"}}
		for _, c := range list {
			data = append(data, []string{
				c.UserEmail, c.DBType, c.DBHost, c.DBPort, c.DBUserName,
				maskSecret(c.DBPassword), c.DBDatabase, c.DBTableName,
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
		pterm.Println(pterm.Gray(humanize.Comma(int64(len(list))) + " configurations"))
		return nil
	},
}

// dbConfigForm assembles the settings form from --dsn, the field flags and,
// for the password, the keychain or a prompt.
func dbConfigForm(cmd *cobra.Command, defaultEmail string) (backend.DBConfig, error) {
	form := backend.DBConfig{
		UserEmail: strings.TrimSpace(dbEmail),
		DBType:    string(dsn.DBTypePostgreSQL),
		DBPort:    dsn.DefaultPostgresPort,
	}
	if form.UserEmail == "" {
		form.UserEmail = strings.TrimSpace(defaultEmail)
	}
	if form.UserEmail == "" {
		return form, errors.New("--email is required (or set user_email with `askdb config set user_email ...`)")
	}

	if dbDSN != "" {
		info, err := dsn.Parse(dbDSN)
		if err != nil {
			return form, err
		}
		form.DBType = string(info.Type)
		form.DBHost = info.Host
		if info.Port != "" {
			form.DBPort = info.Port
		}
		form.DBUserName = info.User
		form.DBPassword = info.Password
		form.DBDatabase = info.Database
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = strings.TrimSpace(v)
		}
	}
	set("type", &form.DBType, dbType)
	set("host", &form.DBHost, dbHost)
	set("port", &form.DBPort, dbPort)
	set("user", &form.DBUserName, dbUser)
	set("database", &form.DBDatabase, dbDatabase)
	set("table", &form.DBTableName, dbTable)
	if flags.Changed("password") {
		form.DBPassword = dbPassword
	}

	if n, err := strconv.Atoi(form.DBPort); err != nil || n <= 0 || n > 65535 {
		return form, fmt.Errorf("invalid port %q", form.DBPort)
	}
	if form.DBHost == "" || form.DBUserName == "" || form.DBDatabase == "" {
		return form, errors.New("host, user and database are required (flags or --dsn)")
	}

	if form.DBPassword == "" {
		form.DBPassword = storedPassword(form.UserEmail)
	}
	if form.DBPassword == "" && terminal.IsInteractive() {
		pw, err := terminal.ReadPassword(fmt.Sprintf("Password for %s@%s: ", form.DBUserName, form.DBHost))
		if err != nil {
			return form, err
		}
		form.DBPassword = pw
	}
	return form, nil
}

func storedPassword(email string) string {
	km, err := keychain.GetManager()
	if err != nil {
		return ""
	}
	pw, err := km.LoadDBPassword(email)
	if err != nil {
		return ""
	}
	return pw
}

// verifyDatabase pings the database described by form.
func verifyDatabase(ctx context.Context, form backend.DBConfig) error {
	if form.DBType != string(dsn.DBTypePostgreSQL) {
		return fmt.Errorf("--verify supports %s only", dsn.DBTypePostgreSQL)
	}
	info := &dsn.Info{
		Type:     dsn.DBTypePostgreSQL,
		Host:     form.DBHost,
		Port:     form.DBPort,
		User:     form.DBUserName,
		Password: form.DBPassword,
		Database: form.DBDatabase,
	}
	if err := info.Validate(); err != nil {
		return err
	}

	var spin spinner
	spin.Start("Connecting to " + info.Redacted() + "...")
	rep, err := dbprobe.Probe(ctx, info.ConnString(), form.DBTableName)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	pterm.Success.Printf("Connected to PostgreSQL %s in %s\n", rep.ServerVersion, elapsed(rep.Latency))
	if t := rep.Table; t != nil {
		if !t.Exists {
			return fmt.Errorf("table %s.%s not found", t.Schema, t.Name)
		}
		items := []pterm.BulletListItem{
			{Level: 0, Text: fmt.Sprintf("%s.%s: %d columns", t.Schema, t.Name, len(t.Columns))},
		}
		if len(t.PrimaryKey) > 0 {
			items = append(items, pterm.BulletListItem{Level: 1, Text: "primary key: " + strings.Join(t.PrimaryKey, ", ")})
		}
		_ = pterm.DefaultBulletList.WithItems(items).Render()
	}
	return nil
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func orText(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func init() {
	rootCmd.AddCommand(dbConfigCmd)
	dbConfigCmd.AddCommand(dbConfigSetCmd, dbConfigListCmd)

	f := dbConfigSetCmd.Flags()
	f.StringVar(&dbEmail, "email", "", "User email the settings belong to (default: user_email from config)")
	f.StringVar(&dbType, "type", string(dsn.DBTypePostgreSQL), "Database type")
	f.StringVar(&dbHost, "host", "", "Database host")
	f.StringVar(&dbPort, "port", dsn.DefaultPostgresPort, "Database port")
	f.StringVar(&dbUser, "user", "", "Database user name")
	f.StringVar(&dbPassword, "password", "", "Database password (prompted when omitted)")
	f.StringVar(&dbDatabase, "database", "", "Database name")
	f.StringVar(&dbTable, "table", "", "Table the questions are about")
	f.StringVar(&dbDSN, "dsn", "", "PostgreSQL connection string to take the fields from")
	f.BoolVar(&dbVerify, "verify", false, "Connect to the database before saving")
}
