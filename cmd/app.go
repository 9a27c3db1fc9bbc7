package cmd

import (
	"fmt"
	"os"
	"strings"

	"askdb/cli/internal/backend"
	"askdb/cli/internal/chart"
	"askdb/cli/internal/config"
	"askdb/cli/internal/keychain"
	"askdb/cli/internal/logging"
	"askdb/cli/internal/manifest"
	"askdb/cli/internal/notify"
	"askdb/cli/internal/session"
	"askdb/cli/internal/workflow"

	"github.com/pterm/pterm"
)

// app is the per-invocation wiring shared by the commands.
type app struct {
	cfg      config.Config
	log      *pterm.Logger
	manifest *manifest.Manifest
}

func loadApp() (*app, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	if variantFlag != "" {
		cfg.Variant = variantFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	m, err := manifest.New(cfg.BaseURL, cfg.Variant)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:      cfg,
		log:      logging.New(level, os.Stderr),
		manifest: m,
	}, nil
}

// sessionService returns the session resolver; the keychain is optional.
func (a *app) sessionService() *session.Service {
	km, err := keychain.GetManager()
	if err != nil {
		a.log.Debug("keychain unavailable", a.log.Args("error", err.Error()))
		return session.NewService(nil)
	}
	return session.NewService(km)
}

func (a *app) backend() (backend.API, error) {
	id, src, err := a.sessionService().Resolve()
	if err != nil {
		a.log.Warn("could not read the stored session; continuing without it", a.log.Args("error", err.Error()))
	}
	if id != "" {
		a.log.Debug("using backend session", a.log.Args("source", string(src)))
	}
	return backend.New(a.manifest, backend.Options{
		Timeout:   a.cfg.Timeout(),
		SessionID: id,
		Logger:    a.log,
	})
}

// chartType resolves a --type flag value against the configured default.
func (a *app) chartType(flag string) (chart.Type, error) {
	if strings.TrimSpace(flag) != "" {
		return chart.ParseType(flag)
	}
	return chart.ParseType(a.cfg.ChartType)
}

// controller wires a workflow controller to the terminal.
func (a *app) controller(t chart.Type, view workflow.View) (*workflow.Controller, error) {
	api, err := a.backend()
	if err != nil {
		return nil, err
	}
	return workflow.New(workflow.Options{
		Backend:         api,
		View:            view,
		Notifier:        notify.New(os.Stderr),
		Renderer:        chart.Terminal{},
		ChartType:       t,
		ShowPrecomputed: a.manifest.Variant == manifest.VariantGatherInformation,
		Logger:          a.log,
	}), nil
}
