// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package workflow drives the question → query → chart flow.
//
// A Controller owns one State record. Every operation mutates the record
// under a mutex, publishes a copy to the View, releases the lock, performs at
// most one backend call and then publishes the outcome. The mutex is never
// held across a network call, so a View may call State or trigger other
// operations from any goroutine.
package workflow

import (
	"context"
	"sync"

	"askdb/cli/internal/backend"
	"askdb/cli/internal/chart"
	"askdb/cli/internal/logging"

	"github.com/pterm/pterm"
)

// Backend is the subset of backend.API the workflow calls.
type Backend interface {
	SubmitQuery(ctx context.Context, userQuery string) (*backend.QueryResult, error)
	GenerateChart(ctx context.Context, sqlQuery string) (*backend.ChartResult, error)
	CheckAtomicQuery(ctx context.Context, query string) (*backend.CheckResult, error)
}

// View renders a state snapshot. It must not block for long; it is called
// on the goroutine that caused the transition.
type View interface {
	Render(State)
}

// Notifier shows transient messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Options configures a Controller. Backend, View, Notifier and Renderer are
// required.
type Options struct {
	Backend  Backend
	View     View
	Notifier Notifier
	Renderer chart.Renderer
	// ChartType is the initially selected type. Empty selects bar.
	ChartType chart.Type
	// ShowPrecomputed renders backend-supplied check results under each
	// check block.
	ShowPrecomputed bool
	Logger          *pterm.Logger
}

// Controller is safe for concurrent use.
type Controller struct {
	api      Backend
	view     View
	notify   Notifier
	renderer chart.Renderer
	surface  chart.Surface
	slot     chart.Slot
	log      *pterm.Logger

	showPrecomputed bool

	// mu protects st and epoch
	mu sync.Mutex
	st State
	// epoch increments on every Submit; results tagged with an older epoch
	// belong to blocks that no longer exist.
	epoch uint64
}

// New returns a controller in the Idle phase.
func New(opts Options) *Controller {
	t := opts.ChartType
	if t == "" {
		t = chart.Bar
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Controller{
		api:             opts.Backend,
		view:            opts.View,
		notify:          opts.Notifier,
		renderer:        opts.Renderer,
		log:             log,
		showPrecomputed: opts.ShowPrecomputed,
		st:              initialState(t),
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.clone()
}

// Chart returns the live chart instance, or nil.
func (c *Controller) Chart() chart.Instance {
	return c.slot.Current()
}

// publishLocked hands a snapshot to the view. Callers hold c.mu.
func (c *Controller) publishLocked() {
	if c.view != nil {
		c.view.Render(c.st.clone())
	}
}

// toast is a deferred notification, sent after c.mu is released.
type toast struct {
	ok  bool
	msg string
}

func (c *Controller) send(t toast) {
	if c.notify == nil || t.msg == "" {
		return
	}
	if t.ok {
		c.notify.Success(t.msg)
	} else {
		c.notify.Error(t.msg)
	}
}
