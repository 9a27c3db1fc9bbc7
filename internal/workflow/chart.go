package workflow

import (
	"context"

	"askdb/cli/internal/backend"
	"askdb/cli/internal/chart"
	apperr "askdb/cli/internal/errors"
)

// GenerateChart asks the backend to execute the cached query and draws the
// result on a fresh canvas with the selected chart type.
//
// Without a cached query it shows one error toast and returns
// apperr.ErrNoSQL with no request. While a generation is in flight it
// returns apperr.ErrBusy.
func (c *Controller) GenerateChart(ctx context.Context) error {
	c.mu.Lock()
	if c.st.SQL == "" {
		c.mu.Unlock()
		c.send(toast{msg: ToastNoSQL})
		return apperr.ErrNoSQL
	}
	if !c.st.ChartTrigger.Enabled {
		c.mu.Unlock()
		return apperr.ErrBusy
	}
	return c.generateChartLocked(ctx)
}

// ChangeChartType records t as the selected type. When a chart is live and
// a query is cached it regenerates the chart once, with a new request, and
// reports true. Otherwise nothing is sent.
func (c *Controller) ChangeChartType(ctx context.Context, t chart.Type) (bool, error) {
	t, err := chart.ParseType(string(t))
	if err != nil {
		return false, apperr.Wrap(apperr.InvalidInput, "", err)
	}
	c.mu.Lock()
	c.st.ChartType = t
	if !c.slot.Live() || c.st.SQL == "" || !c.st.ChartTrigger.Enabled {
		c.publishLocked()
		c.mu.Unlock()
		return false, nil
	}
	return true, c.generateChartLocked(ctx)
}

// generateChartLocked runs the chart stage. It is entered with c.mu held
// and returns with it released.
func (c *Controller) generateChartLocked(ctx context.Context) error {
	epoch := c.epoch
	sql := c.st.SQL
	typ := c.st.ChartType

	c.slot.Teardown()
	canvas := c.surface.NewCanvas()
	c.st.Phase = ChartRequested
	c.st.ChartSectionVisible = true
	c.st.ChartResultText = TextChartLoading
	c.st.Canvas = canvas
	c.st.ChartTrigger = Control{Label: LabelGeneratingChart, Enabled: false, Visible: true}
	c.publishLocked()
	c.mu.Unlock()

	c.log.Debug("generating chart", c.log.Args("type", string(typ), "canvas", canvas.ID))
	res, err := c.api.GenerateChart(ctx, sql)

	var inst chart.Instance
	if err == nil {
		inst, err = c.renderer.Render(canvas, chart.NewConfig(typ, chart.Data{Labels: res.Labels, Values: res.Values}))
		if err != nil {
			err = apperr.Wrap(apperr.Application, err.Error(), err)
		}
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		if inst != nil {
			inst.Destroy()
		}
		c.log.Debug("dropping chart for a superseded query", c.log.Args("canvas", canvas.ID))
		return err
	}
	var t toast
	if err != nil {
		t = c.applyChartFailureLocked(canvas, err)
	} else {
		t = c.applyChartResultLocked(inst, res)
	}
	c.st.ChartTrigger = Control{Label: LabelGenerateChart, Enabled: true, Visible: true}
	c.publishLocked()
	c.mu.Unlock()

	c.send(t)
	return err
}

func (c *Controller) applyChartResultLocked(inst chart.Instance, res *backend.ChartResult) toast {
	c.slot.Replace(inst)
	c.st.Phase = ChartReady
	if res.Result != nil {
		c.st.ChartResultText = backend.Pretty(res.Result)
	} else {
		c.st.ChartResultText = TextNoChartResult
	}
	return toast{ok: true, msg: orDefault(res.Message, ToastChartGenerated)}
}

func (c *Controller) applyChartFailureLocked(canvas *chart.Canvas, err error) toast {
	c.st.Phase = ChartFailed
	c.log.Debug("chart failed", c.log.Args("kind", string(apperr.KindOf(err)), "error", err.Error()))

	if apperr.KindOf(err) == apperr.Application {
		msg := apperr.MessageOf(err)
		canvas.PaintMessage(orDefault(msg, TextNoChartData))
		c.st.ChartResultText = "Error: " + orDefault(msg, TextNoChartData)
		return toast{msg: orDefault(msg, ToastChartFailed)}
	}
	canvas.PaintMessage(TextCanvasNetwork)
	c.st.ChartResultText = TextNetworkRetry
	return toast{msg: ToastChartNetwork}
}
