package workflow

import (
	"context"

	"askdb/cli/internal/backend"
	apperr "askdb/cli/internal/errors"
)

// Submit sends userQuery to the backend and renders the generated query and
// its atomic checks. The question is forwarded as-is, even when empty.
//
// Submit returns apperr.ErrBusy without a request while another Submit is in
// flight. Otherwise it returns the backend error, if any, after the state
// already reflects it.
func (c *Controller) Submit(ctx context.Context, userQuery string) error {
	c.mu.Lock()
	if !c.st.Submit.Enabled {
		c.mu.Unlock()
		return apperr.ErrBusy
	}
	c.epoch++
	epoch := c.epoch
	c.resetForSubmitLocked()
	c.publishLocked()
	c.mu.Unlock()

	c.log.Debug("submitting question", c.log.Args("epoch", epoch, "length", len(userQuery)))
	res, err := c.api.SubmitQuery(ctx, userQuery)

	c.mu.Lock()
	var t toast
	if err != nil {
		t = c.applySubmitFailureLocked(err)
	} else {
		t = c.applySubmitResultLocked(res)
	}
	c.st.Submit = Control{Label: LabelRunQuery, Enabled: true, Visible: true}
	c.publishLocked()
	c.mu.Unlock()

	c.send(t)
	return err
}

// resetForSubmitLocked discards everything downstream of the question.
func (c *Controller) resetForSubmitLocked() {
	c.slot.Teardown()
	c.st.Phase = Submitting
	c.st.MainText = TextLoading
	c.st.SQL = ""
	c.st.Checks = nil
	c.st.ChecksPlaceholder = ""
	c.st.ChecksVisible = false
	c.st.ChartSectionVisible = false
	c.st.ChartResultText = TextChartLoading
	c.st.Canvas = nil
	c.st.ChartTrigger = Control{Label: LabelGenerateChart}
	c.st.ToggleChecks = Control{Label: LabelShowChecks}
	c.st.Submit = Control{Label: LabelRunningQuery, Enabled: false, Visible: true}
}

func (c *Controller) applySubmitResultLocked(res *backend.QueryResult) toast {
	c.st.Phase = Ready
	t := toast{ok: true, msg: orDefault(res.Message, ToastSQLGenerated)}

	if !res.HasData {
		c.st.MainText = TextNoData
		return t
	}

	if res.HasMainQuery && res.MainQuery != "" {
		c.st.MainText = res.MainQuery
		c.st.SQL = res.MainQuery
		c.st.ChartTrigger = Control{Label: LabelGenerateChart, Enabled: true, Visible: true}
	} else {
		c.st.MainText = TextNoMainQuery
	}

	if len(res.Checks) == 0 {
		c.st.ChecksPlaceholder = TextNoChecks
		return t
	}
	c.st.Checks = make([]CheckView, len(res.Checks))
	for i, ac := range res.Checks {
		cv := CheckView{
			Number:      i + 1,
			Description: ac.Description,
			Query:       ac.Query,
			Test:        Control{Label: LabelTestCheck, Enabled: true, Visible: true},
		}
		if c.showPrecomputed {
			if ac.HasResult() {
				cv.Precomputed = backend.Pretty(ac.Result)
			} else {
				cv.Precomputed = TextNoCheckResult
			}
		}
		c.st.Checks[i] = cv
	}
	c.st.ToggleChecks = Control{Label: LabelShowChecks, Enabled: true, Visible: true}
	return t
}

func (c *Controller) applySubmitFailureLocked(err error) toast {
	c.st.Phase = Failed
	c.log.Debug("submit failed", c.log.Args("kind", string(apperr.KindOf(err)), "error", err.Error()))

	if apperr.KindOf(err) == apperr.Application {
		msg := apperr.MessageOf(err)
		c.st.MainText = "Error: " + orDefault(msg, TextUnknownError)
		return toast{msg: orDefault(msg, ToastQueryFailed)}
	}
	c.st.MainText = TextNetworkRetry
	return toast{msg: ToastQueryNetwork}
}

// Adopt installs res as if a Submit had just returned it, without a request
// and without a notification. It lets callers chart or check a query they
// already have.
func (c *Controller) Adopt(res *backend.QueryResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.st.Submit.Enabled {
		return apperr.ErrBusy
	}
	c.epoch++
	c.resetForSubmitLocked()
	c.applySubmitResultLocked(res)
	c.st.Submit = Control{Label: LabelRunQuery, Enabled: true, Visible: true}
	c.publishLocked()
	return nil
}
