package workflow

import (
	"context"
	"fmt"

	"askdb/cli/internal/backend"
	apperr "askdb/cli/internal/errors"
)

// TestCheck runs the query of the check block at index (0-based) and writes
// the outcome into that block only. Blocks are independent: tests of
// different blocks may overlap. A second test of the same block while one is
// running returns apperr.ErrBusy.
//
// A result that arrives after a newer Submit is dropped; that Submit already
// cleared the blocks.
func (c *Controller) TestCheck(ctx context.Context, index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.st.Checks) {
		n := len(c.st.Checks)
		c.mu.Unlock()
		return apperr.New(apperr.InvalidInput, fmt.Sprintf("no atomic check #%d (have %d)", index+1, n))
	}
	if !c.st.Checks[index].Test.Enabled {
		c.mu.Unlock()
		return apperr.ErrBusy
	}
	epoch := c.epoch
	query := c.st.Checks[index].Query
	cv := &c.st.Checks[index]
	cv.Status = CheckRunning
	cv.Output = TextExecutingCheck
	cv.Test.Enabled = false
	c.publishLocked()
	c.mu.Unlock()

	res, err := c.api.CheckAtomicQuery(ctx, query)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		c.log.Debug("dropping check result for a superseded query", c.log.Args("check", index+1))
		return err
	}
	var t toast
	cv = &c.st.Checks[index]
	switch {
	case err == nil:
		t = applyCheckResult(cv, res)
	case apperr.KindOf(err) == apperr.Application:
		msg := apperr.MessageOf(err)
		cv.Status = CheckFailed
		cv.Output = "Error: " + orDefault(msg, TextCheckFailed)
		t = toast{msg: orDefault(msg, ToastCheckFailed)}
	default:
		cv.Status = CheckFailed
		cv.Output = TextCheckNetworkError
		t = toast{msg: ToastCheckNetwork}
	}
	cv.Test.Enabled = true
	c.publishLocked()
	c.mu.Unlock()

	c.send(t)
	return err
}

func applyCheckResult(cv *CheckView, res *backend.CheckResult) toast {
	cv.Status = CheckPassed
	if res.Result != nil {
		cv.Output = "Success: " + backend.Pretty(res.Result)
	} else {
		cv.Output = "Success: " + TextNoResult
	}
	return toast{ok: true, msg: ToastCheckPassed}
}

// ToggleChecks flips the visibility of the checks panel and returns the new
// visibility. It is a no-op while the toggle control is disabled.
func (c *Controller) ToggleChecks() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.st.ToggleChecks.Enabled {
		return c.st.ChecksVisible
	}
	c.st.ChecksVisible = !c.st.ChecksVisible
	if c.st.ChecksVisible {
		c.st.ToggleChecks.Label = LabelHideChecks
	} else {
		c.st.ToggleChecks.Label = LabelShowChecks
	}
	c.publishLocked()
	return c.st.ChecksVisible
}
