package backend

import (
	"context"
	"encoding/json"
)

// CheckRequest is the body of the atomic check endpoint.
type CheckRequest struct {
	Query string `json:"query"`
}

// CheckResult is the decoded success payload of the atomic check endpoint.
type CheckResult struct {
	Message string
	// Result is nil when the backend returned no data.result.
	Result json.RawMessage
}

// CheckAtomicQuery posts {query} to the atomic check endpoint.
func (h *HTTP) CheckAtomicQuery(ctx context.Context, query string) (*CheckResult, error) {
	env, err := h.postJSON(ctx, h.m.HTTP.CheckAtomic, CheckRequest{Query: query})
	if err != nil {
		return nil, err
	}
	return decodeCheck(env)
}

func decodeCheck(env *envelope) (*CheckResult, error) {
	if !env.Success {
		return nil, env.failure()
	}
	res := &CheckResult{Message: env.Message}
	if isJSONObject(env.Data) {
		var d struct {
			Result json.RawMessage `json:"result"`
		}
		if err := json.Unmarshal(env.Data, &d); err == nil && truthy(d.Result) {
			res.Result = d.Result
		}
	}
	return res, nil
}
