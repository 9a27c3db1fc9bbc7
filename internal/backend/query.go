package backend

import (
	"context"
	"encoding/json"
)

// QueryRequest is the body of the query endpoint.
type QueryRequest struct {
	UserQuery string `json:"user_query"`
}

// AtomicCheck is one backend-suggested validation query.
type AtomicCheck struct {
	Description string
	Query       string
	// Result holds the pre-computed query_result (discovery variant only).
	// Nil when the backend sent none or an empty one.
	Result json.RawMessage
}

// HasResult reports whether the backend pre-computed a non-empty result.
func (c AtomicCheck) HasResult() bool { return c.Result != nil }

// QueryResult is the decoded success payload of the query endpoint.
type QueryResult struct {
	Message string
	// HasData is false when the backend reported success without a data object.
	HasData bool
	// MainQuery is the generated SQL or direct answer.
	MainQuery string
	// HasMainQuery is false when the backend returned no string main_query.
	HasMainQuery bool
	// Checks keep the backend's order.
	Checks []AtomicCheck
}

type queryData struct {
	MainQuery json.RawMessage `json:"main_query"`
	Result    json.RawMessage `json:"result"`
	// Two generations of the endpoint name the list differently.
	AtomicChecks  json.RawMessage `json:"atomic_checks"`
	DiscoveryData json.RawMessage `json:"discovery_data"`
}

type wireCheck struct {
	Description json.RawMessage `json:"description"`
	Query       json.RawMessage `json:"query"`
	QueryResult json.RawMessage `json:"query_result"`
}

// SubmitQuery posts {user_query} to the query endpoint.
func (h *HTTP) SubmitQuery(ctx context.Context, userQuery string) (*QueryResult, error) {
	env, err := h.postJSON(ctx, h.m.HTTP.Query, QueryRequest{UserQuery: userQuery})
	if err != nil {
		return nil, err
	}
	return decodeQuery(env)
}

func decodeQuery(env *envelope) (*QueryResult, error) {
	if !env.Success {
		return nil, env.failure()
	}
	res := &QueryResult{Message: env.Message}
	if !isJSONObject(env.Data) {
		return res, nil
	}
	var d queryData
	if err := json.Unmarshal(env.Data, &d); err != nil {
		return res, nil
	}
	res.HasData = true

	if isJSONObject(d.Result) {
		var nested struct {
			MainQuery json.RawMessage `json:"main_query"`
		}
		if err := json.Unmarshal(d.Result, &nested); err == nil {
			res.MainQuery, res.HasMainQuery = stringField(nested.MainQuery)
		}
	}
	if !res.HasMainQuery {
		res.MainQuery, res.HasMainQuery = stringField(d.MainQuery)
	}

	list := d.AtomicChecks
	if isJSONArray(d.DiscoveryData) {
		list = d.DiscoveryData
	}
	res.Checks = decodeChecks(list)
	return res, nil
}

// decodeChecks returns nil for anything that is not a JSON array.
func decodeChecks(raw json.RawMessage) []AtomicCheck {
	if !isJSONArray(raw) {
		return nil
	}
	var wire []wireCheck
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil
	}
	out := make([]AtomicCheck, 0, len(wire))
	for _, w := range wire {
		c := AtomicCheck{
			Description: rawText(w.Description),
			Query:       rawText(w.Query),
		}
		if nonEmptyResult(w.QueryResult) {
			c.Result = w.QueryResult
		}
		out = append(out, c)
	}
	return out
}

// nonEmptyResult is true for a non-empty JSON array or string.
func nonEmptyResult(raw json.RawMessage) bool {
	if isJSONArray(raw) {
		var items []json.RawMessage
		return json.Unmarshal(raw, &items) == nil && len(items) > 0
	}
	s, ok := stringField(raw)
	return ok && s != ""
}
