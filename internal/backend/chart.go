package backend

import (
	"context"
	"encoding/json"

	apperr "askdb/cli/internal/errors"
)

// MsgChartLengthMismatch is the failure message for chart data whose label and
// value sequences differ in length.
const MsgChartLengthMismatch = "Chart labels and values have different lengths."

// ChartRequest is the body of the chart endpoint.
type ChartRequest struct {
	SQLQuery string `json:"sql_query"`
}

// ChartResult is the decoded success payload of the chart endpoint.
type ChartResult struct {
	Message string
	Labels  []string
	Values  []float64
	// Result is the raw rows the chart was derived from; nil when absent.
	Result json.RawMessage
}

type chartData struct {
	Result    json.RawMessage `json:"result"`
	ChartData *struct {
		Labels json.RawMessage `json:"labels"`
		Values json.RawMessage `json:"values"`
	} `json:"chart_data"`
}

// GenerateChart posts {sql_query} to the chart endpoint.
func (h *HTTP) GenerateChart(ctx context.Context, sqlQuery string) (*ChartResult, error) {
	env, err := h.postJSON(ctx, h.m.HTTP.Chart, ChartRequest{SQLQuery: sqlQuery})
	if err != nil {
		return nil, err
	}
	return decodeChart(env)
}

func decodeChart(env *envelope) (*ChartResult, error) {
	if !env.Success {
		return nil, env.failure()
	}
	// A success without usable chart data is reported with whatever message
	// the backend sent, so the caller falls back to its own wording.
	missing := apperr.New(apperr.Application, env.Message)

	if !isJSONObject(env.Data) {
		return nil, missing
	}
	var d chartData
	if err := json.Unmarshal(env.Data, &d); err != nil || d.ChartData == nil {
		return nil, missing
	}
	if !truthy(d.ChartData.Labels) || !truthy(d.ChartData.Values) {
		return nil, missing
	}

	var rawLabels []json.RawMessage
	if err := json.Unmarshal(d.ChartData.Labels, &rawLabels); err != nil {
		return nil, missing
	}
	var values []float64
	if err := json.Unmarshal(d.ChartData.Values, &values); err != nil {
		return nil, missing
	}
	if len(rawLabels) != len(values) {
		return nil, apperr.New(apperr.Application, MsgChartLengthMismatch)
	}

	labels := make([]string, len(rawLabels))
	for i, l := range rawLabels {
		labels[i] = rawText(l)
	}

	res := &ChartResult{
		Message: env.Message,
		Labels:  labels,
		Values:  values,
	}
	if truthy(d.Result) {
		res.Result = d.Result
	}
	return res, nil
}
