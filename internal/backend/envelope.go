package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	apperr "askdb/cli/internal/errors"
)

// envelope is the response wrapper every backend endpoint uses:
// {success, message, data} on success and {success, message, errors} on failure.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeEnvelope(raw []byte) (*envelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}
	if trimmed[0] != '{' {
		return nil, errors.New("body is not a JSON object")
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// failure converts a success:false envelope into an Application error.
// Field validation errors, when present, are appended to the message.
func (e *envelope) failure() error {
	msg := e.Message
	if details := fieldErrors(e.Errors); details != "" {
		if msg == "" {
			msg = details
		} else {
			msg = msg + ": " + details
		}
	}
	return apperr.New(apperr.Application, msg)
}

// fieldErrors flattens a serializer error map like {"db_host": ["This field is required."]}.
func fieldErrors(raw json.RawMessage) string {
	if !isJSONObject(raw) {
		return ""
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		var msgs []string
		if err := json.Unmarshal(m[k], &msgs); err != nil {
			msgs = []string{rawText(m[k])}
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(msgs, " ")))
	}
	return strings.Join(parts, "; ")
}

func isJSONObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

func isJSONArray(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '['
}

// truthy reports whether raw is a JSON value that would pass an
// `if (value)` check: non-null, non-false, non-zero and non-empty string.
// Empty arrays and objects are truthy.
func truthy(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return false
	}
	switch string(t) {
	case "null", "false", `""`:
		return false
	}
	var f float64
	if err := json.Unmarshal(t, &f); err == nil {
		return f != 0
	}
	return true
}

// rawText renders a JSON value the way string interpolation would: strings
// without quotes, everything else as compact JSON.
func rawText(raw json.RawMessage) string {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || string(t) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(t, &s); err == nil {
		return s
	}
	return string(t)
}

// stringField returns raw as a string when it is a JSON string.
func stringField(raw json.RawMessage) (string, bool) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || t[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(t, &s); err != nil {
		return "", false
	}
	return s, true
}

// Pretty indents a raw JSON value with two spaces.
func Pretty(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
