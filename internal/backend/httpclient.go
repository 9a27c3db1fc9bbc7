package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	apperr "askdb/cli/internal/errors"
	"askdb/cli/internal/logging"
	"askdb/cli/internal/manifest"

	"github.com/pterm/pterm"
	"golang.org/x/net/publicsuffix"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 32 << 20

// Options configures the HTTP client.
type Options struct {
	// Timeout bounds each request. Zero means no client-side timeout; the
	// caller's context still applies.
	Timeout time.Duration
	// SessionID is the backend session cookie value, if any.
	SessionID string
	// Logger receives request traces. Nil disables logging.
	Logger *pterm.Logger
	// Transport overrides the round tripper (tests).
	Transport http.RoundTripper
}

// HTTP implements API client over REST endpoints.
// Cookies set by the backend (csrftoken, sessionid) persist in a jar for
// the life of the client.
type HTTP struct {
	// m carries the base URL and endpoint paths
	m *manifest.Manifest
	// base is the parsed base URL used for cookie lookups
	base *url.URL
	// client is the underlying HTTP client with configured timeout and jar
	client *http.Client
	log    *pterm.Logger
}

// newHTTP creates a new HTTP client for the manifest.
func newHTTP(m *manifest.Manifest, opts Options) (*HTTP, error) {
	base, err := url.Parse(m.HTTPBaseURL())
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	h := &HTTP{
		m:    m,
		base: base,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Jar:       jar,
			Transport: opts.Transport,
		},
		log: log,
	}
	if opts.SessionID != "" {
		h.setSessionCookie(opts.SessionID)
	}
	return h, nil
}

// postJSON sends body to path and decodes the standard response envelope.
// Network failures and undecodable bodies come back as Transport errors; the
// envelope's success flag is left for the caller to judge.
func (h *HTTP) postJSON(ctx context.Context, path string, body any) (*envelope, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "encode request", err)
	}

	h.ensureCSRFToken(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.m.URL(path), bytes.NewReader(b))
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	h.setStandardHeaders(req)
	if token := h.csrfToken(); token != "" {
		req.Header.Set(csrfHeader, token)
	}

	h.log.Debug("backend request", h.log.Args("method", http.MethodPost, "path", path, "body", logging.Mask(string(b))))
	return h.do(req)
}

// getJSON fetches path and decodes the standard response envelope.
func (h *HTTP) getJSON(ctx context.Context, path string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.m.URL(path), nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "build request", err)
	}
	h.setStandardHeaders(req)
	h.log.Debug("backend request", h.log.Args("method", http.MethodGet, "path", path))
	return h.do(req)
}

func (h *HTTP) do(req *http.Request) (*envelope, error) {
	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "read response", err)
	}
	h.log.Debug("backend response", h.log.Args(
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	))

	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, fmt.Sprintf("unexpected response (HTTP %d)", resp.StatusCode), err)
	}
	return env, nil
}

// setStandardHeaders adds headers every backend request carries.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "askdb-cli/1.0")
	// Django rejects HTTPS POSTs whose Referer is not same-origin.
	req.Header.Set("Referer", h.m.HTTPBaseURL()+"/")
}
