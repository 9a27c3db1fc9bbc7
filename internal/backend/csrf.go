// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
)

const (
	csrfCookie    = "csrftoken"
	csrfHeader    = "X-CSRFToken"
	sessionCookie = "sessionid"
)

// csrfToken returns the csrftoken cookie value for the base URL, or "" when
// the jar has none.
func (h *HTTP) csrfToken() string {
	return h.cookie(csrfCookie)
}

func (h *HTTP) cookie(name string) string {
	for _, c := range h.client.Jar.Cookies(h.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// ensureCSRFToken loads the index page once so the backend sets the
// csrftoken cookie. Failures are logged and otherwise ignored: the POST that
// follows reports its own error if the token really was required.
func (h *HTTP) ensureCSRFToken(ctx context.Context) {
	if h.csrfToken() != "" {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.m.URL(h.m.HTTP.Index), nil)
	if err != nil {
		return
	}
	req.Header.Set("Accept", "text/html")
	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Debug("csrf priming failed", h.log.Args("error", err.Error()))
		return
	}
	resp.Body.Close()
	if h.csrfToken() == "" {
		h.log.Debug("backend did not set a csrftoken cookie", h.log.Args("status", resp.StatusCode))
	}
}

// setSessionCookie seeds the jar with an existing backend session.
func (h *HTTP) setSessionCookie(sessionID string) {
	h.client.Jar.SetCookies(h.base, []*http.Cookie{{
		Name:  sessionCookie,
		Value: sessionID,
		Path:  "/",
	}})
}
