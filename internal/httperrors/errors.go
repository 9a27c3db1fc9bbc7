// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns transport failures against the query backend into
// troubleshooting hints.
package httperrors

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Category classifies a transport failure.
type Category string

const (
	Timeout           Category = "timeout"
	DNS               Category = "dns"
	ConnectionRefused Category = "connection_refused"
	TLS               Category = "tls"
	Forbidden         Category = "forbidden"
	NotFound          Category = "not_found"
	Server            Category = "server"
	Generic           Category = "generic"
)

// Diagnosis is a headline plus things the user can check.
type Diagnosis struct {
	Category Category
	Title    string
	Hints    []string
}

// Diagnose inspects err, which came from talking to the backend at baseURL.
func Diagnose(err error, baseURL string) Diagnosis {
	host := ExtractHostFromURL(baseURL)
	errStr := strings.ToLower(err.Error())

	switch {
	case isTimeoutError(err):
		return Diagnosis{Timeout, "The backend took too long to respond", []string{
			"SQL generation can be slow; raise timeout_seconds (ASKDB_TIMEOUT_SECONDS)",
			"Check that " + host + " is not overloaded",
		}}
	case isDNSError(err):
		return Diagnosis{DNS, "Cannot resolve " + host, []string{
			"Check base_url in the config or --base-url",
			"Check your DNS settings and network connection",
		}}
	case isConnectionRefusedError(err):
		return Diagnosis{ConnectionRefused, "Connection refused by " + host, []string{
			"Is the backend running? (python manage.py runserver)",
			"Check the port in base_url",
		}}
	case isSSLError(errStr):
		return Diagnosis{TLS, "Secure connection to " + host + " failed", []string{
			"Check the server certificate and your system clock",
			"Use http:// for a local development server",
		}}
	case strings.Contains(errStr, "http 403"):
		return Diagnosis{Forbidden, "The backend rejected the request (HTTP 403)", []string{
			"The CSRF check failed or the session expired",
			"Store a fresh session cookie with: askdb session set",
		}}
	case strings.Contains(errStr, "http 404"):
		return Diagnosis{NotFound, "Endpoint not found on " + host + " (HTTP 404)", []string{
			"The backend may expose a different query endpoint; try --variant generate_sql or --variant gather_information",
		}}
	case isServerError(errStr):
		return Diagnosis{Server, "The backend encountered an internal error", []string{
			"Check the backend logs on " + host,
			"Try again in a few moments",
		}}
	}
	return Diagnosis{Generic, "Cannot talk to the backend at " + host, []string{
		"Check your network connection",
		"Check base_url in the config or --base-url",
	}}
}

// Print shows d under a warning header. context names the action that failed.
func Print(d Diagnosis, context string) {
	pterm.Warning.Printf("%s while %s\n", d.Title, context)
	items := make([]pterm.BulletListItem, 0, len(d.Hints))
	for _, h := range d.Hints {
		items = append(items, pterm.BulletListItem{Level: 1, Text: h})
	}
	_ = pterm.DefaultBulletList.WithItems(items).Render()
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(errStr string) bool {
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks for 5xx responses.
func isServerError(errStr string) bool {
	for _, code := range []string{"http 500", "http 502", "http 503", "http 504"} {
		if strings.Contains(errStr, code) {
			return true
		}
	}
	return strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable")
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
