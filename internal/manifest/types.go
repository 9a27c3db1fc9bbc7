// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest handles backend endpoint configuration.
//
// The query backend has shipped two generations of its query endpoint with
// different paths and response field names. A Manifest pins the path set for
// one generation so the rest of the client never hard-codes either.
package manifest

import (
	"fmt"
	"net/url"
	"strings"
)

// Variant names a generation of the query endpoint.
type Variant string

const (
	// VariantGenerateSQL posts to /api/generate_sql/ and receives
	// data.main_query plus data.atomic_checks.
	VariantGenerateSQL Variant = "generate_sql"
	// VariantGatherInformation posts to /api/gather_information/ and receives
	// data.result.main_query plus data.discovery_data with pre-run results.
	VariantGatherInformation Variant = "gather_information"
)

// Manifest represents the endpoint configuration for one backend.
type Manifest struct {
	BaseURL string
	Variant Variant
	HTTP    HTTPEndpoints
}

// HTTPEndpoints contains REST API endpoint paths.
type HTTPEndpoints struct {
	Index       string // e.g., "/" (sets the csrftoken cookie)
	Query       string // e.g., "/api/generate_sql/"
	Chart       string // e.g., "/api/generate_chart/"
	CheckAtomic string // e.g., "/api/check-atomic-query/"
	DBConfig    string // e.g., "/api/db_config/"
}

// ParseVariant validates a variant name. Empty selects VariantGenerateSQL,
// the only query route wired in the backend's API url table.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.TrimSpace(s)) {
	case "", VariantGenerateSQL:
		return VariantGenerateSQL, nil
	case VariantGatherInformation:
		return VariantGatherInformation, nil
	default:
		return "", fmt.Errorf("unknown backend variant %q (want %s or %s)", s, VariantGenerateSQL, VariantGatherInformation)
	}
}

// Endpoints returns the path set for v.
func Endpoints(v Variant) HTTPEndpoints {
	e := HTTPEndpoints{
		Index:       "/",
		Query:       "/api/generate_sql/",
		Chart:       "/api/generate_chart/",
		CheckAtomic: "/api/check-atomic-query/",
		DBConfig:    "/api/db_config/",
	}
	if v == VariantGatherInformation {
		e.Query = "/api/gather_information/"
	}
	return e
}

// New builds a Manifest for baseURL and variant name.
func New(baseURL, variant string) (*Manifest, error) {
	v, err := ParseVariant(variant)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}
	return &Manifest{
		BaseURL: strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/"),
		Variant: v,
		HTTP:    Endpoints(v),
	}, nil
}

// HTTPBaseURL returns the base URL without a trailing slash.
func (m *Manifest) HTTPBaseURL() string {
	return m.BaseURL
}

// URL joins the base URL with an endpoint path.
func (m *Manifest) URL(path string) string {
	return m.BaseURL + path
}
