// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides interfaces and implementations for communicating with the query backend.
// It defines the API contract for query submission, chart generation, atomic checks and
// database settings, with one typed decoder per endpoint. Every call either returns its
// typed result or an *errors.E of kind Application (the backend said no, or the body
// lacked required fields) or Transport (network failure or unparseable body).
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// SubmitQuery sends a natural-language question and returns the main query
	// and the ordered atomic checks.
	SubmitQuery(ctx context.Context, userQuery string) (*QueryResult, error)
	// GenerateChart executes sqlQuery on the backend and returns chart data.
	GenerateChart(ctx context.Context, sqlQuery string) (*ChartResult, error)
	// CheckAtomicQuery runs a single atomic check query.
	CheckAtomicQuery(ctx context.Context, query string) (*CheckResult, error)
	// SaveDBConfig creates or updates the database settings for cfg.UserEmail
	// and returns the backend's confirmation message.
	SaveDBConfig(ctx context.Context, cfg DBConfig) (string, error)
	// ListDBConfigs returns every stored database configuration.
	ListDBConfigs(ctx context.Context) ([]DBConfig, error)
}
