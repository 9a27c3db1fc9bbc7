// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"askdb/cli/internal/manifest"
)

// New creates a backend API implementation for the manifest endpoints.
// Returns HTTP client (real backend).
func New(m *manifest.Manifest, opts Options) (API, error) {
	return newHTTP(m, opts)
}
