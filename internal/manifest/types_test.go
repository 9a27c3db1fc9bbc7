// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"testing"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		want        Variant
		expectError bool
	}{
		{name: "empty defaults to generate_sql", in: "", want: VariantGenerateSQL},
		{name: "generate_sql", in: "generate_sql", want: VariantGenerateSQL},
		{name: "gather_information", in: " gather_information ", want: VariantGatherInformation},
		{name: "unknown", in: "ask_anything", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.expectError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVariant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEndpointsPerVariant(t *testing.T) {
	if got := Endpoints(VariantGenerateSQL).Query; got != "/api/generate_sql/" {
		t.Errorf("generate_sql query path = %q", got)
	}
	if got := Endpoints(VariantGatherInformation).Query; got != "/api/gather_information/" {
		t.Errorf("gather_information query path = %q", got)
	}
	e := Endpoints(VariantGatherInformation)
	if e.Chart != "/api/generate_chart/" || e.CheckAtomic != "/api/check-atomic-query/" || e.DBConfig != "/api/db_config/" {
		t.Errorf("shared endpoints changed with variant: %+v", e)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		wantBase    string
		expectError bool
	}{
		{name: "trailing slash trimmed", baseURL: "http://localhost:8000/", wantBase: "http://localhost:8000"},
		{name: "path prefix kept", baseURL: "https://example.com/askdb/", wantBase: "https://example.com/askdb"},
		{name: "missing scheme", baseURL: "localhost:8000", expectError: true},
		{name: "ftp scheme", baseURL: "ftp://example.com", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.baseURL, "")
			if tt.expectError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.HTTPBaseURL() != tt.wantBase {
				t.Errorf("HTTPBaseURL() = %q, want %q", m.HTTPBaseURL(), tt.wantBase)
			}
			if got := m.URL(m.HTTP.Chart); got != tt.wantBase+"/api/generate_chart/" {
				t.Errorf("URL() = %q", got)
			}
		})
	}
}
