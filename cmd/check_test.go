// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"testing"
)

func TestAdHocChecks(t *testing.T) {
	checks, err := adHocChecks([]string{"SELECT 1", "  ", "\t", " SELECT 2 "})
	if err != nil {
		t.Fatalf("adHocChecks() error = %v", err)
	}
	if len(checks) != 2 {
		t.Fatalf("got %d checks, want 2", len(checks))
	}
	want := []struct{ desc, query string }{
		{"Query 1", "SELECT 1"},
		{"Query 2", "SELECT 2"},
	}
	for i, w := range want {
		if checks[i].Description != w.desc || checks[i].Query != w.query {
			t.Errorf("check %d = %q/%q, want %q/%q", i, checks[i].Description, checks[i].Query, w.desc, w.query)
		}
	}
}

func TestAdHocChecks_AllBlank(t *testing.T) {
	if _, err := adHocChecks([]string{"", "   "}); err == nil {
		t.Fatal("expected an error when every argument is blank")
	}
}
