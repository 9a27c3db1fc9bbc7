// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dbprobe

import (
	"context"
	"testing"
)

func TestParseTableName(t *testing.T) {
	tests := []struct {
		in, schema, table string
	}{
		{"orders", "public", "orders"},
		{"sales.orders", "sales", "orders"},
		{` "Sales"."Order Lines" `, "Sales", "Order Lines"},
		{`"orders"`, "public", "orders"},
	}
	for _, tt := range tests {
		s, tb := parseTableName(tt.in)
		if s != tt.schema || tb != tt.table {
			t.Errorf("parseTableName(%q) = %q, %q; want %q, %q", tt.in, s, tb, tt.schema, tt.table)
		}
	}
}

func TestProbe_InvalidConnString(t *testing.T) {
	_, err := Probe(context.Background(), "postgres://u@h:notaport/db", "")
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}
