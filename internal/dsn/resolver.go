// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"strings"
)

// DetectDBType detects the database type from a DSN string
func DetectDBType(dsn string) DBType {
	lower := strings.ToLower(dsn)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DBTypePostgreSQL
	case strings.HasPrefix(lower, "mysql://"):
		return DBTypeMySQL
	case strings.HasPrefix(lower, "oracle://"):
		return DBTypeOracle
	}
	return DBTypeUnknown
}

// Parse splits a connection string into its fields. Only PostgreSQL is
// accepted: it is the one db_type the backend can execute against.
func Parse(dsn string) (*Info, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, parseError("empty DSN", "provide a valid database connection string")
	}

	switch DetectDBType(dsn) {
	case DBTypePostgreSQL:
		return parsePostgres(dsn)
	case DBTypeMySQL, DBTypeOracle:
		return nil, parseError("the backend only executes against PostgreSQL", "use a postgres:// connection string")
	default:
		return nil, parseError("unknown database type", "use postgres:// or postgresql://")
	}
}
