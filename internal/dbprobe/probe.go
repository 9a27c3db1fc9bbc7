// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dbprobe checks that database settings work before they are handed
// to the backend. It connects with a short-lived pgx pool, reads the server
// version and, when a table name is configured, looks the table up in
// information_schema.
package dbprobe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTimeout bounds a probe when the caller's context has no deadline.
const DefaultTimeout = 5 * time.Second

// Table describes the configured table as the server sees it.
type Table struct {
	Schema     string
	Name       string
	Exists     bool
	Columns    []string
	PrimaryKey []string
}

// Report is the outcome of a successful probe.
type Report struct {
	ServerVersion string
	Latency       time.Duration
	// Table is nil when no table name was given.
	Table *Table
}

// Probe connects to connString, pings the server and inspects table.
func Probe(ctx context.Context, connString, table string) (*Report, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection settings: %w", err)
	}
	cfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	start := time.Now()
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	rep := &Report{Latency: time.Since(start)}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	if err := conn.QueryRow(ctx, "SHOW server_version").Scan(&rep.ServerVersion); err != nil {
		return nil, fmt.Errorf("read server version: %w", err)
	}

	if strings.TrimSpace(table) == "" {
		return rep, nil
	}
	t, err := inspectTable(ctx, conn, table)
	if err != nil {
		return nil, err
	}
	rep.Table = t
	return rep, nil
}

func inspectTable(ctx context.Context, conn *pgxpool.Conn, name string) (*Table, error) {
	schema, table := parseTableName(name)
	t := &Table{Schema: schema, Name: table}

	rows, err := conn.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`, schema, table)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s.%s: %w", schema, table, err)
	}
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			rows.Close()
			return nil, err
		}
		t.Columns = append(t.Columns, col)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	t.Exists = len(t.Columns) > 0
	if !t.Exists {
		return t, nil
	}

	pk, err := conn.Query(ctx, `
		SELECT kc.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kc
		  ON tc.constraint_name = kc.constraint_name AND tc.table_schema = kc.table_schema
		WHERE tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kc.ordinal_position`, schema, table)
	if err != nil {
		// Missing privileges on the constraint views only cost the key listing.
		return t, nil
	}
	defer pk.Close()
	for pk.Next() {
		var col string
		if err := pk.Scan(&col); err == nil {
			t.PrimaryKey = append(t.PrimaryKey, col)
		}
	}
	return t, pk.Err()
}

// parseTableName splits "schema.table"; a bare name lives in public.
// Surrounding double quotes are removed from each part.
func parseTableName(name string) (schema, table string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return unquote(name[:i]), unquote(name[i+1:])
	}
	return "public", unquote(name)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
