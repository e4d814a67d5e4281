package db

import (
	"context"
	"database/sql"
	"fmt"
)

// The tables read by ggregion. Only the columns queried are required;
// the full iTEP tables carry more.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS processed (
		geneid TEXT PRIMARY KEY,
		organism TEXT,
		organismid TEXT,
		annotation TEXT,
		contig TEXT,
		genestart INTEGER,
		geneend INTEGER,
		strand TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS neighborhoods (
		centergene TEXT,
		neighborgene TEXT,
		distance INTEGER,
		neighbororganism TEXT,
		neighborannotation TEXT,
		strand TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS clusters (
		runid TEXT,
		clusterid INTEGER,
		geneid TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS organisms (
		organism TEXT,
		organismid TEXT
	)`,
}

// CreateSchema creates empty store tables. Used for fixtures and `ggregion initdb`.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
