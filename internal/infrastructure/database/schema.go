package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Index name referenced by the upsert path when detecting a lost
// unique-title race.
const UniqueTitleIndex = "idx_books_title_lower"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
		book_id          BIGSERIAL PRIMARY KEY,
		title            TEXT NOT NULL,
		publication_year INT,
		image_url        TEXT
	)`,
	// Titles are unique under case-insensitive comparison.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_books_title_lower ON books (LOWER(title))`,
	`CREATE TABLE IF NOT EXISTS authors (
		author_id BIGSERIAL PRIMARY KEY,
		name      TEXT NOT NULL UNIQUE
	)`,
	// created_at preserves link-creation order for the joined author string.
	`CREATE TABLE IF NOT EXISTS book_author (
		book_id    BIGINT NOT NULL REFERENCES books (book_id) ON DELETE CASCADE,
		author_id  BIGINT NOT NULL REFERENCES authors (author_id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (book_id, author_id)
	)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id             BIGSERIAL PRIMARY KEY,
		function_name  TEXT,
		status         TEXT,
		message        TEXT,
		execution_time DOUBLE PRECISION,
		http_method    TEXT,
		path           TEXT,
		user_agent     VARCHAR(255),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the catalog and audit tables if they do not exist.
// Every statement is idempotent; there is no migration versioning.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// ResetSchema drops everything and recreates it. Used by the manage CLI only.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	drops := []string{
		`DROP TABLE IF EXISTS book_author CASCADE`,
		`DROP TABLE IF EXISTS books CASCADE`,
		`DROP TABLE IF EXISTS authors CASCADE`,
		`DROP TABLE IF EXISTS logs CASCADE`,
	}
	for _, stmt := range drops {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset schema: %w", err)
		}
	}
	return EnsureSchema(ctx, pool)
}
