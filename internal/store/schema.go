package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 2

// catalogTables are the tables a larder database must hold besides
// schema_version.
var catalogTables = []string{"recipes", "recipe_lines", "grocery_items", "list_recipes", "checklist"}

// ErrSchemaMismatch reports a database file that larder did not create or
// that was written by a different schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// initSchema creates the catalog tables in an empty file and otherwise
// checks that the file holds a catalog this build can read.
func (s *Store) initSchema(ctx context.Context) error {
	tables, err := s.tableNames(ctx)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return s.createSchema(ctx)
	}

	if !tables["schema_version"] {
		return s.schemaMismatch("file has %d tables but no schema version; it is not a larder catalog", len(tables))
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.schemaMismatch("schema version is not recorded")
		}
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return s.schemaMismatch("catalog has version %d, this build reads version %d", version, schemaVersion)
	}

	var missing []string
	for _, name := range catalogTables {
		if !tables[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return s.schemaMismatch("catalog is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s *Store) schemaMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s (back up and remove the file, then run 'larder doctor')",
		ErrSchemaMismatch, s.path, fmt.Sprintf(format, args...))
}

func (s *Store) tableNames(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	tables := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables[name] = true
	}
	return tables, rows.Err()
}

func (s *Store) createSchema(ctx context.Context) error {
	return s.withTx(ctx, "create schema", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
		_, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		return err
	})
}
