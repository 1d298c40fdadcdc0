package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats summarizes the catalog contents.
type Stats struct {
	Recipes       int64 `json:"recipes"`
	Lines         int64 `json:"lines"`
	Items         int64 `json:"items"`
	AcquiredItems int64 `json:"acquired_items"`
}

// Stats counts stored rows and runs SQLite's integrity check.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := s.withTx(ctx, "stats", func(tx *sql.Tx) error {
		counts := []struct {
			query string
			dest  *int64
		}{
			{"SELECT COUNT(*) FROM recipes", &out.Recipes},
			{"SELECT COUNT(*) FROM recipe_lines", &out.Lines},
			{"SELECT COUNT(*) FROM grocery_items", &out.Items},
			{"SELECT COUNT(*) FROM grocery_items WHERE acquired = 1", &out.AcquiredItems},
		}
		for _, c := range counts {
			if err := tx.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
				return fmt.Errorf("%s: %w", c.query, err)
			}
		}
		var check string
		if err := tx.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&check); err != nil {
			return fmt.Errorf("integrity check: %w", err)
		}
		if check != "ok" {
			return fmt.Errorf("integrity check: %s", check)
		}
		return nil
	})
	return out, err
}
