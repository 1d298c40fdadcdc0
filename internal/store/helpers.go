package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func nullableDecimal(value *decimal.Decimal) any {
	if value == nil {
		return nil
	}
	return value.String()
}

func nullableUnit(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func scanDecimal(raw sql.NullString) (*decimal.Decimal, error) {
	if !raw.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw.String)
	if err != nil {
		return nil, fmt.Errorf("decode quantity %q: %w", raw.String, err)
	}
	return &d, nil
}

func scanUnit(raw sql.NullString) *string {
	if !raw.Valid {
		return nil
	}
	value := raw.String
	return &value
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}

// nextPosition returns the insertion-order slot after the last row of table.
func nextPosition(ctx context.Context, q querier, table string) (int64, error) {
	var last sql.NullInt64
	if err := q.QueryRowContext(ctx, "SELECT MAX(position) FROM "+table).Scan(&last); err != nil {
		return 0, fmt.Errorf("read %s position: %w", table, err)
	}
	return last.Int64 + 1, nil
}

func rowExists(ctx context.Context, q querier, table string, id int64) (bool, error) {
	var found int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s id %d: %w", table, id, err)
	}
	return true, nil
}
