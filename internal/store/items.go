package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"larder/internal/catalog"
	"larder/internal/logging"
	"larder/internal/textutil"
)

const itemColumns = "id, name, quantity, unit, acquired, section, created_at, updated_at"

// CreateGroceryItem stores a single grocery item.
func (s *Store) CreateGroceryItem(ctx context.Context, item catalog.GroceryItem) (catalog.GroceryItem, error) {
	created, err := s.CreateGroceryItems(ctx, []catalog.GroceryItem{item})
	if err != nil {
		return catalog.GroceryItem{}, err
	}
	return created[0], nil
}

// CreateGroceryItems stores items in order, all or nothing.
func (s *Store) CreateGroceryItems(ctx context.Context, items []catalog.GroceryItem) ([]catalog.GroceryItem, error) {
	return s.saveItems(ctx, "create grocery items", ShoppingList{Items: items})
}

func (s *Store) saveItems(ctx context.Context, operation string, list ShoppingList) ([]catalog.GroceryItem, error) {
	items := list.Items
	cleaned := make([]catalog.GroceryItem, 0, len(items))
	seen := make(map[int64]struct{})
	for _, item := range items {
		c, err := catalog.CleanGroceryItem(item)
		if err != nil {
			return nil, err
		}
		if c.ID != 0 {
			if _, dup := seen[c.ID]; dup {
				return nil, catalog.Wrap(catalog.ErrConflict, operation, fmt.Sprintf("grocery item %d given twice", c.ID), nil)
			}
			seen[c.ID] = struct{}{}
		}
		cleaned = append(cleaned, c)
	}

	var removed int64
	err := s.withTx(ctx, operation, func(tx *sql.Tx) error {
		if list.Replace {
			res, err := tx.ExecContext(ctx, "DELETE FROM grocery_items WHERE acquired = 0")
			if err != nil {
				return fmt.Errorf("clear pending items: %w", err)
			}
			if removed, err = res.RowsAffected(); err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM list_recipes"); err != nil {
				return fmt.Errorf("clear listed recipes: %w", err)
			}
		}
		if err := s.recordListRecipes(ctx, tx, operation, list.RecipeIDs); err != nil {
			return err
		}
		position, err := nextPosition(ctx, tx, "grocery_items")
		if err != nil {
			return err
		}
		now := s.now().UTC()
		for i := range cleaned {
			if err := insertItem(ctx, tx, operation, &cleaned[i], position+int64(i), now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("grocery items saved",
		logging.Int(logging.FieldCount, len(cleaned)),
		logging.Int64("replaced", removed),
	)
	return cleaned, nil
}

func insertItem(ctx context.Context, tx *sql.Tx, operation string, item *catalog.GroceryItem, position int64, now time.Time) error {
	var id any
	if item.ID != 0 {
		exists, err := rowExists(ctx, tx, "grocery_items", item.ID)
		if err != nil {
			return err
		}
		if exists {
			return catalog.Wrap(catalog.ErrConflict, operation, fmt.Sprintf("grocery item %d already exists", item.ID), nil)
		}
		id = item.ID
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO grocery_items (id, name, quantity, unit, acquired, section, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, item.Name, nullableDecimal(item.Quantity), nullableUnit(item.Unit),
		boolToInt(item.Acquired), item.Section, position, formatTime(now), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("insert grocery item %q: %w", item.Name, err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read grocery item id: %w", err)
	}
	item.ID = newID
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// GetGroceryItem returns the item with id, or an ErrNotFound error.
func (s *Store) GetGroceryItem(ctx context.Context, id int64) (catalog.GroceryItem, error) {
	var out catalog.GroceryItem
	err := s.withTx(ctx, "get grocery item", func(tx *sql.Tx) error {
		item, err := getItem(ctx, tx, id)
		if isNoRows(err) {
			return notFound("get grocery item", "grocery item", id)
		}
		out = item
		return err
	})
	return out, err
}

// ListGroceryItems returns the stored grocery items matching opts.
func (s *Store) ListGroceryItems(ctx context.Context, opts ItemListOptions) ([]catalog.GroceryItem, error) {
	var (
		clauses []string
		args    []any
	)
	if opts.Acquired != nil {
		clauses = append(clauses, "acquired = ?")
		args = append(args, boolToInt(*opts.Acquired))
	}
	if section := strings.ToLower(strings.TrimSpace(opts.Section)); section != "" {
		clauses = append(clauses, "section = ?")
		args = append(args, section)
	}
	query := "SELECT " + itemColumns + " FROM grocery_items"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY " + opts.Sort.orderBy()

	var out []catalog.GroceryItem
	err := s.withTx(ctx, "list grocery items", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query grocery items: %w", err)
		}
		defer rows.Close()

		needle := textutil.Fold(opts.NameContains)
		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return err
			}
			if needle != "" && !strings.Contains(textutil.Fold(item.Name), needle) {
				continue
			}
			out = append(out, item)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate grocery items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateGroceryItem applies patch to the item with id.
func (s *Store) UpdateGroceryItem(ctx context.Context, id int64, patch catalog.GroceryItemPatch) (catalog.GroceryItem, error) {
	if err := patch.Validate(); err != nil {
		return catalog.GroceryItem{}, err
	}

	var out catalog.GroceryItem
	err := s.withTx(ctx, "update grocery item", func(tx *sql.Tx) error {
		current, err := getItem(ctx, tx, id)
		if isNoRows(err) {
			return notFound("update grocery item", "grocery item", id)
		}
		if err != nil {
			return err
		}
		updated, err := catalog.ApplyItemPatch(current, patch)
		if err != nil {
			return err
		}
		updated.UpdatedAt = s.now().UTC()
		if _, err := tx.ExecContext(ctx,
			`UPDATE grocery_items SET name = ?, quantity = ?, unit = ?, acquired = ?, section = ?, updated_at = ? WHERE id = ?`,
			updated.Name, nullableDecimal(updated.Quantity), nullableUnit(updated.Unit),
			boolToInt(updated.Acquired), updated.Section, formatTime(updated.UpdatedAt), id,
		); err != nil {
			return fmt.Errorf("update grocery item: %w", err)
		}
		out = updated
		return nil
	})
	if err != nil {
		return catalog.GroceryItem{}, err
	}
	s.logger.Info("grocery item updated", logging.Int64(logging.FieldItemID, id))
	return out, nil
}

// DeleteGroceryItem removes the item with id.
func (s *Store) DeleteGroceryItem(ctx context.Context, id int64) error {
	err := s.withTx(ctx, "delete grocery item", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM grocery_items WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete grocery item: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return notFound("delete grocery item", "grocery item", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("grocery item deleted", logging.Int64(logging.FieldItemID, id))
	return nil
}

// ClearGroceryItems deletes grocery items and reports how many were removed.
// With acquiredOnly set, only items already acquired are removed; otherwise
// the record of listed recipes is cleared too.
func (s *Store) ClearGroceryItems(ctx context.Context, acquiredOnly bool) (int64, error) {
	query := "DELETE FROM grocery_items"
	if acquiredOnly {
		query += " WHERE acquired = 1"
	}
	var removed int64
	err := s.withTx(ctx, "clear grocery items", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query)
		if err != nil {
			return fmt.Errorf("clear grocery items: %w", err)
		}
		removed, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if !acquiredOnly {
			if _, err := tx.ExecContext(ctx, "DELETE FROM list_recipes"); err != nil {
				return fmt.Errorf("clear listed recipes: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("grocery items cleared",
		logging.Int64(logging.FieldCount, removed),
		logging.Bool("acquired_only", acquiredOnly),
	)
	return removed, nil
}

func getItem(ctx context.Context, q querier, id int64) (catalog.GroceryItem, error) {
	row := q.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM grocery_items WHERE id = ?", id)
	return scanItem(row)
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (catalog.GroceryItem, error) {
	var (
		item       catalog.GroceryItem
		quantity   sql.NullString
		unit       sql.NullString
		acquired   sql.NullInt64
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(
		&item.ID,
		&item.Name,
		&quantity,
		&unit,
		&acquired,
		&item.Section,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return catalog.GroceryItem{}, err
	}
	q, err := scanDecimal(quantity)
	if err != nil {
		return catalog.GroceryItem{}, err
	}
	item.Quantity = q
	item.Unit = scanUnit(unit)
	item.Acquired = acquired.Valid && acquired.Int64 != 0
	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		item.UpdatedAt = updated
	}
	return item, nil
}
