package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"larder/internal/catalog"
	"larder/internal/logging"
)

// ShoppingList is a consolidated list ready to be stored together with the
// recipes it was built from.
type ShoppingList struct {
	RecipeIDs []int64
	Items     []catalog.GroceryItem
	// Replace deletes unacquired items and forgets the listed recipes first.
	Replace bool
}

// SaveShoppingList stores list.Items and records list.RecipeIDs as listed, in
// one transaction. A recipe already listed keeps its place.
func (s *Store) SaveShoppingList(ctx context.Context, list ShoppingList) ([]catalog.GroceryItem, error) {
	return s.saveItems(ctx, "save shopping list", list)
}

func (s *Store) recordListRecipes(ctx context.Context, tx *sql.Tx, operation string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	position, err := nextPosition(ctx, tx, "list_recipes")
	if err != nil {
		return err
	}
	now := formatTime(s.now().UTC())
	for _, id := range ids {
		exists, err := rowExists(ctx, tx, "recipes", id)
		if err != nil {
			return err
		}
		if !exists {
			return notFound(operation, "recipe", id)
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO list_recipes (recipe_id, position, added_at) VALUES (?, ?, ?) ON CONFLICT(recipe_id) DO NOTHING",
			id, position, now,
		)
		if err != nil {
			return fmt.Errorf("record listed recipe %d: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			position++
		}
	}
	return nil
}

// ListedRecipes returns the recipes saved to the current grocery list, in the
// order they were first added.
func (s *Store) ListedRecipes(ctx context.Context) ([]catalog.Recipe, error) {
	var out []catalog.Recipe
	err := s.withTx(ctx, "listed recipes", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT r.id, r.name, r.created_at, r.updated_at
			 FROM list_recipes l JOIN recipes r ON r.id = l.recipe_id
			 ORDER BY l.position`)
		if err != nil {
			return fmt.Errorf("query listed recipes: %w", err)
		}
		defer rows.Close()

		var ids []int64
		for rows.Next() {
			r, err := scanRecipe(rows)
			if err != nil {
				return fmt.Errorf("scan listed recipe: %w", err)
			}
			out = append(out, r)
			ids = append(ids, r.ID)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate listed recipes: %w", err)
		}

		lines, err := loadLines(ctx, tx, ids)
		if err != nil {
			return err
		}
		for i := range out {
			out[i].Lines = lines[out[i].ID]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddChecklistItem adds name to the checklist. Adding a name that is already
// present, in any case, returns the existing entry.
func (s *Store) AddChecklistItem(ctx context.Context, name string) (catalog.ChecklistItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.ChecklistItem{}, catalog.Invalid("add checklist item", "name must not be empty")
	}

	var out catalog.ChecklistItem
	err := s.withTx(ctx, "add checklist item", func(tx *sql.Tx) error {
		position, err := nextPosition(ctx, tx, "checklist")
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO checklist (name, position, created_at) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING",
			name, position, formatTime(s.now().UTC()),
		); err != nil {
			return fmt.Errorf("insert checklist item: %w", err)
		}
		row := tx.QueryRowContext(ctx, "SELECT id, name, created_at FROM checklist WHERE name = ?", name)
		out, err = scanChecklistItem(row)
		return err
	})
	if err != nil {
		return catalog.ChecklistItem{}, err
	}
	s.logger.Info("checklist item added", logging.String("name", out.Name))
	return out, nil
}

// ListChecklist returns the checklist in insertion order.
func (s *Store) ListChecklist(ctx context.Context) ([]catalog.ChecklistItem, error) {
	var out []catalog.ChecklistItem
	err := s.withTx(ctx, "list checklist", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, "SELECT id, name, created_at FROM checklist ORDER BY position")
		if err != nil {
			return fmt.Errorf("query checklist: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			item, err := scanChecklistItem(rows)
			if err != nil {
				return err
			}
			out = append(out, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteChecklistItem removes name from the checklist, ignoring case.
func (s *Store) DeleteChecklistItem(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	err := s.withTx(ctx, "delete checklist item", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM checklist WHERE name = ?", name)
		if err != nil {
			return fmt.Errorf("delete checklist item: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return catalog.Wrap(catalog.ErrNotFound, "delete checklist item", fmt.Sprintf("checklist item %q", name), nil)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("checklist item deleted", logging.String("name", name))
	return nil
}

func scanChecklistItem(scanner interface{ Scan(dest ...any) error }) (catalog.ChecklistItem, error) {
	var (
		item       catalog.ChecklistItem
		createdRaw sql.NullString
	)
	if err := scanner.Scan(&item.ID, &item.Name, &createdRaw); err != nil {
		return catalog.ChecklistItem{}, fmt.Errorf("scan checklist item: %w", err)
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	return item, nil
}
