package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"larder/internal/catalog"
	"larder/internal/logging"
	"larder/internal/textutil"
)

const recipeColumns = "id, name, created_at, updated_at"

// suggestionThreshold is the minimum trigram similarity for a name hint.
const suggestionThreshold = 0.45

// CreateRecipe stores r and its lines. A zero ID asks the store to assign
// one; an explicit ID that is already taken fails with ErrConflict.
func (s *Store) CreateRecipe(ctx context.Context, r catalog.Recipe) (catalog.Recipe, error) {
	cleaned, err := catalog.CleanRecipe(r)
	if err != nil {
		return catalog.Recipe{}, err
	}

	err = s.withTx(ctx, "create recipe", func(tx *sql.Tx) error {
		if cleaned.ID != 0 {
			exists, err := rowExists(ctx, tx, "recipes", cleaned.ID)
			if err != nil {
				return err
			}
			if exists {
				return catalog.Wrap(catalog.ErrConflict, "create recipe", fmt.Sprintf("recipe %d already exists", cleaned.ID), nil)
			}
		}
		position, err := nextPosition(ctx, tx, "recipes")
		if err != nil {
			return err
		}
		now := s.now().UTC()
		var id any
		if cleaned.ID != 0 {
			id = cleaned.ID
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO recipes (id, name, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			id, cleaned.Name, position, formatTime(now), formatTime(now),
		)
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read recipe id: %w", err)
		}
		cleaned.ID = newID
		cleaned.CreatedAt = now
		cleaned.UpdatedAt = now
		return insertLines(ctx, tx, newID, cleaned.Lines)
	})
	if err != nil {
		return catalog.Recipe{}, err
	}

	s.logger.Info("recipe created",
		logging.Int64(logging.FieldRecipeID, cleaned.ID),
		logging.Int("lines", len(cleaned.Lines)),
	)
	return cleaned, nil
}

// GetRecipe returns the recipe with id, or an ErrNotFound error.
func (s *Store) GetRecipe(ctx context.Context, id int64) (catalog.Recipe, error) {
	var out catalog.Recipe
	err := s.withTx(ctx, "get recipe", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, "SELECT "+recipeColumns+" FROM recipes WHERE id = ?", id)
		r, err := scanRecipe(row)
		if isNoRows(err) {
			return notFound("get recipe", "recipe", id)
		}
		if err != nil {
			return err
		}
		lines, err := loadLines(ctx, tx, []int64{id})
		if err != nil {
			return err
		}
		r.Lines = lines[id]
		out = r
		return nil
	})
	return out, err
}

// FindRecipeByName returns the earliest stored recipe whose name matches,
// ignoring case and surrounding whitespace.
func (s *Store) FindRecipeByName(ctx context.Context, name string) (catalog.Recipe, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return catalog.Recipe{}, catalog.Invalid("find recipe", "name must not be empty")
	}
	var id int64
	err := s.withTx(ctx, "find recipe", func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM recipes WHERE name = ? COLLATE NOCASE ORDER BY position LIMIT 1", trimmed,
		).Scan(&id)
		if isNoRows(err) {
			message := fmt.Sprintf("no recipe named %q", trimmed)
			if hints, hintErr := suggestRecipeNames(ctx, tx, trimmed); hintErr == nil && len(hints) > 0 {
				message += fmt.Sprintf(" (did you mean %q?)", hints[0])
			}
			return catalog.Wrap(catalog.ErrNotFound, "find recipe", message, nil)
		}
		return err
	})
	if err != nil {
		return catalog.Recipe{}, err
	}
	return s.GetRecipe(ctx, id)
}

// ListRecipes returns stored recipes with their lines.
func (s *Store) ListRecipes(ctx context.Context, opts ListOptions) ([]catalog.Recipe, error) {
	var out []catalog.Recipe
	err := s.withTx(ctx, "list recipes", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, "SELECT "+recipeColumns+" FROM recipes ORDER BY "+opts.Sort.orderBy())
		if err != nil {
			return fmt.Errorf("query recipes: %w", err)
		}
		defer rows.Close()

		needle := textutil.Fold(opts.NameContains)
		var ids []int64
		for rows.Next() {
			r, err := scanRecipe(rows)
			if err != nil {
				return err
			}
			if needle != "" && !strings.Contains(textutil.Fold(r.Name), needle) {
				continue
			}
			out = append(out, r)
			ids = append(ids, r.ID)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate recipes: %w", err)
		}
		if err := rows.Close(); err != nil {
			return fmt.Errorf("close recipe rows: %w", err)
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

// UpdateRecipe applies patch to the recipe with id. A patch that sets Lines
// replaces every line of the recipe.
func (s *Store) UpdateRecipe(ctx context.Context, id int64, patch catalog.RecipePatch) (catalog.Recipe, error) {
	if err := patch.Validate(); err != nil {
		return catalog.Recipe{}, err
	}

	var out catalog.Recipe
	err := s.withTx(ctx, "update recipe", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, "SELECT "+recipeColumns+" FROM recipes WHERE id = ?", id)
		current, err := scanRecipe(row)
		if isNoRows(err) {
			return notFound("update recipe", "recipe", id)
		}
		if err != nil {
			return err
		}
		lines, err := loadLines(ctx, tx, []int64{id})
		if err != nil {
			return err
		}
		current.Lines = lines[id]

		updated, err := catalog.ApplyRecipePatch(current, patch)
		if err != nil {
			return err
		}
		updated.UpdatedAt = s.now().UTC()
		if _, err := tx.ExecContext(ctx,
			"UPDATE recipes SET name = ?, updated_at = ? WHERE id = ?",
			updated.Name, formatTime(updated.UpdatedAt), id,
		); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if patch.Lines != nil {
			if _, err := tx.ExecContext(ctx, "DELETE FROM recipe_lines WHERE recipe_id = ?", id); err != nil {
				return fmt.Errorf("clear recipe lines: %w", err)
			}
			if err := insertLines(ctx, tx, id, updated.Lines); err != nil {
				return err
			}
		}
		out = updated
		return nil
	})
	if err != nil {
		return catalog.Recipe{}, err
	}

	s.logger.Info("recipe updated", logging.Int64(logging.FieldRecipeID, id))
	return out, nil
}

// DeleteRecipe removes the recipe and its lines. Grocery items are never
// affected.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	err := s.withTx(ctx, "delete recipe", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return notFound("delete recipe", "recipe", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("recipe deleted", logging.Int64(logging.FieldRecipeID, id))
	return nil
}

// suggestRecipeNames ranks stored recipe names by similarity to name.
func suggestRecipeNames(ctx context.Context, q querier, name string) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT name FROM recipes ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return textutil.Similar(name, names, suggestionThreshold, 3), nil
}

func insertLines(ctx context.Context, q querier, recipeID int64, lines []catalog.IngredientLine) error {
	for i, line := range lines {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO recipe_lines (recipe_id, line_no, name, quantity, unit) VALUES (?, ?, ?, ?, ?)",
			recipeID, i, line.Name, nullableDecimal(line.Quantity), nullableUnit(line.Unit),
		); err != nil {
			return fmt.Errorf("insert line %d of recipe %d: %w", i+1, recipeID, err)
		}
	}
	return nil
}

// loadLines fetches the ordered lines of every recipe in ids.
func loadLines(ctx context.Context, q querier, ids []int64) (map[int64][]catalog.IngredientLine, error) {
	out := make(map[int64][]catalog.IngredientLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for _, id := range ids {
		out[id] = []catalog.IngredientLine{}
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := q.QueryContext(ctx,
		"SELECT recipe_id, name, quantity, unit FROM recipe_lines WHERE recipe_id IN ("+makePlaceholders(len(ids))+") ORDER BY recipe_id, line_no",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query recipe lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recipeID int64
			name     string
			quantity sql.NullString
			unit     sql.NullString
		)
		if err := rows.Scan(&recipeID, &name, &quantity, &unit); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		qty, err := scanDecimal(quantity)
		if err != nil {
			return nil, err
		}
		out[recipeID] = append(out[recipeID], catalog.IngredientLine{Name: name, Quantity: qty, Unit: scanUnit(unit)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe lines: %w", err)
	}
	return out, nil
}

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (catalog.Recipe, error) {
	var (
		r          catalog.Recipe
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(&r.ID, &r.Name, &createdRaw, &updatedRaw); err != nil {
		return catalog.Recipe{}, err
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		r.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		r.UpdatedAt = updated
	}
	return r, nil
}
