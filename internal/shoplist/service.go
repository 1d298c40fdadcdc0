package shoplist

import (
	"context"
	"log/slog"
	"time"

	"larder/internal/catalog"
	"larder/internal/consolidate"
	"larder/internal/logging"
	"larder/internal/normalize"
	"larder/internal/store"
)

// Catalog is the storage surface the service needs.
type Catalog interface {
	GetRecipe(ctx context.Context, id int64) (catalog.Recipe, error)
	ListGroceryItems(ctx context.Context, opts store.ItemListOptions) ([]catalog.GroceryItem, error)
	SaveShoppingList(ctx context.Context, list store.ShoppingList) ([]catalog.GroceryItem, error)
}

// Service builds shopping lists from stored recipes.
type Service struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewService wires a Service to its catalog.
func NewService(c Catalog, logger *slog.Logger) *Service {
	return &Service{catalog: c, logger: logging.NewComponentLogger(logger, "shoplist")}
}

// Build is a consolidated list together with the recipes it came from.
type Build struct {
	Recipes []catalog.Recipe
	Groups  []consolidate.Group
}

// Items returns the consolidated grocery items in first-seen order.
func (b Build) Items() []catalog.GroceryItem {
	items := make([]catalog.GroceryItem, 0, len(b.Groups))
	for _, g := range b.Groups {
		items = append(items, g.Item)
	}
	return items
}

// SaveOptions controls how Save writes to the grocery list.
type SaveOptions struct {
	// Replace deletes every unacquired item and forgets previously listed
	// recipes before saving.
	Replace bool
}

// Preview fetches the recipes with ids, in the given order, and consolidates
// them. A missing recipe fails the whole call with ErrNotFound. Repeating an
// id counts that recipe again.
func (s *Service) Preview(ctx context.Context, ids []int64) (Build, error) {
	started := time.Now()
	recipes := make([]catalog.Recipe, 0, len(ids))
	for _, id := range ids {
		r, err := s.catalog.GetRecipe(ctx, id)
		if err != nil {
			return Build{}, err
		}
		recipes = append(recipes, r)
	}
	build := Build{Recipes: recipes, Groups: consolidate.Plan(recipes)}

	logging.WithContext(ctx, s.logger).Info("shopping list built",
		logging.Int("recipes", len(recipes)),
		logging.Int(logging.FieldCount, len(build.Groups)),
		logging.String("elapsed", time.Since(started).String()),
	)
	return build, nil
}

// Save consolidates the recipes with ids and stores the result as grocery
// items in one transaction, recording the recipes as listed. Each new item
// takes the section of an existing item with the same canonical name.
func (s *Service) Save(ctx context.Context, ids []int64, opts SaveOptions) ([]catalog.GroceryItem, error) {
	build, err := s.Preview(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := build.Items()

	existing, err := s.catalog.ListGroceryItems(ctx, store.ItemListOptions{})
	if err != nil {
		return nil, err
	}
	sections := sectionIndex(existing)
	for i := range items {
		if section, ok := sections[normalize.NormalizeName(items[i].Name)]; ok {
			items[i].Section = section
		}
	}

	saved, err := s.catalog.SaveShoppingList(ctx, store.ShoppingList{
		RecipeIDs: ids,
		Items:     items,
		Replace:   opts.Replace,
	})
	if err != nil {
		return nil, err
	}

	logging.WithContext(ctx, s.logger).Info("shopping list saved",
		logging.Int(logging.FieldCount, len(saved)),
		logging.Bool("replace", opts.Replace),
	)
	return saved, nil
}

// sectionIndex maps canonical names to the most recently filed section.
func sectionIndex(items []catalog.GroceryItem) map[string]string {
	out := make(map[string]string)
	for _, item := range items {
		if item.Section == "" {
			continue
		}
		out[normalize.NormalizeName(item.Name)] = item.Section
	}
	return out
}
