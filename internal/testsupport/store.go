package testsupport

import (
	"context"
	"testing"

	"larder/internal/catalog"
	"larder/internal/config"
	"larder/internal/logging"
	"larder/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewRecipe creates a recipe for tests using the provided store.
func NewRecipe(t testing.TB, st *store.Store, name string, lines ...catalog.IngredientLine) catalog.Recipe {
	t.Helper()

	r, err := st.CreateRecipe(context.Background(), catalog.Recipe{Name: name, Lines: lines})
	if err != nil {
		t.Fatalf("store.CreateRecipe: %v", err)
	}
	return r
}

// NewItem creates a grocery item for tests using the provided store.
func NewItem(t testing.TB, st *store.Store, item catalog.GroceryItem) catalog.GroceryItem {
	t.Helper()

	created, err := st.CreateGroceryItem(context.Background(), item)
	if err != nil {
		t.Fatalf("store.CreateGroceryItem: %v", err)
	}
	return created
}
