package shoplist_test

import (
	"context"
	"errors"
	"testing"

	"larder/internal/catalog"
	"larder/internal/logging"
	"larder/internal/shoplist"
	"larder/internal/store"
	"larder/internal/testsupport"
)

func newService(t *testing.T) (*shoplist.Service, *store.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	return shoplist.NewService(st, logging.NewNop()), st
}

func TestPreviewConsolidatesRecipes(t *testing.T) {
	svc, st := newService(t)
	a := testsupport.NewRecipe(t, st, "Pancakes",
		catalog.Line("Tomatoes", catalog.Qty("2"), nil),
		catalog.Line("olive oil", catalog.Qty("1"), catalog.Str("tbsp")),
	)
	b := testsupport.NewRecipe(t, st, "Salad",
		catalog.Line("tomato", catalog.Qty("3"), nil),
		catalog.Line("Basil", nil, nil),
	)

	build, err := svc.Preview(context.Background(), []int64{a.ID, b.ID})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	items := build.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %v", items)
	}
	if items[0].String() != "5 Tomatoes" {
		t.Fatalf("first item = %q", items[0].String())
	}
	if items[2].Quantity != nil || items[2].Name != "Basil" {
		t.Fatalf("basil = %#v", items[2])
	}
	if len(build.Recipes) != 2 || len(build.Groups[0].Lines) != 2 {
		t.Fatalf("unexpected provenance: %#v", build.Groups[0])
	}

	stored, err := st.ListGroceryItems(context.Background(), store.ItemListOptions{})
	if err != nil {
		t.Fatalf("ListGroceryItems: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("preview must not persist items, found %v", stored)
	}
}

func TestPreviewMissingRecipe(t *testing.T) {
	svc, st := newService(t)
	r := testsupport.NewRecipe(t, st, "Toast", catalog.Line("bread", catalog.Qty("2"), catalog.Str("slice")))
	if _, err := svc.Preview(context.Background(), []int64{r.ID, 404}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPreviewEmpty(t *testing.T) {
	svc, _ := newService(t)
	build, err := svc.Preview(context.Background(), nil)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(build.Items()) != 0 {
		t.Fatalf("expected empty list, got %v", build.Items())
	}
}

func TestSaveInheritsSections(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	testsupport.NewItem(t, st, catalog.GroceryItem{Name: "Milk", Section: "dairy", Acquired: true})
	r := testsupport.NewRecipe(t, st, "Porridge",
		catalog.Line("oats", catalog.Qty("80"), catalog.Str("g")),
		catalog.Line("milk", catalog.Qty("250"), catalog.Str("ml")),
	)

	saved, err := svc.Save(ctx, []int64{r.ID}, shoplist.SaveOptions{})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("saved = %v", saved)
	}
	if saved[1].Section != "dairy" || saved[0].Section != "" {
		t.Fatalf("sections = %q, %q", saved[0].Section, saved[1].Section)
	}
	for _, item := range saved {
		if item.ID == 0 || item.Acquired {
			t.Fatalf("unexpected saved item %#v", item)
		}
	}
	listed, err := st.ListedRecipes(ctx)
	if err != nil {
		t.Fatalf("ListedRecipes: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != r.ID {
		t.Fatalf("listed recipes = %#v", listed)
	}
}

func TestSaveReplaceKeepsAcquired(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	testsupport.NewItem(t, st, catalog.GroceryItem{Name: "coffee", Acquired: true})
	testsupport.NewItem(t, st, catalog.GroceryItem{Name: "stale pending"})
	r := testsupport.NewRecipe(t, st, "Toast", catalog.Line("bread", catalog.Qty("2"), catalog.Str("slice")))

	if _, err := svc.Save(ctx, []int64{r.ID}, shoplist.SaveOptions{Replace: true}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	items, err := st.ListGroceryItems(ctx, store.ItemListOptions{})
	if err != nil {
		t.Fatalf("ListGroceryItems: %v", err)
	}
	if len(items) != 2 || items[0].Name != "coffee" || items[1].String() != "2 slice bread" {
		t.Fatalf("items after replace = %v", items)
	}
}

func TestSaveMissingRecipeWritesNothing(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	testsupport.NewItem(t, st, catalog.GroceryItem{Name: "pending"})

	if _, err := svc.Save(ctx, []int64{77}, shoplist.SaveOptions{Replace: true}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	items, err := st.ListGroceryItems(ctx, store.ItemListOptions{})
	if err != nil {
		t.Fatalf("ListGroceryItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("failed save changed the list: %v", items)
	}
}
