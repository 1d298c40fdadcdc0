package store_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"larder/internal/catalog"
	"larder/internal/logging"
	"larder/internal/store"
	"larder/internal/testsupport"

	_ "modernc.org/sqlite"
)

func TestOpenCreatesSchemaAndReopens(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	testsupport.NewRecipe(t, st, "Toast", catalog.Line("bread", catalog.Qty("2"), catalog.Str("slice")))
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	recipes, err := reopened.ListRecipes(context.Background(), store.ListOptions{})
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Name != "Toast" {
		t.Fatalf("unexpected recipes after reopen: %#v", recipes)
	}
	if reopened.Path() != filepath.Clean(cfg.Paths.Database) {
		t.Fatalf("Path() = %q, want %q", reopened.Path(), cfg.Paths.Database)
	}
}

func TestOpenRejectsSecondProcess(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustOpenStore(t, cfg)

	_, err := store.Open(cfg, logging.NewNop())
	if !errors.Is(err, catalog.ErrStorageIO) {
		t.Fatalf("expected storage error while locked, got %v", err)
	}
}

func execSQL(t *testing.T, path string, statements ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

func TestOpenRejectsUnexpectedSchema(t *testing.T) {
	cases := []struct {
		name   string
		setup  []string
		detail string
	}{
		{
			name:   "foreign file",
			setup:  []string{"CREATE TABLE notes (body TEXT)"},
			detail: "not a larder catalog",
		},
		{
			name:   "newer version",
			setup:  []string{"UPDATE schema_version SET version = 99"},
			detail: "catalog has version 99",
		},
		{
			name:   "missing table",
			setup:  []string{"DROP TABLE grocery_items"},
			detail: "catalog is missing grocery_items",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testsupport.NewConfig(t)
			if tc.name != "foreign file" {
				st, err := store.Open(cfg, logging.NewNop())
				if err != nil {
					t.Fatalf("Open: %v", err)
				}
				st.Close()
			} else if err := cfg.EnsureDirectories(); err != nil {
				t.Fatalf("EnsureDirectories: %v", err)
			}
			execSQL(t, cfg.Paths.Database, tc.setup...)

			_, err := store.Open(cfg, logging.NewNop())
			if !errors.Is(err, store.ErrSchemaMismatch) || !errors.Is(err, catalog.ErrStorageIO) {
				t.Fatalf("expected schema mismatch storage error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.detail) || !strings.Contains(err.Error(), "larder doctor") {
				t.Fatalf("unexpected error text %q", err)
			}

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil || !locked {
				t.Fatalf("expected lock to be released after failed open, locked=%v err=%v", locked, err)
			}
			_ = lock.Unlock()
		})
	}
}

func TestRecipeRoundTripPreservesNulls(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	lines := []catalog.IngredientLine{
		catalog.Line("flour", catalog.Qty("2.5"), catalog.Str("cup")),
		catalog.Line("salt", nil, nil),
		catalog.Line("egg", catalog.Qty("3"), nil),
		catalog.Line("basil", nil, catalog.Str("bunch")),
		catalog.Line("milk", catalog.Qty("0.1"), catalog.Str("l")),
	}
	created, err := st.CreateRecipe(ctx, catalog.Recipe{Name: "Pancakes", Lines: lines})
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected recipe ID to be assigned")
	}

	fetched, err := st.GetRecipe(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if fetched.Name != "Pancakes" || len(fetched.Lines) != len(lines) {
		t.Fatalf("unexpected recipe: %#v", fetched)
	}
	for i, want := range lines {
		got := fetched.Lines[i]
		if got.Name != want.Name {
			t.Fatalf("line %d name = %q, want %q", i, got.Name, want.Name)
		}
		if (got.Quantity == nil) != (want.Quantity == nil) {
			t.Fatalf("line %d quantity nullness changed: %v", i, got.Quantity)
		}
		if want.Quantity != nil && !got.Quantity.Equal(*want.Quantity) {
			t.Fatalf("line %d quantity = %s, want %s", i, got.Quantity, want.Quantity)
		}
		if !reflect.DeepEqual(got.Unit, want.Unit) {
			t.Fatalf("line %d unit = %v, want %v", i, got.Unit, want.Unit)
		}
	}
}

func TestCreateRecipeWithExplicitID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := st.CreateRecipe(ctx, catalog.Recipe{ID: 42, Name: "Soup"}); err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	_, err := st.CreateRecipe(ctx, catalog.Recipe{ID: 42, Name: "Stew"})
	if !errors.Is(err, catalog.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	auto, err := st.CreateRecipe(ctx, catalog.Recipe{Name: "Salad"})
	if err != nil {
		t.Fatalf("CreateRecipe auto: %v", err)
	}
	if auto.ID == 42 {
		t.Fatal("auto-generated id collided with explicit id")
	}

	recipes, err := st.ListRecipes(ctx, store.ListOptions{})
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if names := recipeNames(recipes); !reflect.DeepEqual(names, []string{"Soup", "Salad"}) {
		t.Fatalf("insertion order = %v", names)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	cases := []catalog.Recipe{
		{Name: "   "},
		{Name: "Bad", Lines: []catalog.IngredientLine{catalog.Line(" ", nil, nil)}},
		{Name: "Bad", Lines: []catalog.IngredientLine{catalog.Line("egg", catalog.Qty("0"), nil)}},
		{ID: -1, Name: "Bad"},
	}
	for _, r := range cases {
		if _, err := st.CreateRecipe(ctx, r); !errors.Is(err, catalog.ErrInvalidInput) {
			t.Fatalf("CreateRecipe(%#v) = %v, want invalid input", r, err)
		}
	}
	recipes, err := st.ListRecipes(ctx, store.ListOptions{})
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(recipes) != 0 {
		t.Fatalf("invalid recipes were stored: %#v", recipes)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := st.GetRecipe(ctx, 99); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("GetRecipe: expected not found, got %v", err)
	}
	if _, err := st.GetGroceryItem(ctx, 99); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("GetGroceryItem: expected not found, got %v", err)
	}
	if err := st.DeleteRecipe(ctx, 99); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("DeleteRecipe: expected not found, got %v", err)
	}
	if err := st.DeleteGroceryItem(ctx, 99); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("DeleteGroceryItem: expected not found, got %v", err)
	}
	if _, err := st.UpdateRecipe(ctx, 99, catalog.RecipePatch{Name: catalog.Str("x")}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("UpdateRecipe: expected not found, got %v", err)
	}
	if _, err := st.FindRecipeByName(ctx, "nothing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("FindRecipeByName: expected not found, got %v", err)
	}
}

func TestListRecipesFilterAndSort(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.NewRecipe(t, st, "Tomato soup")
	testsupport.NewRecipe(t, st, "Crème brûlée")
	testsupport.NewRecipe(t, st, "apple pie")

	byName, err := st.ListRecipes(ctx, store.ListOptions{Sort: store.SortName})
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if names := recipeNames(byName); !reflect.DeepEqual(names, []string{"apple pie", "Crème brûlée", "Tomato soup"}) {
		t.Fatalf("name order = %v", names)
	}

	filtered, err := st.ListRecipes(ctx, store.ListOptions{NameContains: "BRULEE"})
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if names := recipeNames(filtered); !reflect.DeepEqual(names, []string{"Crème brûlée"}) {
		t.Fatalf("filtered = %v", names)
	}

	found, err := st.FindRecipeByName(ctx, "  tomato SOUP ")
	if err != nil {
		t.Fatalf("FindRecipeByName: %v", err)
	}
	if found.Name != "Tomato soup" {
		t.Fatalf("found %q", found.Name)
	}
}

func TestParseSort(t *testing.T) {
	for input, want := range map[string]store.SortOrder{"": store.SortInsertion, "Name": store.SortName, "id": store.SortID} {
		got, err := store.ParseSort(input)
		if err != nil || got != want {
			t.Fatalf("ParseSort(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := store.ParseSort("price"); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestUpdateRecipeReplacesLines(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	r := testsupport.NewRecipe(t, st, "Omelette",
		catalog.Line("egg", catalog.Qty("2"), nil),
		catalog.Line("butter", catalog.Qty("1"), catalog.Str("tbsp")),
	)
	lines := []catalog.IngredientLine{catalog.Line("egg", catalog.Qty("3"), nil)}
	updated, err := st.UpdateRecipe(ctx, r.ID, catalog.RecipePatch{Name: catalog.Str("Big omelette"), Lines: &lines})
	if err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}
	if updated.Name != "Big omelette" {
		t.Fatalf("name = %q", updated.Name)
	}

	fetched, err := st.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if len(fetched.Lines) != 1 || fetched.Lines[0].String() != "3 egg" {
		t.Fatalf("lines = %v", fetched.Lines)
	}

	renamed, err := st.UpdateRecipe(ctx, r.ID, catalog.RecipePatch{Name: catalog.Str("Omelette")})
	if err != nil {
		t.Fatalf("UpdateRecipe name only: %v", err)
	}
	if len(renamed.Lines) != 1 {
		t.Fatalf("name-only patch changed lines: %v", renamed.Lines)
	}
}

func TestInvalidUpdateLeavesRecipeUnchanged(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	r := testsupport.NewRecipe(t, st, "Bread", catalog.Line("flour", catalog.Qty("500"), catalog.Str("g")))
	lines := []catalog.IngredientLine{
		catalog.Line("water", catalog.Qty("300"), catalog.Str("ml")),
		catalog.Line("yeast", catalog.Qty("-1"), catalog.Str("g")),
	}
	_, err := st.UpdateRecipe(ctx, r.ID, catalog.RecipePatch{Name: catalog.Str("Loaf"), Lines: &lines})
	if !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	fetched, err := st.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if fetched.Name != "Bread" || len(fetched.Lines) != 1 || fetched.Lines[0].Name != "flour" {
		t.Fatalf("recipe changed after failed update: %#v", fetched)
	}
}

func TestDeleteRecipeKeepsGroceryItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	r := testsupport.NewRecipe(t, st, "Chili", catalog.Line("bean", catalog.Qty("1"), catalog.Str("can")))
	testsupport.NewItem(t, st, catalog.GroceryItem{Name: "bean", Quantity: catalog.Qty("1"), Unit: catalog.Str("can")})

	if err := st.DeleteRecipe(ctx, r.ID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if _, err := st.GetRecipe(ctx, r.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected deleted recipe to be gone, got %v", err)
	}
	items, err := st.ListGroceryItems(ctx, store.ItemListOptions{})
	if err != nil {
		t.Fatalf("ListGroceryItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("grocery items changed after recipe delete: %#v", items)
	}
	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Lines != 0 {
		t.Fatalf("expected cascade to remove lines, %d remain", stats.Lines)
	}
}

func TestGroceryItemLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item, err := st.CreateGroceryItem(ctx, catalog.GroceryItem{Name: " milk ", Quantity: catalog.Qty("1"), Unit: catalog.Str("l"), Section: " Dairy "})
	if err != nil {
		t.Fatalf("CreateGroceryItem: %v", err)
	}
	if item.Name != "milk" || item.Section != "dairy" || item.Acquired {
		t.Fatalf("unexpected item: %#v", item)
	}

	acquired := true
	updated, err := st.UpdateGroceryItem(ctx, item.ID, catalog.GroceryItemPatch{Acquired: &acquired, ClearUnit: true})
	if err != nil {
		t.Fatalf("UpdateGroceryItem: %v", err)
	}
	if !updated.Acquired || updated.Unit != nil {
		t.Fatalf("patch not applied: %#v", updated)
	}

	fetched, err := st.GetGroceryItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetGroceryItem: %v", err)
	}
	if !fetched.Acquired || fetched.Unit != nil || !fetched.Quantity.Equal(*catalog.Qty("1")) {
		t.Fatalf("stored item = %#v", fetched)
	}

	if _, err := st.UpdateGroceryItem(ctx, item.ID, catalog.GroceryItemPatch{Name: catalog.Str(" ")}); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	if err := st.DeleteGroceryItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteGroceryItem: %v", err)
	}
	if _, err := st.GetGroceryItem(ctx, item.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestCreateGroceryItemsIsAtomic(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.NewItem(t, st, catalog.GroceryItem{ID: 5, Name: "bread"})
	_, err := st.CreateGroceryItems(ctx, []catalog.GroceryItem{
		{Name: "butter"},
		{ID: 5, Name: "jam"},
	})
	if !errors.Is(err, catalog.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	items, err := st.ListGroceryItems(ctx, store.ItemListOptions{})
	if err != nil {
		t.Fatalf("ListGroceryItems: %v", err)
	}
	if len(items) != 1 || items[0].Name != "bread" {
		t.Fatalf("partial batch was stored: %#v", items)
	}
}

func TestListGroceryItemsFilters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.NewItem(t, st, catalog.GroceryItem{ID: 10, Name: "milk", Section: "dairy"})
	testsupport.NewItem(t, st, catalog.GroceryItem{ID: 3, Name: "apple", Section: "fresh", Acquired: true})
	testsupport.NewItem(t, st, catalog.GroceryItem{Name: "cheese", Section: "dairy"})

	all, err := st.ListGroceryItems(ctx, store.ItemListOptions{})
	if err != nil {
		t.Fatalf("ListGroceryItems: %v", err)
	}
	if names := itemNames(all); !reflect.DeepEqual(names, []string{"milk", "apple", "cheese"}) {
		t.Fatalf("insertion order = %v", names)
	}

	byID, err := st.ListGroceryItems(ctx, store.ItemListOptions{ListOptions: store.ListOptions{Sort: store.SortID}})
	if err != nil {
		t.Fatalf("ListGroceryItems: %v", err)
	}
	if names := itemNames(byID); names[0] != "apple" {
		t.Fatalf("id order = %v", names)
	}

	pending := false
	dairy, err := st.ListGroceryItems(ctx, store.ItemListOptions{Acquired: &pending, Section: "Dairy"})
	if err != nil {
		t.Fatalf("ListGroceryItems: %v", err)
	}
	if names := itemNames(dairy); !reflect.DeepEqual(names, []string{"milk", "cheese"}) {
		t.Fatalf("pending dairy = %v", names)
	}
}

func TestClearAndReplaceGroceryItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.NewItem(t, st, catalog.GroceryItem{Name: "milk"})
	testsupport.NewItem(t, st, catalog.GroceryItem{Name: "eggs", Acquired: true})
	testsupport.NewItem(t, st, catalog.GroceryItem{Name: "rice"})

	saved, err := st.SaveShoppingList(ctx, store.ShoppingList{Items: []catalog.GroceryItem{{Name: "flour"}}, Replace: true})
	if err != nil {
		t.Fatalf("SaveShoppingList: %v", err)
	}
	if len(saved) != 1 || saved[0].ID == 0 {
		t.Fatalf("saved = %#v", saved)
	}
	items, err := st.ListGroceryItems(ctx, store.ItemListOptions{})
	if err != nil {
		t.Fatalf("ListGroceryItems: %v", err)
	}
	if names := itemNames(items); !reflect.DeepEqual(names, []string{"eggs", "flour"}) {
		t.Fatalf("after replace = %v", names)
	}

	removed, err := st.ClearGroceryItems(ctx, true)
	if err != nil {
		t.Fatalf("ClearGroceryItems: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed %d acquired items, want 1", removed)
	}
	removed, err = st.ClearGroceryItems(ctx, false)
	if err != nil {
		t.Fatalf("ClearGroceryItems: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed %d items, want 1", removed)
	}
}

func TestClosedStoreReportsStorageErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := st.ListRecipes(context.Background(), store.ListOptions{}); !errors.Is(err, catalog.ErrStorageIO) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func recipeNames(recipes []catalog.Recipe) []string {
	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	return names
}

func itemNames(items []catalog.GroceryItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestFindRecipeByNameSuggests(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	testsupport.NewRecipe(t, st, "Pancakes")
	testsupport.NewRecipe(t, st, "Goulash")

	_, err := st.FindRecipeByName(context.Background(), "pancaks")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !strings.Contains(err.Error(), `did you mean "Pancakes"`) {
		t.Fatalf("expected suggestion in %q", err.Error())
	}
}

func TestShoppingListRecordsRecipes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	soup := testsupport.NewRecipe(t, st, "Soup", catalog.Line("leek", catalog.Qty("2"), nil))
	toast := testsupport.NewRecipe(t, st, "Toast", catalog.Line("bread", catalog.Qty("2"), catalog.Str("slice")))
	stew := testsupport.NewRecipe(t, st, "Stew")

	if _, err := st.SaveShoppingList(ctx, store.ShoppingList{RecipeIDs: []int64{toast.ID, soup.ID, toast.ID}}); err != nil {
		t.Fatalf("SaveShoppingList: %v", err)
	}
	if _, err := st.SaveShoppingList(ctx, store.ShoppingList{RecipeIDs: []int64{soup.ID, stew.ID}}); err != nil {
		t.Fatalf("SaveShoppingList: %v", err)
	}
	listed, err := st.ListedRecipes(ctx)
	if err != nil {
		t.Fatalf("ListedRecipes: %v", err)
	}
	if names := recipeNames(listed); !reflect.DeepEqual(names, []string{"Toast", "Soup", "Stew"}) {
		t.Fatalf("listed = %v", names)
	}
	if len(listed[0].Lines) != 1 || listed[2].Lines == nil {
		t.Fatalf("listed recipes missing lines: %#v", listed)
	}

	_, err = st.SaveShoppingList(ctx, store.ShoppingList{
		RecipeIDs: []int64{stew.ID, 404},
		Items:     []catalog.GroceryItem{{Name: "carrot"}},
		Replace:   true,
	})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not found for unknown recipe, got %v", err)
	}
	if listed, _ := st.ListedRecipes(ctx); len(listed) != 3 {
		t.Fatalf("failed save changed listed recipes: %v", recipeNames(listed))
	}

	if _, err := st.SaveShoppingList(ctx, store.ShoppingList{RecipeIDs: []int64{stew.ID}, Replace: true}); err != nil {
		t.Fatalf("SaveShoppingList replace: %v", err)
	}
	if err := st.DeleteRecipe(ctx, stew.ID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if listed, _ := st.ListedRecipes(ctx); len(listed) != 0 {
		t.Fatalf("deleted recipe still listed: %v", recipeNames(listed))
	}

	if _, err := st.SaveShoppingList(ctx, store.ShoppingList{RecipeIDs: []int64{soup.ID}}); err != nil {
		t.Fatalf("SaveShoppingList: %v", err)
	}
	if _, err := st.ClearGroceryItems(ctx, true); err != nil {
		t.Fatalf("ClearGroceryItems: %v", err)
	}
	if listed, _ := st.ListedRecipes(ctx); len(listed) != 1 {
		t.Fatalf("clearing acquired items dropped listed recipes: %v", recipeNames(listed))
	}
	if _, err := st.ClearGroceryItems(ctx, false); err != nil {
		t.Fatalf("ClearGroceryItems: %v", err)
	}
	if listed, _ := st.ListedRecipes(ctx); len(listed) != 0 {
		t.Fatalf("clearing the list kept listed recipes: %v", recipeNames(listed))
	}
}

func TestChecklist(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	salt, err := st.AddChecklistItem(ctx, "  Salt ")
	if err != nil {
		t.Fatalf("AddChecklistItem: %v", err)
	}
	if salt.ID == 0 || salt.Name != "Salt" || salt.CreatedAt.IsZero() {
		t.Fatalf("unexpected checklist item %#v", salt)
	}
	again, err := st.AddChecklistItem(ctx, "salt")
	if err != nil || again.ID != salt.ID || again.Name != "Salt" {
		t.Fatalf("re-adding returned %#v, %v", again, err)
	}
	if _, err := st.AddChecklistItem(ctx, "olive oil"); err != nil {
		t.Fatalf("AddChecklistItem: %v", err)
	}
	if _, err := st.AddChecklistItem(ctx, " "); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}

	items, err := st.ListChecklist(ctx)
	if err != nil {
		t.Fatalf("ListChecklist: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Salt" || items[1].Name != "olive oil" {
		t.Fatalf("checklist = %#v", items)
	}

	if err := st.DeleteChecklistItem(ctx, "SALT"); err != nil {
		t.Fatalf("DeleteChecklistItem: %v", err)
	}
	if err := st.DeleteChecklistItem(ctx, "salt"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
