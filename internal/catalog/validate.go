package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CleanRecipe trims names and units, nulls blank units, and rejects recipes
// that cannot be stored. The returned recipe is a copy.
func CleanRecipe(r Recipe) (Recipe, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return Recipe{}, Invalid("recipe", "name must not be empty")
	}
	if r.ID < 0 {
		return Recipe{}, Invalid("recipe", "id %d must not be negative", r.ID)
	}
	lines, err := CleanLines(r.Lines)
	if err != nil {
		return Recipe{}, err
	}
	out := r
	out.Name = name
	out.Lines = lines
	return out, nil
}

// CleanLines validates and normalizes a list of ingredient lines.
func CleanLines(lines []IngredientLine) ([]IngredientLine, error) {
	out := make([]IngredientLine, 0, len(lines))
	for i, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			return nil, Invalid("ingredient", "line %d: name must not be empty", i+1)
		}
		if err := checkQuantity(line.Quantity); err != nil {
			return nil, Wrap(ErrInvalidInput, "ingredient", name, err)
		}
		out = append(out, IngredientLine{
			Name:     name,
			Quantity: copyDecimal(line.Quantity),
			Unit:     cleanUnit(line.Unit),
		})
	}
	return out, nil
}

// CleanGroceryItem validates and normalizes a grocery item.
func CleanGroceryItem(item GroceryItem) (GroceryItem, error) {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return GroceryItem{}, Invalid("grocery item", "name must not be empty")
	}
	if item.ID < 0 {
		return GroceryItem{}, Invalid("grocery item", "id %d must not be negative", item.ID)
	}
	if err := checkQuantity(item.Quantity); err != nil {
		return GroceryItem{}, Wrap(ErrInvalidInput, "grocery item", name, err)
	}
	out := item
	out.Name = name
	out.Quantity = copyDecimal(item.Quantity)
	out.Unit = cleanUnit(item.Unit)
	out.Section = strings.ToLower(strings.TrimSpace(item.Section))
	return out, nil
}

// ApplyItemPatch returns item with patch applied, validated.
func ApplyItemPatch(item GroceryItem, patch GroceryItemPatch) (GroceryItem, error) {
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Quantity != nil {
		item.Quantity = patch.Quantity
	}
	if patch.ClearQuantity {
		item.Quantity = nil
	}
	if patch.Unit != nil {
		item.Unit = patch.Unit
	}
	if patch.ClearUnit {
		item.Unit = nil
	}
	if patch.Acquired != nil {
		item.Acquired = *patch.Acquired
	}
	if patch.Section != nil {
		item.Section = *patch.Section
	}
	return CleanGroceryItem(item)
}

// ApplyRecipePatch returns r with patch applied, validated.
func ApplyRecipePatch(r Recipe, patch RecipePatch) (Recipe, error) {
	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Lines != nil {
		r.Lines = *patch.Lines
	}
	return CleanRecipe(r)
}

func checkQuantity(q *decimal.Decimal) error {
	if q == nil {
		return nil
	}
	if !q.IsPositive() {
		return fmt.Errorf("quantity %s must be positive", q.String())
	}
	return nil
}

func cleanUnit(unit *string) *string {
	if unit == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*unit)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func copyDecimal(q *decimal.Decimal) *decimal.Decimal {
	if q == nil {
		return nil
	}
	c := *q
	return &c
}

// Validate checks the fields a patch sets without needing the stored record.
func (p GroceryItemPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Invalid("grocery item", "name must not be empty")
	}
	if !p.ClearQuantity {
		if err := checkQuantity(p.Quantity); err != nil {
			return Wrap(ErrInvalidInput, "grocery item", "", err)
		}
	}
	return nil
}

// Validate checks the fields a patch sets without needing the stored record.
func (p RecipePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Invalid("recipe", "name must not be empty")
	}
	if p.Lines != nil {
		if _, err := CleanLines(*p.Lines); err != nil {
			return err
		}
	}
	return nil
}
