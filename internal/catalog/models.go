package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IngredientLine is one ingredient entry within a recipe.
type IngredientLine struct {
	Name     string           `json:"name"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     *string          `json:"unit"`
}

// Recipe is a named, ordered collection of ingredient lines.
type Recipe struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Lines     []IngredientLine `json:"lines"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// GroceryItem is a shopping-list entry. Once created it is independent of any
// recipe.
type GroceryItem struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Unit      *string          `json:"unit"`
	Acquired  bool             `json:"acquired"`
	Section   string           `json:"section,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ChecklistItem is a staple to check at home before shopping. Names are
// unique regardless of case.
type ChecklistItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RecipePatch describes a partial recipe update. Nil fields are left alone;
// a non-nil Lines replaces the whole line list.
type RecipePatch struct {
	Name  *string
	Lines *[]IngredientLine
}

// GroceryItemPatch describes a partial grocery item update. The Clear flags
// set the corresponding nullable field to null and win over a value.
type GroceryItemPatch struct {
	Name          *string
	Quantity      *decimal.Decimal
	ClearQuantity bool
	Unit          *string
	ClearUnit     bool
	Acquired      *bool
	Section       *string
}

// Qty returns a pointer to a decimal parsed from value. It panics on malformed
// input and is meant for literals in tests and fixtures.
func Qty(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

// Str returns a pointer to value.
func Str(value string) *string {
	return &value
}

// Line builds an ingredient line.
func Line(name string, quantity *decimal.Decimal, unit *string) IngredientLine {
	return IngredientLine{Name: name, Quantity: quantity, Unit: unit}
}

// UnitString renders a nullable unit, using "" for null.
func UnitString(unit *string) string {
	if unit == nil {
		return ""
	}
	return *unit
}

// QuantityString renders a nullable quantity, using "" for null.
func QuantityString(quantity *decimal.Decimal) string {
	if quantity == nil {
		return ""
	}
	return quantity.String()
}

// Describe formats an amount and name for display, e.g. "2 cup flour" or
// "basil" when the quantity is null.
func Describe(name string, quantity *decimal.Decimal, unit *string) string {
	parts := make([]string, 0, 3)
	if q := QuantityString(quantity); q != "" {
		parts = append(parts, q)
		if u := UnitString(unit); u != "" {
			parts = append(parts, u)
		}
	}
	parts = append(parts, name)
	return strings.Join(parts, " ")
}

// String implements fmt.Stringer.
func (l IngredientLine) String() string {
	return Describe(l.Name, l.Quantity, l.Unit)
}

// String implements fmt.Stringer.
func (g GroceryItem) String() string {
	return Describe(g.Name, g.Quantity, g.Unit)
}
