package consolidate

import (
	"github.com/shopspring/decimal"

	"larder/internal/catalog"
	"larder/internal/normalize"
	"larder/internal/textutil"
)

// LineRef locates an input line: the index of its recipe in the input slice
// and the index of the line within that recipe.
type LineRef struct {
	Recipe int
	Line   int
}

// Group is one merged output entry together with the lines that produced it.
type Group struct {
	Key   normalize.Key
	Item  catalog.GroceryItem
	Lines []LineRef
}

type contribution struct {
	quantity *decimal.Decimal
	unit     normalize.Unit
}

type builder struct {
	key           normalize.Key
	name          string
	lines         []LineRef
	contributions []contribution
}

// Consolidate returns one grocery item per distinct key across recipes, in
// the order each key was first seen.
func Consolidate(recipes []catalog.Recipe) []catalog.GroceryItem {
	groups := Plan(recipes)
	items := make([]catalog.GroceryItem, len(groups))
	for i, g := range groups {
		items[i] = g.Item
	}
	return items
}

// Plan groups every line of recipes by its normalized key and computes the
// merged grocery item for each group.
func Plan(recipes []catalog.Recipe) []Group {
	index := make(map[normalize.Key]int)
	var builders []*builder

	for ri, recipe := range recipes {
		for li, line := range recipe.Lines {
			key := normalize.Normalize(line.Name, line.Unit)
			pos, ok := index[key]
			if !ok {
				pos = len(builders)
				index[key] = pos
				builders = append(builders, &builder{
					key:  key,
					name: textutil.CollapseSpaces(line.Name),
				})
			}
			b := builders[pos]
			b.lines = append(b.lines, LineRef{Recipe: ri, Line: li})
			b.contributions = append(b.contributions, contribution{
				quantity: line.Quantity,
				unit:     normalize.ResolveUnit(line.Unit),
			})
		}
	}

	groups := make([]Group, len(builders))
	for i, b := range builders {
		quantity, unit := merge(b.key.Family, b.contributions)
		groups[i] = Group{
			Key: b.key,
			Item: catalog.GroceryItem{
				Name:     b.name,
				Quantity: quantity,
				Unit:     unit,
			},
			Lines: b.lines,
		}
	}
	return groups
}

// merge sums contributions that share a family. Identical units are summed
// as-is; mixed units are converted to the family base. A single unspecified
// quantity makes the whole result unspecified.
func merge(family string, contributions []contribution) (*decimal.Decimal, *string) {
	sameUnit := true
	for _, c := range contributions {
		if c.quantity == nil {
			return nil, nil
		}
		if c.unit.Symbol != contributions[0].unit.Symbol {
			sameUnit = false
		}
	}

	total := decimal.Zero
	if sameUnit {
		for _, c := range contributions {
			total = total.Add(*c.quantity)
		}
		return &total, unitPointer(contributions[0].unit.Symbol)
	}

	base := normalize.BaseUnit(family)
	convertible := base != ""
	if !convertible && family != normalize.FamilyCount {
		// Only count items may lose their unit; other families keep the
		// first spelling seen.
		base = contributions[0].unit.Symbol
	}
	for _, c := range contributions {
		if convertible {
			total = total.Add(normalize.ToBase(*c.quantity, c.unit))
		} else {
			total = total.Add(*c.quantity)
		}
	}
	return &total, unitPointer(base)
}

func unitPointer(symbol string) *string {
	if symbol == "" {
		return nil
	}
	return &symbol
}

// AsRecipe turns a consolidated list back into a single synthetic recipe, so
// a list can be merged again or combined with further recipes.
func AsRecipe(name string, items []catalog.GroceryItem) catalog.Recipe {
	lines := make([]catalog.IngredientLine, len(items))
	for i, item := range items {
		lines[i] = catalog.IngredientLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		}
	}
	return catalog.Recipe{Name: name, Lines: lines}
}
