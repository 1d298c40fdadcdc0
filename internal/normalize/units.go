package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"larder/internal/textutil"
)

// Family names for the unit table.
const (
	FamilyCount        = "count"
	FamilyMassMetric   = "mass-metric"
	FamilyMassImperial = "mass-imperial"
	FamilyVolumeMetric = "volume-metric"
	FamilyVolumeUS     = "volume-us"
	FamilyUnspecified  = "unspecified"

	unknownFamilyPrefix = "unit:"
)

// Unit is a canonical unit from the lookup table.
type Unit struct {
	Symbol string
	Family string
	// Factor converts one of this unit into the family base unit.
	Factor decimal.Decimal
}

type unitDef struct {
	symbol   string
	family   string
	factor   string
	synonyms []string
}

var unitDefs = []unitDef{
	{"mg", FamilyMassMetric, "0.001", []string{"milligram", "milligrams", "mgs"}},
	{"g", FamilyMassMetric, "1", []string{"gram", "grams", "gr", "gm", "gms", "gramme", "grammes"}},
	{"kg", FamilyMassMetric, "1000", []string{"kilogram", "kilograms", "kilo", "kilos", "kgs"}},

	{"oz", FamilyMassImperial, "1", []string{"ounce", "ounces", "ozs"}},
	{"lb", FamilyMassImperial, "16", []string{"pound", "pounds", "lbs"}},

	{"ml", FamilyVolumeMetric, "1", []string{"milliliter", "milliliters", "millilitre", "millilitres", "mls"}},
	{"cl", FamilyVolumeMetric, "10", []string{"centiliter", "centiliters", "centilitre", "centilitres"}},
	{"dl", FamilyVolumeMetric, "100", []string{"deciliter", "deciliters", "decilitre", "decilitres"}},
	{"l", FamilyVolumeMetric, "1000", []string{"liter", "liters", "litre", "litres", "ltr"}},

	{"tsp", FamilyVolumeUS, "1", []string{"teaspoon", "teaspoons", "tsps", "tspn"}},
	{"tbsp", FamilyVolumeUS, "3", []string{"tablespoon", "tablespoons", "tbsps", "tbs", "tbl", "tblsp"}},
	{"fl oz", FamilyVolumeUS, "6", []string{"fluid ounce", "fluid ounces", "floz", "fl. oz"}},
	{"cup", FamilyVolumeUS, "48", []string{"cups", "c"}},
	{"pt", FamilyVolumeUS, "96", []string{"pint", "pints", "pts"}},
	{"qt", FamilyVolumeUS, "192", []string{"quart", "quarts", "qts"}},
	{"gal", FamilyVolumeUS, "768", []string{"gallon", "gallons", "gals"}},

	{"unit", FamilyCount, "1", []string{"units", "each", "ea", "piece", "pieces", "pc", "pcs", "whole"}},

	{"clove", "clove", "1", []string{"cloves"}},
	{"can", "can", "1", []string{"cans", "tin", "tins"}},
	{"bunch", "bunch", "1", []string{"bunches"}},
	{"pinch", "pinch", "1", []string{"pinches"}},
	{"slice", "slice", "1", []string{"slices"}},
	{"sprig", "sprig", "1", []string{"sprigs"}},
	{"stick", "stick", "1", []string{"sticks"}},
	{"jar", "jar", "1", []string{"jars"}},
	{"bottle", "bottle", "1", []string{"bottles"}},
	{"package", "package", "1", []string{"packages", "pkg", "pkgs", "packet", "packets"}},
	{"head", "head", "1", []string{"heads"}},
	{"dash", "dash", "1", []string{"dashes"}},
}

var unitTable = buildUnitTable(unitDefs)

func buildUnitTable(defs []unitDef) map[string]Unit {
	table := make(map[string]Unit, len(defs)*4)
	for _, def := range defs {
		u := Unit{
			Symbol: def.symbol,
			Family: def.family,
			Factor: decimal.RequireFromString(def.factor),
		}
		table[def.symbol] = u
		for _, synonym := range def.synonyms {
			table[synonym] = u
		}
	}
	return table
}

// LookupUnit resolves a unit spelling against the table. Matching ignores
// case, surrounding whitespace, and a trailing period ("tbsp.").
func LookupUnit(raw string) (Unit, bool) {
	u, ok := unitTable[unitToken(raw)]
	return u, ok
}

// ResolveUnit classifies a nullable unit. A nil or blank unit is a count.
// Known spellings resolve through the table; other words become their own
// one-member family; input with no letters is unspecified and keeps its
// spelling as the symbol.
func ResolveUnit(raw *string) Unit {
	if raw == nil {
		return Unit{Family: FamilyCount, Factor: decimal.NewFromInt(1)}
	}
	token := unitToken(*raw)
	if token == "" {
		return Unit{Family: FamilyCount, Factor: decimal.NewFromInt(1)}
	}
	if u, ok := unitTable[token]; ok {
		return u
	}
	if !textutil.HasLetter(token) {
		return Unit{Symbol: token, Family: FamilyUnspecified, Factor: decimal.NewFromInt(1)}
	}
	return Unit{Symbol: token, Family: unknownFamilyPrefix + token, Factor: decimal.NewFromInt(1)}
}

// BaseUnit returns the base unit symbol of a convertible family, or "" when
// the family has none.
func BaseUnit(family string) string {
	switch family {
	case FamilyMassMetric:
		return "g"
	case FamilyMassImperial:
		return "oz"
	case FamilyVolumeMetric:
		return "ml"
	case FamilyVolumeUS:
		return "tsp"
	default:
		return ""
	}
}

// ToBase converts quantity expressed in u into the family base unit.
func ToBase(quantity decimal.Decimal, u Unit) decimal.Decimal {
	return quantity.Mul(u.Factor)
}

// Convert expresses quantity, given in the from unit, in the to unit. Both
// spellings must resolve through the table to the same family; ok is false
// otherwise.
func Convert(quantity decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	src, ok := LookupUnit(from)
	if !ok {
		return decimal.Decimal{}, false
	}
	dst, ok := LookupUnit(to)
	if !ok || dst.Family != src.Family || dst.Factor.IsZero() {
		return decimal.Decimal{}, false
	}
	return ToBase(quantity, src).DivRound(dst.Factor, 16).Truncate(16), true
}

func unitToken(raw string) string {
	token := strings.ToLower(textutil.CollapseSpaces(raw))
	return strings.TrimSuffix(token, ".")
}
