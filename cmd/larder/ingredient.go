package main

import (
	"strings"

	"github.com/shopspring/decimal"

	"larder/internal/catalog"
	"larder/internal/normalize"
)

// parseIngredient reads "[QTY] [UNIT] NAME". QTY is a decimal, a fraction
// ("1/2"), a mixed number ("1 1/2"), or the word "some" for an unknown
// amount. A UNIT is recognised only after a quantity and only when the unit
// table knows it; it is stored by its canonical symbol.
func parseIngredient(raw string) (catalog.IngredientLine, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return catalog.IngredientLine{}, catalog.Invalid("ingredient", "empty ingredient")
	}

	var (
		quantity *decimal.Decimal
		hasQty   bool
	)
	switch {
	case strings.EqualFold(tokens[0], "some") && len(tokens) > 1:
		tokens = tokens[1:]
		hasQty = true
	default:
		q, used, err := leadingQuantity(tokens)
		if err != nil {
			return catalog.IngredientLine{}, err
		}
		if used > 0 {
			quantity = &q
			tokens = tokens[used:]
			hasQty = true
		}
	}
	if len(tokens) == 0 {
		return catalog.IngredientLine{}, catalog.Invalid("ingredient", "%q has no name", raw)
	}

	var unit *string
	if hasQty {
		if symbol, used := leadingUnit(tokens); used > 0 && used < len(tokens) {
			unit = &symbol
			tokens = tokens[used:]
		}
	}

	return catalog.IngredientLine{
		Name:     strings.Join(tokens, " "),
		Quantity: quantity,
		Unit:     unit,
	}, nil
}

// leadingQuantity parses a quantity from the first one or two tokens and
// reports how many it used. Zero tokens used means no quantity.
func leadingQuantity(tokens []string) (decimal.Decimal, int, error) {
	first, ok, err := parseAmount(tokens[0])
	if err != nil || !ok {
		return decimal.Decimal{}, 0, err
	}
	if len(tokens) > 2 && !strings.Contains(tokens[0], "/") && strings.Contains(tokens[1], "/") {
		if frac, ok, err := parseAmount(tokens[1]); err == nil && ok {
			return first.Add(frac), 2, nil
		}
	}
	return first, 1, nil
}

// fractionScale is the number of decimal places kept for fractions whose
// expansion does not terminate ("1/3"). Terminating fractions stay exact.
const fractionScale = 16

// parseAmount parses a decimal or a simple fraction. ok is false when token
// does not look numeric at all.
func parseAmount(token string) (decimal.Decimal, bool, error) {
	if token == "" || !strings.ContainsAny(token[:1], "0123456789.-+") {
		return decimal.Decimal{}, false, nil
	}
	if num, den, found := strings.Cut(token, "/"); found {
		n, err := decimal.NewFromString(num)
		if err != nil {
			return decimal.Decimal{}, false, catalog.Invalid("quantity", "%q is not a number", token)
		}
		d, err := decimal.NewFromString(den)
		if err != nil || d.IsZero() {
			return decimal.Decimal{}, false, catalog.Invalid("quantity", "%q is not a valid fraction", token)
		}
		return n.DivRound(d, fractionScale), true, nil
	}
	value, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Decimal{}, false, nil
	}
	return value, true, nil
}

// leadingUnit matches a one- or two-word unit at the start of tokens.
func leadingUnit(tokens []string) (string, int) {
	if len(tokens) > 1 {
		if u, ok := normalize.LookupUnit(tokens[0] + " " + tokens[1]); ok && u.Symbol != "" {
			return u.Symbol, 2
		}
	}
	if u, ok := normalize.LookupUnit(tokens[0]); ok && u.Symbol != "" {
		return u.Symbol, 1
	}
	return "", 0
}

// parseQuantityFlag parses a standalone quantity such as "1 1/2" or "0.5".
func parseQuantityFlag(raw string) (*decimal.Decimal, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens) > 2 {
		return nil, catalog.Invalid("quantity", "%q is not a number", raw)
	}
	q, used, err := leadingQuantity(append(tokens, ""))
	if err != nil {
		return nil, err
	}
	if used != len(tokens) {
		return nil, catalog.Invalid("quantity", "%q is not a number", raw)
	}
	return &q, nil
}
