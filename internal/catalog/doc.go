// Package catalog defines the recipe and grocery records shared by storage,
// normalization, and list consolidation.
//
// Recipes own an ordered set of ingredient lines. Grocery items are standalone
// shopping-list entries that outlive the recipes they were derived from.
// Quantities are exact decimals and, like units, may be null; a nil pointer is
// the null value and is preserved end to end.
//
// The package also owns the error taxonomy (NotFound, Conflict, InvalidInput,
// StorageIO). Callers classify failures with errors.Is against the exported
// sentinels rather than by matching messages.
package catalog
