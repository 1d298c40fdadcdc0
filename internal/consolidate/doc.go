// Package consolidate merges the ingredient lines of several recipes into one
// deduplicated grocery list.
//
// Lines are keyed with the normalize package and grouped in first-seen order.
// Within a group, quantities are summed exactly; mixed units of one family are
// converted to the family base unit first, and any unspecified quantity makes
// the merged quantity unspecified. The computation is pure and holds no shared
// state, so callers may run it concurrently on independent inputs.
package consolidate
