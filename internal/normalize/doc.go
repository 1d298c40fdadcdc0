// Package normalize maps free-text ingredient names and units onto canonical
// merge keys.
//
// Names are folded (accents, case, whitespace) and their last word is
// singularized with a fixed, ordered rule list. Units are looked up in a fixed
// synonym table that assigns each a canonical symbol, a family, and an exact
// conversion factor to the family base unit. Lines whose units fall into
// different families never share a key.
//
// Everything here is pure and total: unrecognized input degrades to a looser
// key instead of failing.
package normalize
