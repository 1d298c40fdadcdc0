// Package textutil provides Unicode-aware text folding used when comparing
// free-text ingredient names.
//
// Folding decomposes accented characters, drops combining marks, recomposes,
// and lower-cases, so "Jalapeño" and "jalapeno" compare equal. Whitespace
// helpers collapse runs of spaces so user typing does not split merge keys.
// Trigram fingerprints over folded text rank near-miss names for
// suggestions.
package textutil
