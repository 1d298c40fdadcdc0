package textutil

import (
	"math"
	"sort"
)

// Fingerprint is a character-trigram frequency vector over folded text.
type Fingerprint struct {
	grams map[string]float64
	norm  float64
}

// NewFingerprint creates a fingerprint from the provided text. Returns nil
// if the folded text is empty.
func NewFingerprint(text string) *Fingerprint {
	folded := Fold(text)
	if folded == "" {
		return nil
	}
	runes := []rune(" " + folded + " ")
	counts := make(map[string]float64, len(runes))
	for i := 0; i+3 <= len(runes); i++ {
		counts[string(runes[i:i+3])]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{grams: counts, norm: math.Sqrt(norm)}
}

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for gram, count := range a.grams {
		if other, ok := b.grams[gram]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Similar returns up to limit candidates whose similarity to query is at
// least threshold, best match first. Ties keep candidate order.
func Similar(query string, candidates []string, threshold float64, limit int) []string {
	target := NewFingerprint(query)
	if target == nil || limit <= 0 {
		return nil
	}
	type scored struct {
		value string
		score float64
	}
	var matches []scored
	seen := make(map[string]struct{})
	for _, candidate := range candidates {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		if score := CosineSimilarity(target, NewFingerprint(candidate)); score >= threshold {
			matches = append(matches, scored{candidate, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.value)
	}
	return out
}
