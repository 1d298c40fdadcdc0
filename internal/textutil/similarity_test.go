package textutil

import (
	"math"
	"reflect"
	"testing"
)

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
	}{
		{"both nil", nil, nil},
		{"a nil", nil, NewFingerprint("pancakes")},
		{"b nil", NewFingerprint("pancakes"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != 0 {
				t.Errorf("CosineSimilarity() = %v, want 0", got)
			}
		})
	}
}

func TestCosineSimilarityIgnoresCaseAndAccents(t *testing.T) {
	got := CosineSimilarity(NewFingerprint("Crème Brûlée"), NewFingerprint("creme brulee"))
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("CosineSimilarity(folded) = %v, want 1", got)
	}
}

func TestCosineSimilarityPartialOverlap(t *testing.T) {
	got := CosineSimilarity(NewFingerprint("pancakes"), NewFingerprint("pancaks"))
	if got <= 0.5 || got >= 1 {
		t.Errorf("CosineSimilarity(typo) = %v, want between 0.5 and 1", got)
	}
	if other := CosineSimilarity(NewFingerprint("pancakes"), NewFingerprint("goulash")); other >= got {
		t.Errorf("unrelated text scored %v, typo scored %v", other, got)
	}
}

func TestNewFingerprintShortText(t *testing.T) {
	if NewFingerprint("   ") != nil {
		t.Fatal("expected nil fingerprint for blank text")
	}
	if fp := NewFingerprint("a"); fp == nil {
		t.Fatal("expected fingerprint for single letter")
	}
}

func TestSimilar(t *testing.T) {
	candidates := []string{"Tomato soup", "Pancakes", "Pancake mix", "Pancakes", "Goulash"}
	got := Similar("pancaks", candidates, 0.4, 2)
	if !reflect.DeepEqual(got, []string{"Pancakes", "Pancake mix"}) {
		t.Fatalf("Similar() = %v", got)
	}
	if got := Similar("zzz", candidates, 0.4, 3); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
	if got := Similar("", candidates, 0, 3); got != nil {
		t.Fatalf("expected nil for blank query, got %v", got)
	}
}
