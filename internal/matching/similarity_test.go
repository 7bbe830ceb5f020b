package matching

import "testing"

func TestSimilarity_Table(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		tags     []string
		want     float64
	}{
		{"empty keywords", nil, []string{"dog"}, 0},
		{"empty tags", []string{"dog"}, nil, 0},
		{"exact and miss", []string{"dog", "park"}, []string{"dog", "outdoor"}, 0.5},
		{"all exact", []string{"dog", "park"}, []string{"park", "dog"}, 1},
		{"tag contains keyword", []string{"car"}, []string{"sportscar"}, 0.5},
		{"keyword contains tag", []string{"sunset beach"}, []string{"beach"}, 0.5},
		{"exact beats earlier partial", []string{"run"}, []string{"running", "run"}, 1},
		{"partial counted once", []string{"sun"}, []string{"sunny", "sunset"}, 0.5},
		{"case insensitive", []string{"Dog"}, []string{"DOG"}, 1},
		{"whitespace trimmed", []string{" dog "}, []string{"dog"}, 1},
		{"blank tags ignored", []string{"dog"}, []string{"", "  "}, 0},
		{"blank keywords ignored", []string{"dog", "", "  "}, []string{"dog"}, 1},
		{"only blank keywords", []string{" ", ""}, []string{"dog"}, 0},
		{"no overlap", []string{"coffee"}, []string{"mountain"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.keywords, tt.tags); got != tt.want {
				t.Fatalf("Similarity(%q, %q) = %v, want %v", tt.keywords, tt.tags, got, tt.want)
			}
		})
	}
}

func TestSimilarity_CaseSymmetry(t *testing.T) {
	a := Similarity([]string{"Car"}, []string{"car"})
	b := Similarity([]string{"car"}, []string{"CAR"})
	if a != b {
		t.Fatalf("expected case-insensitive scores to match, got %v and %v", a, b)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	inputs := [][2][]string{
		{{"a"}, {"a", "ab", "abc"}},
		{{"a", "a", "a"}, {"a"}},
		{{"product", "demo", "shoe"}, {"shoes", "product demo", "demo"}},
	}
	for _, in := range inputs {
		got := Similarity(in[0], in[1])
		if got < 0 || got > 1 {
			t.Fatalf("Similarity(%q, %q) = %v out of [0,1]", in[0], in[1], got)
		}
	}
}

func TestSimilarity_OrderIndependent(t *testing.T) {
	a := Similarity([]string{"dog", "park", "ball"}, []string{"dog", "balls"})
	b := Similarity([]string{"ball", "dog", "park"}, []string{"balls", "dog"})
	if a != b {
		t.Fatalf("expected order-independent score, got %v and %v", a, b)
	}
}
