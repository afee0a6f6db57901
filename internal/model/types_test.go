package model

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, raw := range []string{"food", " Music ", "WRITING", "surprise"} {
		if _, err := ParseCategory(raw); err != nil {
			t.Fatalf("ParseCategory(%q) failed: %v", raw, err)
		}
	}

	_, err := ParseCategory("dance")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestFilterSelectionNormalize(t *testing.T) {
	f := FilterSelection{
		Cuisine:    " Random ",
		Ingredient: " chicken ",
		Genre:      "Jazz",
		PoemLength: "SHORT",
	}.Normalize()

	if f.Cuisine != "" {
		t.Fatalf("random cuisine should be unconstrained, got %q", f.Cuisine)
	}
	if f.Ingredient != "chicken" || f.Genre != "jazz" || f.PoemLength != "short" {
		t.Fatalf("unexpected normalized selection: %+v", f)
	}
	if !f.HasFoodFacets() {
		t.Fatalf("expected ingredient to count as a food facet")
	}
}

func TestFilterSelectionLength(t *testing.T) {
	got, err := FilterSelection{PoemLength: "long"}.Length()
	if err != nil || got != PoemLong {
		t.Fatalf("unexpected length: %q, %v", got, err)
	}

	if _, err := (FilterSelection{PoemLength: "medium"}).Length(); err == nil {
		t.Fatalf("expected invalid length error")
	}

	got, err = FilterSelection{}.Length()
	if err != nil || got != "" {
		t.Fatalf("expected unset length, got %q, %v", got, err)
	}
}
