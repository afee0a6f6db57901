package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a top-level inspiration category.
type Category string

const (
	CategoryFood     Category = "food"
	CategoryMusic    Category = "music"
	CategoryWriting  Category = "writing"
	CategorySurprise Category = "surprise"
)

// ErrUnknownCategory is returned for tags outside the supported set.
var ErrUnknownCategory = errors.New("unknown category")

// BaseCategories are the concrete categories a proxied surprise resolves to.
var BaseCategories = []Category{CategoryFood, CategoryMusic, CategoryWriting}

// Categories lists every routable tag in display order.
var Categories = []Category{CategoryFood, CategoryMusic, CategoryWriting, CategorySurprise}

// ParseCategory normalizes a user-supplied tag.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case CategoryFood, CategoryMusic, CategoryWriting, CategorySurprise:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// PoemLength constrains poem line counts.
type PoemLength string

const (
	PoemShort PoemLength = "short"
	PoemLong  PoemLength = "long"
)

// FilterSelection holds the optional facets chosen by the user.
// An empty field means unconstrained.
type FilterSelection struct {
	Cuisine         string `json:"cuisine,omitempty"`
	DietaryCategory string `json:"dietaryCategory,omitempty"`
	Ingredient      string `json:"ingredient,omitempty"`
	Genre           string `json:"genre,omitempty"`
	Artist          string `json:"artist,omitempty"`
	PoemLength      string `json:"poemLength,omitempty"`
}

// Normalize trims every facet and treats "random" as unconstrained.
func (f FilterSelection) Normalize() FilterSelection {
	return FilterSelection{
		Cuisine:         normalizeFacet(f.Cuisine),
		DietaryCategory: normalizeFacet(f.DietaryCategory),
		Ingredient:      normalizeFacet(f.Ingredient),
		Genre:           strings.ToLower(normalizeFacet(f.Genre)),
		Artist:          normalizeFacet(f.Artist),
		PoemLength:      strings.ToLower(normalizeFacet(f.PoemLength)),
	}
}

// HasFoodFacets reports whether any recipe facet is set.
func (f FilterSelection) HasFoodFacets() bool {
	return f.Cuisine != "" || f.DietaryCategory != "" || f.Ingredient != ""
}

// IsEmpty reports whether no facet is set at all.
func (f FilterSelection) IsEmpty() bool {
	return f == FilterSelection{}
}

// Length returns the parsed poem length facet, or "" when unset.
func (f FilterSelection) Length() (PoemLength, error) {
	switch PoemLength(f.PoemLength) {
	case "":
		return "", nil
	case PoemShort, PoemLong:
		return PoemLength(f.PoemLength), nil
	}
	return "", fmt.Errorf("poem length must be %q or %q, got %q", PoemShort, PoemLong, f.PoemLength)
}

func normalizeFacet(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "random") {
		return ""
	}
	return v
}
