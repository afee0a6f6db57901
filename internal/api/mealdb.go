package api

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// MealDB filter keys.
const (
	MealFilterCategory   = "c"
	MealFilterArea       = "a"
	MealFilterIngredient = "i"
)

// maxMealIngredients is the number of strIngredientN fields in a meal record.
const maxMealIngredients = 20

// Meal is a full recipe record from TheMealDB.
type Meal struct {
	ID           string   `mapstructure:"idMeal"`
	Name         string   `mapstructure:"strMeal"`
	Category     string   `mapstructure:"strCategory"`
	Area         string   `mapstructure:"strArea"`
	Instructions string   `mapstructure:"strInstructions"`
	Thumb        string   `mapstructure:"strMealThumb"`
	YouTube      string   `mapstructure:"strYoutube"`
	Source       string   `mapstructure:"strSource"`
	Ingredients  []string `mapstructure:"-"`
}

// MealRef is the abbreviated record returned by filter endpoints.
type MealRef struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

// MealDB wraps TheMealDB endpoints.
type MealDB struct {
	c    *Client
	base string
}

// NewMealDB creates a TheMealDB client rooted at base.
func NewMealDB(c *Client, base string) *MealDB {
	return &MealDB{c: c, base: base}
}

// Random returns one random meal, or nil when the provider returned none.
func (m *MealDB) Random(ctx context.Context) (*Meal, error) {
	return m.single(ctx, endpoint(m.base, "random.php", nil))
}

// Lookup returns full details for a meal ID, or nil when it does not exist.
func (m *MealDB) Lookup(ctx context.Context, id string) (*Meal, error) {
	return m.single(ctx, endpoint(m.base, "lookup.php", url.Values{"i": {id}}))
}

// Filter returns the meals matching a single facet. TheMealDB answers
// {"meals":null} when nothing matches; that yields an empty slice.
func (m *MealDB) Filter(ctx context.Context, key, value string) ([]MealRef, error) {
	switch key {
	case MealFilterCategory, MealFilterArea, MealFilterIngredient:
	default:
		return nil, fmt.Errorf("unsupported meal filter %q", key)
	}

	var out struct {
		Meals []MealRef `json:"meals"`
	}
	if err := m.c.getJSON(ctx, endpoint(m.base, "filter.php", url.Values{key: {value}}), &out); err != nil {
		return nil, err
	}
	return out.Meals, nil
}

// Categories returns the sorted dietary category names.
func (m *MealDB) Categories(ctx context.Context) ([]string, error) {
	return m.list(ctx, "c", "strCategory")
}

// Areas returns the sorted cuisine (area) names.
func (m *MealDB) Areas(ctx context.Context) ([]string, error) {
	return m.list(ctx, "a", "strArea")
}

// Ingredients returns the sorted ingredient names.
func (m *MealDB) Ingredients(ctx context.Context) ([]string, error) {
	return m.list(ctx, "i", "strIngredient")
}

func (m *MealDB) list(ctx context.Context, kind, field string) ([]string, error) {
	var out struct {
		Meals []map[string]any `json:"meals"`
	}
	if err := m.c.getJSON(ctx, endpoint(m.base, "list.php", url.Values{kind: {"list"}}), &out); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(out.Meals))
	for _, item := range out.Meals {
		if s, ok := item[field].(string); ok && strings.TrimSpace(s) != "" {
			names = append(names, strings.TrimSpace(s))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *MealDB) single(ctx context.Context, rawURL string) (*Meal, error) {
	var out struct {
		Meals []map[string]any `json:"meals"`
	}
	if err := m.c.getJSON(ctx, rawURL, &out); err != nil {
		return nil, err
	}
	if len(out.Meals) == 0 || out.Meals[0] == nil {
		return nil, nil
	}

	meal, err := decodeMeal(out.Meals[0])
	if err != nil {
		return nil, fmt.Errorf("decode meal from %s: %w", rawURL, err)
	}
	return &meal, nil
}

// decodeMeal maps TheMealDB's flat record, including its numbered
// strIngredientN fields, into a Meal.
func decodeMeal(raw map[string]any) (Meal, error) {
	var meal Meal
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &meal,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Meal{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Meal{}, err
	}

	for i := 1; i <= maxMealIngredients; i++ {
		s, _ := raw[fmt.Sprintf("strIngredient%d", i)].(string)
		if s = strings.TrimSpace(s); s != "" {
			meal.Ingredients = append(meal.Ingredients, s)
		}
	}
	return meal, nil
}
