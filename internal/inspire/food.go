package inspire

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inspire/internal/api"
	"inspire/internal/config"
	"inspire/internal/logging"
	"inspire/internal/model"
	"inspire/internal/worker"
)

const (
	msgRecipeFailed     = "Failed to fetch recipe. Please try again."
	msgNoRecipes        = "No recipes found with those filters. Try a different selection."
	msgNoCombined       = "No recipes found matching all your filters. Try a different combination."
	msgRecipeDetailFail = "Recipe details could not be loaded. Please try again."
)

// MealSource is the subset of TheMealDB used by MealDBStrategy.
type MealSource interface {
	Random(ctx context.Context) (*api.Meal, error)
	Filter(ctx context.Context, key, value string) ([]api.MealRef, error)
	Lookup(ctx context.Context, id string) (*api.Meal, error)
}

// MealDBStrategy fetches recipes from TheMealDB. The server filters on a
// single facet; remaining facets are matched client-side.
type MealDBStrategy struct {
	Source MealSource
	// Priority orders facets when choosing the server-side filter.
	Priority       []string
	CandidateLimit int
	Workers        int
	Rand           Rand
	Log            *logging.Logger
}

func (s *MealDBStrategy) Name() string { return config.SourceMealDB }

func (s *MealDBStrategy) Fetch(ctx context.Context, f model.FilterSelection) (model.Result, error) {
	const op = "food.mealdb"

	if !f.HasFoodFacets() {
		meal, err := s.Source.Random(ctx)
		if err != nil {
			return nil, providerError(op, msgRecipeFailed, err)
		}
		if meal == nil {
			return nil, emptyResult(op, msgRecipeFailed)
		}
		return recipeFromMeal(*meal), nil
	}

	primary, ok := primaryFacet(s.Priority, f)
	if !ok {
		return nil, &Error{Op: op, Kind: KindInvalidFilter, Message: "No usable recipe filter was selected.", Err: fmt.Errorf("priority %v covers none of the selected facets", s.Priority)}
	}

	refs, err := s.Source.Filter(ctx, primary.key, primary.value)
	if err != nil {
		return nil, providerError(op, msgRecipeFailed, err)
	}
	if len(refs) == 0 {
		return nil, emptyResult(op, msgNoRecipes)
	}

	if secondary := secondaryFacets(primary.name, f); len(secondary) > 0 {
		limit := min(len(refs), max(1, s.CandidateLimit))
		meals, lookupErr := worker.Gather(ctx, s.Workers, refs[:limit], s.lookup)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if len(meals) == 0 && lookupErr != nil {
			return nil, providerError(op, msgRecipeFailed, lookupErr)
		}
		if lookupErr != nil {
			s.log().Debugf("%s: %d of %d candidate lookups failed: %v", op, limit-len(meals), limit, lookupErr)
		}

		survivors := make([]api.Meal, 0, len(meals))
		for _, m := range meals {
			if matchesAll(m, secondary) {
				survivors = append(survivors, m)
			}
		}
		s.log().Debugf("%s: %d of %d candidates matched %d secondary facet(s)", op, len(survivors), len(meals), len(secondary))
		if len(survivors) == 0 {
			return nil, &Error{Op: op, Kind: KindCombinedFilter, Message: msgNoCombined}
		}
		return recipeFromMeal(pick(s.rand(), survivors)), nil
	}

	ref := pick(s.rand(), refs)
	meal, err := s.lookup(ctx, ref)
	if err != nil {
		return nil, providerError(op, msgRecipeDetailFail, err)
	}
	return recipeFromMeal(meal), nil
}

func (s *MealDBStrategy) lookup(ctx context.Context, ref api.MealRef) (api.Meal, error) {
	meal, err := s.Source.Lookup(ctx, ref.ID)
	if err != nil {
		return api.Meal{}, err
	}
	if meal == nil {
		return api.Meal{}, fmt.Errorf("meal %s not found", ref.ID)
	}
	return *meal, nil
}

func (s *MealDBStrategy) rand() Rand {
	if s.Rand == nil {
		return DefaultRand
	}
	return s.Rand
}

func (s *MealDBStrategy) log() *logging.Logger {
	if s.Log == nil {
		return logging.Nop()
	}
	return s.Log
}

type facet struct {
	name  string
	key   string
	value string
}

func facetsOf(f model.FilterSelection) map[string]facet {
	out := make(map[string]facet, 3)
	if f.DietaryCategory != "" {
		out[config.FacetCategory] = facet{config.FacetCategory, api.MealFilterCategory, f.DietaryCategory}
	}
	if f.Ingredient != "" {
		out[config.FacetIngredient] = facet{config.FacetIngredient, api.MealFilterIngredient, f.Ingredient}
	}
	if f.Cuisine != "" {
		out[config.FacetCuisine] = facet{config.FacetCuisine, api.MealFilterArea, f.Cuisine}
	}
	return out
}

// primaryFacet returns the highest-priority facet that is set.
func primaryFacet(priority []string, f model.FilterSelection) (facet, bool) {
	set := facetsOf(f)
	for _, name := range priority {
		if fc, ok := set[name]; ok {
			return fc, true
		}
	}
	return facet{}, false
}

func secondaryFacets(primary string, f model.FilterSelection) []facet {
	set := facetsOf(f)
	var out []facet
	for _, name := range []string{config.FacetCategory, config.FacetIngredient, config.FacetCuisine} {
		if fc, ok := set[name]; ok && name != primary {
			out = append(out, fc)
		}
	}
	return out
}

func matchesAll(m api.Meal, facets []facet) bool {
	for _, fc := range facets {
		switch fc.name {
		case config.FacetCuisine:
			if !strings.EqualFold(strings.TrimSpace(m.Area), fc.value) {
				return false
			}
		case config.FacetCategory:
			if !strings.EqualFold(strings.TrimSpace(m.Category), fc.value) {
				return false
			}
		case config.FacetIngredient:
			if !hasIngredient(m.Ingredients, fc.value) {
				return false
			}
		}
	}
	return true
}

// hasIngredient matches case-insensitively in either direction, so
// "chicken" matches "Chicken Breast" and "chicken breast" matches "Chicken".
func hasIngredient(ingredients []string, want string) bool {
	want = strings.ToLower(strings.TrimSpace(want))
	for _, ing := range ingredients {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing == "" {
			continue
		}
		if strings.Contains(ing, want) || strings.Contains(want, ing) {
			return true
		}
	}
	return false
}

func recipeFromMeal(m api.Meal) model.Recipe {
	return model.Recipe{
		Title:       m.Name,
		Description: strings.TrimSpace(m.Instructions),
		ImageURL:    m.Thumb,
		Category:    m.Category,
		Area:        m.Area,
		VideoURL:    m.YouTube,
		SourceURL:   m.Source,
	}
}

// SpoonSource is the subset of Spoonacular used by SpoonacularStrategy.
type SpoonSource interface {
	Random(ctx context.Context) (*api.SpoonRecipe, error)
	Search(ctx context.Context, q api.SpoonSearch) ([]api.SpoonRef, error)
	Information(ctx context.Context, id int) (api.SpoonRecipe, error)
}

// SpoonacularStrategy fetches recipes with server-side multi-facet search.
type SpoonacularStrategy struct {
	Source         SpoonSource
	CandidateLimit int
	Rand           Rand
}

func (s *SpoonacularStrategy) Name() string { return config.SourceSpoonacular }

func (s *SpoonacularStrategy) Fetch(ctx context.Context, f model.FilterSelection) (model.Result, error) {
	const op = "food.spoonacular"

	if !f.HasFoodFacets() {
		r, err := s.Source.Random(ctx)
		if err != nil {
			return nil, providerError(op, msgRecipeFailed, err)
		}
		if r == nil {
			return nil, emptyResult(op, msgRecipeFailed)
		}
		return recipeFromSpoon(*r), nil
	}

	q := spoonQuery(f)
	q.Number = max(1, s.CandidateLimit)
	refs, err := s.Source.Search(ctx, q)
	if err != nil {
		return nil, providerError(op, msgRecipeFailed, err)
	}
	if len(refs) == 0 {
		return nil, emptyResult(op, msgNoRecipes)
	}

	r := DefaultRand
	if s.Rand != nil {
		r = s.Rand
	}
	ref := pick(r, refs)
	detail, err := s.Source.Information(ctx, ref.ID)
	if err != nil {
		return nil, providerError(op, msgRecipeDetailFail, err)
	}
	if detail.Title == "" {
		return nil, providerError(op, msgRecipeDetailFail, errors.New("empty recipe detail"))
	}
	return recipeFromSpoon(detail), nil
}

var spoonDiets = map[string]string{
	"vegan":            "vegan",
	"vegetarian":       "vegetarian",
	"gluten free":      "gluten free",
	"ketogenic":        "ketogenic",
	"keto":             "ketogenic",
	"paleo":            "paleo",
	"primal":           "primal",
	"pescetarian":      "pescetarian",
	"lacto-vegetarian": "lacto-vegetarian",
	"ovo-vegetarian":   "ovo-vegetarian",
	"low fodmap":       "low fodmap",
	"whole30":          "whole30",
}

var spoonTypes = map[string]string{
	"main course": "main course",
	"side dish":   "side dish",
	"side":        "side dish",
	"dessert":     "dessert",
	"appetizer":   "appetizer",
	"starter":     "appetizer",
	"salad":       "salad",
	"bread":       "bread",
	"breakfast":   "breakfast",
	"soup":        "soup",
	"beverage":    "beverage",
	"sauce":       "sauce",
	"snack":       "snack",
	"drink":       "drink",
}

// spoonQuery maps the dietary category onto Spoonacular's diet or type
// parameter; anything else (e.g. "Seafood", "Beef") becomes an ingredient.
func spoonQuery(f model.FilterSelection) api.SpoonSearch {
	q := api.SpoonSearch{Cuisine: f.Cuisine}
	var ingredients []string
	if f.Ingredient != "" {
		ingredients = append(ingredients, f.Ingredient)
	}

	if dc := strings.ToLower(f.DietaryCategory); dc != "" {
		if d, ok := spoonDiets[dc]; ok {
			q.Diet = d
		} else if t, ok := spoonTypes[dc]; ok {
			q.Type = t
		} else {
			ingredients = append(ingredients, dc)
		}
	}

	q.IncludeIngredients = strings.Join(ingredients, ",")
	return q
}

func recipeFromSpoon(r api.SpoonRecipe) model.Recipe {
	desc := api.PlainText(r.Summary)
	if desc == "" {
		desc = api.PlainText(r.Instructions)
	}
	rec := model.Recipe{
		Title:       r.Title,
		Description: desc,
		ImageURL:    r.Image,
		SourceURL:   r.SourceURL,
	}
	if len(r.DishTypes) > 0 {
		rec.Category = r.DishTypes[0]
	}
	if len(r.Cuisines) > 0 {
		rec.Area = r.Cuisines[0]
	}
	return rec
}
