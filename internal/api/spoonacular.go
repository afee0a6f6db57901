package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SpoonRecipe is a recipe from the Spoonacular API.
type SpoonRecipe struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Instructions string   `json:"instructions"`
	Image        string   `json:"image"`
	SourceURL    string   `json:"sourceUrl"`
	Cuisines     []string `json:"cuisines"`
	DishTypes    []string `json:"dishTypes"`
	Diets        []string `json:"diets"`
}

// SpoonRef is one complexSearch hit.
type SpoonRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// SpoonSearch holds complexSearch parameters; empty fields are omitted.
type SpoonSearch struct {
	Cuisine            string
	Diet               string
	Type               string
	IncludeIngredients string
	Number             int
}

// Spoonacular wraps the Spoonacular recipe endpoints.
type Spoonacular struct {
	c      *Client
	base   string
	apiKey string
}

// NewSpoonacular creates a Spoonacular client.
func NewSpoonacular(c *Client, base, apiKey string) *Spoonacular {
	return &Spoonacular{c: c, base: base, apiKey: apiKey}
}

// Random returns one random recipe, or nil when none came back.
func (s *Spoonacular) Random(ctx context.Context) (*SpoonRecipe, error) {
	var out struct {
		Recipes []SpoonRecipe `json:"recipes"`
	}
	if err := s.c.getJSON(ctx, s.url("recipes/random", url.Values{"number": {"1"}}), &out); err != nil {
		return nil, err
	}
	if len(out.Recipes) == 0 {
		return nil, nil
	}
	return &out.Recipes[0], nil
}

// Search runs a multi-facet complexSearch.
func (s *Spoonacular) Search(ctx context.Context, q SpoonSearch) ([]SpoonRef, error) {
	params := url.Values{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			params.Set(k, v)
		}
	}
	set("cuisine", q.Cuisine)
	set("diet", q.Diet)
	set("type", q.Type)
	set("includeIngredients", q.IncludeIngredients)
	if q.Number > 0 {
		params.Set("number", strconv.Itoa(q.Number))
	}

	var out struct {
		Results []SpoonRef `json:"results"`
	}
	if err := s.c.getJSON(ctx, s.url("recipes/complexSearch", params), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Information returns full recipe details.
func (s *Spoonacular) Information(ctx context.Context, id int) (SpoonRecipe, error) {
	var out SpoonRecipe
	if err := s.c.getJSON(ctx, s.url(fmt.Sprintf("recipes/%d/information", id), nil), &out); err != nil {
		return SpoonRecipe{}, err
	}
	return out, nil
}

func (s *Spoonacular) url(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", s.apiKey)
	return endpoint(s.base, path, params)
}

// PlainText flattens an HTML fragment into whitespace-normalized text.
func PlainText(html string) string {
	if !strings.ContainsAny(html, "<&") {
		return strings.Join(strings.Fields(html), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
