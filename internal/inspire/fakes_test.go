package inspire

import (
	"context"
	"errors"
	"sync"

	"inspire/internal/api"
	"inspire/internal/model"
)

var errBoom = errors.New("boom")

// fixedRand always picks index n modulo the length.
type fixedRand int

func (r fixedRand) IntN(n int) int { return int(r) % n }

type fakeMeals struct {
	mu sync.Mutex

	random    *api.Meal
	randomErr error
	refs      map[string][]api.MealRef
	filterErr error
	details   map[string]api.Meal
	lookupErr error

	randomCalls int
	filters     []string
	lookups     []string
}

func (f *fakeMeals) Random(context.Context) (*api.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.randomCalls++
	return f.random, f.randomErr
}

func (f *fakeMeals) Filter(_ context.Context, key, value string) ([]api.MealRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, key+"="+value)
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	return f.refs[key+"="+value], nil
}

func (f *fakeMeals) Lookup(_ context.Context, id string) (*api.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, id)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	m, ok := f.details[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

type fakeSpoon struct {
	random   *api.SpoonRecipe
	refs     []api.SpoonRef
	detail   api.SpoonRecipe
	err      error
	searches []api.SpoonSearch
}

func (f *fakeSpoon) Random(context.Context) (*api.SpoonRecipe, error) {
	return f.random, f.err
}

func (f *fakeSpoon) Search(_ context.Context, q api.SpoonSearch) ([]api.SpoonRef, error) {
	f.searches = append(f.searches, q)
	return f.refs, f.err
}

func (f *fakeSpoon) Information(context.Context, int) (api.SpoonRecipe, error) {
	return f.detail, f.err
}

type fakeTracks struct {
	tracks  []api.ITunesTrack
	err     error
	queries []api.ITunesQuery
}

func (f *fakeTracks) Search(_ context.Context, q api.ITunesQuery) ([]api.ITunesTrack, error) {
	f.queries = append(f.queries, q)
	return f.tracks, f.err
}

// fakePoems returns batches in order, repeating the last one.
type fakePoems struct {
	batches [][]api.PoetryPoem
	err     error
	sizes   []int
}

func (f *fakePoems) Random(_ context.Context, n int) ([]api.PoetryPoem, error) {
	f.sizes = append(f.sizes, n)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	i := min(len(f.sizes), len(f.batches)) - 1
	return f.batches[i], nil
}

type fakeQuotes struct {
	quote api.QuotableQuote
	err   error
}

func (f *fakeQuotes) Random(context.Context) (api.QuotableQuote, error) {
	return f.quote, f.err
}

type fakeArticles struct {
	title    string
	titleErr error
	summary  api.WikiSummary
	sumErr   error
	asked    []string
}

func (f *fakeArticles) RandomTitle(context.Context) (string, error) {
	return f.title, f.titleErr
}

func (f *fakeArticles) Summary(_ context.Context, title string) (api.WikiSummary, error) {
	f.asked = append(f.asked, title)
	return f.summary, f.sumErr
}

// stubStrategy returns a canned result or error and counts calls.
type stubStrategy struct {
	name  string
	res   model.Result
	err   error
	calls int
	got   model.FilterSelection
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Fetch(_ context.Context, f model.FilterSelection) (model.Result, error) {
	s.calls++
	s.got = f
	return s.res, s.err
}

func poemWithLines(title string, n int) api.PoetryPoem {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return api.PoetryPoem{Title: title, Author: "Anon", Lines: lines}
}
