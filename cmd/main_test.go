package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"inspire/internal/api"
	"inspire/internal/catalog"
	"inspire/internal/config"
	"inspire/internal/inspire"
	"inspire/internal/logging"
	"inspire/internal/model"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestApp(t *testing.T, out io.Writer, fn roundTripFunc) *app {
	t.Helper()

	cfg := config.Default()
	cfg.Endpoints.Wikipedia = "https://wiki.test"
	cfg.SurpriseMode = config.SurpriseEncyclopedia

	client := api.New(&http.Client{Transport: fn}, "inspire-test")
	router, err := inspire.NewFromConfig(cfg, client, logging.Nop())
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	return &app{cfg: cfg, log: logging.Nop(), router: router, out: out}
}

func jsonBody(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestRunOnceJSON(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, &out, func(req *http.Request) (*http.Response, error) {
		switch {
		case strings.HasSuffix(req.URL.Path, "/page/random/title"):
			return jsonBody(200, `{"items":[{"title":"Okapi"}]}`), nil
		case strings.HasSuffix(req.URL.Path, "/page/summary/Okapi"):
			return jsonBody(200, `{"title":"Okapi","extract":"A giraffid.","content_urls":{"desktop":{"page":"https://wiki.test/Okapi"}}}`), nil
		}
		t.Fatalf("unexpected request: %s", req.URL)
		return nil, nil
	})

	if err := a.runOnce(context.Background(), "surprise", model.FilterSelection{}, true); err != nil {
		t.Fatalf("runOnce failed: %v", err)
	}

	var got struct {
		Resolved string `json:"resolved"`
		Source   string `json:"source"`
		Result   struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"result"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if got.Resolved != "surprise" || got.Source != "wikipedia" || got.Result.Title != "Okapi" || got.Result.Extract != "A giraffid." {
		t.Fatalf("unexpected output: %+v", got)
	}
}

func TestRunOnceJSONError(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, &out, func(req *http.Request) (*http.Response, error) {
		t.Fatalf("no request expected, got %s", req.URL)
		return nil, nil
	})

	err := a.runOnce(context.Background(), "movies", model.FilterSelection{}, true)
	var reported reportedError
	if !errors.As(err, &reported) {
		t.Fatalf("expected reported error, got %v", err)
	}
	if !inspire.IsKind(err, inspire.KindUnknownCategory) {
		t.Fatalf("expected unknown category kind, got %v", err)
	}

	var got map[string]errorBody
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if got["error"].Kind != "unknown_category" || got["error"].Message != "Unknown category" {
		t.Fatalf("unexpected error payload: %+v", got)
	}
}

func TestErrorPayloadForUnclassifiedError(t *testing.T) {
	got := errorPayload(errors.New("boom"))
	if got["error"].Kind != string(inspire.KindProvider) || got["error"].Message != inspire.GenericMessage {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestPrintGenres(t *testing.T) {
	var out bytes.Buffer
	if err := printGenres(&out); err != nil {
		t.Fatalf("printGenres failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(inspire.Genres) {
		t.Fatalf("expected %d genres, got %d", len(inspire.Genres), len(lines))
	}
	if !strings.HasPrefix(lines[3], "hip hop") || !strings.Contains(lines[3], "Hip-Hop/Rap") {
		t.Fatalf("unexpected line: %q", lines[3])
	}
}

func TestPrintLists(t *testing.T) {
	lists := catalog.Lists{Categories: []string{"Dessert"}, Areas: []string{"Italian", "Thai"}, Ingredients: []string{"Basil"}}

	var out bytes.Buffer
	if err := printLists(&out, lists, false); err != nil {
		t.Fatalf("printLists failed: %v", err)
	}
	if !strings.Contains(out.String(), "Cuisines (2):\n  Italian, Thai") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := printLists(&out, lists, true); err != nil {
		t.Fatalf("printLists json failed: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode lists: %v", err)
	}
	for _, key := range []string{"categories", "areas", "ingredients", "fetchedAt"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing %q in lists JSON:\n%s", key, out.String())
		}
	}
	var areas []string
	if err := json.Unmarshal(decoded["areas"], &areas); err != nil || strings.Join(areas, ",") != "Italian,Thai" {
		t.Fatalf("unexpected areas: %s (%v)", decoded["areas"], err)
	}
}

func TestRootCommandRequiresCategoryWithJSON(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--json"})
	cmd.SetOut(io.Discard)

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "category is required") {
		t.Fatalf("expected missing category error, got %v", err)
	}
}

func TestRootCommandRejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"food", "music"})
	cmd.SetOut(io.Discard)

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an args error")
	}
}

func TestGenreLabel(t *testing.T) {
	cases := map[string]string{"pop": "Pop", "hip hop": "Hip Hop", "r&b": "R&B"}
	for in, want := range cases {
		if got := genreLabel(in); got != want {
			t.Errorf("genreLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCategoryLabelFollowsSurpriseMode(t *testing.T) {
	a := newTestApp(t, io.Discard, func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request: %s", req.URL)
		return nil, nil
	})

	if got := categoryLabel(model.CategorySurprise, a.router.SurpriseMode()); got != "Surprise me (random article)" {
		t.Fatalf("unexpected encyclopedia label %q", got)
	}
	if got := categoryLabel(model.CategorySurprise, config.SurpriseProxy); got != "Surprise me" {
		t.Fatalf("unexpected proxy label %q", got)
	}
	if got := categoryLabel(model.CategoryFood, config.SurpriseProxy); got != "Food" {
		t.Fatalf("unexpected food label %q", got)
	}
}
