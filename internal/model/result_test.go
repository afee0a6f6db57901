package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResultCategories(t *testing.T) {
	cases := []struct {
		res  Result
		want Category
	}{
		{Recipe{Title: "Fish pie", Category: "Seafood"}, CategoryFood},
		{Track{Title: "Holocene"}, CategoryMusic},
		{MusicSuggestion{Title: "Kind of Blue"}, CategoryMusic},
		{Poem{Title: "Ozymandias"}, CategoryWriting},
		{Quote{Title: "Inspirational Quote"}, CategoryWriting},
		{Article{Title: "Okapi"}, CategorySurprise},
	}
	for _, c := range cases {
		if got := c.res.ResultCategory(); got != c.want {
			t.Errorf("%T.ResultCategory() = %q, want %q", c.res, got, c.want)
		}
	}
}

func TestRecipeKeepsCategoryField(t *testing.T) {
	var res Result = Recipe{Title: "Fish pie", Category: "Seafood"}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"category":"Seafood"`) {
		t.Fatalf("expected recipe category in JSON, got %s", b)
	}
	if res.Headline() != "Fish pie" {
		t.Fatalf("unexpected headline %q", res.Headline())
	}
}
