package api

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// WikiSummary is the page summary payload.
type WikiSummary struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Wikipedia wraps the REST random-title and page-summary endpoints.
type Wikipedia struct {
	c    *Client
	base string
}

// NewWikipedia creates a Wikipedia REST client.
func NewWikipedia(c *Client, base string) *Wikipedia {
	return &Wikipedia{c: c, base: base}
}

// RandomTitle returns the title of a random article.
func (w *Wikipedia) RandomTitle(ctx context.Context) (string, error) {
	var out struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
	}
	if err := w.c.getJSON(ctx, endpoint(w.base, "page/random/title", nil), &out); err != nil {
		return "", err
	}
	if len(out.Items) == 0 || strings.TrimSpace(out.Items[0].Title) == "" {
		return "", errors.New("random title response contained no items")
	}
	return out.Items[0].Title, nil
}

// Summary returns the summary of a page by title.
func (w *Wikipedia) Summary(ctx context.Context, title string) (WikiSummary, error) {
	var out WikiSummary
	path := "page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	if err := w.c.getJSON(ctx, endpoint(w.base, path, nil), &out); err != nil {
		return WikiSummary{}, err
	}
	return out, nil
}
