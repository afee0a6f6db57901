package inspire

import (
	"context"
	"strings"

	"inspire/internal/api"
	"inspire/internal/model"
)

const msgSurpriseFailed = "Failed to fetch a surprise article. Please try again."

// ArticleSource is the subset of the Wikipedia REST API used by EncyclopediaStrategy.
type ArticleSource interface {
	RandomTitle(ctx context.Context) (string, error)
	Summary(ctx context.Context, title string) (api.WikiSummary, error)
}

// EncyclopediaStrategy looks up a random article and returns its summary.
type EncyclopediaStrategy struct {
	Source ArticleSource
}

func (s *EncyclopediaStrategy) Name() string { return "wikipedia" }

func (s *EncyclopediaStrategy) Fetch(ctx context.Context, _ model.FilterSelection) (model.Result, error) {
	const op = "surprise.wikipedia"

	title, err := s.Source.RandomTitle(ctx)
	if err != nil {
		return nil, providerError(op, msgSurpriseFailed, err)
	}

	sum, err := s.Source.Summary(ctx, title)
	if err != nil {
		return nil, providerError(op, msgSurpriseFailed, err)
	}

	out := model.Article{
		Title:        sum.Title,
		Extract:      strings.TrimSpace(sum.Extract),
		ThumbnailURL: sum.Thumbnail.Source,
		PageURL:      sum.ContentURLs.Desktop.Page,
	}
	if out.Title == "" {
		out.Title = title
	}
	if out.Extract == "" {
		return nil, emptyResult(op, msgSurpriseFailed)
	}
	return out, nil
}
