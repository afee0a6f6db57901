package inspire

import (
	"context"
	"fmt"

	"inspire/internal/api"
	"inspire/internal/model"
)

const (
	msgWritingFailed  = "Failed to fetch writing inspiration. Please try again."
	msgLengthNotFound = "Could not find a poem matching that length. Please try again."
)

// PoemSource is the subset of PoetryDB used by PoetryStrategy.
type PoemSource interface {
	Random(ctx context.Context, n int) ([]api.PoetryPoem, error)
}

// PoetryStrategy fetches a random poem, optionally constrained by length.
type PoetryStrategy struct {
	Source        PoemSource
	BatchSize     int
	MaxAttempts   int
	LongThreshold int
	Rand          Rand
}

func (s *PoetryStrategy) Name() string { return "poetrydb" }

func (s *PoetryStrategy) Fetch(ctx context.Context, f model.FilterSelection) (model.Result, error) {
	const op = "writing.poetrydb"

	length, err := f.Length()
	if err != nil {
		return nil, &Error{Op: op, Kind: KindInvalidFilter, Message: "Poem length must be short or long.", Err: err}
	}

	if length == "" {
		poems, err := s.Source.Random(ctx, 1)
		if err != nil {
			return nil, providerError(op, msgWritingFailed, err)
		}
		if len(poems) == 0 {
			return nil, emptyResult(op, msgWritingFailed)
		}
		return poemResult(poems[0]), nil
	}

	batch := max(1, s.BatchSize)
	attempts := max(1, s.MaxAttempts)
	r := s.Rand
	if r == nil {
		r = DefaultRand
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		poems, err := s.Source.Random(ctx, batch)
		if err != nil {
			return nil, providerError(op, msgWritingFailed, err)
		}

		var matches []api.PoetryPoem
		for _, p := range poems {
			if s.matchesLength(p, length) {
				matches = append(matches, p)
			}
		}
		if len(matches) > 0 {
			return poemResult(pick(r, matches)), nil
		}
	}

	return nil, &Error{
		Op:      op,
		Kind:    KindRetryExhausted,
		Message: msgLengthNotFound,
		Err:     fmt.Errorf("no %s poem in %d batches of %d", length, attempts, batch),
	}
}

// matchesLength treats "short" as fewer than LongThreshold lines.
func (s *PoetryStrategy) matchesLength(p api.PoetryPoem, length model.PoemLength) bool {
	threshold := s.LongThreshold
	if threshold <= 0 {
		threshold = 20
	}
	n := p.Count()
	switch length {
	case model.PoemShort:
		return n < threshold
	case model.PoemLong:
		return n >= threshold
	}
	return true
}

func poemResult(p api.PoetryPoem) model.Poem {
	return model.Poem{
		Title:     p.Title,
		Author:    p.Author,
		Lines:     append([]string(nil), p.Lines...),
		LineCount: p.Count(),
	}
}

// QuoteSource is the subset of Quotable used by QuotableStrategy.
type QuoteSource interface {
	Random(ctx context.Context) (api.QuotableQuote, error)
}

// QuotableStrategy returns a random quote. It ignores facets.
type QuotableStrategy struct {
	Source QuoteSource
}

func (s *QuotableStrategy) Name() string { return "quotable" }

func (s *QuotableStrategy) Fetch(ctx context.Context, _ model.FilterSelection) (model.Result, error) {
	const op = "writing.quotable"
	q, err := s.Source.Random(ctx)
	if err != nil {
		return nil, providerError(op, msgWritingFailed, err)
	}
	if q.Content == "" {
		return nil, emptyResult(op, msgWritingFailed)
	}
	return model.Quote{
		Title:   "Inspirational Quote",
		Author:  q.Author,
		Content: q.Content,
		Tags:    append([]string(nil), q.Tags...),
	}, nil
}
