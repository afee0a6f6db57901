package api

import "context"

// QuotableQuote is a quote from the Quotable service.
type QuotableQuote struct {
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// Quotable wraps the random quote endpoint.
type Quotable struct {
	c    *Client
	base string
}

// NewQuotable creates a Quotable client.
func NewQuotable(c *Client, base string) *Quotable {
	return &Quotable{c: c, base: base}
}

// Random returns one random quote.
func (q *Quotable) Random(ctx context.Context) (QuotableQuote, error) {
	var out QuotableQuote
	if err := q.c.getJSON(ctx, endpoint(q.base, "random", nil), &out); err != nil {
		return QuotableQuote{}, err
	}
	return out, nil
}
