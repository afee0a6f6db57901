package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PoetryPoem is a poem from PoetryDB.
type PoetryPoem struct {
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Lines     []string  `json:"lines"`
	LineCount lineCount `json:"linecount"`
}

// Count returns the provider's line count, falling back to len(Lines).
func (p PoetryPoem) Count() int {
	if p.LineCount > 0 {
		return int(p.LineCount)
	}
	return len(p.Lines)
}

// lineCount accepts PoetryDB's string-encoded counts as well as numbers.
type lineCount int

func (lc *lineCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*lc = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*lc = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parse linecount %s: %w", b, err)
	}
	*lc = lineCount(n)
	return nil
}

// PoetryDB wraps the PoetryDB random endpoints.
type PoetryDB struct {
	c    *Client
	base string
}

// NewPoetryDB creates a PoetryDB client.
func NewPoetryDB(c *Client, base string) *PoetryDB {
	return &PoetryDB{c: c, base: base}
}

// Random returns n random poems (n < 2 uses the single-poem endpoint).
func (p *PoetryDB) Random(ctx context.Context, n int) ([]PoetryPoem, error) {
	path := "random"
	if n > 1 {
		path = fmt.Sprintf("random/%d", n)
	}

	var raw json.RawMessage
	rawURL := endpoint(p.base, path, nil)
	if err := p.c.getJSON(ctx, rawURL, &raw); err != nil {
		return nil, err
	}

	// PoetryDB reports failures as a 200 object like {"status":404,"reason":"..."}.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		var status struct {
			Status any    `json:"status"`
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal(trimmed, &status); err != nil {
			return nil, fmt.Errorf("request %s: unexpected response %.200s: %w", rawURL, trimmed, err)
		}
		return nil, fmt.Errorf("request %s: provider status %v: %s", rawURL, status.Status, status.Reason)
	}

	var poems []PoetryPoem
	if err := json.Unmarshal(raw, &poems); err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return poems, nil
}
