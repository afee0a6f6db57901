package api

import (
	"context"
	"net/url"
	"strconv"
)

// ITunesTrack is one song from the iTunes Search API.
type ITunesTrack struct {
	TrackName        string `json:"trackName"`
	CollectionName   string `json:"collectionName"`
	ArtistName       string `json:"artistName"`
	PrimaryGenreName string `json:"primaryGenreName"`
	PreviewURL       string `json:"previewUrl"`
	ArtworkURL100    string `json:"artworkUrl100"`
	ArtworkURL60     string `json:"artworkUrl60"`
	ReleaseDate      string `json:"releaseDate"`
}

// ITunesQuery describes a song search.
type ITunesQuery struct {
	Term string
	// Attribute narrows the term match, e.g. "artistTerm".
	Attribute string
	Limit     int
}

// ITunes wraps the iTunes Search endpoint.
type ITunes struct {
	c    *Client
	base string
}

// NewITunes creates an iTunes Search client.
func NewITunes(c *Client, base string) *ITunes {
	return &ITunes{c: c, base: base}
}

// Search returns songs matching the query.
func (it *ITunes) Search(ctx context.Context, q ITunesQuery) ([]ITunesTrack, error) {
	params := url.Values{
		"term":   {q.Term},
		"media":  {"music"},
		"entity": {"song"},
	}
	if q.Attribute != "" {
		params.Set("attribute", q.Attribute)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var out struct {
		ResultCount int           `json:"resultCount"`
		Results     []ITunesTrack `json:"results"`
	}
	if err := it.c.getJSON(ctx, endpoint(it.base, "search", params), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
