package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(handler roundTripFunc) *Client {
	httpClient := &http.Client{Transport: handler}
	return New(httpClient, "inspire-test")
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestGetJSONSetsHeaders(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("Accept") != "application/json" {
			t.Fatalf("missing accept header")
		}
		if req.Header.Get("User-Agent") != "inspire-test" {
			t.Fatalf("unexpected user agent: %q", req.Header.Get("User-Agent"))
		}
		return response(200, `{"content":"x","author":"y"}`), nil
	})

	if _, err := NewQuotable(c, "https://quotes.test").Random(context.Background()); err != nil {
		t.Fatalf("Random failed: %v", err)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return response(500, `{}`), nil
	})

	_, err := NewQuotable(c, "https://quotes.test").Random(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) || !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGetJSONDecodeError(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return response(200, `{invalid json`), nil
	})

	_, err := NewQuotable(c, "https://quotes.test").Random(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestGetJSONTransportError(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := NewQuotable(c, "https://quotes.test").Random(context.Background())
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestRedactHidesAPIKey(t *testing.T) {
	got := redact("https://api.test/recipes/random?apiKey=secret&number=1")
	if strings.Contains(got, "secret") {
		t.Fatalf("api key leaked: %s", got)
	}
	if !strings.Contains(got, "number=1") {
		t.Fatalf("other params should survive: %s", got)
	}
}

func TestEndpointJoinsPaths(t *testing.T) {
	got := endpoint("https://x.test/api/", "/search", nil)
	if got != "https://x.test/api/search" {
		t.Fatalf("unexpected endpoint: %s", got)
	}
}
