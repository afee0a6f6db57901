package download

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"inspire/internal/model"
	"inspire/internal/render"
)

// maxImageBytes caps a saved image.
const maxImageBytes = 10 << 20

// Saver stores the picture attached to a result in a directory.
type Saver struct {
	httpClient *http.Client
	dir        string
}

// New creates a Saver writing into dir.
func New(httpClient *http.Client, dir string) *Saver {
	return &Saver{httpClient: httpClient, dir: dir}
}

// ImageURL returns the picture attached to a result, or "" when it has none.
func ImageURL(res model.Result) string {
	switch r := res.(type) {
	case model.Recipe:
		return r.ImageURL
	case model.Track:
		return render.LargeArtwork(r.ArtworkURL)
	case model.Article:
		return r.ThumbnailURL
	}
	return ""
}

// Save downloads the result's image and returns the written path.
// Results without an image return "" and no error.
func (s *Saver) Save(ctx context.Context, res model.Result) (string, error) {
	rawURL := ImageURL(res)
	if rawURL == "" {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	dst := filepath.Join(s.dir, MakeValid(res.Headline())+extension(resp.Header.Get("Content-Type"), rawURL))
	tmp, err := os.CreateTemp(s.dir, ".image-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxImageBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	if n > maxImageBytes {
		return "", fmt.Errorf("download %s: image larger than %d bytes", rawURL, maxImageBytes)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("move image into place: %w", err)
	}
	return dst, nil
}

// extension prefers the served media type, then the URL suffix.
func extension(contentType, rawURL string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "image/jpeg":
			return ".jpg"
		case "image/png":
			return ".png"
		case "image/webp":
			return ".webp"
		case "image/gif":
			return ".gif"
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); ext != "" && len(ext) <= 5 {
			return ext
		}
	}
	return ".jpg"
}
