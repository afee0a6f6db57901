package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"inspire/internal/model"
)

// DescriptionLimit caps recipe descriptions on a card.
const DescriptionLimit = 500

var (
	accent = lipgloss.Color("#667eea")
	muted  = lipgloss.Color("#888888")
	danger = lipgloss.Color("#e74c3c")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	metaStyle  = lipgloss.NewStyle().Foreground(muted)
	tagStyle   = lipgloss.NewStyle().Foreground(accent).Background(lipgloss.Color("#f0f0f0")).Padding(0, 1)
	linkStyle  = lipgloss.NewStyle().Underline(true)
	quoteStyle = lipgloss.NewStyle().Italic(true).Foreground(accent)
	poemStyle  = lipgloss.NewStyle().Italic(true)
	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(1, 2)
)

// Card renders a result for the terminal. A width of zero leaves lines unwrapped.
func Card(res model.Result, width int) string {
	var body string
	switch r := res.(type) {
	case model.Recipe:
		body = recipe(r)
	case model.Track:
		body = track(r)
	case model.MusicSuggestion:
		body = suggestion(r)
	case model.Poem:
		body = poem(r)
	case model.Quote:
		body = quote(r)
	case model.Article:
		body = article(r)
	default:
		body = titleStyle.Render(res.Headline())
	}

	style := cardStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(body)
}

// ErrorPanel renders a failure message.
func ErrorPanel(message string, width int) string {
	style := errorStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	head := lipgloss.NewStyle().Bold(true).Foreground(danger).Render("Oops! Something went wrong.")
	return style.Render(head + "\n\n" + message)
}

func recipe(r model.Recipe) string {
	lines := []string{titleStyle.Render(r.Title)}
	if meta := joinNonEmpty(" • ", r.Category, r.Area); meta != "" {
		lines = append(lines, metaStyle.Render(meta))
	}
	if r.Description != "" {
		lines = append(lines, "", Truncate(r.Description, DescriptionLimit))
	}
	lines = appendLinks(lines,
		link{"Image", r.ImageURL},
		link{"Watch on YouTube", r.VideoURL},
		link{"View Full Recipe", r.SourceURL},
	)
	return strings.Join(lines, "\n")
}

func track(t model.Track) string {
	lines := []string{titleStyle.Render(t.Title)}
	if t.Artist != "" {
		lines = append(lines, metaStyle.Render("by "+t.Artist))
	}
	if t.Album != "" {
		lines = append(lines, metaStyle.Render("Album: "+t.Album))
	}
	if year := ReleaseYear(t.ReleaseDate); year != "" {
		lines = append(lines, metaStyle.Render("Released: "+year))
	}
	if t.Genre != "" {
		lines = append(lines, "", tagStyle.Render(t.Genre))
	}
	return strings.Join(appendLinks(lines,
		link{"Preview", t.PreviewURL},
		link{"Artwork", LargeArtwork(t.ArtworkURL)},
	), "\n")
}

func suggestion(s model.MusicSuggestion) string {
	lines := []string{
		titleStyle.Render(s.Title),
		metaStyle.Render(s.Artist),
		"",
		s.Description,
	}
	if len(s.Genres) > 0 {
		tags := make([]string, 0, len(s.Genres))
		for _, g := range s.Genres {
			tags = append(tags, tagStyle.Render(g))
		}
		lines = append(lines, "", "Genres to explore:", strings.Join(tags, " "))
	}
	lines = append(lines, "", titleStyle.Render("Search on Spotify, Apple Music, or YouTube Music!"))
	return strings.Join(lines, "\n")
}

func poem(p model.Poem) string {
	lines := []string{titleStyle.Render(p.Title)}
	if p.Author != "" {
		lines = append(lines, metaStyle.Render("by "+p.Author))
	}
	lines = append(lines, "", poemStyle.Render(strings.Join(p.Lines, "\n")))
	return strings.Join(lines, "\n")
}

func quote(q model.Quote) string {
	lines := []string{titleStyle.Render(q.Title)}
	if q.Author != "" {
		lines = append(lines, metaStyle.Render("- "+q.Author))
	}
	lines = append(lines, "", quoteStyle.Render(fmt.Sprintf("%q", q.Content)))
	if len(q.Tags) > 0 {
		lines = append(lines, "", metaStyle.Render(strings.Join(q.Tags, ", ")))
	}
	return strings.Join(lines, "\n")
}

func article(a model.Article) string {
	lines := []string{titleStyle.Render(a.Title), "", a.Extract}
	return strings.Join(appendLinks(lines,
		link{"Image", a.ThumbnailURL},
		link{"Read more", a.PageURL},
	), "\n")
}

type link struct {
	label string
	url   string
}

func appendLinks(lines []string, links ...link) []string {
	first := true
	for _, l := range links {
		if l.url == "" {
			continue
		}
		if first {
			lines = append(lines, "")
			first = false
		}
		lines = append(lines, fmt.Sprintf("%s → %s", l.label, linkStyle.Render(l.url)))
	}
	return lines
}

// Truncate shortens s to at most limit runes, appending "..." when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// LargeArtwork asks the catalog CDN for the 300px rendition.
func LargeArtwork(url string) string {
	return strings.Replace(url, "100x100", "300x300", 1)
}

// ReleaseYear extracts the year from an ISO-8601 date.
func ReleaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
