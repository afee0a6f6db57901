package inspire

import (
	"context"
	"strings"

	"inspire/internal/api"
	"inspire/internal/logging"
	"inspire/internal/model"
)

// GenreProfile maps a genre label to a catalog search term and the
// provider genre names accepted for it.
type GenreProfile struct {
	Label      string
	SearchTerm string
	Allow      []string
}

// Genres is the selectable genre table, in display order.
var Genres = []GenreProfile{
	{Label: "pop", SearchTerm: "pop music", Allow: []string{"Pop", "Dance"}},
	{Label: "rock", SearchTerm: "rock music", Allow: []string{"Rock", "Alternative"}},
	{Label: "jazz", SearchTerm: "jazz", Allow: []string{"Jazz"}},
	{Label: "hip hop", SearchTerm: "hip hop", Allow: []string{"Hip-Hop/Rap", "Rap"}},
	{Label: "electronic", SearchTerm: "electronic music", Allow: []string{"Electronic", "Dance"}},
	{Label: "indie", SearchTerm: "indie", Allow: []string{"Alternative", "Indie", "Indie Rock"}},
	{Label: "country", SearchTerm: "country music", Allow: []string{"Country"}},
	{Label: "classical", SearchTerm: "classical music", Allow: []string{"Classical"}},
	{Label: "r&b", SearchTerm: "r&b", Allow: []string{"R&B/Soul", "Soul", "R&B"}},
	{Label: "folk", SearchTerm: "folk music", Allow: []string{"Folk", "Singer/Songwriter"}},
	{Label: "alternative", SearchTerm: "alternative rock", Allow: []string{"Alternative", "Alternative Rock"}},
	{Label: "blues", SearchTerm: "blues", Allow: []string{"Blues"}},
	{Label: "reggae", SearchTerm: "reggae", Allow: []string{"Reggae"}},
	{Label: "latin", SearchTerm: "latin music", Allow: []string{"Latin", "Salsa", "Latin Pop"}},
	{Label: "metal", SearchTerm: "heavy metal", Allow: []string{"Metal", "Heavy Metal"}},
	{Label: "punk", SearchTerm: "punk rock", Allow: []string{"Punk", "Punk Rock"}},
	{Label: "soul", SearchTerm: "soul music", Allow: []string{"Soul", "R&B/Soul"}},
	{Label: "funk", SearchTerm: "funk", Allow: []string{"Funk", "R&B/Soul"}},
	{Label: "disco", SearchTerm: "disco", Allow: []string{"Disco", "Dance"}},
}

// DefaultSearchTerms are used when no genre is requested.
var DefaultSearchTerms = []string{
	"pop music", "rock music", "jazz", "hip hop", "electronic music", "indie",
	"country music", "classical music", "r&b", "folk music", "alternative rock",
	"blues", "reggae", "latin music",
}

// LookupGenre finds a genre profile by label, case-insensitively.
func LookupGenre(label string) (GenreProfile, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, g := range Genres {
		if g.Label == label {
			return g, true
		}
	}
	return GenreProfile{}, false
}

// MatchesGenre reports whether a provider genre name matches any allowed
// name as a case-insensitive substring in either direction.
func MatchesGenre(genre string, allow []string) bool {
	g := strings.ToLower(genre)
	for _, a := range allow {
		a = strings.ToLower(a)
		if strings.Contains(g, a) || strings.Contains(a, g) {
			return true
		}
	}
	return false
}

// FilterByGenre keeps tracks matching the allow-list. When nothing matches
// it returns the input unchanged so a genre mismatch never fails a search.
func FilterByGenre(tracks []api.ITunesTrack, allow []string) ([]api.ITunesTrack, bool) {
	if len(allow) == 0 {
		return tracks, false
	}
	out := make([]api.ITunesTrack, 0, len(tracks))
	for _, t := range tracks {
		if MatchesGenre(t.PrimaryGenreName, allow) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return tracks, true
	}
	return out, false
}

// TrackSearcher is the subset of iTunes Search used by ITunesStrategy.
type TrackSearcher interface {
	Search(ctx context.Context, q api.ITunesQuery) ([]api.ITunesTrack, error)
}

// ITunesStrategy picks a random track by artist or genre.
type ITunesStrategy struct {
	Source      TrackSearcher
	SearchLimit int
	Rand        Rand
	Log         *logging.Logger
}

func (s *ITunesStrategy) Name() string { return "itunes" }

func (s *ITunesStrategy) Fetch(ctx context.Context, f model.FilterSelection) (model.Result, error) {
	const op = "music.itunes"
	r := s.Rand
	if r == nil {
		r = DefaultRand
	}
	log := s.Log
	if log == nil {
		log = logging.Nop()
	}

	if f.Artist != "" {
		tracks, err := s.Source.Search(ctx, api.ITunesQuery{Term: f.Artist, Attribute: "artistTerm", Limit: s.SearchLimit})
		if err != nil {
			return nil, providerError(op, "Could not reach the music catalog.", err)
		}
		if len(tracks) == 0 {
			return nil, emptyResult(op, "No tracks found for that artist.")
		}
		return trackResult(pick(r, tracks)), nil
	}

	var allow []string
	term := ""
	if f.Genre != "" {
		if g, ok := LookupGenre(f.Genre); ok {
			term, allow = g.SearchTerm, g.Allow
		} else {
			log.Warnf("%s: unknown genre %q, searching a random genre instead", op, f.Genre)
		}
	}
	if term == "" {
		term = pick(r, DefaultSearchTerms)
	}

	tracks, err := s.Source.Search(ctx, api.ITunesQuery{Term: term, Limit: s.SearchLimit})
	if err != nil {
		return nil, providerError(op, "Could not reach the music catalog.", err)
	}
	if len(tracks) == 0 {
		return nil, emptyResult(op, "No tracks found.")
	}

	filtered, widened := FilterByGenre(tracks, allow)
	if widened {
		log.Debugf("%s: no %q tracks matched %v, using all %d results", op, term, allow, len(tracks))
	}
	return trackResult(pick(r, filtered)), nil
}

func trackResult(t api.ITunesTrack) model.Track {
	title := t.TrackName
	if title == "" {
		title = t.CollectionName
	}
	artwork := t.ArtworkURL100
	if artwork == "" {
		artwork = t.ArtworkURL60
	}
	return model.Track{
		Title:       title,
		Artist:      t.ArtistName,
		Album:       t.CollectionName,
		Genre:       t.PrimaryGenreName,
		PreviewURL:  t.PreviewURL,
		ArtworkURL:  artwork,
		ReleaseDate: t.ReleaseDate,
	}
}

// CuratedSuggestions is the last-resort music list.
var CuratedSuggestions = []model.MusicSuggestion{
	{
		Title:       "Explore Indie Pop",
		Artist:      "Discover artists like Clairo, Rex Orange County, or Boy Pablo",
		Description: "Dive into the world of indie pop - perfect for a chill afternoon or evening vibe.",
		Genres:      []string{"Indie Pop", "Bedroom Pop", "Alternative"},
	},
	{
		Title:       "Jazz Classics",
		Artist:      "Listen to Miles Davis, John Coltrane, or Billie Holiday",
		Description: "Take a journey through timeless jazz classics that never go out of style.",
		Genres:      []string{"Jazz", "Bebop", "Cool Jazz"},
	},
	{
		Title:       "Electronic Vibes",
		Artist:      "Check out Daft Punk, ODESZA, or Flume",
		Description: "Get lost in electronic soundscapes perfect for focus or dancing.",
		Genres:      []string{"Electronic", "House", "Ambient"},
	},
	{
		Title:       "Folk & Acoustic",
		Artist:      "Discover Bon Iver, Fleet Foxes, or Iron & Wine",
		Description: "Soothing acoustic melodies and heartfelt lyrics for a peaceful moment.",
		Genres:      []string{"Folk", "Indie Folk", "Acoustic"},
	},
	{
		Title:       "Hip-Hop Essentials",
		Artist:      "Explore Kendrick Lamar, J. Cole, or Tyler, The Creator",
		Description: "Thought-provoking lyrics and innovative beats in modern hip-hop.",
		Genres:      []string{"Hip-Hop", "Rap", "Alternative Hip-Hop"},
	},
}

// CuratedMusicStrategy never fails.
type CuratedMusicStrategy struct {
	Rand Rand
}

func (s *CuratedMusicStrategy) Name() string { return "curated" }

func (s *CuratedMusicStrategy) Fetch(context.Context, model.FilterSelection) (model.Result, error) {
	r := s.Rand
	if r == nil {
		r = DefaultRand
	}
	sug := pick(r, CuratedSuggestions)
	sug.Genres = append([]string(nil), sug.Genres...)
	return sug, nil
}
