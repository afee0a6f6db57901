package inspire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspire/internal/api"
	"inspire/internal/model"
)

func TestITunesStrategyArtistSearch(t *testing.T) {
	src := &fakeTracks{tracks: []api.ITunesTrack{{TrackName: "Holocene", ArtistName: "Bon Iver", ArtworkURL60: "https://art/60.jpg"}}}
	s := &ITunesStrategy{Source: src, SearchLimit: 200, Rand: fixedRand(0)}

	res, err := s.Fetch(context.Background(), model.FilterSelection{Artist: "bon iver", Genre: "jazz"})
	require.NoError(t, err)

	track := res.(model.Track)
	assert.Equal(t, "Holocene", track.Title)
	assert.Equal(t, "https://art/60.jpg", track.ArtworkURL)
	require.Len(t, src.queries, 1)
	assert.Equal(t, api.ITunesQuery{Term: "bon iver", Attribute: "artistTerm", Limit: 200}, src.queries[0])
}

func TestITunesStrategyArtistWithoutTracks(t *testing.T) {
	s := &ITunesStrategy{Source: &fakeTracks{}, SearchLimit: 200}
	_, err := s.Fetch(context.Background(), model.FilterSelection{Artist: "nobody at all"})
	assert.True(t, IsKind(err, KindEmptyResult))
}

func TestITunesStrategyGenreAllowList(t *testing.T) {
	src := &fakeTracks{tracks: []api.ITunesTrack{
		{TrackName: "Take Five", PrimaryGenreName: "Jazz"},
		{TrackName: "Pop Song", PrimaryGenreName: "Pop"},
		{TrackName: "Vocal Jazz Tune", PrimaryGenreName: "Vocal Jazz"},
	}}
	s := &ITunesStrategy{Source: src, SearchLimit: 200, Rand: fixedRand(1)}

	res, err := s.Fetch(context.Background(), model.FilterSelection{Genre: "jazz"})
	require.NoError(t, err)
	assert.Equal(t, "Vocal Jazz Tune", res.Headline())
	assert.Equal(t, "jazz", src.queries[0].Term)
	assert.Empty(t, src.queries[0].Attribute)
}

func TestITunesStrategyWidensWhenNothingMatches(t *testing.T) {
	src := &fakeTracks{tracks: []api.ITunesTrack{
		{TrackName: "A", PrimaryGenreName: "Soundtrack"},
		{TrackName: "B", PrimaryGenreName: "Children's Music"},
	}}
	s := &ITunesStrategy{Source: src, SearchLimit: 200, Rand: fixedRand(1)}

	res, err := s.Fetch(context.Background(), model.FilterSelection{Genre: "metal"})
	require.NoError(t, err)
	assert.Equal(t, "B", res.Headline())
	assert.Equal(t, "heavy metal", src.queries[0].Term)
}

func TestITunesStrategyUnknownGenreUsesDefaultTerm(t *testing.T) {
	src := &fakeTracks{tracks: []api.ITunesTrack{{TrackName: "X"}}}
	s := &ITunesStrategy{Source: src, SearchLimit: 50, Rand: fixedRand(2)}

	_, err := s.Fetch(context.Background(), model.FilterSelection{Genre: "polka"})
	require.NoError(t, err)
	assert.Equal(t, DefaultSearchTerms[2], src.queries[0].Term)
	assert.Equal(t, 50, src.queries[0].Limit)
}

func TestITunesStrategyProviderError(t *testing.T) {
	s := &ITunesStrategy{Source: &fakeTracks{err: errBoom}}
	_, err := s.Fetch(context.Background(), model.FilterSelection{})
	assert.True(t, IsKind(err, KindProvider))
	assert.True(t, Recoverable(err))
}

func TestTrackResultFallbacks(t *testing.T) {
	track := trackResult(api.ITunesTrack{
		CollectionName: "For Emma, Forever Ago",
		ArtworkURL100:  "https://art/100.jpg",
		ArtworkURL60:   "https://art/60.jpg",
		ReleaseDate:    "2008-02-19T08:00:00Z",
	})
	assert.Equal(t, "For Emma, Forever Ago", track.Title)
	assert.Equal(t, "https://art/100.jpg", track.ArtworkURL)
	assert.Equal(t, "2008-02-19T08:00:00Z", track.ReleaseDate)
}

func TestMatchesGenre(t *testing.T) {
	assert.True(t, MatchesGenre("Hip-Hop/Rap", []string{"Rap"}))
	assert.True(t, MatchesGenre("R&B", []string{"R&B/Soul"}))
	assert.False(t, MatchesGenre("Country", []string{"Rock", "Alternative"}))
}

func TestLookupGenre(t *testing.T) {
	g, ok := LookupGenre(" Hip Hop ")
	require.True(t, ok)
	assert.Equal(t, "hip hop", g.SearchTerm)

	_, ok = LookupGenre("random")
	assert.False(t, ok)
	assert.Len(t, Genres, 19)
	assert.Len(t, DefaultSearchTerms, 14)
}

func TestMusicChainFallsBackToCurated(t *testing.T) {
	chain := Chain{Name: "music", Strategies: []Strategy{
		&ITunesStrategy{Source: &fakeTracks{}},
		&CuratedMusicStrategy{Rand: fixedRand(3)},
	}}

	res, source, err := chain.Run(context.Background(), model.FilterSelection{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "curated", source)

	sug := res.(model.MusicSuggestion)
	assert.Equal(t, "Folk & Acoustic", sug.Title)
	sug.Genres[0] = "changed"
	assert.Equal(t, "Folk", CuratedSuggestions[3].Genres[0])
}
