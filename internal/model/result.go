package model

var (
	_ Result = Recipe{}
	_ Result = Track{}
	_ Result = MusicSuggestion{}
	_ Result = Poem{}
	_ Result = Quote{}
	_ Result = Article{}
)

// Result is a normalized record ready for rendering.
type Result interface {
	ResultCategory() Category
	Headline() string
}

// Recipe is a food result.
type Recipe struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Category    string `json:"category,omitempty"`
	Area        string `json:"area,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	SourceURL   string `json:"sourceUrl,omitempty"`
}

// Track is a music catalog result.
type Track struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album,omitempty"`
	Genre       string `json:"genre,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
	ArtworkURL  string `json:"artworkUrl,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
}

// MusicSuggestion is a curated, non-API music result.
type MusicSuggestion struct {
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
}

// Poem is a writing result from the poetry database.
type Poem struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Lines     []string `json:"lines"`
	LineCount int      `json:"linecount"`
}

// Quote is the writing fallback.
type Quote struct {
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Article is an encyclopedia summary.
type Article struct {
	Title        string `json:"title"`
	Extract      string `json:"extract"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	PageURL      string `json:"pageUrl,omitempty"`
}

func (Recipe) ResultCategory() Category          { return CategoryFood }
func (Track) ResultCategory() Category           { return CategoryMusic }
func (MusicSuggestion) ResultCategory() Category { return CategoryMusic }
func (Poem) ResultCategory() Category            { return CategoryWriting }
func (Quote) ResultCategory() Category           { return CategoryWriting }
func (Article) ResultCategory() Category         { return CategorySurprise }

func (r Recipe) Headline() string          { return r.Title }
func (t Track) Headline() string           { return t.Title }
func (s MusicSuggestion) Headline() string { return s.Title }
func (p Poem) Headline() string            { return p.Title }
func (q Quote) Headline() string           { return q.Title }
func (a Article) Headline() string         { return a.Title }
