package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Surprise modes.
const (
	SurpriseProxy        = "proxy"
	SurpriseEncyclopedia = "encyclopedia"
)

// Food sources.
const (
	SourceMealDB      = "mealdb"
	SourceSpoonacular = "spoonacular"
)

// Food facet names accepted in the priority policy.
const (
	FacetCategory   = "category"
	FacetIngredient = "ingredient"
	FacetCuisine    = "cuisine"
)

// Config contains runtime options for the inspiration fetchers.
type Config struct {
	LogLevel     string        `yaml:"log_level"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	UserAgent    string        `yaml:"user_agent"`
	SurpriseMode string        `yaml:"surprise_mode"`

	Food      FoodConfig    `yaml:"food"`
	Music     MusicConfig   `yaml:"music"`
	Writing   WritingConfig `yaml:"writing"`
	Endpoints Endpoints     `yaml:"endpoints"`
}

// FoodConfig tunes the recipe pipeline.
type FoodConfig struct {
	// Sources is the fallback order. Empty means derived from the API key.
	Sources []string `yaml:"sources"`
	// Priority picks the facet sent to the server-side filter.
	Priority          []string `yaml:"priority"`
	CandidateLimit    int      `yaml:"candidate_limit"`
	LookupWorkers     int      `yaml:"lookup_workers"`
	SpoonacularAPIKey string   `yaml:"spoonacular_api_key"`
}

// MusicConfig tunes the catalog search.
type MusicConfig struct {
	SearchLimit int `yaml:"search_limit"`
}

// WritingConfig tunes the poem search.
type WritingConfig struct {
	BatchSize     int `yaml:"batch_size"`
	MaxAttempts   int `yaml:"max_attempts"`
	LongThreshold int `yaml:"long_threshold"`
}

// Endpoints holds provider base URLs.
type Endpoints struct {
	MealDB      string `yaml:"mealdb"`
	Spoonacular string `yaml:"spoonacular"`
	ITunes      string `yaml:"itunes"`
	PoetryDB    string `yaml:"poetrydb"`
	Quotable    string `yaml:"quotable"`
	Wikipedia   string `yaml:"wikipedia"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:     "warn",
		HTTPTimeout:  15 * time.Second,
		UserAgent:    "inspire/1.0 (+https://github.com/inspire)",
		SurpriseMode: SurpriseProxy,
		Food: FoodConfig{
			Priority:       []string{FacetCategory, FacetIngredient, FacetCuisine},
			CandidateLimit: 20,
			LookupWorkers:  8,
		},
		Music: MusicConfig{SearchLimit: 200},
		Writing: WritingConfig{
			BatchSize:     5,
			MaxAttempts:   10,
			LongThreshold: 20,
		},
		Endpoints: Endpoints{
			MealDB:      "https://www.themealdb.com/api/json/v1/1",
			Spoonacular: "https://api.spoonacular.com",
			ITunes:      "https://itunes.apple.com",
			PoetryDB:    "https://poetrydb.org",
			Quotable:    "https://api.quotable.io",
			Wikipedia:   "https://en.wikipedia.org/api/rest_v1",
		},
	}
}

// Load builds a Config from defaults, an optional YAML file, .env files and
// the environment, in that order of precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := loadEnvFiles(); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	cfg.Finalize()
	return cfg, nil
}

// Finalize fills derived values. It is safe to call more than once.
func (c *Config) Finalize() {
	c.SurpriseMode = strings.ToLower(strings.TrimSpace(c.SurpriseMode))
	c.Food.Priority = completePriority(lowerAll(c.Food.Priority))
	c.Food.Sources = lowerAll(c.Food.Sources)
	if len(c.Food.Sources) == 0 {
		if c.Food.SpoonacularAPIKey != "" {
			c.Food.Sources = []string{SourceSpoonacular, SourceMealDB}
		} else {
			c.Food.Sources = []string{SourceMealDB}
		}
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("http_timeout must not be negative"))
	}
	if c.SurpriseMode != SurpriseProxy && c.SurpriseMode != SurpriseEncyclopedia {
		errs = append(errs, fmt.Errorf("surprise_mode must be %q or %q, got %q", SurpriseProxy, SurpriseEncyclopedia, c.SurpriseMode))
	}

	if len(c.Food.Priority) == 0 {
		errs = append(errs, fmt.Errorf("food.priority must list at least one facet"))
	}
	seen := make(map[string]struct{}, len(c.Food.Priority))
	for _, p := range c.Food.Priority {
		if p != FacetCategory && p != FacetIngredient && p != FacetCuisine {
			errs = append(errs, fmt.Errorf("food.priority: unknown facet %q", p))
			continue
		}
		if _, ok := seen[p]; ok {
			errs = append(errs, fmt.Errorf("food.priority: duplicate facet %q", p))
		}
		seen[p] = struct{}{}
	}
	for _, fc := range []string{FacetCategory, FacetIngredient, FacetCuisine} {
		if _, ok := seen[fc]; !ok && len(c.Food.Priority) > 0 {
			errs = append(errs, fmt.Errorf("food.priority: missing facet %q", fc))
		}
	}

	for _, s := range c.Food.Sources {
		switch s {
		case SourceMealDB:
		case SourceSpoonacular:
			if c.Food.SpoonacularAPIKey == "" {
				errs = append(errs, fmt.Errorf("food.sources includes %q but no API key is configured (set SPOONACULAR_API_KEY)", s))
			}
		default:
			errs = append(errs, fmt.Errorf("food.sources: unknown source %q", s))
		}
	}

	positive := map[string]int{
		"food.candidate_limit":   c.Food.CandidateLimit,
		"food.lookup_workers":    c.Food.LookupWorkers,
		"music.search_limit":     c.Music.SearchLimit,
		"writing.batch_size":     c.Writing.BatchSize,
		"writing.max_attempts":   c.Writing.MaxAttempts,
		"writing.long_threshold": c.Writing.LongThreshold,
	}
	keys := make([]string, 0, len(positive))
	for k := range positive {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if positive[k] < 1 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", k, positive[k]))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("INSPIRE_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("INSPIRE_HTTP_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse INSPIRE_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	if v, ok := lookup("INSPIRE_SURPRISE_MODE"); ok {
		c.SurpriseMode = v
	}
	if v, ok := lookup("INSPIRE_FOOD_PRIORITY"); ok {
		c.Food.Priority = SplitList(v)
	}
	if v, ok := lookup("INSPIRE_FOOD_SOURCES"); ok {
		c.Food.Sources = SplitList(v)
	}
	if v, ok := lookup("INSPIRE_FOOD_CANDIDATE_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse INSPIRE_FOOD_CANDIDATE_LIMIT: %w", err)
		}
		c.Food.CandidateLimit = n
	}
	if v, ok := lookup("SPOONACULAR_API_KEY"); ok {
		c.Food.SpoonacularAPIKey = strings.TrimSpace(v)
	}
	return nil
}

// loadEnvFiles loads .env.local then .env; missing files are ignored and
// variables already set in the environment win.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// SplitList parses a comma-separated list, dropping blanks.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// completePriority appends facets missing from the priority list in default
// order, so every facet can drive the server-side filter.
func completePriority(priority []string) []string {
	for _, fc := range []string{FacetCategory, FacetIngredient, FacetCuisine} {
		if !slices.Contains(priority, fc) {
			priority = append(priority, fc)
		}
	}
	return priority
}

func lowerAll(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
