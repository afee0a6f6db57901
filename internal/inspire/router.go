package inspire

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"inspire/internal/api"
	"inspire/internal/config"
	"inspire/internal/logging"
	"inspire/internal/model"
)

const msgUnknownCategory = "Unknown category"

// Outcome is a successful fetch along with how it was routed.
type Outcome struct {
	RunID     string         `json:"runId"`
	Requested model.Category `json:"requested"`
	Resolved  model.Category `json:"resolved"`
	Source    string         `json:"source"`
	Result    model.Result   `json:"result"`
}

// Router maps category tags to fetch chains.
type Router struct {
	chains       map[model.Category]Chain
	surpriseMode string
	rand         Rand
	log          *logging.Logger
	newID        func() string
}

// NewRouter creates a router. In proxy mode a surprise request is resolved
// to one of the base categories; in encyclopedia mode it runs the
// surprise chain.
func NewRouter(chains map[model.Category]Chain, surpriseMode string, r Rand, log *logging.Logger) *Router {
	if r == nil {
		r = DefaultRand
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Router{
		chains:       chains,
		surpriseMode: surpriseMode,
		rand:         r,
		log:          log,
		newID:        uuid.NewString,
	}
}

// SurpriseMode returns the configured surprise policy.
func (r *Router) SurpriseMode() string { return r.surpriseMode }

// Resolve maps a tag to the category whose chain will run.
func (r *Router) Resolve(tag string) (requested, resolved model.Category, err error) {
	requested, err = model.ParseCategory(tag)
	if err != nil {
		return "", "", &Error{Op: "route", Kind: KindUnknownCategory, Message: msgUnknownCategory, Err: err}
	}
	resolved = requested
	if requested == model.CategorySurprise && r.surpriseMode != config.SurpriseEncyclopedia {
		resolved = pick(r.rand, model.BaseCategories)
	}
	return requested, resolved, nil
}

// Fetch routes tag to exactly one chain and runs it.
func (r *Router) Fetch(ctx context.Context, tag string, f model.FilterSelection) (Outcome, error) {
	runID := r.newID()
	log := r.log.With("run_id", runID)

	requested, resolved, err := r.Resolve(tag)
	if err != nil {
		log.Warnf("route %q: %v", tag, err)
		return Outcome{}, err
	}
	log = log.With("category", string(resolved))

	chain, ok := r.chains[resolved]
	if !ok {
		err := &Error{Op: "route", Kind: KindUnknownCategory, Message: msgUnknownCategory, Err: fmt.Errorf("no pipeline registered for %q", resolved)}
		log.Errorf("%v", err)
		return Outcome{}, err
	}

	f = f.Normalize()
	if requested != resolved {
		// Facets chosen for the surprise tag do not carry over.
		f = model.FilterSelection{}
		log.Debugf("surprise resolved to %s", resolved)
	}

	res, source, err := chain.Run(ctx, f, log)
	if err != nil {
		return Outcome{}, err
	}
	log.Infof("fetched %s from %s", res.Headline(), source)

	return Outcome{
		RunID:     runID,
		Requested: requested,
		Resolved:  resolved,
		Source:    source,
		Result:    res,
	}, nil
}

// NewFromConfig wires every provider client and chain from cfg.
func NewFromConfig(cfg config.Config, c *api.Client, log *logging.Logger) (*Router, error) {
	cfg.Finalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if c == nil {
		return nil, errors.New("nil api client")
	}
	if log == nil {
		log = logging.Nop()
	}

	var food []Strategy
	for _, src := range cfg.Food.Sources {
		switch src {
		case config.SourceMealDB:
			food = append(food, &MealDBStrategy{
				Source:         api.NewMealDB(c, cfg.Endpoints.MealDB),
				Priority:       cfg.Food.Priority,
				CandidateLimit: cfg.Food.CandidateLimit,
				Workers:        cfg.Food.LookupWorkers,
				Log:            log,
			})
		case config.SourceSpoonacular:
			food = append(food, &SpoonacularStrategy{
				Source:         api.NewSpoonacular(c, cfg.Endpoints.Spoonacular, cfg.Food.SpoonacularAPIKey),
				CandidateLimit: cfg.Food.CandidateLimit,
			})
		}
	}

	chains := map[model.Category]Chain{
		model.CategoryFood: {
			Name:       "food",
			Strategies: food,
		},
		model.CategoryMusic: {
			Name: "music",
			Strategies: []Strategy{
				&ITunesStrategy{Source: api.NewITunes(c, cfg.Endpoints.ITunes), SearchLimit: cfg.Music.SearchLimit, Log: log},
				&CuratedMusicStrategy{},
			},
		},
		model.CategoryWriting: {
			Name: "writing",
			Strategies: []Strategy{
				&PoetryStrategy{
					Source:        api.NewPoetryDB(c, cfg.Endpoints.PoetryDB),
					BatchSize:     cfg.Writing.BatchSize,
					MaxAttempts:   cfg.Writing.MaxAttempts,
					LongThreshold: cfg.Writing.LongThreshold,
				},
				&QuotableStrategy{Source: api.NewQuotable(c, cfg.Endpoints.Quotable)},
			},
			FailMessage: msgWritingFailed,
		},
		model.CategorySurprise: {
			Name:        "surprise",
			Strategies:  []Strategy{&EncyclopediaStrategy{Source: api.NewWikipedia(c, cfg.Endpoints.Wikipedia)}},
			FailMessage: msgSurpriseFailed,
		},
	}

	return NewRouter(chains, cfg.SurpriseMode, nil, log), nil
}
