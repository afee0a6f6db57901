package inspire

import (
	"context"
	"errors"
	"math/rand/v2"

	"inspire/internal/logging"
	"inspire/internal/model"
)

// Strategy is one way of producing a result for a category.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, f model.FilterSelection) (model.Result, error)
}

// Chain tries strategies in order until one succeeds. Recoverable failures
// move on to the next strategy; any other failure ends the chain.
type Chain struct {
	Name       string
	Strategies []Strategy
	// FailMessage replaces the last strategy's message when every strategy
	// failed recoverably. Empty keeps the last message.
	FailMessage string
}

// Run returns the first successful result and the name of the strategy that produced it.
func (c Chain) Run(ctx context.Context, f model.FilterSelection, log *logging.Logger) (model.Result, string, error) {
	if log == nil {
		log = logging.Nop()
	}
	if len(c.Strategies) == 0 {
		return nil, "", &Error{Op: c.Name, Kind: KindProvider, Message: GenericMessage, Err: errors.New("no strategies configured")}
	}

	var attempts []error
	for _, s := range c.Strategies {
		res, err := s.Fetch(ctx, f)
		if err == nil {
			if len(attempts) > 0 {
				log.Infof("%s: %s succeeded after %d failed attempt(s)", c.Name, s.Name(), len(attempts))
			}
			return res, s.Name(), nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		if !Recoverable(err) {
			log.Warnf("%s: %s failed terminally: %v", c.Name, s.Name(), err)
			return nil, "", err
		}

		log.Warnf("%s: %s failed, trying next source: %v", c.Name, s.Name(), err)
		attempts = append(attempts, err)
	}

	last := attempts[len(attempts)-1]
	agg := &Error{Op: c.Name, Kind: KindProvider, Message: UserMessage(last), Err: errors.Join(attempts...)}
	var lastErr *Error
	if errors.As(last, &lastErr) {
		agg.Kind = lastErr.Kind
	}
	if c.FailMessage != "" {
		agg.Message = c.FailMessage
	}
	return nil, "", agg
}

// Rand is the source of uniform choices.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand uses the unseeded global generator.
var DefaultRand Rand = globalRand{}

func pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}
