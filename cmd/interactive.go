package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"inspire/internal/catalog"
	"inspire/internal/config"
	"inspire/internal/inspire"
	"inspire/internal/model"
	"inspire/internal/render"
)

const randomOption = "Random"

var (
	errAborted  = errors.New("aborted")
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#667eea"))
)

// Follow-up menu actions.
const (
	actionRetry = "retry"
	actionBack  = "back"
	actionQuit  = "quit"
)

var loadingLabels = map[model.Category]string{
	model.CategoryFood:     "Finding your perfect recipe...",
	model.CategoryMusic:    "Finding your perfect track...",
	model.CategoryWriting:  "Loading inspiration...",
	model.CategorySurprise: "Loading inspiration...",
}

// runInteractive loops between the category menu, facet forms and result
// cards until the user quits. Every failure returns to the menu.
func (a *app) runInteractive(ctx context.Context, initial string) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	tag := initial
	for {
		if tag == "" {
			var err error
			tag, err = chooseCategory(a.router.SurpriseMode())
			if err != nil {
				return quietAbort(err)
			}
			if tag == actionQuit {
				return nil
			}
		}

		f, err := a.askFilters(ctx, tag)
		if err != nil {
			if errors.Is(err, errAborted) || errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			a.showError(err)
			tag = ""
			continue
		}

		for {
			out, err := withSpinner(ctx, loadingLabel(tag), func(ctx context.Context) (inspire.Outcome, error) {
				return a.router.Fetch(ctx, tag, f)
			})
			if errors.Is(err, errAborted) {
				return nil
			}
			if err == nil {
				fmt.Fprintln(a.out, render.Card(out.Result, a.width))
				_ = a.saveImage(ctx, out.Result)
				next, err := chooseNext()
				if err != nil {
					return quietAbort(err)
				}
				if next == actionRetry {
					continue
				}
				if next == actionQuit {
					return nil
				}
				break
			}

			a.showError(err)
			next, err := chooseAfterError()
			if err != nil {
				return quietAbort(err)
			}
			if next == actionQuit {
				return nil
			}
			if next == actionBack {
				break
			}
		}
		tag = ""
	}
}

func (a *app) showError(err error) {
	a.log.Debugf("interactive fetch failed: %v", err)
	fmt.Fprintln(a.out, render.ErrorPanel(inspire.UserMessage(err), a.width))
}

func loadingLabel(tag string) string {
	if l, ok := loadingLabels[model.Category(strings.ToLower(tag))]; ok {
		return l
	}
	return "Loading inspiration..."
}

func chooseCategory(surpriseMode string) (string, error) {
	options := make([]huh.Option[string], 0, len(model.Categories)+1)
	for _, c := range model.Categories {
		options = append(options, huh.NewOption(categoryLabel(c, surpriseMode), string(c)))
	}
	options = append(options, huh.NewOption("Quit", actionQuit))

	var choice string
	err := huh.NewSelect[string]().
		Title("What do you need inspiration for?").
		Options(options...).
		Value(&choice).
		Run()
	return choice, err
}

func categoryLabel(c model.Category, surpriseMode string) string {
	switch c {
	case model.CategorySurprise:
		if surpriseMode == config.SurpriseEncyclopedia {
			return "Surprise me (random article)"
		}
		return "Surprise me"
	default:
		s := string(c)
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// askFilters collects the facets relevant to tag.
func (a *app) askFilters(ctx context.Context, tag string) (model.FilterSelection, error) {
	switch model.Category(strings.ToLower(strings.TrimSpace(tag))) {
	case model.CategoryFood:
		return a.askFoodFilters(ctx)
	case model.CategoryMusic:
		return askMusicFilters()
	case model.CategoryWriting:
		return askWritingFilters()
	}
	return model.FilterSelection{}, nil
}

func (a *app) askFoodFilters(ctx context.Context) (model.FilterSelection, error) {
	lists, err := withSpinner(ctx, "Loading options...", func(ctx context.Context) (catalog.Lists, error) {
		return withRetryResult(ctx, 3, func() (catalog.Lists, error) {
			return a.lists.Load(ctx)
		})
	})
	if err != nil {
		if errors.Is(err, errAborted) {
			return model.FilterSelection{}, err
		}
		// The forms still work without the reference lists.
		a.log.Warnf("load recipe filter options: %v", err)
	}

	var f model.FilterSelection
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Cuisine").
				Description(`Select one option, or "Random" for a surprise!`).
				Options(withRandom(lists.Areas)...).
				Value(&f.Cuisine),
			huh.NewSelect[string]().
				Title("Dietary / category").
				Options(withRandom(lists.Categories)...).
				Value(&f.DietaryCategory),
		),
	).Run()
	if err != nil {
		return model.FilterSelection{}, err
	}

	if len(lists.Ingredients) > 0 {
		f.Ingredient, err = pickOption("Main ingredient", lists.Ingredients)
		if err != nil {
			return model.FilterSelection{}, err
		}
	} else {
		err = huh.NewInput().
			Title("Main ingredient").
			Placeholder("e.g. chicken, pasta, tomatoes, or leave empty for random").
			Value(&f.Ingredient).
			Run()
		if err != nil {
			return model.FilterSelection{}, err
		}
	}
	return f, nil
}

func askMusicFilters() (model.FilterSelection, error) {
	genres := make([]huh.Option[string], 0, len(inspire.Genres)+1)
	genres = append(genres, huh.NewOption(randomOption, ""))
	for _, g := range inspire.Genres {
		genres = append(genres, huh.NewOption(genreLabel(g.Label), g.Label))
	}

	var f model.FilterSelection
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Genre").
				Description(`Select a genre below, or choose "Random" for a surprise!`).
				Options(genres...).
				Value(&f.Genre),
			huh.NewInput().
				Title("Artist").
				Description("Optional. An artist search ignores the genre.").
				Placeholder("e.g. Bon Iver").
				Value(&f.Artist),
		),
	).Run()
	return f, err
}

func askWritingFilters() (model.FilterSelection, error) {
	var f model.FilterSelection
	err := huh.NewSelect[string]().
		Title("Poem length").
		Options(
			huh.NewOption("Any length", ""),
			huh.NewOption("Short (under 20 lines)", string(model.PoemShort)),
			huh.NewOption("Long (20 lines or more)", string(model.PoemLong)),
		).
		Value(&f.PoemLength).
		Run()
	return f, err
}

func chooseNext() (string, error) {
	var next string
	err := huh.NewSelect[string]().
		Title("What next?").
		Options(
			huh.NewOption("Another one", actionRetry),
			huh.NewOption("Back to categories", actionBack),
			huh.NewOption("Quit", actionQuit),
		).
		Value(&next).
		Run()
	return next, err
}

func chooseAfterError() (string, error) {
	var next string
	err := huh.NewSelect[string]().
		Options(
			huh.NewOption("Try again", actionRetry),
			huh.NewOption("Go back", actionBack),
			huh.NewOption("Quit", actionQuit),
		).
		Value(&next).
		Run()
	return next, err
}

func withRandom(values []string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(values)+1)
	options = append(options, huh.NewOption(randomOption, ""))
	for _, v := range values {
		options = append(options, huh.NewOption(v, v))
	}
	return options
}

func genreLabel(label string) string {
	if label == "r&b" {
		return "R&B"
	}
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func quietAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, errAborted) {
		return nil
	}
	return err
}
