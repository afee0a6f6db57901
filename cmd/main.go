package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"inspire/internal/api"
	"inspire/internal/catalog"
	"inspire/internal/config"
	"inspire/internal/download"
	"inspire/internal/inspire"
	"inspire/internal/logging"
	"inspire/internal/model"
	"inspire/internal/render"
)

// listsTTL bounds how long reference lists are reused within one session.
const listsTTL = time.Hour

type options struct {
	configPath   string
	logLevel     string
	surpriseMode string
	jsonOut      bool
	interactive  bool
	imageDir     string
	filter       model.FilterSelection
}

// app holds the wired dependencies for one invocation.
type app struct {
	cfg    config.Config
	log    *logging.Logger
	router *inspire.Router
	lists  *catalog.Cache
	saver  *download.Saver
	out    io.Writer
	width  int
}

// reportedError marks a failure that was already shown to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "inspire: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "inspire [food|music|writing|surprise]",
		Short: "Fetch a random recipe, song, poem or article from free public APIs",
		Long: `inspire picks something to cook, listen to, read or learn about.

Without a category on a terminal it opens an interactive menu. Facet flags
narrow the result; "random" or an empty value leaves a facet unconstrained.`,
		Example: `  inspire food --cuisine Italian --ingredient garlic
  inspire music --genre jazz
  inspire writing --length short --json
  inspire surprise`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			tag := ""
			if len(args) == 1 {
				tag = args[0]
			}
			if opts.interactive || (tag == "" && !opts.jsonOut) {
				return a.runInteractive(cmd.Context(), tag)
			}
			if tag == "" {
				return errors.New("a category is required with --json")
			}
			return a.runOnce(cmd.Context(), tag, opts.filter, opts.jsonOut)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (default from config)")
	pf.StringVar(&opts.surpriseMode, "surprise-mode", "", `how "surprise" is resolved: proxy or encyclopedia`)

	f := cmd.Flags()
	f.StringVar(&opts.filter.Cuisine, "cuisine", "", "recipe cuisine, e.g. Italian")
	f.StringVar(&opts.filter.DietaryCategory, "diet", "", "recipe dietary category, e.g. Vegan or Dessert")
	f.StringVar(&opts.filter.Ingredient, "ingredient", "", "main recipe ingredient, e.g. chicken")
	f.StringVar(&opts.filter.Genre, "genre", "", "music genre (see `inspire genres`)")
	f.StringVar(&opts.filter.Artist, "artist", "", "music artist; overrides --genre")
	f.StringVar(&opts.filter.PoemLength, "length", "", "poem length: short or long")
	f.BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "choose facets with interactive forms")
	f.StringVar(&opts.imageDir, "save-image", "", "save the result's picture into this directory")

	cmd.AddCommand(newGenresCmd(), newListsCmd(opts))
	return cmd
}

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the music genres accepted by --genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printGenres(cmd.OutOrStdout())
		},
	}
}

func printGenres(w io.Writer) error {
	for _, g := range inspire.Genres {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", g.Label, strings.Join(g.Allow, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func newListsCmd(opts *options) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Print the recipe categories, cuisines and ingredients accepted by the food facets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			lists, err := withRetryResult(cmd.Context(), 3, func() (catalog.Lists, error) {
				return a.lists.Load(cmd.Context())
			})
			if err != nil {
				return fmt.Errorf("load reference lists: %w", err)
			}
			return printLists(a.out, lists, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the lists as JSON")
	return cmd
}

func printLists(w io.Writer, lists catalog.Lists, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lists)
	}
	sections := []struct {
		name   string
		values []string
	}{
		{"Categories", lists.Categories},
		{"Cuisines", lists.Areas},
		{"Ingredients", lists.Ingredients},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "%s (%d):\n  %s\n\n", s.name, len(s.values), strings.Join(s.values, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func newApp(opts *options, out io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.surpriseMode != "" {
		cfg.SurpriseMode = opts.surpriseMode
		cfg.Finalize()
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := api.New(httpClient, cfg.UserAgent)

	router, err := inspire.NewFromConfig(cfg, client, log)
	if err != nil {
		return nil, err
	}
	log.Debugf("config loaded: surprise=%s food sources=%v priority=%v", cfg.SurpriseMode, cfg.Food.Sources, cfg.Food.Priority)

	a := &app{
		cfg:    cfg,
		log:    log,
		router: router,
		lists:  catalog.NewCache(api.NewMealDB(client, cfg.Endpoints.MealDB), listsTTL),
		out:    out,
		width:  terminalWidth(),
	}
	if opts.imageDir != "" {
		a.saver = download.New(httpClient, opts.imageDir)
	}
	return a, nil
}

// runOnce fetches a single result and prints it as a card or JSON.
func (a *app) runOnce(ctx context.Context, tag string, f model.FilterSelection, asJSON bool) error {
	fetch := func(ctx context.Context) (inspire.Outcome, error) {
		return a.router.Fetch(ctx, tag, f)
	}

	var (
		out inspire.Outcome
		err error
	)
	if asJSON || !isTerminal(os.Stderr) {
		out, err = fetch(ctx)
	} else {
		out, err = withSpinner(ctx, loadingLabel(tag), fetch)
	}

	if err != nil {
		if errors.Is(err, errAborted) {
			return reportedError{err}
		}
		if asJSON {
			_ = writeJSON(a.out, errorPayload(err))
		} else {
			fmt.Fprintln(os.Stderr, render.ErrorPanel(inspire.UserMessage(err), a.width))
		}
		return reportedError{err}
	}

	if asJSON {
		err = writeJSON(a.out, out)
	} else {
		_, err = fmt.Fprintln(a.out, render.Card(out.Result, a.width))
	}
	if err != nil {
		return err
	}
	return a.saveImage(ctx, out.Result)
}

// saveImage stores the result's picture when --save-image is set. A failed
// download is logged and does not fail the command.
func (a *app) saveImage(ctx context.Context, res model.Result) error {
	if a.saver == nil {
		return nil
	}
	path, err := a.saver.Save(ctx, res)
	if err != nil {
		a.log.Warnf("save image for %q: %v", res.Headline(), err)
		return nil
	}
	if path == "" {
		a.log.Infof("%q has no image to save", res.Headline())
		return nil
	}
	fmt.Fprintf(os.Stderr, "Saved image to %s\n", path)
	return nil
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func errorPayload(err error) map[string]errorBody {
	body := errorBody{Kind: string(inspire.KindProvider), Message: inspire.UserMessage(err)}
	var ie *inspire.Error
	if errors.As(err, &ie) {
		body.Kind = string(ie.Kind)
	}
	return map[string]errorBody{"error": body}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(f.Fd())
}

func terminalWidth() int {
	if !isTerminal(os.Stdout) {
		return 0
	}
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 0
	}
	return min(w, 100)
}
