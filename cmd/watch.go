package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theopenlane/ecolens/config"
	"github.com/theopenlane/ecolens/internal/annotate"
	"github.com/theopenlane/ecolens/internal/cache"
	"github.com/theopenlane/ecolens/internal/engine"
	"github.com/theopenlane/ecolens/internal/extmsg"
	"github.com/theopenlane/ecolens/internal/page"
	"github.com/theopenlane/ecolens/internal/scoring"
	"github.com/theopenlane/ecolens/internal/watch"
	"github.com/theopenlane/ecolens/internal/widget"
)

// watchCmd runs the companion engine against a URL stream on stdin
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "run the page companion against a navigation stream on stdin",
	Long: `Reads navigation events line by line from stdin, the way the in-page
companion observes single-page-app URL changes, and drives the analysis
pipeline for every settled navigation. Lines starting with { are treated
as inbound extension messages and answered on stdout.`,
	Run: func(cmd *cobra.Command, _ []string) {
		err := runWatch(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the watch command and its flags on the root command
func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.PersistentFlags().String("config", "./config/.config.yaml", "config file location")
}

// runWatch wires the companion pipeline and consumes stdin
func runWatch(ctx context.Context) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, closeStore, err := setupStore(cfg)
	if err != nil {
		return fmt.Errorf("setting up cache: %w", err)
	}

	defer closeStore()

	client, err := scoring.New(cfg.Scoring.BaseURL,
		scoring.WithHTTPClient(&http.Client{Timeout: cfg.Scoring.RequestTimeout}),
	)
	if err != nil {
		return fmt.Errorf("setting up scoring client: %w", err)
	}

	presenter := widget.NewTextPresenter(os.Stdout)
	doc := page.NewSimPage("", page.WithPresenter(presenter))

	orchestrator, err := engine.New(doc, client, store)
	if err != nil {
		return fmt.Errorf("setting up orchestrator: %w", err)
	}

	annotator, err := annotate.New(store)
	if err != nil {
		return fmt.Errorf("setting up annotator: %w", err)
	}

	responder, err := extmsg.New(doc)
	if err != nil {
		return fmt.Errorf("setting up message responder: %w", err)
	}

	watcher, err := watch.New(doc.URL, func(url string) {
		orchestrator.Trigger(ctx, url)
		annotator.Annotate(ctx, doc)
	}, watch.WithQuietPeriod(cfg.Watcher.QuietPeriod))
	if err != nil {
		return fmt.Errorf("setting up watcher: %w", err)
	}

	log.Info().Str("scoring", cfg.Scoring.BaseURL).Str("cache", cfg.Cache.Kind).Msg("watching navigation stream")

	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "{") {
			if reply, ok := responder.Handle([]byte(line)); ok {
				fmt.Fprintln(os.Stdout, string(reply))
			}

			continue
		}

		doc.Navigate(line)
		watcher.Notify()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading navigation stream: %w", err)
	}

	// let a trailing debounce window settle before exiting
	select {
	case <-ctx.Done():
	case <-time.After(cfg.Watcher.QuietPeriod + 250*time.Millisecond):
	}

	return nil
}

// setupStore builds the configured cache backend
func setupStore(cfg *config.Config) (cache.Store, func(), error) {
	switch cfg.Cache.Kind {
	case "memory":
		return cache.NewMemoryStore(), func() {}, nil
	case "sqlite", "":
		store, err := cache.OpenSQLite(cfg.Cache.Dir)
		if err != nil {
			return nil, nil, err
		}

		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", errUnknownCacheKind, cfg.Cache.Kind)
	}
}
