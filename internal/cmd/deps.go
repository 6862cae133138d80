package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/runger/folio/internal/config"
	"github.com/runger/folio/internal/hosting"
	"github.com/runger/folio/internal/identity"
	"github.com/runger/folio/internal/pipeline"
	"github.com/runger/folio/internal/render"
	"github.com/runger/folio/internal/storage"
)

// siteFlag overrides the configured site URL when set.
var siteFlag string

// deps bundles everything a discovery command needs.
type deps struct {
	cfg      *config.Config
	client   *hosting.Client
	store    *storage.SQLiteStore
	identity *identity.Identity
	logger   *slog.Logger
}

// newDeps loads configuration, opens the settings store, builds the
// hosting client, and resolves the repository identity once.
func newDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	siteURL := cfg.Site.URL
	if siteFlag != "" {
		siteURL = siteFlag
	}
	if siteURL == "" {
		return nil, fmt.Errorf("no site configured: pass --site or set site.url (folio config site.url <url>)")
	}

	logger := newLogger(cfg)

	client, err := hosting.NewClient(siteURL, cfg.API.BaseURL,
		time.Duration(cfg.API.TimeoutMs)*time.Millisecond, logger)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStore(config.DefaultPaths().StateDBFile())
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}

	return &deps{
		cfg:      cfg,
		client:   client,
		store:    store,
		identity: pipeline.ResolveIdentity(ctx, client, logger),
		logger:   logger,
	}, nil
}

func (d *deps) Close() {
	_ = d.store.Close()
}

// runner builds a discovery runner writing to the given sink.
func (d *deps) runner(sink render.Sink) *pipeline.Runner {
	return pipeline.New(d.client, d.identity, d.store, sink, d.logger)
}

// termSink builds the standard terminal card sink.
func (d *deps) termSink() *render.TermSink {
	return render.NewTermSink(os.Stdout, d.cfg.UI.Theme, d.cfg.UI.Verbose)
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.UI.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
