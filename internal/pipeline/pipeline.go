// Package pipeline orchestrates project discovery: folder sourcing,
// hidden-name filtering, concurrent metadata resolution, deterministic
// sorting, and the single hand-off to the rendering sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/runger/folio/internal/extract"
	"github.com/runger/folio/internal/hosting"
	"github.com/runger/folio/internal/identity"
	"github.com/runger/folio/internal/render"
	"github.com/runger/folio/internal/resolve"
	"github.com/runger/folio/internal/source"
)

// Phase names reported to the sink's status line.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSourcing  Phase = "sourcing"
	PhaseFiltering Phase = "filtering"
	PhaseResolving Phase = "resolving"
	PhaseSorting   Phase = "sorting"
	PhaseRendered  Phase = "rendered"
)

// Settings is the injected key-value capability the runtime toggles are
// persisted through.
type Settings interface {
	GetFlag(ctx context.Context, key string, def bool) (bool, error)
	SetFlag(ctx context.Context, key string, value bool) error
}

// Settings keys and defaults.
const (
	KeyShowHidden      = "show_hidden"
	KeyPreferRemoteAPI = "prefer_remote_api"

	defaultShowHidden      = false
	defaultPreferRemoteAPI = true
)

// Config is one run's flag snapshot, read from Settings when the run
// starts and immutable for its duration.
type Config struct {
	ShowHidden      bool
	PreferRemoteAPI bool
}

// Result is the outcome of one discovery run.
type Result struct {
	RunID   string
	Records []resolve.Record
	// Degraded carries a non-fatal status message ("API unavailable or
	// rate-limited; using local mode") when a remote source failed and
	// discovery fell back. Empty on a clean run.
	Degraded string
	// Source names the provider that produced the folder list, or "" when
	// every provider came up empty.
	Source string
}

// Runner drives discovery runs against one site. Safe for use from a
// single goroutine; rendering is last-run-wins when triggers overlap.
type Runner struct {
	client    *hosting.Client
	settings  Settings
	sink      render.Sink
	logger    *slog.Logger
	identity  *identity.Identity
	providers []source.Provider

	mu         sync.Mutex
	generation uint64
}

// New creates a Runner. identity may be nil; sink and settings must not be.
func New(client *hosting.Client, id *identity.Identity, settings Settings, sink render.Sink, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		client:    client,
		settings:  settings,
		sink:      sink,
		logger:    logger,
		identity:  id,
		providers: source.DefaultProviders(),
	}
}

// Identity returns the repository identity resolved at startup, or nil.
func (r *Runner) Identity() *identity.Identity {
	return r.identity
}

// Run executes one full discovery run and renders its outcome. It never
// fails outright: the worst case is an empty record list plus a status
// message. The returned Result is for programmatic callers and tests.
func (r *Runner) Run(ctx context.Context) Result {
	res := Result{RunID: uuid.NewString()}
	gen := r.nextGeneration()
	log := r.logger.With("run_id", res.RunID)

	cfg := r.loadConfig(ctx)
	env := source.Env{
		Client:          r.client,
		Identity:        r.identity,
		PreferRemoteAPI: cfg.PreferRemoteAPI,
		Logger:          log,
	}

	r.status(gen, PhaseSourcing, "")
	sourced := source.Chain(ctx, env, r.providers)
	candidates := sourced.Candidates
	res.Source = sourced.Provider
	if len(sourced.Failed) > 0 {
		res.Degraded = "API unavailable or rate-limited; using local mode"
		r.status(gen, PhaseSourcing, res.Degraded)
	}
	log.Info("sourcing complete", "provider", sourced.Provider, "candidates", len(candidates))

	r.status(gen, PhaseFiltering, "")
	if !cfg.ShowHidden {
		kept := candidates[:0]
		for _, c := range candidates {
			if !isHidden(c.Name) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	r.status(gen, PhaseResolving, "")
	res.Records = r.resolveAll(ctx, candidates, log)

	r.status(gen, PhaseSorting, "")
	sortRecords(res.Records)

	r.render(gen, res.Records)
	r.status(gen, PhaseRendered, "")
	log.Info("run complete", "records", len(res.Records))
	return res
}

// Rerun triggers a fresh discovery run.
func (r *Runner) Rerun(ctx context.Context) Result {
	return r.Run(ctx)
}

// SetShowHidden persists the hidden-folder visibility flag and triggers a
// re-run.
func (r *Runner) SetShowHidden(ctx context.Context, show bool) (Result, error) {
	if err := r.settings.SetFlag(ctx, KeyShowHidden, show); err != nil {
		return Result{}, fmt.Errorf("failed to persist show-hidden flag: %w", err)
	}
	return r.Run(ctx), nil
}

// SetPreferRemoteAPI persists the remote-API preference flag and triggers
// a re-run.
func (r *Runner) SetPreferRemoteAPI(ctx context.Context, prefer bool) (Result, error) {
	if err := r.settings.SetFlag(ctx, KeyPreferRemoteAPI, prefer); err != nil {
		return Result{}, fmt.Errorf("failed to persist API preference: %w", err)
	}
	return r.Run(ctx), nil
}

// resolveAll fans metadata resolution out across all candidates and waits
// for every one to settle. Each goroutine writes only its own slot, and a
// failed resolution degrades to the fallback record inside the resolver.
func (r *Runner) resolveAll(ctx context.Context, candidates []source.Candidate, log *slog.Logger) []resolve.Record {
	resolver := &resolve.Resolver{Client: r.client, Identity: r.identity, Logger: log}
	records := make([]resolve.Record, len(candidates))

	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			records[i] = resolver.Resolve(ctx, name)
		}(i, c.Name)
	}
	wg.Wait()
	return records
}

// sortRecords orders records by name, locale-aware and case-insensitive,
// with a byte-wise tie break so the order is fully deterministic.
// The collator is per-call: collate.Collator is not safe for concurrent
// use and overlapping runs may sort at the same time.
func sortRecords(records []resolve.Record) {
	collator := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(records, func(i, j int) bool {
		if cmp := collator.CompareString(records[i].Name, records[j].Name); cmp != 0 {
			return cmp < 0
		}
		return records[i].Name < records[j].Name
	})
}

// loadConfig snapshots the persisted flags for one run. Read failures
// degrade to defaults rather than blocking discovery.
func (r *Runner) loadConfig(ctx context.Context) Config {
	cfg := Config{ShowHidden: defaultShowHidden, PreferRemoteAPI: defaultPreferRemoteAPI}

	show, err := r.settings.GetFlag(ctx, KeyShowHidden, defaultShowHidden)
	if err != nil {
		r.logger.Warn("failed to read show-hidden flag", "error", err)
	} else {
		cfg.ShowHidden = show
	}

	prefer, err := r.settings.GetFlag(ctx, KeyPreferRemoteAPI, defaultPreferRemoteAPI)
	if err != nil {
		r.logger.Warn("failed to read API preference", "error", err)
	} else {
		cfg.PreferRemoteAPI = prefer
	}
	return cfg
}

func (r *Runner) nextGeneration() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	return r.generation
}

func (r *Runner) isCurrent(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen == r.generation
}

// status forwards a phase update to the sink unless a newer run has
// started since.
func (r *Runner) status(gen uint64, phase Phase, message string) {
	if r.isCurrent(gen) {
		r.sink.Status(string(phase), message)
	}
}

// render hands records to the sink; stale runs are dropped so the sink
// only ever reflects the most recently started run.
func (r *Runner) render(gen uint64, records []resolve.Record) {
	if r.isCurrent(gen) {
		r.sink.Render(records)
	}
}

// ResolveIdentity fetches the site's root document and resolves the
// repository identity from its meta tags, the site hostname, and the URL
// path. A missing or unreachable root document is tolerated; identity
// resolution then falls back to hostname and path alone.
func ResolveIdentity(ctx context.Context, client *hosting.Client, logger *slog.Logger) *identity.Identity {
	if logger == nil {
		logger = slog.Default()
	}

	page := identity.PageContext{
		Hostname: client.Site().Hostname(),
		Path:     client.Site().Path,
	}

	root, err := client.SiteDocument(ctx, "")
	switch {
	case err == nil:
		page.MetaOwner = extract.MetaContent(root, "repo-owner")
		page.MetaName = extract.MetaContent(root, "repo-name")
	case errors.Is(err, hosting.ErrNotFound):
		// No root document; hostname and path rules still apply.
	default:
		logger.Warn("root document fetch failed during identity resolution", "error", err)
	}

	return identity.Resolve(page)
}
