// Package source implements the interchangeable strategies for discovering
// project folder candidates at the site root.
package source

import (
	"context"
	"log/slog"

	"github.com/runger/folio/internal/hosting"
	"github.com/runger/folio/internal/identity"
)

// Candidate is a folder name proposed by a provider. The name is an opaque
// path segment, not yet decoded for display.
type Candidate struct {
	Name string
}

// Env carries the shared, immutable inputs a provider may consult.
type Env struct {
	Client          *hosting.Client
	Identity        *identity.Identity
	PreferRemoteAPI bool
	Logger          *slog.Logger
}

func (e Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Provider is one strategy for producing folder candidates.
type Provider interface {
	// Name identifies the provider in logs and status messages.
	Name() string

	// List returns candidate folder names. An empty list means "nothing
	// found here, try the next provider". An error is logged by the chain
	// and treated the same as an empty list.
	List(ctx context.Context, env Env) ([]Candidate, error)
}

// DefaultProviders returns the provider chain in its fixed priority order:
// static manifest, remote listing API, local heuristics.
func DefaultProviders() []Provider {
	return []Provider{
		&ManifestProvider{},
		&ListingProvider{},
		&ProbeProvider{},
	}
}

// ChainResult is the outcome of running the provider chain.
type ChainResult struct {
	Candidates []Candidate
	// Provider names the provider that produced the candidates, or ""
	// when every provider came up empty.
	Provider string
	// Failed names providers that returned an error before the winning
	// one (or before the chain was exhausted).
	Failed []string
}

// Chain tries providers in order and returns the first non-empty candidate
// list, deduplicated by exact name. A provider error never aborts the
// chain; it is logged and recorded in Failed.
func Chain(ctx context.Context, env Env, providers []Provider) ChainResult {
	var res ChainResult
	for _, p := range providers {
		candidates, err := p.List(ctx, env)
		if err != nil {
			env.logger().Warn("folder source failed, trying next",
				"provider", p.Name(), "error", err)
			res.Failed = append(res.Failed, p.Name())
			continue
		}
		if len(candidates) > 0 {
			res.Candidates = dedup(candidates)
			res.Provider = p.Name()
			return res
		}
	}
	return res
}

func dedup(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		out = append(out, c)
	}
	return out
}
