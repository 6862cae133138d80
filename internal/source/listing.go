package source

import "context"

// ListingProvider queries the hosting API's directory listing for the
// repository root and keeps only directory entries. It is skipped when no
// repository identity is known or the remote API is disabled by
// configuration. Failures are returned to the chain, which logs them and
// falls through to local heuristics; a broken API never aborts discovery.
type ListingProvider struct{}

// Name implements Provider.
func (p *ListingProvider) Name() string { return "remote-listing" }

// List implements Provider.
func (p *ListingProvider) List(ctx context.Context, env Env) ([]Candidate, error) {
	if env.Identity == nil || !env.PreferRemoteAPI {
		return nil, nil
	}

	entries, err := env.Client.ListRoot(ctx, env.Identity.Owner, env.Identity.Name)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, e := range entries {
		if e.Type == "dir" && e.Name != "" {
			candidates = append(candidates, Candidate{Name: e.Name})
		}
	}
	return candidates, nil
}
