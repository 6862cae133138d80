package source

import (
	"context"
	"encoding/json"
)

// ManifestPath is the well-known location of the static folder manifest,
// relative to the site root.
const ManifestPath = "index.json"

// manifest is the expected shape of the static manifest document.
type manifest struct {
	Folders []string `json:"folders"`
}

// ManifestProvider reads a static JSON manifest published alongside the
// site. Any fetch or parse failure is swallowed: a broken or absent
// manifest simply means the next provider gets a turn.
type ManifestProvider struct{}

// Name implements Provider.
func (p *ManifestProvider) Name() string { return "manifest" }

// List implements Provider.
func (p *ManifestProvider) List(ctx context.Context, env Env) ([]Candidate, error) {
	body, err := env.Client.SiteDocument(ctx, ManifestPath)
	if err != nil {
		return nil, nil
	}

	var m manifest
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return nil, nil
	}

	candidates := make([]Candidate, 0, len(m.Folders))
	for _, name := range m.Folders {
		if name != "" {
			candidates = append(candidates, Candidate{Name: name})
		}
	}
	return candidates, nil
}
