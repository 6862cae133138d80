package source

import (
	"context"
	"regexp"
	"sync"
)

// wellKnownFolders are conventionally-named project folders probed for
// existence when no manifest and no API listing is available.
var wellKnownFolders = []string{
	"projects",
	"apps",
	"demos",
	"docs",
	"games",
	"tools",
	"experiments",
	"blog",
}

// relativeLinkRe matches relative link targets shaped like "./<segment>/"
// or "<segment>/" in the root document's markup.
var relativeLinkRe = regexp.MustCompile(`href=["'](?:\./)?([A-Za-z0-9][A-Za-z0-9._~-]*)/(?:index\.html)?["']`)

// ProbeProvider discovers folders without any manifest or API: it probes a
// fixed list of conventional folder names for a same-origin index document,
// and separately scans the root document for relative folder links. The
// two result sets are merged without duplicates.
type ProbeProvider struct{}

// Name implements Provider.
func (p *ProbeProvider) Name() string { return "local-probe" }

// List implements Provider.
func (p *ProbeProvider) List(ctx context.Context, env Env) ([]Candidate, error) {
	// Probe each well-known name independently; a failed probe for one
	// name never affects the others.
	exists := make([]bool, len(wellKnownFolders))
	var wg sync.WaitGroup
	for i, name := range wellKnownFolders {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			exists[i] = env.Client.SiteExists(ctx, name+"/index.html")
		}(i, name)
	}
	wg.Wait()

	var candidates []Candidate
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		candidates = append(candidates, Candidate{Name: name})
	}

	for i, name := range wellKnownFolders {
		if exists[i] {
			add(name)
		}
	}

	// Root document scan is best-effort on top of the probes.
	root, err := env.Client.SiteDocument(ctx, "")
	if err != nil {
		env.logger().Warn("root document scan skipped", "error", err)
		return candidates, nil
	}
	for _, match := range relativeLinkRe.FindAllStringSubmatch(root, -1) {
		add(match[1])
	}
	return candidates, nil
}
