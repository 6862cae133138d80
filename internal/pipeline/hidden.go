package pipeline

import "strings"

// defaultHidden are site-infrastructure folder names never shown as
// project cards unless the show-hidden flag is set.
var defaultHidden = map[string]struct{}{
	"assets":       {},
	"css":          {},
	"js":           {},
	"img":          {},
	"images":       {},
	"fonts":        {},
	"static":       {},
	"media":        {},
	"lib":          {},
	"vendor":       {},
	"node_modules": {},
	"_site":        {},
	".git":         {},
	".github":      {},
}

// isHidden reports whether a folder name is hidden by default. Dot and
// underscore prefixes count as hidden alongside the fixed set.
func isHidden(name string) bool {
	if _, ok := defaultHidden[name]; ok {
		return true
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
