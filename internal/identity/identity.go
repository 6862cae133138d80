// Package identity resolves the (owner, name) pair identifying the hosted
// repository behind a portfolio site.
package identity

import "strings"

// PlatformDomain is the hosting platform's pages domain suffix.
const PlatformDomain = "github.io"

// Source records which detection strategy produced an Identity.
type Source string

const (
	SourceMeta     Source = "meta"     // explicit meta tag declaration
	SourceHostname Source = "hostname" // <owner>.github.io convention
	SourcePathname Source = "pathname" // /<owner>/<name>/ path inference
)

// Identity is the repository behind the site. Immutable once resolved.
type Identity struct {
	Owner  string
	Name   string
	Source Source
}

// PageContext is everything Resolve needs from the site's root page:
// declared meta tags plus the page's hostname and URL path.
type PageContext struct {
	MetaOwner string
	MetaName  string
	Hostname  string
	Path      string
}

// Resolve determines the repository identity from the page context.
// Strategies are tried in priority order and the first match wins.
// A nil result is a normal state, not an error: it means remote
// lookups are unavailable for this site.
func Resolve(page PageContext) *Identity {
	if page.MetaOwner != "" && page.MetaName != "" {
		return &Identity{Owner: page.MetaOwner, Name: page.MetaName, Source: SourceMeta}
	}

	if owner, ok := pagesOwner(page.Hostname); ok {
		return &Identity{
			Owner:  owner,
			Name:   owner + "." + PlatformDomain,
			Source: SourceHostname,
		}
	}

	if owner, name, ok := pathOwnerName(page.Path); ok {
		return &Identity{Owner: owner, Name: name, Source: SourcePathname}
	}

	return nil
}

// pagesOwner matches the <owner>.github.io hostname convention.
func pagesOwner(hostname string) (string, bool) {
	host := strings.ToLower(strings.TrimSpace(hostname))
	suffix := "." + PlatformDomain
	if !strings.HasSuffix(host, suffix) {
		return "", false
	}
	owner := strings.TrimSuffix(host, suffix)
	if owner == "" || strings.Contains(owner, ".") {
		return "", false
	}
	return owner, true
}

// pathOwnerName infers owner/name from the first two path segments.
func pathOwnerName(path string) (owner, name string, ok bool) {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) < 2 {
		return "", "", false
	}
	return segs[0], segs[1], true
}
