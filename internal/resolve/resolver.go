// Package resolve turns a folder candidate into a display record by trying
// a same-origin document, then remote file lookups, then a bare fallback.
package resolve

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/runger/folio/internal/extract"
	"github.com/runger/folio/internal/hosting"
	"github.com/runger/folio/internal/identity"
)

// remoteCandidates are the per-folder file paths tried against the hosting
// API, in order. The first path that yields content wins.
var remoteCandidates = []string{"README.md", "readme.md", "index.html"}

// Record is the resolved display form of one project folder.
type Record struct {
	Name        string
	Title       string
	Description string
}

// Fallback builds the record used when no document can be found for a
// folder: decoded name as title, empty description.
func Fallback(name string) Record {
	return Record{Name: name, Title: extract.DecodeName(name)}
}

// Resolver resolves metadata for folder names. Identity may be nil, in
// which case remote lookups are skipped entirely.
type Resolver struct {
	Client   *hosting.Client
	Identity *identity.Identity
	Logger   *slog.Logger
}

// Resolve produces a usable record for the folder, never an error.
// Attempt order: same-origin index document, remote file candidates,
// bare fallback.
func (r *Resolver) Resolve(ctx context.Context, folderName string) Record {
	if doc, err := r.Client.SiteDocument(ctx, folderName+"/index.html"); err == nil {
		meta := extract.FromHTML(doc, folderName)
		return Record{Name: folderName, Title: meta.Title, Description: meta.Description}
	}

	if r.Identity != nil {
		if rec, ok := r.resolveRemote(ctx, folderName); ok {
			return rec
		}
	}

	return Fallback(folderName)
}

// resolveRemote tries the remote file candidates in order. A 404 moves on
// to the next candidate; any other failure stops the chain, since it
// usually means the API itself is unavailable and further calls would only
// burn rate limit.
func (r *Resolver) resolveRemote(ctx context.Context, folderName string) (Record, bool) {
	for _, file := range remoteCandidates {
		path := folderName + "/" + file
		body, err := r.Client.RawContent(ctx, r.Identity.Owner, r.Identity.Name, path)
		if errors.Is(err, hosting.ErrNotFound) {
			continue
		}
		if err != nil {
			r.logger().Warn("remote metadata lookup failed",
				"folder", folderName, "path", path, "error", err)
			return Record{}, false
		}

		var meta extract.Meta
		if strings.HasSuffix(file, ".md") {
			meta = extract.FromMarkdown(body, folderName)
		} else {
			meta = extract.FromHTML(body, folderName)
		}
		return Record{Name: folderName, Title: meta.Title, Description: meta.Description}, true
	}
	return Record{}, false
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
