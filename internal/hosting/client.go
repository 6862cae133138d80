// Package hosting provides the HTTP client for the hosting platform's
// content API and for same-origin fetches against the portfolio site itself.
package hosting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIBase is the default hosting API base URL.
const DefaultAPIBase = "https://api.github.com"

// DefaultTimeout bounds a single request; discovery issues many small
// requests, so individual calls are kept short.
const DefaultTimeout = 10 * time.Second

// Accept headers for the two content API modes.
const (
	acceptJSON = "application/vnd.github+json"
	acceptRaw  = "application/vnd.github.raw"
)

// ErrNotFound is returned when a remote file or document does not exist.
// It is an expected outcome that drives fallback, not a failure.
var ErrNotFound = errors.New("hosting: not found")

// StatusError is a non-404 failure status from the hosting API or the site.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hosting: unexpected status %d for %s", e.StatusCode, e.URL)
}

// RateLimited reports whether the status indicates API rate limiting.
func (e *StatusError) RateLimited() bool {
	return e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusTooManyRequests
}

// Entry is one item in a directory listing from the content API.
type Entry struct {
	Name string `json:"name"`
	Type string `json:"type"` // "dir" or "file"
}

// Client talks to the hosting API and the portfolio site.
type Client struct {
	http    *http.Client
	apiBase string
	site    *url.URL
	logger  *slog.Logger
}

// NewClient creates a client for the given site root URL.
// apiBase may be empty, in which case DefaultAPIBase is used.
func NewClient(siteURL, apiBase string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	site, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL %q: %w", siteURL, err)
	}
	if site.Scheme == "" || site.Host == "" {
		return nil, fmt.Errorf("site URL %q must be absolute", siteURL)
	}
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		apiBase: strings.TrimRight(apiBase, "/"),
		site:    site,
		logger:  logger,
	}, nil
}

// Site returns the parsed site root URL.
func (c *Client) Site() *url.URL {
	return c.site
}

// ListRoot lists the entries of the repository root via the content API.
func (c *Client) ListRoot(ctx context.Context, owner, name string) ([]Entry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/", c.apiBase, url.PathEscape(owner), url.PathEscape(name))
	body, err := c.get(ctx, u, acceptJSON)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return nil, fmt.Errorf("malformed listing response: %w", err)
	}
	return entries, nil
}

// RawContent fetches the raw bytes of a file via the content API.
// A 404 is reported as ErrNotFound; other non-2xx statuses as *StatusError.
func (c *Client) RawContent(ctx context.Context, owner, name, path string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.apiBase, url.PathEscape(owner), url.PathEscape(name), escapePath(path))
	return c.get(ctx, u, acceptRaw)
}

// SiteDocument fetches a document relative to the site root.
// relPath may be empty to fetch the root document itself.
func (c *Client) SiteDocument(ctx context.Context, relPath string) (string, error) {
	return c.get(ctx, c.siteURL(relPath), "")
}

// SiteExists issues a lightweight existence check for a path under the
// site root. Any failure counts as "does not exist".
func (c *Client) SiteExists(ctx context.Context, relPath string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.siteURL(relPath), nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *Client) siteURL(relPath string) string {
	u := *c.site
	if relPath != "" {
		u = *u.JoinPath(strings.Split(relPath, "/")...)
	}
	return u.String()
}

func (c *Client) get(ctx context.Context, rawURL, accept string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

func escapePath(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
