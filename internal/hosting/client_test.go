package hosting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, srv.URL, 2*time.Second, nil)
	require.NoError(t, err)
	return c, srv
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient("not-a-url", "", 0, nil)
	assert.Error(t, err)

	_, err = NewClient("/just/a/path", "", 0, nil)
	assert.Error(t, err)
}

func TestListRoot(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/u/u.github.io/contents/", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		w.Write([]byte(`[{"name":"proj1","type":"dir"},{"name":"readme.md","type":"file"}]`))
	}))

	entries, err := c.ListRoot(context.Background(), "u", "u.github.io")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "proj1", Type: "dir"}, entries[0])
	assert.Equal(t, Entry{Name: "readme.md", Type: "file"}, entries[1])
}

func TestListRoot_MalformedJSON(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))

	_, err := c.ListRoot(context.Background(), "u", "repo")
	assert.Error(t, err)
}

func TestRawContent_NotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.RawContent(context.Background(), "u", "repo", "proj1/README.md")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRawContent_RateLimited(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.RawContent(context.Background(), "u", "repo", "proj1/README.md")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.True(t, statusErr.RateLimited())
}

func TestRawContent_Success(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/u/repo/contents/proj1/README.md", r.URL.Path)
		assert.Equal(t, "application/vnd.github.raw", r.Header.Get("Accept"))
		w.Write([]byte("# proj1\n\nA project."))
	}))

	body, err := c.RawContent(context.Background(), "u", "repo", "proj1/README.md")
	require.NoError(t, err)
	assert.Equal(t, "# proj1\n\nA project.", body)
}

func TestSiteDocument(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/docs/index.html" {
			w.Write([]byte("<title>Docs</title>"))
			return
		}
		http.NotFound(w, r)
	}))

	body, err := c.SiteDocument(context.Background(), "docs/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<title>Docs</title>", body)

	_, err = c.SiteDocument(context.Background(), "missing/index.html")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSiteExists(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/projects/index.html" {
			return
		}
		http.NotFound(w, r)
	}))

	assert.True(t, c.SiteExists(context.Background(), "projects/index.html"))
	assert.False(t, c.SiteExists(context.Background(), "nope/index.html"))
}

func TestSiteExists_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewClient(srv.URL, srv.URL, time.Second, nil)
	require.NoError(t, err)
	srv.Close()

	assert.False(t, c.SiteExists(context.Background(), "projects/index.html"))
}

func TestGet_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewClient(srv.URL, srv.URL, time.Second, nil)
	require.NoError(t, err)
	srv.Close()

	_, err = c.SiteDocument(context.Background(), "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
