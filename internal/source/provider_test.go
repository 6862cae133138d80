package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/folio/internal/hosting"
	"github.com/runger/folio/internal/identity"
)

func testEnv(t *testing.T, handler http.Handler) Env {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := hosting.NewClient(srv.URL, srv.URL, 2*time.Second, nil)
	require.NoError(t, err)
	return Env{Client: client, PreferRemoteAPI: true}
}

func names(candidates []Candidate) []string {
	if len(candidates) == 0 {
		return nil
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Name
	}
	return out
}

func TestManifestProvider(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
		want    []string
	}{
		{"valid manifest", 200, `{"folders":["alpha","beta"]}`, []string{"alpha", "beta"}},
		{"empty names dropped", 200, `{"folders":["alpha","","beta"]}`, []string{"alpha", "beta"}},
		{"wrong shape ignored", 200, `{"folders":"nope"}`, nil},
		{"invalid json ignored", 200, `{{{`, nil},
		{"missing manifest ignored", 404, ``, nil},
		{"server error ignored", 500, ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/index.json", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.payload))
			}))

			got, err := (&ManifestProvider{}).List(context.Background(), env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestListingProvider_DirsOnly(t *testing.T) {
	env := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/u/u.github.io/contents/", r.URL.Path)
		w.Write([]byte(`[{"name":"proj1","type":"dir"},{"name":"readme.md","type":"file"},{"name":"assets","type":"dir"}]`))
	}))
	env.Identity = &identity.Identity{Owner: "u", Name: "u.github.io", Source: identity.SourceHostname}

	got, err := (&ListingProvider{}).List(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, []string{"proj1", "assets"}, names(got))
}

func TestListingProvider_SkippedWithoutIdentity(t *testing.T) {
	env := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made without identity")
	}))

	got, err := (&ListingProvider{}).List(context.Background(), env)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListingProvider_SkippedWhenAPIDisabled(t *testing.T) {
	env := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made when the API is disabled")
	}))
	env.Identity = &identity.Identity{Owner: "u", Name: "repo"}
	env.PreferRemoteAPI = false

	got, err := (&ListingProvider{}).List(context.Background(), env)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListingProvider_RateLimitReturnsError(t *testing.T) {
	env := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	env.Identity = &identity.Identity{Owner: "u", Name: "repo"}

	_, err := (&ListingProvider{}).List(context.Background(), env)

	var statusErr *hosting.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.True(t, statusErr.RateLimited())
}

func TestProbeProvider_MergesProbesAndLinks(t *testing.T) {
	env := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/docs/index.html", "/games/index.html":
			return // exists
		case "/":
			w.Write([]byte(`<a href="./docs/">docs</a> <a href="pinball/">pinball</a> <a href="https://example.com/">ext</a>`))
		default:
			http.NotFound(w, r)
		}
	}))

	got, err := (&ProbeProvider{}).List(context.Background(), env)
	require.NoError(t, err)
	// Probed names come first in well-known order, then scanned links
	// not already present.
	assert.Equal(t, []string{"docs", "games", "pinball"}, names(got))
}

func TestProbeProvider_RootScanFailureTolerated(t *testing.T) {
	env := testEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tools/index.html" {
			return
		}
		http.NotFound(w, r)
	}))

	got, err := (&ProbeProvider{}).List(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, []string{"tools"}, names(got))
}

type stubProvider struct {
	name       string
	candidates []Candidate
	err        error
	calls      int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) List(ctx context.Context, env Env) ([]Candidate, error) {
	s.calls++
	return s.candidates, s.err
}

func TestChain_FirstNonEmptyWins(t *testing.T) {
	first := &stubProvider{name: "first"}
	second := &stubProvider{name: "second", candidates: []Candidate{{Name: "a"}, {Name: "b"}}}
	third := &stubProvider{name: "third"}

	res := Chain(context.Background(), Env{}, []Provider{first, second, third})

	assert.Equal(t, []string{"a", "b"}, names(res.Candidates))
	assert.Equal(t, "second", res.Provider)
	assert.Empty(t, res.Failed)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Zero(t, third.calls, "chain must stop at the first non-empty provider")
}

func TestChain_ErrorFallsThrough(t *testing.T) {
	failing := &stubProvider{name: "failing", err: errors.New("rate limited")}
	fallback := &stubProvider{name: "fallback", candidates: []Candidate{{Name: "x"}}}

	res := Chain(context.Background(), Env{}, []Provider{failing, fallback})

	assert.Equal(t, []string{"x"}, names(res.Candidates))
	assert.Equal(t, "fallback", res.Provider)
	assert.Equal(t, []string{"failing"}, res.Failed)
}

func TestChain_Deduplicates(t *testing.T) {
	p := &stubProvider{name: "p", candidates: []Candidate{
		{Name: "a"}, {Name: "b"}, {Name: "a"}, {Name: "c"}, {Name: "b"},
	}}

	res := Chain(context.Background(), Env{}, []Provider{p})
	assert.Equal(t, []string{"a", "b", "c"}, names(res.Candidates))
}

func TestChain_AllEmpty(t *testing.T) {
	res := Chain(context.Background(), Env{}, []Provider{
		&stubProvider{name: "a"}, &stubProvider{name: "b"},
	})
	assert.Empty(t, res.Candidates)
	assert.Equal(t, "", res.Provider)
}
