package browse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/folio/internal/hosting"
	"github.com/runger/folio/internal/pipeline"
	"github.com/runger/folio/internal/render"
	"github.com/runger/folio/internal/resolve"
)

type memSettings struct{ flags map[string]bool }

func (m *memSettings) GetFlag(ctx context.Context, key string, def bool) (bool, error) {
	if v, ok := m.flags[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *memSettings) SetFlag(ctx context.Context, key string, value bool) error {
	m.flags[key] = value
	return nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/index.json" {
			w.Write([]byte(`{"folders":["alpha","beta"]}`))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := hosting.NewClient(srv.URL, srv.URL, 2*time.Second, nil)
	require.NoError(t, err)

	runner := pipeline.New(client, nil, &memSettings{flags: map[string]bool{}}, render.Discard{}, nil)
	return NewModel(runner, "dark", false, true)
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	m.requestID++
	updated, _ := m.handleDone(discoveryDoneMsg{
		requestID: m.requestID,
		result: pipeline.Result{Records: []resolve.Record{
			{Name: "alpha", Title: "alpha"},
			{Name: "beta", Title: "beta", Description: "Second project"},
		}},
	})
	return updated.(Model)
}

func TestModel_LoadedSelection(t *testing.T) {
	m := loaded(t, newTestModel(t))

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "alpha", sel.Name)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	sel, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, "beta", sel.Name)

	// Cursor clamps at the end.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	sel, _ = m.Selected()
	assert.Equal(t, "beta", sel.Name)
}

func TestModel_StaleResultDropped(t *testing.T) {
	m := loaded(t, newTestModel(t))

	updated, _ := m.handleDone(discoveryDoneMsg{
		requestID: m.requestID - 1, // older run
		result:    pipeline.Result{},
	})
	m = updated.(Model)

	_, ok := m.Selected()
	assert.True(t, ok, "stale empty result must not clobber current records")
}

func TestModel_EmptyResult(t *testing.T) {
	m := newTestModel(t)
	m.requestID++

	updated, _ := m.handleDone(discoveryDoneMsg{requestID: m.requestID})
	m = updated.(Model)

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No projects found.")
}

func TestModel_DegradedStatusInFooter(t *testing.T) {
	m := newTestModel(t)
	m.requestID++

	updated, _ := m.handleDone(discoveryDoneMsg{
		requestID: m.requestID,
		result: pipeline.Result{
			Records:  []resolve.Record{{Name: "x", Title: "x"}},
			Degraded: "API unavailable or rate-limited; using local mode",
		},
	})
	m = updated.(Model)

	assert.Contains(t, m.View(), "using local mode")
}

func TestModel_ToggleKeysFlipIndicators(t *testing.T) {
	m := loaded(t, newTestModel(t))
	assert.Contains(t, m.footerText(), "hidden:off")
	assert.Contains(t, m.footerText(), "api:on")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.showHidden)
	assert.Equal(t, stateLoading, m.state)

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.False(t, m.preferAPI)
}

func TestModel_QuitKeys(t *testing.T) {
	m := loaded(t, newTestModel(t))

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, "key %v should quit", key)
	}
}
