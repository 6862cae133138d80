// Package browse is the interactive terminal browser over discovery
// results: the same pipeline as the discover command, with keybindings for
// the hidden-folder and remote-API toggles.
package browse

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runger/folio/internal/pipeline"
	"github.com/runger/folio/internal/render"
	"github.com/runger/folio/internal/resolve"
)

// browseState represents the current state of the browser's state machine.
type browseState int

const (
	stateLoading browseState = iota // Discovery run in progress
	stateLoaded                     // Records loaded (len > 0)
	stateEmpty                      // Run completed with no records
	stateError                      // Toggle persistence failed
)

// discoveryDoneMsg is sent when an async discovery run completes.
type discoveryDoneMsg struct {
	requestID uint64
	result    pipeline.Result
	err       error
}

// initMsg triggers the first discovery run from Update, so state
// mutations are visible to the Bubble Tea runtime.
type initMsg struct{}

// Model is the Bubble Tea model for the project browser.
type Model struct {
	state     browseState
	runner    *pipeline.Runner
	records   []resolve.Record
	selection int
	status    string
	err       error

	showHidden bool
	preferAPI  bool

	requestID uint64 // Monotonic counter for stale-result detection
	spinner   spinner.Model
	styles    render.Styles

	width  int
	height int
}

// NewModel creates a browser over the given runner. preferAPI and
// showHidden seed the toggle indicators with the persisted flag values.
func NewModel(runner *pipeline.Runner, theme string, showHidden, preferAPI bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		state:      stateLoading,
		runner:     runner,
		selection:  -1,
		showHidden: showHidden,
		preferAPI:  preferAPI,
		spinner:    sp,
		styles:     render.DefaultStyles(theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return initMsg{} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case discoveryDoneMsg:
		return m.handleDone(msg)

	case initMsg:
		return m.startRun(func(ctx context.Context) (pipeline.Result, error) {
			return m.runner.Run(ctx), nil
		})

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.selection > 0 {
			m.selection--
		}
		return m, nil

	case "down", "j":
		if m.selection < len(m.records)-1 {
			m.selection++
		}
		return m, nil

	case "r":
		return m.startRun(func(ctx context.Context) (pipeline.Result, error) {
			return m.runner.Rerun(ctx), nil
		})

	case "h":
		m.showHidden = !m.showHidden
		show := m.showHidden
		return m.startRun(func(ctx context.Context) (pipeline.Result, error) {
			return m.runner.SetShowHidden(ctx, show)
		})

	case "a":
		m.preferAPI = !m.preferAPI
		prefer := m.preferAPI
		return m.startRun(func(ctx context.Context) (pipeline.Result, error) {
			return m.runner.SetPreferRemoteAPI(ctx, prefer)
		})
	}
	return m, nil
}

// startRun kicks off an async discovery run and moves to the loading
// state. The request ID guards against a stale run's results landing
// after a newer trigger.
func (m Model) startRun(run func(context.Context) (pipeline.Result, error)) (tea.Model, tea.Cmd) {
	m.requestID++
	id := m.requestID
	m.state = stateLoading
	m.status = ""

	cmd := func() tea.Msg {
		result, err := run(context.Background())
		return discoveryDoneMsg{requestID: id, result: result, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m Model) handleDone(msg discoveryDoneMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.requestID {
		return m, nil // stale run, a newer trigger superseded it
	}

	if msg.err != nil {
		m.state = stateError
		m.err = msg.err
		return m, nil
	}

	m.records = msg.result.Records
	m.status = msg.result.Degraded
	if len(m.records) == 0 {
		m.state = stateEmpty
		m.selection = -1
		return m, nil
	}

	m.state = stateLoaded
	if m.selection < 0 || m.selection >= len(m.records) {
		m.selection = 0
	}
	return m, nil
}

// Selected returns the record under the cursor, if any.
func (m Model) Selected() (resolve.Record, bool) {
	if m.state != stateLoaded || m.selection < 0 || m.selection >= len(m.records) {
		return resolve.Record{}, false
	}
	return m.records[m.selection], true
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.state {
	case stateLoading:
		body = m.spinner.View() + " discovering projects..."
	case stateEmpty:
		body = m.styles.Placeholder.Render("No projects found.")
	case stateError:
		body = m.styles.Placeholder.Render(fmt.Sprintf("error: %v", m.err))
	case stateLoaded:
		body = m.viewRecords()
	}

	footer := m.styles.StatusLine.Render(m.footerText())
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m Model) viewRecords() string {
	lines := make([]string, 0, len(m.records))
	for i, rec := range m.records {
		cursor := "  "
		title := m.styles.Title.Render(rec.Title)
		if i == m.selection {
			cursor = "> "
		}
		line := cursor + title + " " + m.styles.Link.Render("./"+rec.Name+"/")
		if i == m.selection && rec.Description != "" {
			line += "\n    " + m.styles.Description.Render(rec.Description)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) footerText() string {
	flags := fmt.Sprintf("hidden:%s api:%s", onOff(m.showHidden), onOff(m.preferAPI))
	help := "↑/↓ move · h hidden · a api · r refresh · q quit"
	if m.status != "" {
		return m.status + "  " + flags
	}
	return help + "  " + flags
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
