package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runger/folio/internal/resolve"
)

// cardWidth is the inner width of a rendered project card.
const cardWidth = 56

// Styles holds the lipgloss styles for terminal cards. Adaptive colors
// follow the terminal's light/dark background unless a theme override
// forces one side.
type Styles struct {
	Card        lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
	Link        lipgloss.Style
	StatusLine  lipgloss.Style
	Placeholder lipgloss.Style
}

// DefaultStyles builds the card styles. theme is "auto", "dark" or
// "light"; unknown values behave like "auto".
func DefaultStyles(theme string) Styles {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}

	border := lipgloss.AdaptiveColor{Light: "240", Dark: "244"}
	accent := lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	muted := lipgloss.AdaptiveColor{Light: "243", Dark: "246"}

	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(cardWidth),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		Description: lipgloss.NewStyle().Foreground(muted),
		Link:        lipgloss.NewStyle().Faint(true),
		StatusLine:  lipgloss.NewStyle().Faint(true),
		Placeholder: lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}

// TermSink renders project cards to a terminal writer.
type TermSink struct {
	out     io.Writer
	styles  Styles
	verbose bool
}

// NewTermSink creates a terminal sink. With verbose set, every status
// update is printed; otherwise only degradation messages are shown.
func NewTermSink(out io.Writer, theme string, verbose bool) *TermSink {
	return &TermSink{out: out, styles: DefaultStyles(theme), verbose: verbose}
}

// Render implements Sink.
func (s *TermSink) Render(records []resolve.Record) {
	if len(records) == 0 {
		fmt.Fprintln(s.out, s.styles.Placeholder.Render("No projects found."))
		return
	}
	for _, rec := range records {
		fmt.Fprintln(s.out, s.Card(rec))
	}
}

// Status implements Sink.
func (s *TermSink) Status(phase, message string) {
	if message != "" {
		fmt.Fprintln(s.out, s.styles.StatusLine.Render(fmt.Sprintf("[%s] %s", phase, message)))
		return
	}
	if s.verbose {
		fmt.Fprintln(s.out, s.styles.StatusLine.Render(fmt.Sprintf("[%s]", phase)))
	}
}

// Card renders one record as a bordered card.
func (s *TermSink) Card(rec resolve.Record) string {
	lines := []string{
		s.styles.Title.Render(truncate(rec.Title, cardWidth-2)),
	}
	if rec.Description != "" {
		lines = append(lines, s.styles.Description.Render(wrap(rec.Description, cardWidth-2)))
	}
	lines = append(lines, s.styles.Link.Render("./"+rec.Name+"/"))
	return s.styles.Card.Render(strings.Join(lines, "\n"))
}

// truncate cuts a string to the given display width, appending an
// ellipsis when something was removed.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// wrap greedily wraps words to the given display width.
func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineWidth := 0
	for i, w := range words {
		wWidth := runewidth.StringWidth(w)
		switch {
		case i == 0:
			b.WriteString(w)
			lineWidth = wWidth
		case lineWidth+1+wWidth > width:
			b.WriteByte('\n')
			b.WriteString(w)
			lineWidth = wWidth
		default:
			b.WriteByte(' ')
			b.WriteString(w)
			lineWidth += 1 + wWidth
		}
	}
	return b.String()
}
