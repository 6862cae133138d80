package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runger/folio/internal/browse"
	"github.com/runger/folio/internal/pipeline"
	"github.com/runger/folio/internal/render"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse projects interactively",
	Long: `Browse discovered projects in an interactive terminal UI.

Keys: up/down move the cursor, h toggles hidden folders, a toggles the
remote API preference (both persist and re-run discovery), r refreshes,
q quits.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()
	showHidden, _ := d.store.GetFlag(ctx, pipeline.KeyShowHidden, false)
	preferAPI, _ := d.store.GetFlag(ctx, pipeline.KeyPreferRemoteAPI, true)

	// The TUI owns the screen; pipeline output goes through the model,
	// not a terminal sink.
	runner := d.runner(render.Discard{})
	model := browse.NewModel(runner, d.cfg.UI.Theme, showHidden, preferAPI)

	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}

	// Print the selected project's link path so the result is usable in
	// shell pipelines.
	if m, ok := final.(browse.Model); ok {
		if rec, ok := m.Selected(); ok {
			fmt.Println("./" + rec.Name + "/")
		}
	}
	return nil
}
