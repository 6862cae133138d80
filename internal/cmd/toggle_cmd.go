package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/folio/internal/pipeline"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <hidden|api>",
	Short: "Flip a discovery flag and re-run discovery",
	Long: `Flip one of the persisted discovery flags and immediately re-run
discovery with the new value.

  hidden  show folders from the default-hidden set (assets, css, ...)
  api     prefer the hosting API's directory listing over local probing`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"hidden", "api"},
	RunE:      runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()
	runner := d.runner(d.termSink())

	switch args[0] {
	case "hidden":
		current, err := d.store.GetFlag(ctx, pipeline.KeyShowHidden, false)
		if err != nil {
			return err
		}
		fmt.Printf("%sshow-hidden → %v%s\n", colorBold, !current, colorReset)
		_, err = runner.SetShowHidden(ctx, !current)
		return err

	case "api":
		current, err := d.store.GetFlag(ctx, pipeline.KeyPreferRemoteAPI, true)
		if err != nil {
			return err
		}
		fmt.Printf("%sprefer-remote-api → %v%s\n", colorBold, !current, colorReset)
		_, err = runner.SetPreferRemoteAPI(ctx, !current)
		return err
	}

	return fmt.Errorf("unknown flag %q (expected hidden or api)", args[0])
}
