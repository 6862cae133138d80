package cmd

import (
	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover projects and render them as cards",
	Long: `Discover project folders at the site root and render one card per
project.

Folder sources are tried in order: the static index.json manifest, the
hosting API's directory listing, and local probing of the site itself.
Each project's title and description come from its index.html or README.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	d.runner(d.termSink()).Run(cmd.Context())
	return nil
}
