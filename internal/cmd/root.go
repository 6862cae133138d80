// Package cmd implements the folio CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "project cards for static portfolio sites",
	Long: `folio - project cards for static portfolio sites
  - scans a site's repository root for project folders
  - resolves a title and description per project
  - renders the result as terminal cards`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&siteFlag, "site", "", "site root URL (overrides configured site.url)")
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(identityCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
