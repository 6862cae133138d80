package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Show the resolved repository identity",
	Long: `Show the (owner, name) pair folio resolved for the configured site,
and which detection strategy produced it: explicit meta tags, the
<owner>.github.io hostname convention, or the URL path.`,
	Args: cobra.NoArgs,
	RunE: runIdentity,
}

func runIdentity(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	id := d.identity
	if id == nil {
		fmt.Printf("%sno repository identity resolvable%s (remote lookups disabled)\n", colorYellow, colorReset)
		return nil
	}

	fmt.Printf("%sowner:%s  %s\n", colorCyan, colorReset, id.Owner)
	fmt.Printf("%sname:%s   %s\n", colorCyan, colorReset, id.Name)
	fmt.Printf("%ssource:%s %s\n", colorCyan, colorReset, id.Source)
	return nil
}
