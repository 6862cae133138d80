package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/folio/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set folio configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/folio/config.yaml (XDG compliant).

Examples:
  folio config                               # List all keys
  folio config site.url                      # Get the site URL
  folio config site.url https://u.github.io  # Set the site URL
  folio config ui.theme dark`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch len(args) {
	case 0:
		return listConfig(cfg, paths)
	case 1:
		return getConfig(cfg, args[0])
	case 2:
		return setConfig(cfg, paths, args[0], args[1])
	}
	return nil
}

func listConfig(cfg *config.Config, paths *config.Paths) error {
	fmt.Printf("%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))

	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		if value == "" {
			value = colorDim + "(not set)" + colorReset
		}
		fmt.Printf("  %s%s%s = %s\n", colorCyan, key, colorReset, value)
	}

	fmt.Println()
	fmt.Printf("Config file: %s\n", paths.ConfigFile())
	return nil
}

func getConfig(cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func setConfig(cfg *config.Config, paths *config.Paths, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Save(paths); err != nil {
		return err
	}
	fmt.Printf("%s%s%s = %s\n", colorCyan, key, colorReset, value)
	return nil
}
