// Package main is the entry point for the folio CLI.
package main

import (
	"os"

	"github.com/runger/folio/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
