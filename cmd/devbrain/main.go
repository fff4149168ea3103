// Package main provides the devbrain CLI: the MVI API server plus offline
// analysis and export commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bilal-bim/devbrain-ai/internal/api"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "devbrain",
		Short: "DevbrainAI - turn a raw business idea into a Minimum Viable Idea",
		Long: `DevbrainAI walks an idea through six guided stages (idea capture,
personas, competitors, features, tech stack, context generation) and exports
the result for AI coding tools.

Examples:
  devbrain serve                                   # Start the HTTP API
  devbrain analyze "An app for freelancers to manage invoices"
  devbrain export --idea "Booking app for yoga studios" -f github -o ./out
  devbrain export --session mvi_01j... -f mcp --zip
  devbrain preview --idea "Budget tracker for students"`,
		Version:       api.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		analyzeCmd(),
		exportCmd(),
		previewCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
