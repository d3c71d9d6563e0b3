package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

// rootCmd runs the web server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with a chat assistant and contact form",
	Long: `Serves the portfolio single page site.

The page is rendered from an embedded content document. A chat assistant
answers questions about the owner, either from a local keyword table or
through the Gemini API, and the contact form delivers messages through
EmailJS or SMTP.

Quick Start:
  portfolio serve                          # Start the web server
  portfolio ask "What are his skills?"     # Ask the assistant from a terminal`,
	Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.AddCommand(serveCmd, askCmd)
}
