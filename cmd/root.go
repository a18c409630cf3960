// Package cmd defines and implements the CLI commands for the
// sitemap-generator executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap-generator",
		Short: "Crawls a website and generates sitemap files",
		Long: `sitemap-generator crawls a single website inside a configured domain
boundary with a bounded pool of concurrent workers, scores every reachable
HTML page, and writes a standards-compliant XML sitemap, a timestamped JSON
snapshot, and a change log against the previous run.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	cmd.AddCommand(newGenerateCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
