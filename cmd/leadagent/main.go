package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "leadagent",
	Short: "AI lead generation and cold outreach agent",
	Long: `leadagent scrapes a target business website, analyzes it with an LLM,
synthesizes potential leads, and drafts personalized outreach emails.

All artifacts (leads.json, email drafts, debug captures) are written to a
per-run directory under the configured output directory.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
