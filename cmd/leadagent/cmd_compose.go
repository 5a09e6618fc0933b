package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leadagent/internal/app"
)

var composeSendEmails bool

var composeCmd = &cobra.Command{
	Use:   "compose <run-dir>",
	Short: "Draft outreach emails for the leads of an earlier run",
	Long: `compose reads leads.json from an existing run directory and drafts one
email per lead, without rescraping or regenerating the leads. The run's
raw_scrape.json, when present, supplies the business context; a path to the
leads.json itself also works.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, logger, err := buildContainer()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		dir := args[0]
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			dir = filepath.Dir(dir)
		}

		pipeline := container.NewPipeline()
		result, err := pipeline.Compose(ctx, app.ComposeOptions{
			Dir:        dir,
			SendEmails: composeSendEmails,
		})
		if err != nil {
			logger.Error("Email composition failed", zap.Error(err))
			return err
		}

		fmt.Printf("Emails drafted: %d\n", len(result.Drafts))
		if composeSendEmails {
			fmt.Printf("Emails sent: %d\n", result.EmailsSent)
		}
		fmt.Printf("Output directory: %s\n", result.RunDir)

		return nil
	},
}

func init() {
	composeCmd.Flags().BoolVar(&composeSendEmails, "send", false, "Send the composed emails over SMTP")
	rootCmd.AddCommand(composeCmd)
}
