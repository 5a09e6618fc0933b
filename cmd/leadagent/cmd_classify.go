package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leadagent/internal/app"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <url>",
	Short: "Scrape a website and report its industry classification",
	Long: `classify runs only the scrape and local industry matching stages.
No LLM calls are made, so it works without spending API quota.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, logger, err := buildContainer()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		url := app.NormalizeURL(args[0])
		bundle, err := container.Scraper.Scrape(ctx, url)
		if err != nil {
			logger.Warn("Static scraping failed, trying dynamic", zap.Error(err))
			result, browserErr := container.Browser.Scrape(ctx, url)
			if browserErr != nil {
				return fmt.Errorf("all scraping attempts failed: %w", browserErr)
			}
			bundle = result.Bundle
		}

		cls := container.Profiles.Classify(bundle)

		fmt.Printf("Business: %s\n", bundle.BusinessName)
		fmt.Printf("Industry: %s\n", cls.Industry)
		fmt.Printf("Confidence: %.1f/10\n", cls.Confidence)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
