package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leadagent/internal/app"
)

var leadsCount int

var leadsCmd = &cobra.Command{
	Use:   "leads <url>",
	Short: "Run the pipeline through lead synthesis, without drafting emails",
	Long: `leads scrapes the target website, analyzes the business, and synthesizes
potential leads. The batch is written to the run directory as leads.json and
printed as JSON. Use "compose" on the run directory to draft emails later.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, logger, err := buildContainer()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		pipeline := container.NewPipeline()
		result, err := pipeline.Run(ctx, app.RunOptions{
			URL:       args[0],
			LeadCount: leadsCount,
			LeadsOnly: true,
		})
		if err != nil {
			logger.Error("Lead generation failed", zap.Error(err))
			return err
		}

		data, err := json.MarshalIndent(result.Leads, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		fmt.Printf("Output directory: %s\n", result.RunDir)

		return nil
	},
}

func init() {
	leadsCmd.Flags().IntVarP(&leadsCount, "count", "c", 0, "Number of leads to generate (default from LEAD_COUNT)")
	rootCmd.AddCommand(leadsCmd)
}
