package main

import (
	"bufio"
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leadagent/internal/app"
)

var (
	runLeadCount  int
	runSendEmails bool
	runAssumeYes  bool
)

var runCmd = &cobra.Command{
	Use:   "run <url>",
	Short: "Run the full lead generation pipeline against a website",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if runSendEmails && !runAssumeYes && !confirmSend(cmd) {
			fmt.Println("Aborted.")
			return nil
		}

		container, logger, err := buildContainer()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		pipeline := container.NewPipeline()
		result, err := pipeline.Run(ctx, app.RunOptions{
			URL:        args[0],
			LeadCount:  runLeadCount,
			SendEmails: runSendEmails,
		})
		if err != nil {
			logger.Error("Pipeline failed", zap.Error(err))
			return err
		}

		fmt.Printf("\nBusiness: %s\n", result.Bundle.BusinessName)
		fmt.Printf("Industry: %s (confidence %.1f/10)\n", result.Classification.Industry, result.Classification.Confidence)
		fmt.Printf("Leads generated: %d\n", len(result.Leads))
		for i, lead := range result.Leads {
			fmt.Printf("  %d. %s <%s>\n", i+1, lead.Name, lead.Email)
		}
		if runSendEmails {
			fmt.Printf("Emails sent: %d\n", result.EmailsSent)
		}
		fmt.Printf("Output directory: %s\n", result.RunDir)

		return nil
	},
}

// confirmSend asks for confirmation before the run sends real email.
func confirmSend(cmd *cobra.Command) bool {
	fmt.Print("This run will send outreach emails over SMTP. Continue? [y/N] ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	runCmd.Flags().IntVarP(&runLeadCount, "count", "c", 0, "Number of leads to generate (default from LEAD_COUNT)")
	runCmd.Flags().BoolVar(&runSendEmails, "send", false, "Send the composed emails over SMTP")
	runCmd.Flags().BoolVarP(&runAssumeYes, "yes", "y", false, "Skip the confirmation prompt before sending")
	rootCmd.AddCommand(runCmd)
}
