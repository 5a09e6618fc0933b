package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"leadagent/internal/domain"
	"leadagent/internal/export"
)

// Pipeline runs the full lead-generation flow: scrape, extract, analyze,
// synthesize leads, compose emails, export, and optionally send.
type Pipeline struct {
	container *Container
	logger    *zap.Logger
}

// RunOptions controls one pipeline run.
type RunOptions struct {
	URL        string
	LeadCount  int
	SendEmails bool
	// LeadsOnly stops the run after leads are synthesized and exported,
	// skipping email composition.
	LeadsOnly bool
}

// ComposeOptions controls a compose-only pass over an earlier run directory.
type ComposeOptions struct {
	Dir        string
	SendEmails bool
}

// RunResult summarizes what a run produced.
type RunResult struct {
	Bundle         *domain.ContentBundle
	Classification domain.Classification
	AnalysisJSON   string
	Leads          []domain.Lead
	Drafts         []domain.EmailDraft
	RunDir         string
	EmailsSent     int
}

// NormalizeURL prepends https:// when the target has no scheme.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return url
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "https://" + url
	}
	return url
}

// Run executes the pipeline against one target site.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	c := p.container

	url := NormalizeURL(opts.URL)
	if url == "" {
		return nil, fmt.Errorf("target URL is required")
	}

	leadCount := opts.LeadCount
	if leadCount <= 0 {
		leadCount = c.Config.Leads.Count
	}

	p.logger.Info("Analyzing website", zap.String("url", url))

	// Scrape: static first, headless browser as the fallback for
	// JavaScript-rendered sites.
	bundle, screenshot, err := p.scrape(ctx, url)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Successfully scraped", zap.String("business_name", bundle.BusinessName))

	run, err := c.Exporter.NewRun(bundle.BusinessName)
	if err != nil {
		return nil, err
	}
	if err := run.SaveRawScrape(bundle); err != nil {
		p.logger.Warn("Failed to save raw scrape artifact", zap.Error(err))
	}
	if err := run.SaveScreenshot(screenshot); err != nil {
		p.logger.Warn("Failed to save screenshot", zap.Error(err))
	}

	// Quick local industry identification, logged before any LLM work.
	cls := c.Profiles.Classify(bundle)
	p.logger.Info("Industry identification",
		zap.String("industry", cls.Industry),
		zap.Float64("confidence", cls.Confidence))

	// Structured extraction feeds the analysis prompt.
	structured, err := c.Extractor.Extract(ctx, bundle)
	if err != nil {
		p.logger.Warn("Structured extraction skipped", zap.Error(err))
	} else {
		bundle.StructuredData = structured
		p.logger.Info("Extracted structured business information")
	}
	if err := run.SaveCompiledContent(c.Extractor.CompileContent(bundle)); err != nil {
		p.logger.Warn("Failed to save compiled content artifact", zap.Error(err))
	}

	p.logger.Info("Analyzing business model and potential leads...")
	analysisJSON := c.Analyzer.Analyze(ctx, bundle)

	// Attach the bundle so the synthesizer can run the local industry path.
	enriched := analysisJSON
	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(analysisJSON), &analysis); err == nil {
		p.logger.Info("Business analysis parsed",
			zap.String("business_type", analysis.BusinessType),
			zap.Strings("lead_types", analysis.LeadType))
		analysis.Bundle = bundle
		if data, err := json.Marshal(analysis); err == nil {
			enriched = string(data)
		}
	} else {
		p.logger.Warn("Error parsing analysis JSON, using raw output")
	}

	p.logger.Info("Generating potential leads...")
	leads := c.Synthesizer.Synthesize(ctx, enriched, leadCount)
	p.logger.Info("Generated potential leads", zap.Int("count", len(leads)))

	if _, err := run.SaveLeads(leads); err != nil {
		return nil, err
	}

	result := &RunResult{
		Bundle:         bundle,
		Classification: cls,
		AnalysisJSON:   analysisJSON,
		Leads:          leads,
		RunDir:         run.Dir,
	}

	if opts.LeadsOnly {
		p.logger.Info("Lead generation completed", zap.String("output_dir", run.Dir))
		return result, nil
	}

	p.logger.Info("Generating personalized emails...")
	drafts, sent, err := p.composeAndSend(ctx, run, bundle, leads, opts.SendEmails)
	result.Drafts = drafts
	result.EmailsSent = sent
	if err != nil {
		return result, err
	}

	if opts.SendEmails && !c.Sender.IsEnabled() {
		p.logger.Warn("Email sending skipped - SMTP credentials not configured")
	}

	p.logger.Info("Lead generation and email drafting completed",
		zap.String("output_dir", run.Dir),
		zap.Int("emails_sent", result.EmailsSent))

	return result, nil
}

// Compose redrafts emails for the leads of an earlier run without
// rescraping or resynthesizing. The run's scrape capture, when present,
// supplies the business context.
func (p *Pipeline) Compose(ctx context.Context, opts ComposeOptions) (*RunResult, error) {
	c := p.container

	run, err := c.Exporter.OpenRun(opts.Dir)
	if err != nil {
		return nil, err
	}

	leads, err := run.LoadLeads()
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, fmt.Errorf("no leads found in %s", run.Dir)
	}

	bundle, err := run.LoadRawScrape()
	if err != nil {
		p.logger.Warn("No scrape capture in run directory, drafting without business context",
			zap.Error(err))
		bundle = nil
	}

	p.logger.Info("Composing emails for existing leads",
		zap.String("run_dir", run.Dir),
		zap.Int("count", len(leads)))

	result := &RunResult{
		Bundle: bundle,
		Leads:  leads,
		RunDir: run.Dir,
	}

	drafts, sent, err := p.composeAndSend(ctx, run, bundle, leads, opts.SendEmails)
	result.Drafts = drafts
	result.EmailsSent = sent
	if err != nil {
		return result, err
	}

	if opts.SendEmails && !c.Sender.IsEnabled() {
		p.logger.Warn("Email sending skipped - SMTP credentials not configured")
	}

	p.logger.Info("Email drafting completed",
		zap.String("output_dir", run.Dir),
		zap.Int("emails_sent", result.EmailsSent))

	return result, nil
}

// composeAndSend drafts one email per lead, saves each draft into the run
// directory, and optionally sends it. Send failures are logged, not fatal;
// only context cancellation stops the loop.
func (p *Pipeline) composeAndSend(ctx context.Context, run *export.Run, bundle *domain.ContentBundle, leads []domain.Lead, send bool) ([]domain.EmailDraft, int, error) {
	c := p.container

	drafts := make([]domain.EmailDraft, 0, len(leads))
	sent := 0
	for i, lead := range leads {
		draft := c.Composer.Compose(ctx, bundle, lead)
		drafts = append(drafts, draft)

		if _, err := run.SaveEmail(i+1, draft); err != nil {
			p.logger.Error("Failed to save email draft",
				zap.String("lead", lead.Name),
				zap.Error(err))
			continue
		}

		if send && c.Sender.IsEnabled() {
			if err := c.Sender.Send(draft); err != nil {
				p.logger.Error("Error sending email",
					zap.String("to", draft.Recipient),
					zap.Error(err))
			} else {
				sent++
				// Pace outgoing mail to stay under provider rate limits
				select {
				case <-ctx.Done():
					return drafts, sent, ctx.Err()
				case <-time.After(c.Config.Mail.SendDelay):
				}
			}
		}
	}

	return drafts, sent, nil
}

func (p *Pipeline) scrape(ctx context.Context, url string) (*domain.ContentBundle, []byte, error) {
	c := p.container

	bundle, err := c.Scraper.Scrape(ctx, url)
	if err == nil {
		return bundle, nil, nil
	}

	p.logger.Warn("Static scraping failed, trying dynamic", zap.Error(err))

	browserResult, browserErr := c.Browser.Scrape(ctx, url)
	if browserErr != nil {
		p.logger.Error("All scraping attempts failed",
			zap.Error(err),
			zap.NamedError("browser_error", browserErr))
		return nil, nil, fmt.Errorf("all scraping attempts failed: %w", browserErr)
	}

	return browserResult.Bundle, browserResult.Screenshot, nil
}
