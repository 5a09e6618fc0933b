package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"leadagent/internal/config"
	"leadagent/internal/export"
	"leadagent/internal/industry"
	"leadagent/internal/mail"
	"leadagent/internal/service"
)

// Container bundles assembled services for constructing the pipeline. All
// heavy-weight initialization (AI clients, SMTP, export layout) is performed
// in Build so the pipeline stays focused on orchestration.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Models      *service.ModelManager
	Profiles    *industry.Profiles
	Scraper     *service.ScraperService
	Browser     *service.BrowserService
	Extractor   *service.ExtractorService
	Analyzer    *service.AnalyzerService
	Synthesizer *service.SynthesizerService
	Composer    *service.ComposerService
	Sender      *mail.Sender
	Exporter    *export.Exporter
}

// Build assembles the full dependency graph.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	models, err := service.NewModelManager(ctx, service.ModelManagerConfig{
		OpenAIAPIKey:   cfg.OpenAI.APIKey,
		OpenAIModel:    cfg.OpenAI.Model,
		GeminiAPIKey:   cfg.Gemini.APIKey,
		GeminiModel:    cfg.Gemini.Model,
		EnableFallback: cfg.Gemini.EnableFallback,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}

	profiles := industry.DefaultProfiles()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Models:      models,
		Profiles:    profiles,
		Scraper:     service.NewScraperService(cfg.Scraper.Timeout, cfg.Scraper.MaxRetries, logger),
		Browser:     service.NewBrowserService(cfg.Scraper.Headless, 0, logger),
		Extractor:   service.NewExtractorService(models, logger),
		Analyzer:    service.NewAnalyzerService(models, logger),
		Synthesizer: service.NewSynthesizerService(models, profiles, rng, logger),
		Composer:    service.NewComposerService(models, profiles, rng, logger),
		Sender:      mail.NewSender(cfg.Mail, logger),
		Exporter:    export.NewExporter(cfg.Output.Dir, logger),
	}

	return c, nil
}

// NewPipeline builds a pipeline from the assembled services.
func (c *Container) NewPipeline() *Pipeline {
	return &Pipeline{
		container: c,
		logger:    c.Logger,
	}
}
