package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"leadagent/internal/constants"
	"leadagent/internal/domain"
	"leadagent/internal/prompt"
	"leadagent/internal/util"
	agenterrors "leadagent/pkg/errors"
)

// ExtractorService condenses raw scraped text into a structured business
// profile via the LLM. The result is a JSON string, not a struct: downstream
// consumers tolerate malformed payloads, so validity stays a runtime
// condition rather than a type guarantee.
type ExtractorService struct {
	models *ModelManager
	logger *zap.Logger
}

func NewExtractorService(models *ModelManager, logger *zap.Logger) *ExtractorService {
	return &ExtractorService{
		models: models,
		logger: logger,
	}
}

// Extract returns structured-profile JSON for the bundle. It degrades rather
// than fails: LLM errors and unparseable responses map to placeholder
// profiles that keep the pipeline moving.
func (e *ExtractorService) Extract(ctx context.Context, bundle *domain.ContentBundle) (string, error) {
	if bundle.IsEmpty() {
		return "", agenterrors.NewInsufficientInputError("no scraped content to extract from", 0)
	}

	allContent := e.CompileContent(bundle)

	if len(allContent) < constants.ContentLimits.MinAnalyzable {
		e.logger.Warn("Scraped content too short for extraction",
			zap.Int("length", len(allContent)),
			zap.Int("minimum", constants.ContentLimits.MinAnalyzable))
		return marshalStructured(domain.StructuredData{
			BusinessName:     bundle.BusinessName,
			BusinessType:     "Could not determine - insufficient data",
			TargetAudience:   "Could not determine - insufficient data",
			Services:         []string{"Could not determine - insufficient data"},
			ValueProposition: "Could not determine - insufficient data",
		}), nil
	}

	promptText := prompt.BuildExtractPrompt(prompt.ExtractPromptVars{AllContent: allContent})

	text, metadata, err := e.models.GenerateText(ctx, promptText, PresetPrecise, &GenerateOptions{JSONMode: true})
	if err != nil {
		e.logger.Error("Structured extraction call failed", zap.Error(err))
		return marshalStructured(domain.StructuredData{
			BusinessName:     bundle.BusinessName,
			BusinessType:     "GUESS: Based on name, possibly a fashion or AI platform",
			TargetAudience:   "GUESS: Fashion consumers or businesses",
			Services:         []string{"GUESS: Fashion services", "GUESS: AI-assisted recommendations"},
			ValueProposition: "GUESS: Integration of fashion and AI technology",
		}), nil
	}

	if json.Valid([]byte(text)) {
		e.logger.Debug("Structured extraction succeeded",
			zap.String("provider", metadata.Provider),
			zap.Int("length", len(text)))
		return text, nil
	}

	if recovered, ok := recoverJSONObject(text); ok {
		e.logger.Warn("Recovered JSON object from noisy extraction response",
			zap.String("preview", util.TruncateString(text, 120)))
		return recovered, nil
	}

	e.logger.Error("Extraction response is not valid JSON",
		zap.Error(agenterrors.NewMalformedOutputError("extraction response is not valid JSON", util.TruncateString(text, 200))))
	return marshalStructured(domain.StructuredData{
		BusinessName:     bundle.BusinessName,
		BusinessType:     "Error in parsing LLM response",
		TargetAudience:   "Error in parsing LLM response",
		Services:         []string{"Error in parsing LLM response"},
		ValueProposition: "Error in parsing LLM response",
	}), nil
}

// CompileContent flattens the bundle into the text block fed to the
// extraction prompt. Exported so the pipeline can save it as a debug
// artifact alongside the raw scrape.
func (e *ExtractorService) CompileContent(bundle *domain.ContentBundle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Business Name: %s\n\n", valueOrNA(bundle.BusinessName))
	fmt.Fprintf(&b, "Meta Description: %s\n\n", valueOrNA(bundle.Description))

	if len(bundle.ImageAltTexts) > 0 {
		fmt.Fprintf(&b, "Image Descriptions: %s\n\n", strings.Join(bundle.ImageAltTexts, ", "))
	}
	if len(bundle.PossibleServices) > 0 {
		fmt.Fprintf(&b, "Possible Services/Features: %s\n\n", strings.Join(bundle.PossibleServices, ", "))
	}
	if bundle.AboutContent != "" {
		fmt.Fprintf(&b, "About Content: %s\n\n", excerpt(bundle.AboutContent, constants.ContentLimits.ExtractExcerpt))
	}
	if bundle.MainContent != "" {
		fmt.Fprintf(&b, "Main Content: %s\n\n", excerpt(bundle.MainContent, constants.ContentLimits.ExtractExcerpt))
	}

	return b.String()
}

func valueOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func marshalStructured(sd domain.StructuredData) string {
	data, err := json.Marshal(sd)
	if err != nil {
		return "{}"
	}
	return string(data)
}
