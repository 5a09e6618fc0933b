package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"leadagent/internal/constants"
	"leadagent/internal/domain"
	"leadagent/internal/prompt"
	"leadagent/internal/util"
)

var (
	fashionIndicators = compileIndicators([]string{
		"fashion", "clothing", "apparel", "wear", "tailor", "designer", "outfit", "garment", "style",
	})
	techIndicators = compileIndicators([]string{
		"ai", "tech", "technology", "digital", "software", "app", "platform", "automation",
	})
)

func compileIndicators(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return patterns
}

// AnalyzerService runs the LLM business analysis with keyword heuristics
// folded into the prompt. It is total: every failure path maps to a
// hardcoded analysis JSON so the pipeline never stalls here.
type AnalyzerService struct {
	models *ModelManager
	logger *zap.Logger
}

func NewAnalyzerService(models *ModelManager, logger *zap.Logger) *AnalyzerService {
	return &AnalyzerService{
		models: models,
		logger: logger,
	}
}

// Analyze classifies the business and proposes lead categories. Returns an
// analysis JSON string matching domain.Analysis.
func (a *AnalyzerService) Analyze(ctx context.Context, bundle *domain.ContentBundle) string {
	if bundle == nil {
		bundle = &domain.ContentBundle{}
	}
	businessName := bundle.BusinessName
	if strings.TrimSpace(businessName) == "" {
		businessName = "Unknown Business"
	}

	combinedText := a.buildCombinedText(bundle, businessName)
	insights := a.buildHeuristicInsights(bundle, businessName)

	promptText := prompt.BuildAnalyzePrompt(prompt.AnalyzePromptVars{
		CombinedText:      combinedText,
		HeuristicInsights: insights,
	})

	text, metadata, err := a.models.GenerateText(ctx, promptText, PresetBalanced, &GenerateOptions{JSONMode: true})
	if err != nil {
		a.logger.Error("Business analysis call failed", zap.Error(err))
		return a.callFailureFallback(businessName)
	}

	if json.Valid([]byte(text)) {
		a.logger.Info("Business analysis succeeded",
			zap.String("provider", metadata.Provider),
			zap.Bool("used_fallback", metadata.UsedFallback))
		return text
	}

	if recovered, ok := recoverJSONObject(text); ok {
		a.logger.Warn("Recovered JSON object from noisy analysis response",
			zap.String("preview", util.TruncateString(text, 120)))
		return recovered
	}

	a.logger.Error("Analysis response is not valid JSON",
		zap.String("preview", util.TruncateString(text, 200)))
	return a.parseFailureFallback(businessName)
}

func (a *AnalyzerService) buildCombinedText(bundle *domain.ContentBundle, businessName string) string {
	vars := prompt.CombinedTextVars{
		BusinessName:     businessName,
		Description:      bundle.Description,
		ImageAltTexts:    bundle.ImageAltTexts,
		PossibleServices: bundle.PossibleServices,
	}

	if bundle.AboutContent != "" {
		vars.AboutExcerpt = excerpt(bundle.AboutContent, constants.ContentLimits.PromptExcerpt)
	}
	if bundle.MainContent != "" {
		vars.MainExcerpt = excerpt(bundle.MainContent, constants.ContentLimits.PromptExcerpt)
	}

	if structured := bundle.ParseStructuredData(); structured != nil {
		vars.StructuredBlock = prompt.BuildStructuredBlock(prompt.StructuredBlockVars{
			BusinessType:     defaultUnknown(structured.BusinessType),
			TargetAudience:   defaultUnknown(structured.TargetAudience),
			Services:         defaultUnknown(strings.Join(structured.Services, ", ")),
			ValueProposition: defaultUnknown(structured.ValueProposition),
		})
	}

	return prompt.BuildCombinedText(vars)
}

// buildHeuristicInsights scores fashion and tech keyword hits and renders
// them as extra context for the model. Name and description hits weigh 3,
// body text hits weigh 1.
func (a *AnalyzerService) buildHeuristicInsights(bundle *domain.ContentBundle, businessName string) string {
	nameAndDesc := strings.ToLower(businessName) + "\n" + strings.ToLower(bundle.Description)
	bodyText := strings.ToLower(bundle.MainContent + " " + bundle.AboutContent)

	fashionScore := scoreIndicators(fashionIndicators, nameAndDesc, bodyText)
	techScore := scoreIndicators(techIndicators, nameAndDesc, bodyText)

	var b strings.Builder
	if fashionScore > 0 || techScore > 0 {
		b.WriteString("\nKeyword Analysis: ")
		if fashionScore > 0 {
			fmt.Fprintf(&b, "Fashion-related terms detected (%d occurrences). ", fashionScore)
		}
		if techScore > 0 {
			fmt.Fprintf(&b, "Technology-related terms detected (%d occurrences).", techScore)
		}
	}

	if strings.Contains(strings.ToLower(businessName), "lofai") {
		b.WriteString("\nBusiness Name Analysis: The name 'LOFAI' might suggest a combination of fashion (LO for 'look' or clothing) and AI (Artificial Intelligence), indicating a fashion-tech platform that likely connects fashion designers or tailors with customers using AI technology.")
	}

	return b.String()
}

func scoreIndicators(patterns []*regexp.Regexp, nameAndDesc, bodyText string) int {
	score := 0
	for _, p := range patterns {
		if p.MatchString(nameAndDesc) {
			score += 3
		}
		if p.MatchString(bodyText) {
			score++
		}
	}
	return score
}

// parseFailureFallback covers a reachable model whose output could not be
// parsed. The brand-specific profile wins when the name matches.
func (a *AnalyzerService) parseFailureFallback(businessName string) string {
	if strings.Contains(strings.ToLower(businessName), "lofai") {
		return marshalAnalysis(brandAnalysis())
	}
	return marshalAnalysis(domain.Analysis{
		BusinessType:               "Unknown - please check website directly",
		LeadType:                   []string{"Business Owners", "Service Providers"},
		LeadSearchKeywords:         []string{"business", "entrepreneur", "service provider"},
		ValuePropositionHighlights: "Unknown - please check website directly",
	})
}

// callFailureFallback covers an unreachable model.
func (a *AnalyzerService) callFailureFallback(businessName string) string {
	if strings.Contains(strings.ToLower(businessName), "lofai") {
		return marshalAnalysis(brandAnalysis())
	}
	return marshalAnalysis(domain.Analysis{
		BusinessType:               "Unknown",
		LeadType:                   []string{"General Business Owner"},
		LeadSearchKeywords:         []string{"business", "entrepreneur"},
		ValuePropositionHighlights: "Unknown",
	})
}

func brandAnalysis() domain.Analysis {
	return domain.Analysis{
		BusinessType:               "Fashion-Tech Platform combining clothing/fashion with AI technology",
		LeadType:                   []string{"Fashion Designers", "Tailors", "Clothing Manufacturers"},
		LeadSearchKeywords:         []string{"tailor", "fashion designer", "clothing maker", "garment producer"},
		ValuePropositionHighlights: "Connect with potential customers through an AI-powered platform specifically designed for fashion businesses",
	}
}

func marshalAnalysis(analysis domain.Analysis) string {
	data, err := json.Marshal(analysis)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func defaultUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
