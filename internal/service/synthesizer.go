package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"leadagent/internal/constants"
	"leadagent/internal/domain"
	"leadagent/internal/industry"
	"leadagent/internal/prompt"
	"leadagent/internal/util"
	agenterrors "leadagent/pkg/errors"
)

// Static fallback leads per industry tier. The last line of defense: used
// when neither the industry table nor the model produced anything usable.
var fallbackLeads = map[string][]domain.Lead{
	"fashion": {
		{
			Name:        "Emma Johnson",
			Email:       "emmaj@fashionstudio.com",
			Description: "Owner of a boutique fashion studio specializing in custom designs",
			Relevance:   "Looking to expand reach and connect with more clients through digital platforms",
		},
		{
			Name:        "Michael Chen",
			Email:       "mchen@elitedesigns.com",
			Description: "Lead designer at Elite Designs, a premium clothing label",
			Relevance:   "Interested in technology platforms that can showcase designs to a broader audience",
		},
		{
			Name:        "Sophia Rodriguez",
			Email:       "sophia@tailormade.co",
			Description: "Master tailor with 15 years of experience in bespoke clothing",
			Relevance:   "Seeking to expand client base beyond local market",
		},
	},
	"tech": {
		{
			Name:        "David Park",
			Email:       "dpark@innovatetech.com",
			Description: "CTO of InnovateTech, focusing on AI integration for businesses",
			Relevance:   "Looking for new technology partnerships to expand service offerings",
		},
		{
			Name:        "Sarah Wilson",
			Email:       "swilson@techsolutions.io",
			Description: "Founder of TechSolutions, a software development company",
			Relevance:   "Interested in AI tools that can enhance their existing applications",
		},
		{
			Name:        "James Thompson",
			Email:       "jthompson@digitaledge.net",
			Description: "Product Manager at Digital Edge, specializing in consumer applications",
			Relevance:   "Seeking technology partners to improve product capabilities",
		},
	},
	"general": {
		{
			Name:        "Robert Garcia",
			Email:       "rgarcia@businessgrowth.com",
			Description: "Business development consultant for small to medium businesses",
			Relevance:   "Helps clients find innovative solutions to grow their customer base",
		},
		{
			Name:        "Lisa Patel",
			Email:       "lpatel@marketingpro.com",
			Description: "Marketing Director specializing in digital strategy",
			Relevance:   "Always looking for new platforms to recommend to clients",
		},
		{
			Name:        "John Williams",
			Email:       "jwilliams@nextstepbusiness.com",
			Description: "Entrepreneur and angel investor in technology startups",
			Relevance:   "Interested in innovative business models and technology applications",
		},
	},
}

var (
	topUpFirstNames = []string{"John", "Jane", "Michael", "Sarah", "David", "Emily"}
	topUpLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones"}
)

// SynthesizerService turns a business analysis into a fixed-size batch of
// synthetic leads. Strategies are tried in order: the local industry table,
// keyword sniffers over degraded analyses, the LLM, and finally the static
// fallback tiers. The result always has exactly the requested length.
type SynthesizerService struct {
	models   *ModelManager
	profiles *industry.Profiles
	rng      *rand.Rand
	logger   *zap.Logger
}

func NewSynthesizerService(models *ModelManager, profiles *industry.Profiles, rng *rand.Rand, logger *zap.Logger) *SynthesizerService {
	return &SynthesizerService{
		models:   models,
		profiles: profiles,
		rng:      rng,
		logger:   logger,
	}
}

// Synthesize produces exactly count leads from an analysis JSON string.
func (s *SynthesizerService) Synthesize(ctx context.Context, analysisJSON string, count int) []domain.Lead {
	if count <= 0 {
		count = constants.LeadConfig.DefaultCount
	}

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(analysisJSON), &analysis); err != nil {
		s.logger.Warn("Analysis JSON unparseable, sniffing keywords from raw text", zap.Error(err))
		return s.fitCount(s.fallbackTier(sniffRawAnalysis(analysisJSON)), count)
	}

	if isEmptyAnalysis(analysis) {
		s.logger.Warn("Empty analysis, using general fallback leads")
		return s.fitCount(fallbackLeads["general"], count)
	}

	// The industry table runs first when the original bundle is attached:
	// it is deterministic, local, and free.
	if analysis.Bundle != nil {
		if leads, ok := s.industryLeads(analysis, count); ok {
			return s.fitCount(leads, count)
		}
	}

	businessType := strings.ToLower(analysis.BusinessType)
	analysisStr := strings.ToLower(analysisJSON)

	if businessType == "" || strings.Contains(businessType, "unknown") || strings.Contains(businessType, "insufficient") {
		tier := sniffDegradedAnalysis(analysisStr)
		s.logger.Info("Business type unusable, using fallback leads", zap.String("tier", tier))
		return s.fitCount(s.fallbackTier(tier), count)
	}

	leads := s.llmLeads(ctx, analysis, analysisStr, count)
	return s.fitCount(leads, count)
}

// industryLeads runs the local table path. Returns ok=false only on an
// unusable bundle so the caller can fall through to the keyword paths.
func (s *SynthesizerService) industryLeads(analysis domain.Analysis, count int) ([]domain.Lead, bool) {
	cls := s.profiles.Classify(analysis.Bundle)

	leads := s.profiles.GenerateLeads(cls.Industry, count, s.rng)
	if len(leads) == 0 {
		return nil, false
	}

	s.logger.Info("Generated industry-specific leads",
		zap.String("industry", cls.Industry),
		zap.Float64("confidence", cls.Confidence))

	if cls.Confidence > constants.LeadConfig.IndustryConfidence {
		return leads, true
	}

	// Low confidence: blend in generic leads derived from the analysis
	// categories before trimming back to count.
	topUp := analysis.LeadType
	if len(topUp) > constants.LeadConfig.MaxTopUpLeads {
		topUp = topUp[:constants.LeadConfig.MaxTopUpLeads]
	}
	for _, leadType := range topUp {
		fullName := pickString(s.rng, topUpFirstNames) + " " + pickString(s.rng, topUpLastNames)
		leads = append(leads, domain.Lead{
			Name:        fullName,
			Email:       strings.ReplaceAll(strings.ToLower(fullName), " ", ".") + "@example.com",
			Description: fmt.Sprintf("Professional in the %s industry", leadType),
			Relevance:   fmt.Sprintf("Looking to partner with businesses like yours in the %s sector", cls.Industry),
		})
	}

	if len(leads) > count {
		leads = leads[:count]
	}
	return leads, true
}

// llmLeads asks the model for leads and recovers from malformed responses.
func (s *SynthesizerService) llmLeads(ctx context.Context, analysis domain.Analysis, analysisStr string, count int) []domain.Lead {
	leadTypes := strings.Join(analysis.LeadType, ", ")
	lowerLeadTypes := strings.ToLower(leadTypes)

	if leadTypes == "" || strings.Contains(lowerLeadTypes, "unknown") || strings.Contains(lowerLeadTypes, "insufficient") {
		leadTypes = inferLeadTypes(strings.ToLower(analysis.BusinessType), analysisStr)
	}

	businessType := analysis.BusinessType
	if businessType == "" {
		businessType = "business"
	}

	promptText := prompt.BuildLeadsPrompt(prompt.LeadsPromptVars{
		Count:        count,
		BusinessType: businessType,
		LeadTypes:    leadTypes,
	})

	text, _, err := s.models.GenerateText(ctx, promptText, PresetCreative, &GenerateOptions{JSONMode: true})
	if err != nil {
		s.logger.Error("Lead generation call failed", zap.Error(err))
		return s.fallbackTier(sniffBusinessType(strings.ToLower(analysis.BusinessType), analysisStr))
	}

	var envelope struct {
		Leads []domain.Lead `json:"leads"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err == nil && len(envelope.Leads) > 0 {
		return envelope.Leads
	}

	if recovered, ok := recoverLeadsEnvelope(text); ok {
		if err := json.Unmarshal([]byte(recovered), &envelope); err == nil && len(envelope.Leads) > 0 {
			s.logger.Warn("Recovered leads envelope from noisy response")
			return envelope.Leads
		}
	}

	s.logger.Error("Lead response unparseable, using fallback leads",
		zap.Error(agenterrors.NewMalformedOutputError("lead response is not a valid leads envelope", util.TruncateString(text, 200))))
	return s.fallbackTier(sniffBusinessType(strings.ToLower(analysis.BusinessType), analysisStr))
}

// fitCount pads or trims leads to exactly count. Padding draws from the
// service-industry pool so the batch size contract always holds.
func (s *SynthesizerService) fitCount(leads []domain.Lead, count int) []domain.Lead {
	if len(leads) > count {
		return leads[:count]
	}
	for len(leads) < count {
		extra := s.profiles.GenerateLeads(industry.DefaultKey, count-len(leads), s.rng)
		leads = append(leads, extra...)
	}
	return leads
}

func (s *SynthesizerService) fallbackTier(tier string) []domain.Lead {
	leads, ok := fallbackLeads[tier]
	if !ok {
		leads = fallbackLeads["general"]
	}
	out := make([]domain.Lead, len(leads))
	copy(out, leads)
	return out
}

func isEmptyAnalysis(a domain.Analysis) bool {
	return a.BusinessType == "" && len(a.LeadType) == 0 &&
		len(a.LeadSearchKeywords) == 0 && a.ValuePropositionHighlights == "" && a.Bundle == nil
}

// sniffRawAnalysis picks a fallback tier from an unparseable analysis blob.
// Substring matching is intentional: the input is free text here.
func sniffRawAnalysis(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "lofai") || strings.Contains(lower, "fashion"):
		return "fashion"
	case strings.Contains(lower, "tech") || strings.Contains(lower, "software") || strings.Contains(lower, "ai"):
		return "tech"
	default:
		return "general"
	}
}

// sniffDegradedAnalysis picks a tier from a parsed-but-unusable analysis.
// Broader vocabulary than sniffRawAnalysis: the serialized analysis carries
// lead categories and keywords worth matching on.
func sniffDegradedAnalysis(analysisStr string) string {
	switch {
	case strings.Contains(analysisStr, "lofai") || strings.Contains(analysisStr, "fashion") ||
		strings.Contains(analysisStr, "clothing") || strings.Contains(analysisStr, "tailor"):
		return "fashion"
	case strings.Contains(analysisStr, "tech") || strings.Contains(analysisStr, "software") ||
		strings.Contains(analysisStr, "ai") || strings.Contains(analysisStr, "digital"):
		return "tech"
	default:
		return "general"
	}
}

func sniffBusinessType(businessType, analysisStr string) string {
	if strings.Contains(analysisStr, "lofai") {
		return "fashion"
	}
	switch {
	case strings.Contains(businessType, "fashion") || strings.Contains(businessType, "clothing") ||
		strings.Contains(businessType, "apparel"):
		return "fashion"
	case strings.Contains(businessType, "tech") || strings.Contains(businessType, "software") ||
		strings.Contains(businessType, "ai"):
		return "tech"
	default:
		return "general"
	}
}

func inferLeadTypes(businessType, analysisStr string) string {
	if strings.Contains(analysisStr, "lofai") {
		return "Fashion Designers, Tailors, Clothing Manufacturers"
	}
	switch {
	case strings.Contains(businessType, "fashion") || strings.Contains(businessType, "clothing") ||
		strings.Contains(businessType, "apparel"):
		return "Fashion Designers, Tailors, Clothing Brands"
	case strings.Contains(businessType, "tech") || strings.Contains(businessType, "software") ||
		strings.Contains(businessType, "ai"):
		return "Technology Companies, Software Developers, AI Specialists"
	case strings.Contains(businessType, "ecommerce") || strings.Contains(businessType, "retail") ||
		strings.Contains(businessType, "shop"):
		return "Product Suppliers, Brand Owners, Manufacturers"
	default:
		return "Business Owners, Service Providers"
	}
}

func pickString(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
