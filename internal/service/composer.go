package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"leadagent/internal/constants"
	"leadagent/internal/domain"
	"leadagent/internal/industry"
	"leadagent/internal/prompt"
)

var brandAudienceWords = []string{"tailor", "fashion", "design", "clothing", "apparel"}

// ComposerService writes the personalized outreach email for one lead.
// Like the other LLM stages it never fails outright: an unreachable model
// produces the fixed template instead.
type ComposerService struct {
	models   *ModelManager
	profiles *industry.Profiles
	rng      *rand.Rand
	logger   *zap.Logger
}

func NewComposerService(models *ModelManager, profiles *industry.Profiles, rng *rand.Rand, logger *zap.Logger) *ComposerService {
	return &ComposerService{
		models:   models,
		profiles: profiles,
		rng:      rng,
		logger:   logger,
	}
}

// Compose drafts the outreach email for the lead. The subject is always the
// deterministic partnership line; only the body involves the model.
func (c *ComposerService) Compose(ctx context.Context, bundle *domain.ContentBundle, lead domain.Lead) domain.EmailDraft {
	if bundle == nil {
		bundle = &domain.ContentBundle{}
	}
	businessName := bundle.BusinessName
	if strings.TrimSpace(businessName) == "" {
		businessName = "our company"
	}

	draft := domain.EmailDraft{
		Recipient: lead.Email,
		Subject:   fmt.Sprintf("Partnership Opportunity with %s", businessName),
	}

	isBrand := strings.Contains(strings.ToLower(businessName), "lofai")

	var businessType, valueProp string
	if structured := bundle.ParseStructuredData(); structured != nil {
		businessType = structured.BusinessType
		valueProp = structured.ValueProposition
	}

	brandContext := ""
	if isBrand {
		brandContext = "LOFAI is a fashion-tech platform that connects tailors and fashion designers with potential clients using AI technology."
		leadDesc := strings.ToLower(lead.Description)
		for _, word := range brandAudienceWords {
			if strings.Contains(leadDesc, word) {
				brandContext += " Our platform helps fashion professionals like you reach more clients and grow your business through our AI-powered matching system."
				break
			}
		}
	}

	cls := c.profiles.Classify(bundle)
	if valueProp == "" {
		profile := c.profiles.Lookup(cls.Industry)
		if len(profile.ValueProps) > 0 {
			valueProp = profile.ValueProps[c.rng.Intn(len(profile.ValueProps))]
		}
	}

	promptText := prompt.BuildEmailPrompt(prompt.EmailPromptVars{
		BusinessName:    businessName,
		LeadName:        lead.Name,
		LeadDescription: lead.Description,
		LeadRelevance:   lead.Relevance,
		BrandContext:    brandContext,
		BusinessType:    businessType,
		ValueProp:       valueProp,
		Industry:        cls.Industry,
		MaxWords:        constants.ContentLimits.MaxEmailWords,
	})

	body, metadata, err := c.models.GenerateText(ctx, promptText, PresetCreative, nil)
	if err != nil {
		c.logger.Error("Email composition call failed, using template",
			zap.String("lead", lead.Name),
			zap.Error(err))
		draft.Body = c.templateBody(businessName, lead, isBrand)
		return draft
	}

	c.logger.Debug("Email composed",
		zap.String("lead", lead.Name),
		zap.String("provider", metadata.Provider))

	draft.Body = strings.TrimSpace(body)
	return draft
}

// templateBody renders the fixed fallback email.
func (c *ComposerService) templateBody(businessName string, lead domain.Lead, isBrand bool) string {
	background := lead.Description
	if idx := strings.Index(background, ","); idx != -1 {
		background = background[:idx]
	}

	if isBrand {
		relevance := strings.ToLower(lead.Relevance)
		if !strings.HasSuffix(relevance, ".") {
			relevance += "."
		}
		return fmt.Sprintf(`Dear %s,

I hope this email finds you well. I am reaching out on behalf of LOFAI, a fashion-tech platform that connects talented fashion professionals like yourself with potential clients.

Given your background in %s, we believe our AI-powered platform could help you %s

Would you be available for a brief 15-minute call next week to discuss how LOFAI can help grow your business?

Looking forward to hearing from you.

Best regards,
Marketing Team
LOFAI
www.lofai.ng`, lead.Name, background, relevance)
	}

	return fmt.Sprintf(`Dear %s,

I hope this email finds you well. I am reaching out because we believe there's a great opportunity for collaboration between %s and your business.

Given your experience as %s, we think our services could help you achieve your goals and address your needs.

Would you be available for a quick call next week to explore potential synergies?

Looking forward to your response.

Best regards,
Marketing Team
%s`, lead.Name, businessName, background, businessName)
}
