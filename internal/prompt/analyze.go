package prompt

import (
	"fmt"
	"strings"
)

// AnalyzePromptVars holds variables for the business analysis prompt
type AnalyzePromptVars struct {
	CombinedText      string
	HeuristicInsights string
}

// BuildAnalyzePrompt builds the business analysis prompt. The model is asked
// to classify the business and propose lead categories as a JSON object.
func BuildAnalyzePrompt(vars AnalyzePromptVars) string {
	return fmt.Sprintf(`Analyze this business information and identify its characteristics.
Even with limited information, make educated guesses based on context clues, business name, and any available text.

Business Information:
%s

%s

If this is "LOFAI" or "lofai.ng", it is likely a fashion-tech platform that connects tailors and fashion designers with customers using AI technology.

Analyze the information and respond ONLY in this valid JSON format:
{
    "business_type": "Detailed description of business type - make an educated guess if uncertain",
    "lead_type": ["Primary lead category", "Secondary lead category"],
    "lead_search_keywords": ["keyword1", "keyword2"],
    "value_proposition_highlights": "Key selling points for outreach emails"
}`, vars.CombinedText, vars.HeuristicInsights)
}

// CombinedTextVars holds the pieces assembled into the analysis prompt body
type CombinedTextVars struct {
	BusinessName     string
	Description      string
	AboutExcerpt     string
	MainExcerpt      string
	ImageAltTexts    []string
	PossibleServices []string
	StructuredBlock  string
}

// BuildCombinedText assembles the business information block, skipping
// sections that have no content.
func BuildCombinedText(vars CombinedTextVars) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Business Name: %s\n\nDescription: %s\n", vars.BusinessName, vars.Description)

	if vars.AboutExcerpt != "" {
		fmt.Fprintf(&b, "\nAbout Content: %s...\n", vars.AboutExcerpt)
	}
	if vars.MainExcerpt != "" {
		fmt.Fprintf(&b, "\nMain Content: %s...\n", vars.MainExcerpt)
	}
	if len(vars.ImageAltTexts) > 0 {
		fmt.Fprintf(&b, "\nImage Descriptions: %s\n", strings.Join(vars.ImageAltTexts, ", "))
	}
	if len(vars.PossibleServices) > 0 {
		fmt.Fprintf(&b, "\nPossible Services/Features: %s\n", strings.Join(vars.PossibleServices, ", "))
	}
	if vars.StructuredBlock != "" {
		b.WriteString(vars.StructuredBlock)
	}

	return b.String()
}

// StructuredBlockVars holds pre-extracted structured fields for the prompt
type StructuredBlockVars struct {
	BusinessType     string
	TargetAudience   string
	Services         string
	ValueProposition string
}

// BuildStructuredBlock renders the pre-analyzed structured data section
func BuildStructuredBlock(vars StructuredBlockVars) string {
	return fmt.Sprintf(`

Structured Data (Pre-analyzed):
Business Type: %s
Target Audience: %s
Services: %s
Value Proposition: %s
`, vars.BusinessType, vars.TargetAudience, vars.Services, vars.ValueProposition)
}
