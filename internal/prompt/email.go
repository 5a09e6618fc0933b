package prompt

import "fmt"

// EmailPromptVars holds variables for the outreach email prompt
type EmailPromptVars struct {
	BusinessName    string
	LeadName        string
	LeadDescription string
	LeadRelevance   string
	BrandContext    string
	BusinessType    string
	ValueProp       string
	Industry        string
	MaxWords        int
}

// BuildEmailPrompt builds the cold outreach email composition prompt
func BuildEmailPrompt(vars EmailPromptVars) string {
	return fmt.Sprintf(`Write a personalized cold outreach email:

FROM: A representative of %s
TO: %s, who is %s

%s

Business type: %s
Value proposition: %s
Industry: %s

The email should:
1. Be brief (max %d words)
2. Mention why %s specifically would benefit from this partnership
3. Include a clear call-to-action
4. Be professional but conversational in tone
5. Reference specific aspects of the recipient's business in relation to our offering

Key information about the recipient: %s

Format response as plain text email only, no explanation, include a professional signature.`,
		vars.BusinessName, vars.LeadName, vars.LeadDescription,
		vars.BrandContext,
		vars.BusinessType, vars.ValueProp, vars.Industry,
		vars.MaxWords, vars.LeadName,
		vars.LeadRelevance)
}
