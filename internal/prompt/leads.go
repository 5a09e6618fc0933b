package prompt

import "fmt"

// LeadsPromptVars holds variables for the lead generation prompt
type LeadsPromptVars struct {
	Count        int
	BusinessType string
	LeadTypes    string
}

// BuildLeadsPrompt builds the synthetic lead generation prompt
func BuildLeadsPrompt(vars LeadsPromptVars) string {
	return fmt.Sprintf(`Generate %d synthetic leads (potential partners/customers) for a %s
that needs to connect with %s.

For each lead, provide:
1. A realistic full name
2. A professional email address
3. A brief description of their business/profile (specific to their industry)
4. Why they'd be interested in this partnership (specific value they would get)

Format as JSON: {
    "leads": [
        {
            "name": "Full Name",
            "email": "email@domain.com",
            "description": "Brief description",
            "relevance": "Why they'd be interested"
        }
    ]
}`, vars.Count, vars.BusinessType, vars.LeadTypes)
}
