package prompt

import "fmt"

// ExtractPromptVars holds variables for the structured extraction prompt
type ExtractPromptVars struct {
	AllContent string
}

// BuildExtractPrompt builds the prompt that condenses raw scraped text into
// a structured business profile.
func BuildExtractPrompt(vars ExtractPromptVars) string {
	return fmt.Sprintf(`Extract structured information from this website text. Even if information is limited,
make your best educated guess based on the available clues:

%s

Extract and return ONLY a JSON object with these fields:
1. business_name: The name of the business
2. business_type: The type/category of business (e.g., e-commerce, SaaS, marketplace)
3. target_audience: Who the business serves (e.g., "small businesses", "fashion designers")
4. services: List of main products or services offered
5. value_proposition: What makes this business unique

If you can't determine something with certainty, make an educated guess based on context clues and clearly mark it with "GUESS: ".
Return ONLY valid JSON with no explanation.`, vars.AllContent)
}
