package domain

// Classification is the result of matching a content bundle against the
// industry table. Confidence is a derived 0-10 score, not a probability; it
// only has to be monotonic enough to drive the "trust industry leads above
// 6.0" policy in the synthesizer.
type Classification struct {
	Industry   string
	Confidence float64
}

// Analysis is the parsed form of the analyzer's JSON output.
type Analysis struct {
	BusinessType               string   `json:"business_type"`
	LeadType                   []string `json:"lead_type"`
	LeadSearchKeywords         []string `json:"lead_search_keywords"`
	ValuePropositionHighlights string   `json:"value_proposition_highlights"`

	// Bundle is attached by the pipeline after analysis so the synthesizer
	// can run the local industry-table path without a second scrape.
	Bundle *ContentBundle `json:"business_data,omitempty"`
}
