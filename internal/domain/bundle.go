package domain

import (
	"encoding/json"
	"strings"
)

// ContentBundle is the snapshot of text extracted from a business website.
// It is immutable once captured; every analysis stage reads it by value and
// never writes back.
type ContentBundle struct {
	BusinessName     string   `json:"business_name"`
	Description      string   `json:"description"`
	MainContent      string   `json:"main_content"`
	AboutContent     string   `json:"about_content,omitempty"`
	AboutLinks       []string `json:"about_links,omitempty"`
	ImageAltTexts    []string `json:"images_alt_text,omitempty"`
	PossibleServices []string `json:"possible_services,omitempty"`

	// StructuredData holds the raw JSON produced by the LLM extraction pass.
	// Kept as a string on purpose: "is this valid JSON" is a recoverable
	// condition at every consumer, not a type error.
	StructuredData string `json:"structured_data,omitempty"`
}

// StructuredData is the parsed form of ContentBundle.StructuredData.
type StructuredData struct {
	BusinessName     string   `json:"business_name"`
	BusinessType     string   `json:"business_type"`
	TargetAudience   string   `json:"target_audience"`
	Services         []string `json:"services"`
	ValueProposition string   `json:"value_proposition"`
}

// ParseStructuredData decodes the embedded structured-data payload. A missing
// or malformed payload yields nil with no error; callers treat that as
// "no structured data", matching the tolerant consumers downstream.
func (b *ContentBundle) ParseStructuredData() *StructuredData {
	if b == nil || strings.TrimSpace(b.StructuredData) == "" {
		return nil
	}
	var sd StructuredData
	if err := json.Unmarshal([]byte(b.StructuredData), &sd); err != nil {
		return nil
	}
	return &sd
}

// IsEmpty reports whether the bundle carries no analyzable text at all.
func (b *ContentBundle) IsEmpty() bool {
	if b == nil {
		return true
	}
	return strings.TrimSpace(b.BusinessName) == "" &&
		strings.TrimSpace(b.Description) == "" &&
		strings.TrimSpace(b.MainContent) == "" &&
		strings.TrimSpace(b.AboutContent) == ""
}
