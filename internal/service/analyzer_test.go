package service

import (
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"

	"leadagent/internal/domain"
)

func TestBuildHeuristicInsightsScoresKeywords(t *testing.T) {
	a := NewAnalyzerService(nil, zap.NewNop())

	bundle := &domain.ContentBundle{
		BusinessName: "Acme Tailoring",
		Description:  "Custom clothing for every occasion",
		MainContent:  "We design garments using modern software tools.",
	}

	insights := a.buildHeuristicInsights(bundle, bundle.BusinessName)

	if !strings.Contains(insights, "Fashion-related terms detected") {
		t.Errorf("expected fashion terms in insights, got %q", insights)
	}
	if !strings.Contains(insights, "Technology-related terms detected") {
		t.Errorf("expected tech terms in insights, got %q", insights)
	}
}

func TestBuildHeuristicInsightsWholeWordsOnly(t *testing.T) {
	a := NewAnalyzerService(nil, zap.NewNop())

	// "maintain" and "repair" contain "ai" as a substring but not as a word.
	bundle := &domain.ContentBundle{
		BusinessName: "Hometown Plumbing",
		Description:  "We maintain and repair pipes",
	}

	insights := a.buildHeuristicInsights(bundle, bundle.BusinessName)
	if strings.Contains(insights, "Technology-related") {
		t.Errorf("substring matches should not count, got %q", insights)
	}
}

func TestBuildHeuristicInsightsBrandNameAnalysis(t *testing.T) {
	a := NewAnalyzerService(nil, zap.NewNop())

	bundle := &domain.ContentBundle{BusinessName: "LOFAI"}
	insights := a.buildHeuristicInsights(bundle, bundle.BusinessName)

	if !strings.Contains(insights, "Business Name Analysis") {
		t.Errorf("expected brand name analysis, got %q", insights)
	}
}

func TestParseFailureFallbackIsValidAnalysisJSON(t *testing.T) {
	a := NewAnalyzerService(nil, zap.NewNop())

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(a.parseFailureFallback("Some Shop")), &analysis); err != nil {
		t.Fatalf("fallback is not valid JSON: %v", err)
	}

	if !strings.Contains(analysis.BusinessType, "Unknown") {
		t.Errorf("BusinessType = %q, want an Unknown placeholder", analysis.BusinessType)
	}
	if len(analysis.LeadType) == 0 {
		t.Error("fallback must propose lead categories")
	}
}

func TestFallbacksPreferBrandProfile(t *testing.T) {
	a := NewAnalyzerService(nil, zap.NewNop())

	for _, raw := range []string{a.parseFailureFallback("LOFAI Fashion"), a.callFailureFallback("lofai.ng")} {
		var analysis domain.Analysis
		if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
			t.Fatalf("brand fallback is not valid JSON: %v", err)
		}
		if !strings.Contains(analysis.BusinessType, "Fashion-Tech") {
			t.Errorf("BusinessType = %q, want the fashion-tech brand profile", analysis.BusinessType)
		}
	}
}

func TestBuildCombinedTextIncludesStructuredBlock(t *testing.T) {
	a := NewAnalyzerService(nil, zap.NewNop())

	bundle := &domain.ContentBundle{
		BusinessName:   "Acme",
		Description:    "desc",
		MainContent:    "main text",
		StructuredData: `{"business_type": "Tailoring", "value_proposition": "Custom fits"}`,
	}

	combined := a.buildCombinedText(bundle, "Acme")

	if !strings.Contains(combined, "Tailoring") {
		t.Errorf("expected structured business type in combined text, got %q", combined)
	}
	if !strings.Contains(combined, "Custom fits") {
		t.Errorf("expected structured value proposition in combined text, got %q", combined)
	}
}

func TestBuildCombinedTextSkipsMalformedStructuredData(t *testing.T) {
	a := NewAnalyzerService(nil, zap.NewNop())

	bundle := &domain.ContentBundle{
		BusinessName:   "Acme",
		MainContent:    "main text",
		StructuredData: "{not json",
	}

	combined := a.buildCombinedText(bundle, "Acme")
	if !strings.Contains(combined, "main text") {
		t.Errorf("expected main content in combined text, got %q", combined)
	}
}
