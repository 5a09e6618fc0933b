package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"go.uber.org/zap"

	"leadagent/internal/domain"
	"leadagent/internal/industry"
)

func newTestSynthesizer(seed int64) *SynthesizerService {
	return NewSynthesizerService(nil, industry.DefaultProfiles(), rand.New(rand.NewSource(seed)), zap.NewNop())
}

func TestSynthesizeUnparseableAnalysisSniffsFashion(t *testing.T) {
	s := newTestSynthesizer(1)

	leads := s.Synthesize(context.Background(), "the LOFAI site is a fashion platform, not JSON at all", 3)

	if len(leads) != 3 {
		t.Fatalf("got %d leads, want 3", len(leads))
	}
	if leads[0].Name != "Emma Johnson" {
		t.Errorf("leads[0].Name = %q, want the fashion fallback tier", leads[0].Name)
	}
}

func TestSynthesizeUnparseableAnalysisDefaultsToGeneral(t *testing.T) {
	s := newTestSynthesizer(1)

	leads := s.Synthesize(context.Background(), "plumbing services around town", 3)

	if len(leads) != 3 {
		t.Fatalf("got %d leads, want 3", len(leads))
	}
	if leads[0].Name != "Robert Garcia" {
		t.Errorf("leads[0].Name = %q, want the general fallback tier", leads[0].Name)
	}
}

func TestSynthesizeEmptyAnalysisUsesGeneralTier(t *testing.T) {
	s := newTestSynthesizer(1)

	leads := s.Synthesize(context.Background(), "{}", 3)

	if len(leads) != 3 {
		t.Fatalf("got %d leads, want 3", len(leads))
	}
	if leads[1].Name != "Lisa Patel" {
		t.Errorf("leads[1].Name = %q, want the general fallback tier", leads[1].Name)
	}
}

func TestSynthesizeDegradedBusinessTypeSniffsKeywords(t *testing.T) {
	s := newTestSynthesizer(1)

	analysis, err := json.Marshal(domain.Analysis{
		BusinessType: "Unknown - please check website directly",
		LeadType:     []string{"Clothing Brands"},
	})
	if err != nil {
		t.Fatal(err)
	}

	leads := s.Synthesize(context.Background(), string(analysis), 3)

	if len(leads) != 3 {
		t.Fatalf("got %d leads, want 3", len(leads))
	}
	if leads[2].Name != "Sophia Rodriguez" {
		t.Errorf("leads[2].Name = %q, want the fashion fallback tier", leads[2].Name)
	}
}

func TestSynthesizeWithBundleUsesIndustryTable(t *testing.T) {
	s := newTestSynthesizer(7)

	analysis, err := json.Marshal(domain.Analysis{
		BusinessType: "Fashion-Tech Platform",
		LeadType:     []string{"Fashion Designers"},
		Bundle: &domain.ContentBundle{
			BusinessName: "LOFAI",
			Description:  "AI-powered fashion platform connecting tailors with clients",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	leads := s.Synthesize(context.Background(), string(analysis), 4)

	if len(leads) != 4 {
		t.Fatalf("got %d leads, want 4", len(leads))
	}
	for i, lead := range leads {
		if lead.Name == "" || !strings.Contains(lead.Email, "@") {
			t.Errorf("leads[%d] has empty fields: %+v", i, lead)
		}
		if lead.Email == "emmaj@fashionstudio.com" {
			t.Errorf("leads[%d] came from the static tier, want the industry table", i)
		}
	}
}

func TestSynthesizePadsShortBatches(t *testing.T) {
	s := newTestSynthesizer(1)

	// The fashion tier only has three static leads; the batch contract
	// still requires five.
	leads := s.Synthesize(context.Background(), "handmade fashion and tailoring", 5)

	if len(leads) != 5 {
		t.Fatalf("got %d leads, want 5", len(leads))
	}
	for i, lead := range leads {
		if lead.Email == "" {
			t.Errorf("leads[%d] has no email", i)
		}
	}
}

func TestFitCountPadsFromServicePool(t *testing.T) {
	s := newTestSynthesizer(3)

	leads := s.fitCount(nil, 4)
	if len(leads) != 4 {
		t.Fatalf("got %d leads, want 4", len(leads))
	}

	trimmed := s.fitCount(leads, 2)
	if len(trimmed) != 2 {
		t.Fatalf("got %d leads, want 2", len(trimmed))
	}
}

func TestFallbackTierReturnsCopy(t *testing.T) {
	s := newTestSynthesizer(1)

	leads := s.fallbackTier("tech")
	leads[0].Name = "mutated"

	if fallbackLeads["tech"][0].Name != "David Park" {
		t.Error("fallback tier data was mutated through the returned slice")
	}
}

func TestSniffBusinessType(t *testing.T) {
	cases := []struct {
		businessType string
		analysisStr  string
		want         string
	}{
		{"custom clothing label", "", "fashion"},
		{"software consultancy", "", "tech"},
		{"bakery", "", "general"},
		{"bakery", "the lofai platform", "fashion"},
	}

	for _, tc := range cases {
		if got := sniffBusinessType(tc.businessType, tc.analysisStr); got != tc.want {
			t.Errorf("sniffBusinessType(%q, %q) = %q, want %q", tc.businessType, tc.analysisStr, got, tc.want)
		}
	}
}

func TestInferLeadTypes(t *testing.T) {
	if got := inferLeadTypes("apparel retailer", ""); !strings.Contains(got, "Fashion Designers") {
		t.Errorf("apparel: got %q", got)
	}
	if got := inferLeadTypes("ai startup", ""); !strings.Contains(got, "Software Developers") {
		t.Errorf("ai: got %q", got)
	}
	if got := inferLeadTypes("online shop", ""); !strings.Contains(got, "Product Suppliers") {
		t.Errorf("shop: got %q", got)
	}
	if got := inferLeadTypes("law firm", ""); !strings.Contains(got, "Business Owners") {
		t.Errorf("default: got %q", got)
	}
}
