package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"leadagent/internal/domain"
	"leadagent/internal/industry"
	"leadagent/internal/util"
)

type fakeProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(_ context.Context, _ string, _ ModelPreset, _ *GenerateOptions) (ProviderResult, error) {
	f.calls++
	if f.err != nil {
		return ProviderResult{}, f.err
	}
	return ProviderResult{Text: f.text, Model: "fake-model"}, nil
}

func (f *fakeProvider) Ping(context.Context) bool { return f.err == nil }

func newFakeManager(primary, fallback TextProvider) *ModelManager {
	return &ModelManager{
		primary:        primary,
		fallback:       fallback,
		logger:         zap.NewNop(),
		circuitBreaker: util.NewCircuitBreaker(100, time.Minute, time.Hour, nil, zap.NewNop()),
	}
}

func TestGenerateTextUsesFallbackWhenPrimaryFails(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("primary down")}
	fallback := &fakeProvider{name: "fallback", text: `{"ok": true}`}
	mm := newFakeManager(primary, fallback)

	text, metadata, err := mm.GenerateText(context.Background(), "prompt", PresetBalanced, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != `{"ok": true}` {
		t.Errorf("text = %q", text)
	}
	if !metadata.UsedFallback || metadata.Provider != "fallback" {
		t.Errorf("metadata = %+v, want fallback provenance", metadata)
	}
}

func TestGenerateTextFailsWhenAllProvidersFail(t *testing.T) {
	mm := newFakeManager(
		&fakeProvider{name: "primary", err: errors.New("primary down")},
		&fakeProvider{name: "fallback", err: errors.New("fallback down")},
	)

	if _, _, err := mm.GenerateText(context.Background(), "prompt", PresetBalanced, nil); err == nil {
		t.Fatal("expected an error when every provider fails")
	}
}

func TestGenerateTextStripsFencedResponses(t *testing.T) {
	mm := newFakeManager(&fakeProvider{name: "primary", text: "```json\n{\"a\": 1}\n```"}, nil)

	text, _, err := mm.GenerateText(context.Background(), "prompt", PresetPrecise, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != `{"a": 1}` {
		t.Errorf("text = %q, want the fences stripped", text)
	}
}

func TestAnalyzeWithFailingModelFallsBack(t *testing.T) {
	mm := newFakeManager(&fakeProvider{name: "primary", err: errors.New("down")}, nil)
	a := NewAnalyzerService(mm, zap.NewNop())

	raw := a.Analyze(context.Background(), &domain.ContentBundle{
		BusinessName: "Acme",
		MainContent:  "some business text",
	})

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		t.Fatalf("fallback analysis is not valid JSON: %v", err)
	}
	if analysis.BusinessType != "Unknown" {
		t.Errorf("BusinessType = %q, want Unknown", analysis.BusinessType)
	}
}

func TestAnalyzeRecoversNoisyResponse(t *testing.T) {
	mm := newFakeManager(&fakeProvider{
		name: "primary",
		text: `Here is the analysis: {"business_type": "Tailoring", "lead_type": ["Tailors"]}`,
	}, nil)
	a := NewAnalyzerService(mm, zap.NewNop())

	raw := a.Analyze(context.Background(), &domain.ContentBundle{
		BusinessName: "Acme",
		MainContent:  "some business text",
	})

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		t.Fatalf("recovered analysis is not valid JSON: %v", err)
	}
	if analysis.BusinessType != "Tailoring" {
		t.Errorf("BusinessType = %q, want Tailoring", analysis.BusinessType)
	}
}

func TestAnalyzeNilBundleFallsBack(t *testing.T) {
	mm := newFakeManager(&fakeProvider{name: "primary", err: errors.New("down")}, nil)
	a := NewAnalyzerService(mm, zap.NewNop())

	raw := a.Analyze(context.Background(), nil)

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		t.Fatalf("nil-bundle analysis is not valid JSON: %v", err)
	}
	if analysis.BusinessType != "Unknown" {
		t.Errorf("BusinessType = %q, want Unknown", analysis.BusinessType)
	}
}

func TestExtractWithFailingModelGuesses(t *testing.T) {
	mm := newFakeManager(&fakeProvider{name: "primary", err: errors.New("down")}, nil)
	e := NewExtractorService(mm, zap.NewNop())

	bundle := &domain.ContentBundle{
		BusinessName: "Acme",
		MainContent:  strings.Repeat("business content ", 20),
	}

	raw, err := e.Extract(context.Background(), bundle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sd domain.StructuredData
	if err := json.Unmarshal([]byte(raw), &sd); err != nil {
		t.Fatalf("guess payload is not valid JSON: %v", err)
	}
	if !strings.HasPrefix(sd.BusinessType, "GUESS: ") {
		t.Errorf("BusinessType = %q, want a GUESS placeholder", sd.BusinessType)
	}
}

func TestSynthesizeLLMPathUsesModelLeads(t *testing.T) {
	envelope := `{"leads": [
		{"name": "Ada Smith", "email": "ada@example.com", "description": "Designer", "relevance": "Wants reach"},
		{"name": "Tom Lee", "email": "tom@example.com", "description": "Retailer", "relevance": "Wants stock"}
	]}`
	mm := newFakeManager(&fakeProvider{name: "primary", text: envelope}, nil)
	s := NewSynthesizerService(mm, industry.DefaultProfiles(), rand.New(rand.NewSource(1)), zap.NewNop())

	analysis, err := json.Marshal(domain.Analysis{
		BusinessType: "Fashion Retail",
		LeadType:     []string{"Fashion Retailers"},
	})
	if err != nil {
		t.Fatal(err)
	}

	leads := s.Synthesize(context.Background(), string(analysis), 2)

	if len(leads) != 2 {
		t.Fatalf("got %d leads, want 2", len(leads))
	}
	if leads[0].Name != "Ada Smith" || leads[1].Name != "Tom Lee" {
		t.Errorf("leads did not come from the model: %+v", leads)
	}
}

func TestSynthesizeLLMFailureFallsBackToTier(t *testing.T) {
	mm := newFakeManager(&fakeProvider{name: "primary", err: errors.New("down")}, nil)
	s := NewSynthesizerService(mm, industry.DefaultProfiles(), rand.New(rand.NewSource(1)), zap.NewNop())

	analysis, err := json.Marshal(domain.Analysis{
		BusinessType: "Software consultancy",
		LeadType:     []string{"Technology Companies"},
	})
	if err != nil {
		t.Fatal(err)
	}

	leads := s.Synthesize(context.Background(), string(analysis), 3)

	if len(leads) != 3 {
		t.Fatalf("got %d leads, want 3", len(leads))
	}
	if leads[0].Name != "David Park" {
		t.Errorf("leads[0].Name = %q, want the tech fallback tier", leads[0].Name)
	}
}

func TestComposeUsesModelBody(t *testing.T) {
	mm := newFakeManager(&fakeProvider{name: "primary", text: "Dear Emma,\n\nHello from us."}, nil)
	c := NewComposerService(mm, industry.DefaultProfiles(), rand.New(rand.NewSource(1)), zap.NewNop())

	draft := c.Compose(context.Background(), &domain.ContentBundle{BusinessName: "Acme"}, domain.Lead{
		Name:  "Emma Johnson",
		Email: "emma@example.com",
	})

	if draft.Recipient != "emma@example.com" {
		t.Errorf("Recipient = %q", draft.Recipient)
	}
	if draft.Subject != "Partnership Opportunity with Acme" {
		t.Errorf("Subject = %q", draft.Subject)
	}
	if draft.Body != "Dear Emma,\n\nHello from us." {
		t.Errorf("Body = %q", draft.Body)
	}
}

func TestComposeFallsBackToTemplate(t *testing.T) {
	mm := newFakeManager(&fakeProvider{name: "primary", err: errors.New("down")}, nil)
	c := NewComposerService(mm, industry.DefaultProfiles(), rand.New(rand.NewSource(1)), zap.NewNop())

	draft := c.Compose(context.Background(), &domain.ContentBundle{BusinessName: "Acme"}, domain.Lead{
		Name:        "Emma Johnson",
		Email:       "emma@example.com",
		Description: "Owner of a boutique fashion studio",
		Relevance:   "Looking to expand reach",
	})

	if !strings.Contains(draft.Body, "Emma Johnson") {
		t.Errorf("template body must name the lead: %q", draft.Body)
	}
	if !strings.Contains(draft.Body, "Acme") {
		t.Errorf("template body must name the business: %q", draft.Body)
	}
}

func TestComposeNilBundleDraftsGenericEmail(t *testing.T) {
	mm := newFakeManager(&fakeProvider{name: "primary", err: errors.New("down")}, nil)
	c := NewComposerService(mm, industry.DefaultProfiles(), rand.New(rand.NewSource(1)), zap.NewNop())

	draft := c.Compose(context.Background(), nil, domain.Lead{
		Name:  "Robert Garcia",
		Email: "robert@example.com",
	})

	if draft.Subject != "Partnership Opportunity with our company" {
		t.Errorf("Subject = %q", draft.Subject)
	}
	if !strings.Contains(draft.Body, "Robert Garcia") {
		t.Errorf("template body must name the lead: %q", draft.Body)
	}
}
