package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"leadagent/internal/domain"
)

func TestNewRunCreatesSluggedDirectory(t *testing.T) {
	e := NewExporter(t.TempDir(), zap.NewNop())

	run, err := e.NewRun("LOFAI Fashion Ltd.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := filepath.Base(run.Dir)
	if !strings.HasPrefix(base, "lofai-fashion-ltd-") {
		t.Errorf("run dir = %q, want a lofai-fashion-ltd- prefix", base)
	}

	info, err := os.Stat(run.Dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("run dir was not created: %v", err)
	}
}

func TestNewRunFallsBackForUnusableNames(t *testing.T) {
	e := NewExporter(t.TempDir(), zap.NewNop())

	for _, name := range []string{"", "N/A"} {
		run, err := e.NewRun(name)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
		if !strings.HasPrefix(filepath.Base(run.Dir), "run-") {
			t.Errorf("run dir for %q = %q, want a run- prefix", name, filepath.Base(run.Dir))
		}
	}
}

func TestRunsDoNotClobberEachOther(t *testing.T) {
	e := NewExporter(t.TempDir(), zap.NewNop())

	first, err := e.NewRun("Acme")
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.NewRun("Acme")
	if err != nil {
		t.Fatal(err)
	}
	if first.Dir == second.Dir {
		t.Errorf("two runs share the directory %q", first.Dir)
	}
}

func TestSaveLeadsWritesIndentedJSON(t *testing.T) {
	e := NewExporter(t.TempDir(), zap.NewNop())
	run, err := e.NewRun("Acme")
	if err != nil {
		t.Fatal(err)
	}

	leads := []domain.Lead{
		{Name: "Emma Johnson", Email: "emma@example.com", Description: "Designer", Relevance: "Expanding reach"},
	}

	path, err := run.SaveLeads(leads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "leads.json" {
		t.Errorf("path = %q, want leads.json", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded []domain.Lead
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("leads file is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Email != "emma@example.com" {
		t.Errorf("unexpected decoded leads: %+v", decoded)
	}
}

func TestOpenRunRoundTripsArtifacts(t *testing.T) {
	e := NewExporter(t.TempDir(), zap.NewNop())
	run, err := e.NewRun("Acme")
	if err != nil {
		t.Fatal(err)
	}

	leads := []domain.Lead{
		{Name: "Emma Johnson", Email: "emma@example.com", Description: "Designer", Relevance: "Expanding reach"},
		{Name: "Robert Garcia", Email: "robert@example.com", Description: "Consultant", Relevance: "Growing clients"},
	}
	if _, err := run.SaveLeads(leads); err != nil {
		t.Fatal(err)
	}
	if err := run.SaveRawScrape(&domain.ContentBundle{BusinessName: "Acme", Description: "A company"}); err != nil {
		t.Fatal(err)
	}

	reopened, err := e.OpenRun(run.Dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := reopened.LoadLeads()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Email != "emma@example.com" || loaded[1].Name != "Robert Garcia" {
		t.Errorf("unexpected loaded leads: %+v", loaded)
	}

	bundle, err := reopened.LoadRawScrape()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.BusinessName != "Acme" || bundle.Description != "A company" {
		t.Errorf("unexpected loaded bundle: %+v", bundle)
	}
}

func TestOpenRunRejectsMissingDirectory(t *testing.T) {
	e := NewExporter(t.TempDir(), zap.NewNop())

	if _, err := e.OpenRun(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(t.TempDir(), "leads.json")
	if err := os.WriteFile(file, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := e.OpenRun(file); err == nil {
		t.Error("expected error for a file path")
	}
}

func TestLoadLeadsMissingFile(t *testing.T) {
	e := NewExporter(t.TempDir(), zap.NewNop())
	run, err := e.NewRun("Acme")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := run.LoadLeads(); err == nil {
		t.Error("expected error when leads.json is absent")
	}
	if _, err := run.LoadRawScrape(); err == nil {
		t.Error("expected error when raw_scrape.json is absent")
	}
}

func TestSaveEmailFormat(t *testing.T) {
	e := NewExporter(t.TempDir(), zap.NewNop())
	run, err := e.NewRun("Acme")
	if err != nil {
		t.Fatal(err)
	}

	draft := domain.EmailDraft{
		Recipient: "emma@example.com",
		Subject:   "Partnership Opportunity with Acme",
		Body:      "Dear Emma,\n\nHello.",
	}

	path, err := run.SaveEmail(1, draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "email_1.txt" {
		t.Errorf("path = %q, want email_1.txt", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := "To: emma@example.com\nSubject: Partnership Opportunity with Acme\n\nDear Emma,\n\nHello."
	if string(data) != want {
		t.Errorf("email file = %q, want %q", string(data), want)
	}
}

func TestSaveScreenshotSkipsEmptyCapture(t *testing.T) {
	e := NewExporter(t.TempDir(), zap.NewNop())
	run, err := e.NewRun("Acme")
	if err != nil {
		t.Fatal(err)
	}

	if err := run.SaveScreenshot(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(run.Dir, "screenshot.png")); !os.IsNotExist(err) {
		t.Error("empty capture should not create a screenshot file")
	}
}
