package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GMAIL_USER", "")
	t.Setenv("GMAIL_PASSWORD", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Errorf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
	if cfg.Mail.SMTPHost != "smtp.gmail.com" || cfg.Mail.SMTPPort != 587 || cfg.Mail.SMTPSSLPort != 465 {
		t.Errorf("unexpected mail defaults: %+v", cfg.Mail)
	}
	if cfg.Mail.SendDelay != time.Second {
		t.Errorf("SendDelay = %v, want 1s", cfg.Mail.SendDelay)
	}
	if cfg.Scraper.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Scraper.MaxRetries)
	}
	if cfg.Leads.Count != 3 {
		t.Errorf("Leads.Count = %d, want 3", cfg.Leads.Count)
	}
	if cfg.Output.Dir != "output" {
		t.Errorf("Output.Dir = %q, want output", cfg.Output.Dir)
	}
	if cfg.MailConfigured() {
		t.Error("mail should not be configured without credentials")
	}
}

func TestLoadRequiresOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error without an OpenAI key")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LEAD_COUNT", "5")
	t.Setenv("GEMINI_ENABLE_FALLBACK", "false")
	t.Setenv("GMAIL_USER", "me@gmail.com")
	t.Setenv("GMAIL_PASSWORD", "app-pass")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Leads.Count != 5 {
		t.Errorf("Leads.Count = %d, want 5", cfg.Leads.Count)
	}
	if cfg.Gemini.EnableFallback {
		t.Error("fallback override not applied")
	}
	if !cfg.MailConfigured() {
		t.Error("mail should be configured with credentials")
	}
}

func TestLoadRejectsBadLeadCount(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LEAD_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-positive lead count")
	}
}
