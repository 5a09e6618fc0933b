package service

import (
	"encoding/json"
	"testing"
)

func TestRecoverJSONObjectFromProse(t *testing.T) {
	text := "Sure, here is the analysis you asked for:\n{\"business_type\": \"Tailoring\"}\nLet me know if you need anything else."

	recovered, ok := recoverJSONObject(text)
	if !ok {
		t.Fatal("expected recovery to succeed")
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(recovered), &parsed); err != nil {
		t.Fatalf("recovered payload is not valid JSON: %v", err)
	}
	if parsed["business_type"] != "Tailoring" {
		t.Errorf("business_type = %q, want Tailoring", parsed["business_type"])
	}
}

func TestRecoverJSONObjectFlattensPrettyPrinted(t *testing.T) {
	text := "{\n  \"business_type\": \"Fashion\",\n  \"value_proposition_highlights\": \"AI matching\"\n}"

	recovered, ok := recoverJSONObject(text)
	if !ok {
		t.Fatal("expected recovery to succeed")
	}
	if !json.Valid([]byte(recovered)) {
		t.Errorf("recovered payload is not valid JSON: %q", recovered)
	}
}

func TestRecoverJSONObjectRejectsNonJSON(t *testing.T) {
	if _, ok := recoverJSONObject("no braces at all"); ok {
		t.Error("expected no recovery without an object")
	}
	if _, ok := recoverJSONObject("{not valid json}"); ok {
		t.Error("expected no recovery from an invalid object")
	}
}

func TestRecoverLeadsEnvelope(t *testing.T) {
	text := "Here are your leads:\n{\"leads\": [{\"name\": \"Emma\", \"email\": \"e@x.com\"}]}\nEnjoy!"

	recovered, ok := recoverLeadsEnvelope(text)
	if !ok {
		t.Fatal("expected envelope recovery to succeed")
	}

	var envelope struct {
		Leads []struct {
			Name string `json:"name"`
		} `json:"leads"`
	}
	if err := json.Unmarshal([]byte(recovered), &envelope); err != nil {
		t.Fatalf("recovered envelope is not valid JSON: %v", err)
	}
	if len(envelope.Leads) != 1 || envelope.Leads[0].Name != "Emma" {
		t.Errorf("unexpected envelope contents: %+v", envelope)
	}
}

func TestRecoverLeadsEnvelopeRequiresLeadsKey(t *testing.T) {
	if _, ok := recoverLeadsEnvelope(`{"contacts": [{"name": "Emma"}]}`); ok {
		t.Error("expected no recovery without a leads key")
	}
}
