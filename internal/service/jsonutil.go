package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonObjectRegex    = regexp.MustCompile(`\{.+\}`)
	leadsEnvelopeRegex = regexp.MustCompile(`\{.*"leads":\s*\[.*\].*\}`)
)

// recoverJSONObject pulls the outermost {...} span out of a response that has
// extra prose around the JSON payload. Newlines are flattened first because
// models often pretty-print the object. Returns false when no valid object
// can be recovered.
func recoverJSONObject(text string) (string, bool) {
	flattened := strings.ReplaceAll(text, "\n", " ")
	match := jsonObjectRegex.FindString(flattened)
	if match == "" {
		return "", false
	}
	if !json.Valid([]byte(match)) {
		return "", false
	}
	return match, true
}

// recoverLeadsEnvelope looks for a {"leads": [...]} envelope embedded in
// surrounding text and returns the raw envelope JSON.
func recoverLeadsEnvelope(text string) (string, bool) {
	flattened := strings.ReplaceAll(text, "\n", " ")
	match := leadsEnvelopeRegex.FindString(flattened)
	if match == "" {
		return "", false
	}
	if !json.Valid([]byte(match)) {
		return "", false
	}
	return match, true
}
