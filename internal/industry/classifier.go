package industry

import (
	"strings"

	"leadagent/internal/domain"
)

// Classify scores the bundle against every industry profile and returns the
// best match. It never fails: missing fields are skipped and input that
// matches nothing degrades to the low-confidence service default.
func (p *Profiles) Classify(bundle *domain.ContentBundle) domain.Classification {
	return p.ClassifyText(haystack(bundle))
}

// ClassifyText classifies an already-assembled text blob. Exposed separately
// because the synthesizer sometimes only has a raw string to work with.
func (p *Profiles) ClassifyText(text string) domain.Classification {
	scores := p.ScoreText(text)

	best := domain.Classification{Industry: DefaultKey, Confidence: defaultConfidence}
	found := false
	// Stable argmax over table order; strictly-greater keeps ties on the
	// earlier entry.
	for _, key := range p.order {
		score, ok := scores[key]
		if !ok {
			continue
		}
		if !found || score > best.Confidence {
			best = domain.Classification{Industry: key, Confidence: score}
			found = true
		}
	}
	return best
}

// ScoreText computes the per-industry confidence scores for a text blob.
// Industries that match nothing are absent from the result.
func (p *Profiles) ScoreText(text string) map[string]float64 {
	text = strings.ToLower(text)
	scores := make(map[string]float64)

	for _, key := range p.order {
		profile := p.byKey[key]
		matches := 0
		for _, pattern := range profile.keywordPatterns {
			if pattern.MatchString(text) {
				matches++
			}
		}
		// Direct mention of the industry name counts extra.
		if profile.keyPattern.MatchString(text) {
			matches += 3
		}
		// Search keywords are a weaker signal, matched with their inflected
		// forms so "tailor" also catches "tailors" and "tailoring".
		for _, pattern := range profile.searchPatterns {
			if pattern.MatchString(text) {
				matches++
			}
		}
		if matches > 0 {
			score := float64(matches) / float64(len(profile.BusinessTypes)) * 10
			// The key bonus and search hits can push the ratio past the
			// scale; confidence stays within [0, 10].
			if score > 10 {
				score = 10
			}
			scores[key] = score
		}
	}

	if p.Brand.Enabled && p.Brand.Token != "" && strings.Contains(text, p.Brand.Token) {
		for key, floor := range p.Brand.Floors {
			if scores[key] < floor {
				scores[key] = floor
			}
		}
	}

	return scores
}

// haystack concatenates every text field of the bundle, including any
// pre-extracted structured business type and value proposition.
func haystack(bundle *domain.ContentBundle) string {
	if bundle == nil {
		return ""
	}
	parts := []string{
		bundle.BusinessName,
		bundle.Description,
		bundle.MainContent,
		bundle.AboutContent,
	}
	if sd := bundle.ParseStructuredData(); sd != nil {
		parts = append(parts, sd.BusinessType, sd.ValueProposition)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
