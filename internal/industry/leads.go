package industry

import (
	"fmt"
	"math/rand"
	"strings"

	"leadagent/internal/domain"
)

var firstNames = []string{
	"Emma", "James", "Sophia", "Michael", "Olivia", "William", "Ava", "John",
	"Isabella", "Robert", "Charlotte", "David", "Amelia", "Daniel", "Harper",
	"Joseph", "Evelyn", "Thomas", "Abigail", "Richard", "Emily", "Charles",
	"Elizabeth", "Christopher", "Sofia", "Matthew", "Avery", "Anthony", "Ella",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
}

// Per-category description templates. Categories without an entry fall back
// to the generic "{category} with expertise in {industry} solutions" string.
var categoryDescriptions = map[string][]func(rng *rand.Rand) string{
	"Fashion Designers": {
		func(*rand.Rand) string {
			return "Independent fashion designer with a focus on sustainable clothing"
		},
		func(*rand.Rand) string {
			return "Designer and founder of a boutique fashion label specializing in custom pieces"
		},
		func(rng *rand.Rand) string {
			return "Fashion designer with expertise in " +
				pick(rng, []string{"evening wear", "casual wear", "bridal", "formal wear"})
		},
	},
	"Tailors": {
		func(rng *rand.Rand) string {
			return fmt.Sprintf("Master tailor with over %d years of experience in bespoke clothing", 5+rng.Intn(16))
		},
		func(rng *rand.Rand) string {
			return "Owner of a custom tailoring business specializing in " +
				pick(rng, []string{"suits", "formal wear", "alterations", "wedding attire"})
		},
		func(rng *rand.Rand) string {
			return "Tailor with expertise in " +
				pick(rng, []string{"mens suits", "womens formal wear", "traditional garments", "denim"})
		},
	},
	"Software Developers": {
		func(rng *rand.Rand) string {
			return "Senior software developer specializing in " +
				pick(rng, []string{"mobile apps", "web development", "cloud solutions", "AI applications"})
		},
		func(rng *rand.Rand) string {
			return "Lead developer at a tech startup focusing on " +
				pick(rng, []string{"fintech", "healthtech", "edtech", "e-commerce"}) + " solutions"
		},
		func(rng *rand.Rand) string {
			return "Full-stack developer with expertise in " +
				pick(rng, []string{"React", "Node.js", "Python", "Java"})
		},
	},
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

// GenerateLeads synthesizes count lead profiles for the given industry from
// the static vocabulary pools. It makes no network calls. Field choices are
// randomized through rng so callers can seed for reproducibility.
func (p *Profiles) GenerateLeads(key string, count int, rng *rand.Rand) []domain.Lead {
	if count < 0 {
		count = 0
	}

	profile := p.Lookup(key)
	industryName := profile.Key

	leads := make([]domain.Lead, 0, count)
	for i := 0; i < count; i++ {
		category := pick(rng, profile.LeadCategories)
		first := pick(rng, firstNames)
		last := pick(rng, lastNames)

		biz := pick(rng, profile.BusinessWords)
		if rng.Float64() > 0.5 {
			biz += strings.ToLower(pick(rng, profile.BusinessWords))
		}

		email := expandDomainTemplate(pick(rng, profile.DomainTemplates), first, last, biz)

		description := fmt.Sprintf("%s with expertise in %s solutions", category, industryName)
		if templates, ok := categoryDescriptions[category]; ok {
			description = templates[rng.Intn(len(templates))](rng)
		}

		leads = append(leads, domain.Lead{
			Name:        first + " " + last,
			Email:       email,
			Description: description,
			Relevance:   pick(rng, profile.ValueProps),
		})
	}
	return leads
}

func expandDomainTemplate(template, first, last, biz string) string {
	r := strings.NewReplacer(
		"{name}", strings.ToLower(first),
		"{initial}", strings.ToLower(first[:1]),
		"{last}", strings.ToLower(last),
		"{biz}", strings.ToLower(biz),
	)
	return r.Replace(template)
}
