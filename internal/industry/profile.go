// Package industry holds the static industry knowledge table and the keyword
// classifier built on top of it. The table is assembled once at process start
// and is never mutated afterwards, so it can be shared freely.
package industry

import (
	"regexp"
	"strings"
)

// Profile describes one industry: the phrases that identify it, the lead
// categories worth targeting, and the vocabulary used to synthesize plausible
// lead identities.
type Profile struct {
	Key             string
	BusinessTypes   []string
	LeadCategories  []string
	ValueProps      []string
	SearchKeywords  []string
	DomainTemplates []string // placeholders: {name} {initial} {last} {biz}
	BusinessWords   []string

	keywordPatterns []*regexp.Regexp
	searchPatterns  []*regexp.Regexp
	keyPattern      *regexp.Regexp
}

// BrandOverride is a named, togglable scoring rule for one known brand whose
// site text defeats the generic keyword table. The numeric floors are load
// bearing: downstream lead selection keys off the resulting confidence.
type BrandOverride struct {
	Enabled bool
	Token   string
	Floors  map[string]float64
}

// Profiles is the immutable industry table plus its classification rules.
type Profiles struct {
	order []string
	byKey map[string]*Profile
	Brand BrandOverride
}

// DefaultKey is the universal fallback industry for unknown keys and
// unclassifiable input.
const DefaultKey = "service"

// defaultConfidence is returned when nothing in the table matches.
const defaultConfidence = 3.0

func wholeWord(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(phrase)) + `\b`)
}

// wordInflected matches the phrase as a whole word, optionally followed by a
// plural or gerund suffix. "tailor" catches "tailors" and "tailoring" but
// "expert" does not catch "expertise".
func wordInflected(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(phrase)) + `(?:s|es|ing)?\b`)
}

func newProfile(p Profile) *Profile {
	p.keywordPatterns = make([]*regexp.Regexp, len(p.BusinessTypes))
	for i, phrase := range p.BusinessTypes {
		p.keywordPatterns[i] = wholeWord(phrase)
	}
	p.searchPatterns = make([]*regexp.Regexp, len(p.SearchKeywords))
	for i, phrase := range p.SearchKeywords {
		p.searchPatterns[i] = wordInflected(phrase)
	}
	p.keyPattern = wholeWord(p.Key)
	return &p
}

// DefaultProfiles builds the built-in industry table. Iteration order is
// fixed so classification ties resolve deterministically.
func DefaultProfiles() *Profiles {
	profiles := []*Profile{
		newProfile(Profile{
			Key: "fashion",
			BusinessTypes: []string{
				"fashion platform", "clothing marketplace", "apparel", "fashion tech",
				"style platform", "clothing brand", "fashion design", "fashion retail",
			},
			LeadCategories: []string{
				"Fashion Designers", "Tailors", "Clothing Manufacturers", "Fashion Retailers",
				"Textile Suppliers", "Fashion Influencers", "Boutique Owners",
			},
			ValueProps: []string{
				"Expand your customer reach through our fashion platform",
				"Connect directly with customers seeking custom clothing",
				"Showcase your designs to a larger audience",
				"Reduce marketing costs while increasing sales",
			},
			SearchKeywords: []string{
				"fashion designer", "tailor", "bespoke clothing", "custom garments",
				"clothing manufacturer", "fashion retailer", "boutique owner", "textile supplier",
			},
			DomainTemplates: []string{
				"{name}@{biz}design.com", "{name}@{biz}fashion.com",
				"{name}@{biz}style.co", "{initial}{last}@{biz}fashion.com",
			},
			BusinessWords: []string{
				"Style", "Trend", "Stitch", "Fashion", "Thread",
				"Design", "Apparel", "Mode", "Vogue", "Textile",
			},
		}),
		newProfile(Profile{
			Key: "tech",
			BusinessTypes: []string{
				"tech platform", "software", "saas", "technology", "app", "digital platform",
				"ai", "artificial intelligence", "machine learning", "analytics",
			},
			LeadCategories: []string{
				"Software Developers", "Tech Startups", "IT Consultants", "Data Scientists",
				"Product Managers", "UX/UI Designers", "Technology Companies",
			},
			ValueProps: []string{
				"Integrate cutting-edge technology into your business",
				"Enhance your product capabilities with our AI solutions",
				"Scale your technology infrastructure efficiently",
				"Access advanced analytics to drive decision making",
			},
			SearchKeywords: []string{
				"software developer", "tech startup", "it consultant", "technology company",
				"product manager", "data scientist", "ai specialist", "tech entrepreneur",
			},
			DomainTemplates: []string{
				"{name}@{biz}tech.com", "{name}@{biz}digital.io",
				"{name}@{biz}solutions.co", "{initial}{last}@{biz}tech.io",
			},
			BusinessWords: []string{
				"Tech", "Byte", "Digital", "Smart", "Code",
				"Cyber", "Data", "Logic", "Cloud", "Pixel",
			},
		}),
		newProfile(Profile{
			Key: "ecommerce",
			BusinessTypes: []string{
				"ecommerce", "online store", "e-commerce", "online marketplace", "digital store",
				"online retail", "webshop", "online sales",
			},
			LeadCategories: []string{
				"Product Suppliers", "Online Retailers", "Dropshippers", "Brand Owners",
				"Logistics Companies", "Marketplace Sellers", "E-commerce Entrepreneurs",
			},
			ValueProps: []string{
				"Expand your online sales channels",
				"Reach a wider customer base with our platform",
				"Simplify your e-commerce operations",
				"Increase your online visibility and sales",
			},
			SearchKeywords: []string{
				"online retailer", "product supplier", "e-commerce business", "dropshipper",
				"brand owner", "marketplace seller", "e-commerce entrepreneur",
			},
			DomainTemplates: []string{
				"{name}@{biz}retail.com", "{name}@{biz}store.com",
				"{name}@{biz}market.co", "{initial}{last}@{biz}shop.com",
			},
			BusinessWords: []string{
				"Market", "Store", "Shop", "Commerce", "Retail",
				"Trade", "Deal", "Buy", "Seller", "Mart",
			},
		}),
		newProfile(Profile{
			Key: "service",
			BusinessTypes: []string{
				"service provider", "consulting", "professional service", "agency",
				"freelance", "service marketplace", "consulting firm",
			},
			LeadCategories: []string{
				"Consultants", "Freelancers", "Service Providers", "Agencies",
				"Professional Service Firms", "Experts", "Specialists",
			},
			ValueProps: []string{
				"Connect with clients seeking your specific expertise",
				"Expand your service offering through our platform",
				"Find qualified clients more efficiently",
				"Grow your service business with minimal marketing",
			},
			SearchKeywords: []string{
				"consultant", "freelancer", "service provider", "agency",
				"professional service", "expert", "specialist", "service firm",
			},
			DomainTemplates: []string{
				"{name}@{biz}consulting.com", "{name}@{biz}services.com",
				"{name}@{biz}experts.co", "{initial}{last}@{biz}group.com",
			},
			BusinessWords: []string{
				"Consult", "Advisor", "Expert", "Pro", "Service",
				"Solution", "Group", "Partner", "Team", "Specialist",
			},
		}),
	}

	p := &Profiles{
		byKey: make(map[string]*Profile, len(profiles)),
		Brand: BrandOverride{
			Enabled: true,
			Token:   "lofai",
			Floors: map[string]float64{
				"fashion": 8.5,
				"tech":    6.0,
			},
		},
	}
	for _, profile := range profiles {
		p.order = append(p.order, profile.Key)
		p.byKey[profile.Key] = profile
	}
	return p
}

// Lookup returns the profile for key, or the "service" profile when the key
// is unknown. It never returns nil.
func (p *Profiles) Lookup(key string) *Profile {
	if profile, ok := p.byKey[strings.ToLower(key)]; ok {
		return profile
	}
	return p.byKey[DefaultKey]
}

// Keys returns the industry keys in table order.
func (p *Profiles) Keys() []string {
	return p.order
}
