package constants

import "time"

var ScraperConfig = struct {
	MaxRetries     int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
	BrowserTimeout time.Duration
	AboutTimeout   time.Duration
	SettleDelay    time.Duration
	UserAgent      string
}{
	MaxRetries:     3,
	RetryDelay:     2 * time.Second,
	RequestTimeout: 10 * time.Second,
	BrowserTimeout: 30 * time.Second,
	AboutTimeout:   15 * time.Second,
	SettleDelay:    3 * time.Second,
	UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
}

var ContentLimits = struct {
	MainContent    int // cap for scraped main/about text
	PromptExcerpt  int // per-field excerpt inside analyzer prompts
	ExtractExcerpt int // per-field excerpt in the extraction prompt
	MinAnalyzable  int // below this the bundle is "insufficient data"
	MaxImageAlts   int
	MaxServices    int
	MaxEmailWords  int
}{
	MainContent:    5000,
	PromptExcerpt:  1000,
	ExtractExcerpt: 1500,
	MinAnalyzable:  100,
	MaxImageAlts:   10,
	MaxServices:    10,
	MaxEmailWords:  150,
}

var LeadConfig = struct {
	DefaultCount       int
	MaxTopUpLeads      int
	IndustryConfidence float64 // above this the industry-table leads stand alone
}{
	DefaultCount:       3,
	MaxTopUpLeads:      2,
	IndustryConfidence: 6.0,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    1 * time.Hour,
	HealthCheckInterval: 10 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}

var MailConfig = struct {
	SendDelay time.Duration // fixed pause between successive sends
}{
	SendDelay: 1 * time.Second,
}
