package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"leadagent/internal/constants"
)

type Config struct {
	OpenAI  OpenAIConfig
	Gemini  GeminiConfig
	Mail    MailConfig
	Scraper ScraperConfig
	Leads   LeadsConfig
	Output  OutputConfig
	Logging LoggingConfig
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type MailConfig struct {
	User        string
	Password    string
	SMTPHost    string
	SMTPPort    int
	SMTPSSLPort int
	SendDelay   time.Duration
}

type ScraperConfig struct {
	Timeout    time.Duration
	MaxRetries int
	Headless   bool
}

type LeadsConfig struct {
	Count int
}

type OutputConfig struct {
	Dir string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EnableFallback: getEnvBool("GEMINI_ENABLE_FALLBACK", true),
		},
		Mail: MailConfig{
			User:        getEnv("GMAIL_USER", ""),
			Password:    getEnv("GMAIL_PASSWORD", ""),
			SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:    getEnvInt("SMTP_PORT", 587),
			SMTPSSLPort: getEnvInt("SMTP_SSL_PORT", 465),
			SendDelay:   time.Duration(getEnvInt("MAIL_SEND_DELAY_SECONDS", int(constants.MailConfig.SendDelay/time.Second))) * time.Second,
		},
		Scraper: ScraperConfig{
			Timeout:    time.Duration(getEnvInt("SCRAPER_TIMEOUT_SECONDS", int(constants.ScraperConfig.RequestTimeout/time.Second))) * time.Second,
			MaxRetries: getEnvInt("SCRAPER_MAX_RETRIES", constants.ScraperConfig.MaxRetries),
			Headless:   getEnvBool("SCRAPER_HEADLESS", true),
		},
		Leads: LeadsConfig{
			Count: getEnvInt("LEAD_COUNT", constants.LeadConfig.DefaultCount),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "output"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Leads.Count <= 0 {
		return fmt.Errorf("LEAD_COUNT must be positive")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	return nil
}

// MailConfigured reports whether SMTP credentials are present. Sending is
// optional; drafts are still produced without them.
func (c *Config) MailConfigured() bool {
	return c.Mail.User != "" && c.Mail.Password != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
