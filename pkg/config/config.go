package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"contactscraper/pkg/logger"
)

// Config holds all configuration for the scraper.
type Config struct {
	Web       WebConfig       `yaml:"web" json:"web"`
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`
	Logging   logger.Config   `yaml:"logging" json:"logging"`
}

// WebConfig controls the HTTP scrape path.
type WebConfig struct {
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
	MaxRetries     int           `yaml:"max_retries" json:"max_retries"`
	RateLimitDelay time.Duration `yaml:"rate_limit_delay" json:"rate_limit_delay"`
	// RequestsPerMinute switches pacing from a fixed delay to a
	// per-minute budget when positive.
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
	Concurrency       int `yaml:"concurrency" json:"concurrency"`
}

// InstagramConfig controls the browser-driven scrape path.
type InstagramConfig struct {
	Headless     bool          `yaml:"headless" json:"headless"`
	ScrollDelay  time.Duration `yaml:"scroll_delay" json:"scroll_delay"`
	LoginTimeout time.Duration `yaml:"login_timeout" json:"login_timeout"`
	MaxFollowers int           `yaml:"max_followers" json:"max_followers"`
	MaxFollowing int           `yaml:"max_following" json:"max_following"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Web: WebConfig{
			UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
			Timeout:        15 * time.Second,
			MaxRetries:     1,
			RateLimitDelay: time.Second,
			Concurrency:    10,
		},
		Instagram: InstagramConfig{
			Headless:     true,
			ScrollDelay:  2 * time.Second,
			LoginTimeout: 30 * time.Second,
			MaxFollowers: 1000,
			MaxFollowing: 500,
			UserAgent:    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Logging: logger.Config{
			Level: "info",
		},
	}
}

// LoadFromFile merges configuration from a YAML file. An empty path falls
// back to the standard locations; a missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func findConfigFile() string {
	locations := []string{
		".contactscraper.yaml",
		".contactscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "contactscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".contactscraper.yaml"),
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// LoadFromEnv overrides configuration from environment variables.
func (c *Config) LoadFromEnv() {
	if ua := os.Getenv("CONTACTSCRAPER_USER_AGENT"); ua != "" {
		c.Web.UserAgent = ua
	}
	if timeout := os.Getenv("CONTACTSCRAPER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			c.Web.Timeout = d
		}
	}
	if delay := os.Getenv("CONTACTSCRAPER_RATE_LIMIT_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d >= 0 {
			c.Web.RateLimitDelay = d
		}
	}
	if rpm := os.Getenv("CONTACTSCRAPER_REQUESTS_PER_MINUTE"); rpm != "" {
		var val int
		fmt.Sscanf(rpm, "%d", &val)
		if val > 0 {
			c.Web.RequestsPerMinute = val
		}
	}
	if conc := os.Getenv("CONTACTSCRAPER_CONCURRENCY"); conc != "" {
		var val int
		fmt.Sscanf(conc, "%d", &val)
		if val > 0 {
			c.Web.Concurrency = val
		}
	}
	if headless := os.Getenv("CONTACTSCRAPER_HEADLESS"); headless != "" {
		c.Instagram.Headless = strings.ToLower(headless) == "true"
	}
	if delay := os.Getenv("CONTACTSCRAPER_SCROLL_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d >= 0 {
			c.Instagram.ScrollDelay = d
		}
	}
	if level := os.Getenv("CONTACTSCRAPER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration, joining all problems into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Web.UserAgent == "" {
		errs = append(errs, errors.New("web user agent is required"))
	}
	if c.Web.Timeout <= 0 {
		errs = append(errs, errors.New("web timeout must be positive"))
	}
	if c.Web.Concurrency <= 0 {
		errs = append(errs, errors.New("web concurrency must be positive"))
	}
	if c.Web.RateLimitDelay < 0 {
		errs = append(errs, errors.New("rate limit delay cannot be negative"))
	}
	if c.Web.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("requests per minute cannot be negative"))
	}
	if c.Web.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}
	if c.Instagram.ScrollDelay < 0 {
		errs = append(errs, errors.New("scroll delay cannot be negative"))
	}
	if c.Instagram.MaxFollowers <= 0 {
		errs = append(errs, errors.New("max followers must be positive"))
	}
	if c.Instagram.MaxFollowing <= 0 {
		errs = append(errs, errors.New("max following must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load builds configuration from all sources.
// Precedence: environment variables > .env file > config file > defaults.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".contactscraper.env"))

	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.LoadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
