package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Language     string           `mapstructure:"language"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Generation   GenerationConfig `mapstructure:"generation"`
	Scraper      ScraperConfig    `mapstructure:"scraper"`
	Segment      SegmentConfig    `mapstructure:"segment"`
	Processing   ProcessingConfig `mapstructure:"processing"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// GenerationConfig contains remote text-generation settings
type GenerationConfig struct {
	APIKey    string `mapstructure:"api_key"`
	ModelName string `mapstructure:"model_name"`
	// Endpoint overrides, primarily for tests
	GenerativeBaseURL string `mapstructure:"generative_base_url"`
	ChatBaseURL       string `mapstructure:"chat_base_url"`

	MaxRetries      int           `mapstructure:"max_retries"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`

	// ExcludeVideoURL drops the source URL from outline prompts
	ExcludeVideoURL bool `mapstructure:"exclude_video_url"`
}

// ScraperConfig contains transcript panel scraping settings
type ScraperConfig struct {
	// PanelWait is how long callers should allow the panel to expand
	// before posting page markup for scraping
	PanelWait    time.Duration `mapstructure:"panel_wait"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// SegmentConfig contains transcript segment selection settings
type SegmentConfig struct {
	BeforeSeconds int `mapstructure:"before_seconds"`
	AfterSeconds  int `mapstructure:"after_seconds"`
	MaxLines      int `mapstructure:"max_lines"`
}

// ProcessingConfig contains background worker settings
type ProcessingConfig struct {
	Workers      int           `mapstructure:"workers"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// RequestPause is the serialized inter-request pause between
	// generation calls in batch jobs
	RequestPause time.Duration `mapstructure:"request_pause"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
}

// RateLimitConfig contains per-client API rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerSecond int  `mapstructure:"requests_per_second"`
	Burst             int  `mapstructure:"burst"`
}
