package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL  string `yaml:"base_url"`
	APIToken string `yaml:"api_token"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	MetricsPort string `yaml:"metrics_port"`

	ExportDir string `yaml:"export_dir"`

	PollIntervalSeconds   int `yaml:"poll_interval_seconds"`
	PageSize              int `yaml:"page_size"`
	MaxUploadMB           int `yaml:"max_upload_mb"`
	SearchTopK            int `yaml:"search_top_k"`
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	RateLimitRPS   int `yaml:"rate_limit_rps"`
	RateLimitBurst int `yaml:"rate_limit_burst"`
}

func Load() Config {
	return Config{
		BaseURL:  mustEnv("FINSIGHT_BASE_URL", "http://localhost:8000/api/v1"),
		APIToken: mustEnv("FINSIGHT_API_TOKEN", ""),

		LogLevel: mustEnv("LOG_LEVEL", "info"),
		LogFile:  mustEnv("LOG_FILE", "./finsight.log"),

		MetricsPort: mustEnv("METRICS_PORT", "9090"),

		ExportDir: mustEnv("EXPORT_DIR", "./exports"),

		PollIntervalSeconds:   mustEnvInt("POLL_INTERVAL_SECONDS", 3),
		PageSize:              mustEnvInt("PAGE_SIZE", 20),
		MaxUploadMB:           mustEnvInt("MAX_UPLOAD_MB", 50),
		SearchTopK:            mustEnvInt("SEARCH_TOP_K", 5),
		RequestTimeoutSeconds: mustEnvInt("REQUEST_TIMEOUT_SECONDS", 30),

		RateLimitRPS:   mustEnvInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst: mustEnvInt("RATE_LIMIT_BURST", 5),
	}
}

// LoadFile layers a YAML config file over the environment defaults.
// A non-zero value in the file wins; everything else keeps the value
// Load produced.
func LoadFile(path string) (Config, error) {
	cfg := Load()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	cfg.merge(overlay)
	return cfg, nil
}

func (c *Config) merge(overlay Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIToken != "" {
		c.APIToken = overlay.APIToken
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != "" {
		c.LogFile = overlay.LogFile
	}
	if overlay.MetricsPort != "" {
		c.MetricsPort = overlay.MetricsPort
	}
	if overlay.ExportDir != "" {
		c.ExportDir = overlay.ExportDir
	}
	if overlay.PollIntervalSeconds > 0 {
		c.PollIntervalSeconds = overlay.PollIntervalSeconds
	}
	if overlay.PageSize > 0 {
		c.PageSize = overlay.PageSize
	}
	if overlay.MaxUploadMB > 0 {
		c.MaxUploadMB = overlay.MaxUploadMB
	}
	if overlay.SearchTopK > 0 {
		c.SearchTopK = overlay.SearchTopK
	}
	if overlay.RequestTimeoutSeconds > 0 {
		c.RequestTimeoutSeconds = overlay.RequestTimeoutSeconds
	}
	if overlay.RateLimitRPS > 0 {
		c.RateLimitRPS = overlay.RateLimitRPS
	}
	if overlay.RateLimitBurst > 0 {
		c.RateLimitBurst = overlay.RateLimitBurst
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
