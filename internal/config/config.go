package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the runtime configuration read from the environment. Policy
// constants (thresholds, grade table) live in the YAML policy file, not
// here.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	FrameFetchTimeout  time.Duration
	AnalysisTimeout    time.Duration
	MaxRequestBodySize int64

	// SourceType selects the frame backend: local, http or azure.
	SourceType string
	// SourceRoot is the frame folder for the local backend.
	SourceRoot string
	// OutputDir receives the emitted report files.
	OutputDir string
	// PolicyFile optionally overrides the built-in analysis policy.
	PolicyFile string
	// RawConverterCommand is the external RAW-to-TIFF decoder; empty
	// disables RAW support.
	RawConverterCommand string

	Workers int

	AzureAccountName string
	AzureAccountKey  string
	AzureContainer   string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		FrameFetchTimeout:  parseDurationOrDefault("FRAME_FETCH_TIMEOUT", 15*time.Second),
		AnalysisTimeout:    parseDurationOrDefault("ANALYSIS_TIMEOUT", 60*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB

		SourceType:          getEnvOrDefault("SOURCE_TYPE", "local"),
		SourceRoot:          getEnvOrDefault("SOURCE_ROOT", "."),
		OutputDir:           getEnvOrDefault("OUTPUT_DIR", "reports"),
		PolicyFile:          os.Getenv("POLICY_FILE"),
		RawConverterCommand: os.Getenv("RAW_CONVERTER_COMMAND"),

		Workers: int(parseIntOrDefault("WORKERS", 0)),

		AzureAccountName: os.Getenv("AZURE_ACCOUNT_NAME"),
		AzureAccountKey:  os.Getenv("AZURE_ACCOUNT_KEY"),
		AzureContainer:   os.Getenv("AZURE_CONTAINER"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.FrameFetchTimeout <= 0 || cfg.AnalysisTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, analysis=%s)",
			cfg.RequestTimeout, cfg.FrameFetchTimeout, cfg.AnalysisTimeout)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("WORKERS must be >= 0 (got %d)", cfg.Workers)
	}

	switch cfg.SourceType {
	case "local", "http":
	case "azure":
		if cfg.AzureAccountName == "" || cfg.AzureAccountKey == "" || cfg.AzureContainer == "" {
			return nil, fmt.Errorf("azure source requires AZURE_ACCOUNT_NAME, AZURE_ACCOUNT_KEY and AZURE_CONTAINER")
		}
	default:
		return nil, fmt.Errorf("invalid SOURCE_TYPE: %q (want local, http or azure)", cfg.SourceType)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
