package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config.yaml"
	DefaultDBPath     = "summaries.db"
	DefaultExportDir  = "exports"
	DefaultCacheDir   = ".cache/url-summarizer"
	DefaultCacheTTL   = 24 * time.Hour

	DefaultFetchTimeout = 30 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5_1) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36"

	DefaultSummaryLength = "Medium"
	DefaultSummaryTone   = "Professional"

	// APIKeyEnv overrides provider.api_key when set.
	APIKeyEnv = "SUMMARIZER_API_KEY"
)

// ProviderConfig selects the language-model endpoint used for summaries.
type ProviderConfig struct {
	Type     string `yaml:"type" toml:"type"` // openai, anthropic, openai-compatible
	APIKey   string `yaml:"api_key" toml:"api_key"`
	Endpoint string `yaml:"endpoint" toml:"endpoint"`
	Model    string `yaml:"model" toml:"model"`
}

// Config holds runtime configuration. Values come from an optional YAML or TOML
// file; CLI flags override them.
type Config struct {
	DBPath       string         `yaml:"db_path" toml:"db_path"`
	ExportDir    string         `yaml:"export_dir" toml:"export_dir"`
	CacheDir     string         `yaml:"cache_dir" toml:"cache_dir"`
	CacheTTL     time.Duration  `yaml:"cache_ttl" toml:"cache_ttl"`
	FetchTimeout time.Duration  `yaml:"fetch_timeout" toml:"fetch_timeout"`
	UserAgent    string         `yaml:"user_agent" toml:"user_agent"`
	Provider     ProviderConfig `yaml:"provider" toml:"provider"`

	DefaultLength string `yaml:"default_length" toml:"default_length"`
	DefaultTone   string `yaml:"default_tone" toml:"default_tone"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		DBPath:        DefaultDBPath,
		ExportDir:     DefaultExportDir,
		CacheDir:      DefaultCacheDir,
		CacheTTL:      DefaultCacheTTL,
		FetchTimeout:  DefaultFetchTimeout,
		UserAgent:     DefaultUserAgent,
		Provider:      ProviderConfig{Type: "openai"},
		DefaultLength: DefaultSummaryLength,
		DefaultTone:   DefaultSummaryTone,
	}
}

// LoadConfig reads the config file at path. A missing file is not an error and
// yields the defaults. The decoder is chosen by file extension.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}

	cfg.fillDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// fillDefaults restores defaults for keys the file set to empty values.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.ExportDir == "" {
		c.ExportDir = def.ExportDir
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.CacheTTL < 0 {
		c.CacheTTL = 0
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = def.FetchTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Provider.Type == "" {
		c.Provider.Type = def.Provider.Type
	}
	if c.DefaultLength == "" {
		c.DefaultLength = def.DefaultLength
	}
	if c.DefaultTone == "" {
		c.DefaultTone = def.DefaultTone
	}
}

func (c *Config) applyEnv() {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		c.Provider.APIKey = key
	}
}
