package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the analyzer.
type Config struct {
	Import      ImportConfig   `yaml:"import" toml:"import"`
	Analysis    AnalysisConfig `yaml:"analysis" toml:"analysis"`
	Overlap     OverlapConfig  `yaml:"overlap" toml:"overlap"`
	Cache       CacheConfig    `yaml:"cache" toml:"cache"`
	Server      ServerConfig   `yaml:"server" toml:"server"`
	Logging     LoggingConfig  `yaml:"logging" toml:"logging"`
	Corpora     []CorpusConfig `yaml:"corpora" toml:"corpora" validate:"dive"`
	MetricsFile string         `yaml:"metrics_file,omitempty" toml:"metrics_file"`
}

// ImportConfig controls how directories are turned into document lists.
type ImportConfig struct {
	Includes      []string `yaml:"includes" toml:"includes" validate:"min=1"`
	Excludes      []string `yaml:"excludes" toml:"excludes"`
	DefaultCorpus string   `yaml:"default_corpus" toml:"default_corpus" validate:"required"`
}

// AnalysisConfig holds per-document analysis settings.
type AnalysisConfig struct {
	PctTolerance float64 `yaml:"pct_tolerance" toml:"pct_tolerance" validate:"gt=0"`
	Progress     bool    `yaml:"progress" toml:"progress"`
	TopN         int     `yaml:"top_n" toml:"top_n" validate:"gte=0"`
}

// OverlapConfig holds BO score settings.
type OverlapConfig struct {
	Assurance bool `yaml:"assurance" toml:"assurance"`
	TopN      int  `yaml:"top_n" toml:"top_n" validate:"gte=0"`
}

// CacheConfig bounds the analytics memo.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries" toml:"max_entries" validate:"gte=1"`
}

// ServerConfig holds HTTP settings for the serve command.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr" validate:"required"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=text json"`
}

// CorpusConfig pre-populates a named corpus.
type CorpusConfig struct {
	Name  string   `yaml:"name" toml:"name" validate:"required"`
	Files []string `yaml:"files,omitempty" toml:"files"`
	Dirs  []string `yaml:"dirs,omitempty" toml:"dirs"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Import: ImportConfig{
			Includes:      []string{"**/*.txt", "**/*.md"},
			Excludes:      []string{"**/.git/**", "**/node_modules/**", "**/.wordfreq/**"},
			DefaultCorpus: "Default Corpus",
		},
		Analysis: AnalysisConfig{
			PctTolerance: 0.01,
			Progress:     true,
			TopN:         20,
		},
		Overlap: OverlapConfig{
			Assurance: true,
			TopN:      20,
		},
		Cache: CacheConfig{
			MaxEntries: 64,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML or TOML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (wordfreq.yaml, wordfreq.toml
// or .wordfreq/config.yaml, in that order).
func LoadFromDir(dir string) (*Config, error) {
	candidates := []string{
		filepath.Join(dir, "wordfreq.yaml"),
		filepath.Join(dir, "wordfreq.toml"),
		filepath.Join(dir, ".wordfreq", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return DefaultConfig(), nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	seen := make(map[string]bool, len(c.Corpora))
	for _, cc := range c.Corpora {
		if seen[cc.Name] {
			return fmt.Errorf("invalid config: corpus %q declared twice", cc.Name)
		}
		seen[cc.Name] = true
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SnapshotPath returns the default export location under dir.
func SnapshotPath(dir string) string {
	return filepath.Join(dir, ".wordfreq", "reports.db")
}

// EnsureDataDir ensures the .wordfreq directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".wordfreq"), 0755)
}
