package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TSCONTEXT_"

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the server, indexer and completer
type Config struct {
	DBPath       string   `toml:"db_path" yaml:"db_path"`
	Workers      int      `toml:"workers" yaml:"workers"`
	BatchSize    int      `toml:"batch_size" yaml:"batch_size"`
	Extensions   []string `toml:"extensions" yaml:"extensions"`
	IgnoreDirs   []string `toml:"ignore_dirs" yaml:"ignore_dirs"`
	CacheSize    int      `toml:"cache_size" yaml:"cache_size"`
	MaxFileBytes int64    `toml:"max_file_bytes" yaml:"max_file_bytes"`
	LogLevel     string   `toml:"log_level" yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DBPath:       defaultDBPath(),
		Workers:      runtime.NumCPU(),
		BatchSize:    20,
		Extensions:   []string{".ts"},
		IgnoreDirs:   []string{"node_modules", "dist", "build", "out"},
		CacheSize:    256,
		MaxFileBytes: 4 << 20,
		LogLevel:     "info",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tscontext", "tscontext.db")
	}
	return filepath.Join(home, ".tscontext", "tscontext.db")
}

// Load reads a TOML or YAML file over the defaults. The format is chosen by
// extension; unknown extensions are read as TOML.
func Load(path string) (*Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml config: %w", err)
		}
	}

	return cfg, nil
}

// ApplyEnv overrides fields from TSCONTEXT_* environment variables
func (c *Config) ApplyEnv() {
	c.DBPath = env.Str(EnvPrefix+"DB_PATH", c.DBPath)
	c.Workers = env.Int(EnvPrefix+"WORKERS", c.Workers)
	c.BatchSize = env.Int(EnvPrefix+"BATCH_SIZE", c.BatchSize)
	c.CacheSize = env.Int(EnvPrefix+"CACHE_SIZE", c.CacheSize)
	c.MaxFileBytes = env.Int64(EnvPrefix+"MAX_FILE_BYTES", c.MaxFileBytes)
	c.LogLevel = env.Str(EnvPrefix+"LOG_LEVEL", c.LogLevel)

	if env.Has(EnvPrefix + "EXTENSIONS") {
		c.Extensions = splitList(env.Str(EnvPrefix + "EXTENSIONS"))
	}
	if env.Has(EnvPrefix + "IGNORE_DIRS") {
		c.IgnoreDirs = splitList(env.Str(EnvPrefix + "IGNORE_DIRS"))
	}
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks ranges and normalizes extensions to a leading dot
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	}
	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("%w: max_file_bytes must be positive", ErrInvalidConfig)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: at least one extension is required", ErrInvalidConfig)
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
