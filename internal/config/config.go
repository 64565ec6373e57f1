package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the careerdex configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
	Cache     CacheConfig     `yaml:"cache"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Lexical   LexicalConfig   `yaml:"lexical"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StorageConfig holds the on-disk layout.
type StorageConfig struct {
	DataDir  string `yaml:"data_dir"`  // document catalog root
	IndexDir string `yaml:"index_dir"` // index/metadata artifacts root
}

// CacheConfig holds the optional Redis/Valkey embedding cache settings.
// Empty addrs disables the cache.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	Prefix   string   `yaml:"key_prefix"`
}

// EmbeddingConfig holds embedding provider settings. Provider "deterministic"
// selects the hash-seeded fallback embedder; "openai" requires an API key.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// RetrievalConfig holds search tuning knobs.
type RetrievalConfig struct {
	DefaultTopK       int     `yaml:"default_top_k"`
	MaxTopK           int     `yaml:"max_top_k"`
	FilterOverfetch   int     `yaml:"filter_overfetch"`   // candidate multiplier when filters are set
	CombinedOverfetch int     `yaml:"combined_overfetch"` // candidate multiplier for combined search
	MatchWeight       float64 `yaml:"match_weight"`       // domain matching the intent
	RelatedWeight     float64 `yaml:"related_weight"`     // next-most-related domain
	DistantWeight     float64 `yaml:"distant_weight"`     // least-related domain
}

// LexicalConfig holds the lexical fallback scoring weights. The divisor
// normalizes accumulated integer scores into a [0,1]-ish similarity; it is
// an approximation, not a probability.
type LexicalConfig struct {
	IDTitleWeight    int     `yaml:"id_title_weight"`
	TitleFieldWeight int     `yaml:"title_field_weight"`
	TagWeight        int     `yaml:"tag_weight"`
	BodyWeight       int     `yaml:"body_weight"`
	ScoreDivisor     float64 `yaml:"score_divisor"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Storage.IndexDir == "" {
		c.Storage.IndexDir = filepath.Join(c.Storage.DataDir, "vector_db")
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "careerdex:"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "deterministic"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Retrieval.DefaultTopK <= 0 {
		c.Retrieval.DefaultTopK = 5
	}
	if c.Retrieval.MaxTopK <= 0 {
		c.Retrieval.MaxTopK = 50
	}
	if c.Retrieval.FilterOverfetch < 3 {
		c.Retrieval.FilterOverfetch = 3
	}
	if c.Retrieval.CombinedOverfetch <= 0 {
		c.Retrieval.CombinedOverfetch = 2
	}
	if c.Retrieval.MatchWeight <= 0 {
		c.Retrieval.MatchWeight = 1.0
	}
	if c.Retrieval.RelatedWeight <= 0 {
		c.Retrieval.RelatedWeight = 0.65
	}
	if c.Retrieval.DistantWeight <= 0 {
		c.Retrieval.DistantWeight = 0.5
	}
	if c.Lexical.IDTitleWeight <= 0 {
		c.Lexical.IDTitleWeight = 5
	}
	if c.Lexical.TitleFieldWeight <= 0 {
		c.Lexical.TitleFieldWeight = 3
	}
	if c.Lexical.TagWeight <= 0 {
		c.Lexical.TagWeight = 2
	}
	if c.Lexical.BodyWeight <= 0 {
		c.Lexical.BodyWeight = 1
	}
	if c.Lexical.ScoreDivisor <= 0 {
		c.Lexical.ScoreDivisor = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Embedding.Provider {
	case "deterministic":
	case "openai":
		if c.Embedding.APIKey == "" {
			return fmt.Errorf("embedding.api_key is required for the openai provider")
		}
		if c.Embedding.Model == "" {
			return fmt.Errorf("embedding.model is required for the openai provider")
		}
	default:
		return fmt.Errorf("embedding.provider must be \"openai\" or \"deterministic\", got %q",
			c.Embedding.Provider)
	}
	if c.Retrieval.MatchWeight < c.Retrieval.RelatedWeight ||
		c.Retrieval.RelatedWeight < c.Retrieval.DistantWeight {
		return fmt.Errorf("retrieval weights must satisfy match >= related >= distant")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
