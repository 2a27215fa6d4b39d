package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the fmd API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Worker    WorkerConfig    `yaml:"worker"`
	Search    SearchConfig    `yaml:"search"`
	Providers ProvidersConfig `yaml:"providers"`
	ImageGen  ImageGenConfig  `yaml:"imagegen"`
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
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string `yaml:"cors_origins"`
	RateLimit       int      `yaml:"rate_limit_per_min"` // per client IP, 0 disables
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis, memory (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix      string `yaml:"key_prefix"`
	JobCacheTTLSec int    `yaml:"job_cache_ttl_sec"`
	SessionTTLSec  int    `yaml:"session_ttl_sec"` // 0 keeps sessions forever
}

// WorkerConfig holds background processing settings.
type WorkerConfig struct {
	Concurrency   int   `yaml:"concurrency"`
	JobTimeoutSec int   `yaml:"job_timeout_sec"`
	QueueBuffer   int64 `yaml:"queue_buffer"`
}

// SearchConfig holds product search settings.
type SearchConfig struct {
	DefaultProviders   []string `yaml:"default_providers"`
	DefaultLimit       int      `yaml:"default_limit"`
	MaxLimit           int      `yaml:"max_limit"`
	ProviderTimeoutSec int      `yaml:"provider_timeout_sec"`
}

// ProvidersConfig holds product provider settings.
type ProvidersConfig struct {
	Stock   StockConfig   `yaml:"stock"`
	Crawl   CrawlConfig   `yaml:"crawl"`
	Breaker BreakerConfig `yaml:"breaker"`
}

// StockConfig holds stock image API keys. Without keys the provider
// returns marketplace links.
type StockConfig struct {
	UnsplashKey       string  `yaml:"unsplash_key"`
	PexelsKey         string  `yaml:"pexels_key"`
	PixabayKey        string  `yaml:"pixabay_key"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// HasKeys reports whether any stock API key is configured.
func (s StockConfig) HasKeys() bool {
	return s.UnsplashKey != "" || s.PexelsKey != "" || s.PixabayKey != ""
}

// CrawlConfig holds web search crawl settings. The crawl provider scrapes
// search result pages and is off unless enabled explicitly.
type CrawlConfig struct {
	Enabled           bool    `yaml:"enabled"`
	BaseURL           string  `yaml:"base_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// BreakerConfig holds provider circuit breaker settings.
type BreakerConfig struct {
	MinRequests  uint32  `yaml:"min_requests"`
	FailureRatio float64 `yaml:"failure_ratio"`
	IntervalSec  int     `yaml:"interval_sec"`
	TimeoutSec   int     `yaml:"timeout_sec"`
}

// ImageGenConfig holds reference image generation settings.
type ImageGenConfig struct {
	// Order lists generator steps; placeholder always runs last.
	Order   []string     `yaml:"order"`
	OpenAI  OpenAIConfig `yaml:"openai"`
	BaseURL string       `yaml:"pollinations_base_url"`
}

// OpenAIConfig holds OpenAI image settings. An empty key disables the step.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Size    string `yaml:"size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory is loaded first when present.
func Load(env string) (Config, error) {
	_ = godotenv.Load()

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, then
// applies defaults and validates.
func Parse(data []byte) (Config, error) {
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
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"http://localhost:3000"}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "memory"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "fmd:"
	}
	if c.Storage.JobCacheTTLSec <= 0 {
		c.Storage.JobCacheTTLSec = 3600
	}
	if c.Worker.Concurrency <= 0 {
		c.Worker.Concurrency = 2
	}
	if c.Worker.JobTimeoutSec <= 0 {
		c.Worker.JobTimeoutSec = 300
	}
	if c.Worker.QueueBuffer <= 0 {
		c.Worker.QueueBuffer = 256
	}
	if len(c.Search.DefaultProviders) == 0 {
		c.Search.DefaultProviders = []string{"mock"}
		if c.Providers.Stock.HasKeys() {
			c.Search.DefaultProviders = append(c.Search.DefaultProviders, "api")
		}
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 20
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = 100
	}
	if c.Search.ProviderTimeoutSec <= 0 {
		c.Search.ProviderTimeoutSec = 15
	}
	if c.Providers.Stock.RequestsPerSecond <= 0 {
		c.Providers.Stock.RequestsPerSecond = 5
	}
	if c.Providers.Crawl.RequestsPerSecond <= 0 {
		c.Providers.Crawl.RequestsPerSecond = 1
	}
	if c.Providers.Breaker.MinRequests == 0 {
		c.Providers.Breaker.MinRequests = 5
	}
	if c.Providers.Breaker.FailureRatio <= 0 {
		c.Providers.Breaker.FailureRatio = 0.6
	}
	if c.Providers.Breaker.IntervalSec <= 0 {
		c.Providers.Breaker.IntervalSec = 60
	}
	if c.Providers.Breaker.TimeoutSec <= 0 {
		c.Providers.Breaker.TimeoutSec = 30
	}
	if len(c.ImageGen.Order) == 0 {
		c.ImageGen.Order = []string{"openai", "pollinations", "placeholder"}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "memory":
	case "valkey", "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("database.driver must be \"valkey\", \"redis\" or \"memory\", got %q", c.Database.Driver)
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("search.default_limit (%d) exceeds search.max_limit (%d)",
			c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	if r := c.Providers.Breaker.FailureRatio; r > 1 {
		return fmt.Errorf("providers.breaker.failure_ratio must be in (0, 1], got %g", r)
	}
	for _, step := range c.ImageGen.Order {
		switch step {
		case "openai", "pollinations", "placeholder":
		default:
			return fmt.Errorf("imagegen.order: unknown step %q", step)
		}
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
