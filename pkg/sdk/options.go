package fmd

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "valkey", "redis" or "memory"
	addrs     []string
	password  string
	keyPrefix string

	stock           StockKeys
	crawl           bool
	providerTimeout time.Duration

	openAIKey    string
	pollinations bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// StockKeys holds stock image API keys. Without keys the "api" provider
// returns marketplace search links.
type StockKeys struct {
	Unsplash string
	Pexels   string
	Pixabay  string
}

// WithValkey stores state in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis stores state in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithMemory keeps all state in process. Nothing survives Close.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "memory"
		c.addrs = nil
	})
}

// WithKeyPrefix namespaces every stored key. Default: "fmd:sdk:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithStockKeys configures the stock image APIs behind the "api" provider.
func WithStockKeys(k StockKeys) Option {
	return optionFunc(func(c *clientConfig) {
		c.stock = k
	})
}

// WithCrawl registers the "crawl" web search provider. It makes outbound
// requests, so it is off by default.
func WithCrawl() Option {
	return optionFunc(func(c *clientConfig) {
		c.crawl = true
	})
}

// WithProviderTimeout bounds each provider call. Default: 15s.
func WithProviderTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.providerTimeout = d
	})
}

// WithOpenAIImages generates reference images with the OpenAI images API.
func WithOpenAIImages(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIKey = apiKey
	})
}

// WithPollinations adds the keyless Pollinations URL step to image generation.
func WithPollinations() Option {
	return optionFunc(func(c *clientConfig) {
		c.pollinations = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
