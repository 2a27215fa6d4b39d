package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8000}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_DatabaseDriver(t *testing.T) {
	tests := []struct {
		name    string
		db      DatabaseConfig
		wantErr string
	}{
		{"memory needs no addrs", DatabaseConfig{Driver: "memory"}, ""},
		{"valkey with addrs", DatabaseConfig{Driver: "valkey", Addrs: []string{"localhost:6379"}}, ""},
		{"redis without addrs", DatabaseConfig{Driver: "redis"}, `database.addrs is required for driver "redis"`},
		{"unknown driver", DatabaseConfig{Driver: "postgres"}, `database.driver must be "valkey", "redis" or "memory", got "postgres"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database = tt.db
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("unexpected error message:\ngot:  %v\nwant: %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_SearchLimits(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultLimit = 200

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when default limit exceeds max")
	}
}

func TestValidate_ImageGenOrder(t *testing.T) {
	cfg := validConfig()
	cfg.ImageGen.Order = []string{"pollinations", "comfyui"}

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), `unknown step "comfyui"`) {
		t.Fatalf("expected unknown step error, got %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("expected Driver=memory, got %q", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "fmd:" {
		t.Errorf("expected KeyPrefix='fmd:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.JobCacheTTLSec != 3600 {
		t.Errorf("expected JobCacheTTLSec=3600, got %d", cfg.Storage.JobCacheTTLSec)
	}
	if cfg.Worker.Concurrency != 2 || cfg.Worker.JobTimeoutSec != 300 {
		t.Errorf("unexpected worker defaults: %+v", cfg.Worker)
	}
	if strings.Join(cfg.Search.DefaultProviders, ",") != "mock" {
		t.Errorf("expected default providers mock, got %v", cfg.Search.DefaultProviders)
	}
	if cfg.Providers.Crawl.Enabled {
		t.Error("expected crawl disabled by default")
	}
	if cfg.Search.DefaultLimit != 20 || cfg.Search.MaxLimit != 100 {
		t.Errorf("unexpected search limits: %+v", cfg.Search)
	}
	if cfg.Providers.Breaker.MinRequests != 5 || cfg.Providers.Breaker.FailureRatio != 0.6 {
		t.Errorf("unexpected breaker defaults: %+v", cfg.Providers.Breaker)
	}
	if strings.Join(cfg.ImageGen.Order, ",") != "openai,pollinations,placeholder" {
		t.Errorf("unexpected imagegen order: %v", cfg.ImageGen.Order)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 90, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: "valkey", ReadinessTimeout: 15},
		Storage:  StorageConfig{KeyPrefix: "custom:"},
		Search:   SearchConfig{DefaultProviders: []string{"api"}, DefaultLimit: 10},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 90 {
		t.Errorf("expected WriteTimeoutSec=90, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
	if len(cfg.Search.DefaultProviders) != 1 || cfg.Search.DefaultLimit != 10 {
		t.Errorf("search overridden: %+v", cfg.Search)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("FMD_TEST_PORT", "9100")
	t.Setenv("FMD_TEST_OPENAI", "")

	cfg, err := Parse([]byte(`
http:
  port: ${FMD_TEST_PORT}
database:
  driver: ${FMD_TEST_DRIVER:-memory}
imagegen:
  openai:
    api_key: "${FMD_TEST_OPENAI}"
    model: ${FMD_TEST_MODEL:-dall-e-3}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("expected default driver, got %q", cfg.Database.Driver)
	}
	if cfg.ImageGen.OpenAI.APIKey != "" || cfg.ImageGen.OpenAI.Model != "dall-e-3" {
		t.Errorf("unexpected openai config: %+v", cfg.ImageGen.OpenAI)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 0\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port == 0 || cfg.Storage.KeyPrefix == "" {
		t.Errorf("unexpected local config: %+v", cfg)
	}
}

func TestApplyDefaults_ProvidersFollowStockKeys(t *testing.T) {
	cfg := Config{Providers: ProvidersConfig{Stock: StockConfig{PexelsKey: "px"}}}
	cfg.ApplyDefaults()

	if got := strings.Join(cfg.Search.DefaultProviders, ","); got != "mock,api" {
		t.Errorf("expected default providers mock,api, got %s", got)
	}
}

func TestLoad_ProdKeepsCrawlOff(t *testing.T) {
	for _, env := range []string{"prod", "local"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("UNSPLASH_ACCESS_KEY", "")
			t.Setenv("PEXELS_API_KEY", "")
			t.Setenv("PIXABAY_API_KEY", "")
			t.Setenv("CRAWL_ENABLED", "")
			t.Setenv("VALKEY_ADDR", "localhost:6379")
			t.Setenv("PORT", "")

			cfg, err := Load(env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Providers.Crawl.Enabled {
				t.Error("crawl must be opt-in")
			}
			for _, id := range cfg.Search.DefaultProviders {
				if id == "crawl" {
					t.Errorf("default providers include crawl: %v", cfg.Search.DefaultProviders)
				}
			}
			if got := strings.Join(cfg.Search.DefaultProviders, ","); got != "mock" {
				t.Errorf("expected default providers mock, got %s", got)
			}
		})
	}
}
