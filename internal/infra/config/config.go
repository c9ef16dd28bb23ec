package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP         HTTPConfig        `yaml:"http"`
	LLM          LLMConfig         `yaml:"llm"`
	Suggestions  SuggestionsConfig `yaml:"suggestions"`
	Weather      WeatherConfig     `yaml:"weather"`
	Interactions InteractionConfig `yaml:"interactions"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains the completion endpoint settings. An empty APIKey
// selects the deterministic tiers.
type LLMConfig struct {
	APIKey              string        `yaml:"apiKey"`
	BaseURL             string        `yaml:"baseUrl"`
	Model               string        `yaml:"model"`
	Timeout             time.Duration `yaml:"timeout"`
	AnalysisTemperature float32       `yaml:"analysisTemperature"`
	ResponseTemperature float32       `yaml:"responseTemperature"`
	FollowUpTemperature float32       `yaml:"followUpTemperature"`
	TopP                float32       `yaml:"topP"`
	FrequencyPenalty    float32       `yaml:"frequencyPenalty"`
	PresencePenalty     float32       `yaml:"presencePenalty"`
	AnalysisMaxTokens   int           `yaml:"analysisMaxTokens"`
	ResponseMaxTokens   int           `yaml:"responseMaxTokens"`
	FollowUpMaxTokens   int           `yaml:"followUpMaxTokens"`
	MaxUtteranceTokens  int           `yaml:"maxUtteranceTokens"`
}

// SuggestionsConfig controls the suggestion cache.
type SuggestionsConfig struct {
	CacheTTL        time.Duration `yaml:"cacheTtl"`
	CacheMaxEntries int           `yaml:"cacheMaxEntries"`
	Timezone        string        `yaml:"timezone"`
	Store           string        `yaml:"store"`
	Valkey          ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared cache.
type ValkeyConfig struct {
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

// WeatherConfig configures the OpenWeather lookup. Lookups are disabled
// without an API key.
type WeatherConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// InteractionConfig configures the interaction log.
type InteractionConfig struct {
	Capacity int            `yaml:"capacity"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

const (
	StoreMemory = "memory"
	StoreValkey = "valkey"
)

// Load reads configuration from .env, a YAML file and environment variables,
// in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	envString("HTTP_ADDRESS", &cfg.HTTP.Address)
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	envBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	envInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	envInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)

	envString("LLM_API_KEY", &cfg.LLM.APIKey)
	envString("LLM_BASE_URL", &cfg.LLM.BaseURL)
	envString("LLM_MODEL", &cfg.LLM.Model)
	envDuration("LLM_TIMEOUT", &cfg.LLM.Timeout)
	envFloat32("LLM_ANALYSIS_TEMPERATURE", &cfg.LLM.AnalysisTemperature)
	envFloat32("LLM_RESPONSE_TEMPERATURE", &cfg.LLM.ResponseTemperature)
	envFloat32("LLM_FOLLOWUP_TEMPERATURE", &cfg.LLM.FollowUpTemperature)
	envInt("LLM_MAX_UTTERANCE_TOKENS", &cfg.LLM.MaxUtteranceTokens)

	envDuration("SUGGESTIONS_CACHE_TTL", &cfg.Suggestions.CacheTTL)
	envInt("SUGGESTIONS_CACHE_MAX_ENTRIES", &cfg.Suggestions.CacheMaxEntries)
	envString("SUGGESTIONS_TIMEZONE", &cfg.Suggestions.Timezone)
	envString("SUGGESTIONS_STORE", &cfg.Suggestions.Store)
	envString("VALKEY_ADDR", &cfg.Suggestions.Valkey.Addr)
	envString("VALKEY_PREFIX", &cfg.Suggestions.Valkey.Prefix)

	envString("WEATHER_API_KEY", &cfg.Weather.APIKey)
	envString("WEATHER_BASE_URL", &cfg.Weather.BaseURL)
	envDuration("WEATHER_TIMEOUT", &cfg.Weather.Timeout)

	envInt("INTERACTIONS_CAPACITY", &cfg.Interactions.Capacity)
	envString("INTERACTIONS_POSTGRES_DSN", &cfg.Interactions.Postgres.DSN)
	if v := os.Getenv("INTERACTIONS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Interactions.Postgres.MaxConns = int32(parsed)
		}
	}
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func envFloat32(key string, dst *float32) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			*dst = float32(parsed)
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   40 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		LLM: LLMConfig{
			BaseURL:             "https://api.openai.com/v1",
			Model:               "gpt-4o-mini",
			Timeout:             15 * time.Second,
			AnalysisTemperature: 0.3,
			ResponseTemperature: 0.7,
			FollowUpTemperature: 0.5,
			TopP:                1,
			FrequencyPenalty:    0.1,
			PresencePenalty:     0.1,
			AnalysisMaxTokens:   300,
			ResponseMaxTokens:   600,
			FollowUpMaxTokens:   100,
			MaxUtteranceTokens:  256,
		},
		Suggestions: SuggestionsConfig{
			CacheTTL:        time.Hour,
			CacheMaxEntries: 100,
			Timezone:        "Africa/Maputo",
			Store:           StoreMemory,
			Valkey: ValkeyConfig{
				Prefix: "clima:suggestions",
			},
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5",
			Timeout: 5 * time.Second,
		},
		Interactions: InteractionConfig{
			Capacity: 1000,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	for name, temp := range map[string]float32{
		"analysisTemperature": c.LLM.AnalysisTemperature,
		"responseTemperature": c.LLM.ResponseTemperature,
		"followUpTemperature": c.LLM.FollowUpTemperature,
	} {
		if temp < 0 || temp > 2 {
			return fmt.Errorf("llm.%s must be within [0, 2]", name)
		}
	}
	if c.LLM.MaxUtteranceTokens < 0 {
		return errors.New("llm.maxUtteranceTokens cannot be negative")
	}
	if c.Suggestions.CacheTTL <= 0 {
		return errors.New("suggestions.cacheTtl must be positive")
	}
	if c.Suggestions.CacheMaxEntries <= 0 {
		return errors.New("suggestions.cacheMaxEntries must be positive")
	}
	switch c.Suggestions.Store {
	case StoreMemory:
	case StoreValkey:
		if strings.TrimSpace(c.Suggestions.Valkey.Addr) == "" {
			return errors.New("suggestions.valkey.addr cannot be empty when the valkey store is selected")
		}
	default:
		return fmt.Errorf("suggestions.store must be %q or %q", StoreMemory, StoreValkey)
	}
	if c.Interactions.Capacity < 0 {
		return errors.New("interactions.capacity cannot be negative")
	}
	return nil
}
