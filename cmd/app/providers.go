package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/clima-assistant/internal/bootstrap"
	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
	"github.com/yanqian/clima-assistant/internal/infra/config"
	"github.com/yanqian/clima-assistant/internal/infra/interactionlog"
	"github.com/yanqian/clima-assistant/internal/infra/llm/chatgpt"
	"github.com/yanqian/clima-assistant/internal/infra/llm/tokens"
	"github.com/yanqian/clima-assistant/internal/infra/suggestionstore"
	"github.com/yanqian/clima-assistant/internal/infra/weather/openweather"
	"github.com/yanqian/clima-assistant/pkg/util"
)

// fallbackZone is Mozambique's fixed offset, used when tzdata is missing.
var fallbackZone = time.FixedZone("CAT", 2*60*60)

func provideSuggestionConfig(cfg *config.Config) suggestion.Config {
	return suggestion.Config{
		Model:               cfg.LLM.Model,
		Timeout:             cfg.LLM.Timeout,
		AnalysisTemperature: cfg.LLM.AnalysisTemperature,
		ResponseTemperature: cfg.LLM.ResponseTemperature,
		FollowUpTemperature: cfg.LLM.FollowUpTemperature,
		TopP:                cfg.LLM.TopP,
		FrequencyPenalty:    cfg.LLM.FrequencyPenalty,
		PresencePenalty:     cfg.LLM.PresencePenalty,
		AnalysisMaxTokens:   cfg.LLM.AnalysisMaxTokens,
		ResponseMaxTokens:   cfg.LLM.ResponseMaxTokens,
		FollowUpMaxTokens:   cfg.LLM.FollowUpMaxTokens,
		MaxUtteranceTokens:  cfg.LLM.MaxUtteranceTokens,
	}
}

// provideChatClient returns a nil interface without an API key so the engine
// runs on its deterministic tiers.
func provideChatClient(cfg *config.Config, logger *slog.Logger) suggestion.ChatClient {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Info("llm api key not set, ai tiers disabled")
		return nil
	}
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
	if err != nil {
		logger.Error("failed to create chat client, ai tiers disabled", "error", err)
		return nil
	}
	return client
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) suggestion.TokenCounter {
	counter, err := tokens.NewCounter(cfg.LLM.Model)
	if err != nil {
		logger.Warn("tiktoken unavailable, estimating tokens", "model", cfg.LLM.Model, "error", err)
		return tokens.Estimator{}
	}
	logger.Info("token counter ready", "encoding", counter.Encoding())
	return counter
}

func provideClock(cfg *config.Config, logger *slog.Logger) util.Clock {
	name := strings.TrimSpace(cfg.Suggestions.Timezone)
	if name == "" {
		return util.NowUTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown timezone, using fixed +02:00", "timezone", name, "error", err)
		loc = fallbackZone
	}
	return util.InZone(loc)
}

func provideSuggestionStore(cfg *config.Config, resources *bootstrap.Resources, logger *slog.Logger) suggestion.Store {
	memory := suggestionstore.NewMemoryStore(cfg.Suggestions.CacheTTL, cfg.Suggestions.CacheMaxEntries)
	if cfg.Suggestions.Store != config.StoreValkey {
		return memory
	}
	opt, err := buildValkeyOptions(cfg.Suggestions.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return memory
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return memory
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return memory
	}
	resources.Add("valkey", client.Close)
	logger.Info("suggestion valkey store enabled", "addr", cfg.Suggestions.Valkey.Addr)
	return suggestionstore.NewValkeyStore(client, cfg.Suggestions.Valkey.Prefix, cfg.Suggestions.CacheTTL, cfg.Suggestions.CacheMaxEntries)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideInteractionLog(cfg *config.Config, resources *bootstrap.Resources, logger *slog.Logger) suggestion.InteractionLog {
	fallback := interactionlog.NewMemoryRepository(cfg.Interactions.Capacity)
	dsn := strings.TrimSpace(cfg.Interactions.Postgres.DSN)
	if dsn == "" {
		logger.Info("interactions postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Interactions.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Interactions.Postgres.MaxConns
	}
	if cfg.Interactions.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Interactions.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	repo := interactionlog.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("interactions schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	resources.Add("postgres", pool.Close)
	logger.Info("interactions postgres repository enabled")
	return repo
}

// provideInteractionRecorder narrows the log to the write side the engine needs.
func provideInteractionRecorder(log suggestion.InteractionLog) suggestion.InteractionRecorder {
	return log
}

func provideWeatherProvider(cfg *config.Config, logger *slog.Logger) suggestion.WeatherProvider {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Info("weather api key not set, city lookups disabled")
		return nil
	}
	client, err := openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
	if err != nil {
		logger.Error("failed to create weather client, city lookups disabled", "error", err)
		return nil
	}
	return client
}
