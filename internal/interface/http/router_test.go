package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
	"github.com/yanqian/clima-assistant/internal/infra/config"
	"github.com/yanqian/clima-assistant/internal/infra/interactionlog"
)

func TestRouter_Health(t *testing.T) {
	recorder := performRequest(http.MethodGet, "/healthz", "", newRouterUnderTest(t, &stubSuggestions{}, nil, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
	require.NotEmpty(t, recorder.Header().Get(requestIDHeader))
}

func TestRouter_GenerateSuggestions(t *testing.T) {
	svc := &stubSuggestions{
		generateFn: func(_ context.Context, req suggestion.GenerateRequest) suggestion.SuggestionSet {
			require.Equal(t, "clothing_advice", suggestion.NormalizeAnalysis(req.Analysis).Type)
			require.Equal(t, 31.0, suggestion.NormalizeWeather(req.Weather).Temperature)
			return suggestion.SuggestionSet{"Dicas calor", "Praias próximas", "Tempo amanhã?"}
		},
	}

	body := `{"analysis":{"type":"clothing_advice"},"weather":{"temperature":"31","humidity":{}},"user":"nobody"}`
	recorder := performRequest(http.MethodPost, "/api/v1/suggestions", body, newRouterUnderTest(t, svc, nil, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"suggestions":["Dicas calor","Praias próximas","Tempo amanhã?"]}`, recorder.Body.String())
}

func TestRouter_GenerateSuggestionsLooksUpCity(t *testing.T) {
	weather := &stubWeather{temps: map[string]float64{"Beira": 29}}
	svc := &stubSuggestions{
		generateFn: func(_ context.Context, req suggestion.GenerateRequest) suggestion.SuggestionSet {
			w := suggestion.NormalizeWeather(req.Weather)
			require.Equal(t, "Beira", w.City)
			require.Equal(t, 29.0, w.Temperature)
			return suggestion.EmergencySuggestions("")
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/suggestions", `{"city":"Beira"}`, newRouterUnderTest(t, svc, weather, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_RespondFallsBackWhenWeatherLookupFails(t *testing.T) {
	weather := &stubWeather{}
	svc := &stubSuggestions{
		respondFn: func(_ context.Context, req suggestion.RespondRequest) suggestion.ProcessResult {
			w := suggestion.NormalizeWeather(req.Weather)
			require.Equal(t, "Tete", w.City)
			require.Equal(t, suggestion.DefaultTemperature, w.Temperature)
			return suggestion.ProcessResult{
				Success:            true,
				Response:           "ok",
				Suggestions:        suggestion.EmergencySuggestions(""),
				SuggestionType:     suggestion.TypeGeneralWeather,
				OriginalSuggestion: req.Text,
				FailureReason:      "no_token",
			}
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/suggestions/respond", `{"text":"olá","city":"Tete"}`, newRouterUnderTest(t, svc, weather, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, true, got["success"])
	require.Equal(t, "olá", got["originalSuggestion"])
	require.Equal(t, false, got["aiPowered"])
	require.NotContains(t, got, "FailureReason")
	require.NotContains(t, got, "tokenUsage")
}

func TestRouter_RespondInvalidJSON(t *testing.T) {
	for _, body := range []string{`{"text":123}`, `{"text":`, ``} {
		recorder := performRequest(http.MethodPost, "/api/v1/suggestions/respond", body, newRouterUnderTest(t, &stubSuggestions{}, nil, nil))
		require.Equal(t, http.StatusBadRequest, recorder.Code, body)

		errBody := decodeErrorBody(t, recorder.Body.Bytes())
		require.Equal(t, "invalid_request", errBody["error"]["code"])
		require.NotEmpty(t, errBody["error"]["message"])
	}
}

func TestRouter_Interactions(t *testing.T) {
	repo := interactionlog.NewMemoryRepository(10)
	for _, text := range []string{"primeiro", "segundo"} {
		require.NoError(t, repo.Record(context.Background(), suggestion.Interaction{Utterance: text, CreatedAt: time.Now().UTC()}))
	}
	server := newRouterUnderTest(t, &stubSuggestions{}, nil, repo)

	recorder := performRequest(http.MethodGet, "/api/v1/interactions?limit=1", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Interactions []suggestion.Interaction `json:"interactions"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Interactions, 1)
	require.Equal(t, "segundo", body.Interactions[0].Utterance)

	recorder = performRequest(http.MethodGet, "/api/v1/interactions?limit=abc", "", server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_InteractionsWithoutLog(t *testing.T) {
	recorder := performRequest(http.MethodGet, "/api/v1/interactions", "", newRouterUnderTest(t, &stubSuggestions{}, nil, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"interactions":[]}`, recorder.Body.String())
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2}
	server := NewRouter(cfg, NewHandler(&stubSuggestions{}, nil, nil, newTestLogger()))

	require.Equal(t, http.StatusOK, performRequest(http.MethodGet, "/healthz", "", server).Code)
	require.Equal(t, http.StatusOK, performRequest(http.MethodGet, "/healthz", "", server).Code)

	recorder := performRequest(http.MethodGet, "/healthz", "", server)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.AllowedOrigins = []string{"https://chat.example"}
	server := NewRouter(cfg, NewHandler(&stubSuggestions{}, nil, nil, newTestLogger()))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/suggestions", nil)
	req.Header.Set("Origin", "https://chat.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://chat.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIPRateLimiterRefills(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 1}, func() time.Time { return now })

	require.True(t, limiter.allow("10.0.0.1"))
	require.False(t, limiter.allow("10.0.0.1"))
	require.True(t, limiter.allow("10.0.0.2"))

	now = now.Add(time.Second)
	require.True(t, limiter.allow("10.0.0.1"))
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func newRouterUnderTest(t *testing.T, svc suggestion.Service, weather suggestion.WeatherProvider, log suggestion.InteractionLog) *http.Server {
	t.Helper()
	return NewRouter(testConfig(), NewHandler(svc, weather, log, newTestLogger()))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubSuggestions struct {
	generateFn func(ctx context.Context, req suggestion.GenerateRequest) suggestion.SuggestionSet
	respondFn  func(ctx context.Context, req suggestion.RespondRequest) suggestion.ProcessResult
}

func (s *stubSuggestions) GenerateSuggestions(ctx context.Context, req suggestion.GenerateRequest) suggestion.SuggestionSet {
	if s.generateFn != nil {
		return s.generateFn(ctx, req)
	}
	return suggestion.EmergencySuggestions("")
}

func (s *stubSuggestions) ProcessSuggestionResponse(ctx context.Context, req suggestion.RespondRequest) suggestion.ProcessResult {
	if s.respondFn != nil {
		return s.respondFn(ctx, req)
	}
	return suggestion.ProcessResult{Success: true}
}

type stubWeather struct {
	temps map[string]float64
}

func (s *stubWeather) Current(_ context.Context, city string) (*suggestion.WeatherInput, error) {
	temp, ok := s.temps[city]
	if !ok {
		return nil, errors.New("city not found")
	}
	return &suggestion.WeatherInput{City: &city, Temperature: &temp}, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
