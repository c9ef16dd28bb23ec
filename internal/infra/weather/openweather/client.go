package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultTimeout = 5 * time.Second
)

// Client fetches current conditions from OpenWeather in metric units with
// Portuguese descriptions.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openweather api key cannot be empty")
	}
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Current implements suggestion.WeatherProvider.
func (c *Client) Current(ctx context.Context, city string) (*suggestion.WeatherInput, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.New("city cannot be empty")
	}
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	query.Set("lang", "pt")
	endpoint := fmt.Sprintf("%s/weather?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	return normalize(raw, city), nil
}

type apiResponse struct {
	Name    string       `json:"name"`
	Main    apiMain      `json:"main"`
	Weather []apiWeather `json:"weather"`
}

type apiMain struct {
	Temp     *float64 `json:"temp"`
	TempMin  *float64 `json:"temp_min"`
	TempMax  *float64 `json:"temp_max"`
	Humidity *float64 `json:"humidity"`
}

type apiWeather struct {
	Description string `json:"description"`
}

func normalize(raw apiResponse, requested string) *suggestion.WeatherInput {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = requested
	}
	out := &suggestion.WeatherInput{
		City:        &name,
		Temperature: raw.Main.Temp,
		MinTemp:     raw.Main.TempMin,
		MaxTemp:     raw.Main.TempMax,
		Humidity:    raw.Main.Humidity,
	}
	if len(raw.Weather) > 0 {
		if desc := strings.TrimSpace(raw.Weather[0].Description); desc != "" {
			out.Description = &desc
		}
	}
	return out
}

var _ suggestion.WeatherProvider = (*Client)(nil)
