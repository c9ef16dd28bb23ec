package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
	apperrors "github.com/yanqian/clima-assistant/pkg/errors"
)

// Handler wires the HTTP transport to the suggestion engine.
type Handler struct {
	suggestions  suggestion.Service
	weather      suggestion.WeatherProvider
	interactions suggestion.InteractionLog
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler. weather and interactions may be nil.
func NewHandler(svc suggestion.Service, weather suggestion.WeatherProvider, interactions suggestion.InteractionLog, logger *slog.Logger) *Handler {
	return &Handler{
		suggestions:  svc,
		weather:      weather,
		interactions: interactions,
		logger:       logger.With("component", "http.handler"),
	}
}

type generateBody struct {
	suggestion.GenerateRequest
	City json.RawMessage `json:"city"`
}

type respondBody struct {
	suggestion.RespondRequest
	City json.RawMessage `json:"city"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GenerateSuggestions returns three quick replies for a structural analysis.
func (h *Handler) GenerateSuggestions(c *gin.Context) {
	var body generateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidRequest, errMessage(err), err))
		return
	}
	req := body.GenerateRequest
	req.Weather = h.resolveWeather(c.Request.Context(), req.Weather, lenientString(body.City))

	set := h.suggestions.GenerateSuggestions(c.Request.Context(), req)
	c.JSON(http.StatusOK, gin.H{"suggestions": set})
}

// Respond processes one conversational turn.
func (h *Handler) Respond(c *gin.Context) {
	var body respondBody
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidRequest, errMessage(err), err))
		return
	}
	req := body.RespondRequest
	req.Weather = h.resolveWeather(c.Request.Context(), req.Weather, lenientString(body.City))

	res := h.suggestions.ProcessSuggestionResponse(c.Request.Context(), req)
	if res.FailureReason != "" {
		h.logger.Debug("turn served by fallback tier", "reason", res.FailureReason, "request_id", c.GetString(requestIDKey))
	}
	c.JSON(http.StatusOK, res)
}

// Interactions lists the most recent processed turns.
func (h *Handler) Interactions(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidRequest, "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}
	if h.interactions == nil {
		c.JSON(http.StatusOK, gin.H{"interactions": []suggestion.Interaction{}})
		return
	}
	items, err := h.interactions.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "interactions_failed", "could not list interactions", err))
		return
	}
	if items == nil {
		items = []suggestion.Interaction{}
	}
	c.JSON(http.StatusOK, gin.H{"interactions": items})
}

// resolveWeather fills in conditions for a named city when the caller sent
// none. Lookup failures leave the Sanitizer defaults in place.
func (h *Handler) resolveWeather(ctx context.Context, weather *suggestion.WeatherInput, city string) *suggestion.WeatherInput {
	if weather != nil || city == "" {
		return weather
	}
	fallback := &suggestion.WeatherInput{City: &city}
	if h.weather == nil {
		return fallback
	}
	found, err := h.weather.Current(ctx, city)
	if err != nil {
		h.logger.Warn("weather lookup failed", "city", city, "error", err)
		return fallback
	}
	return found
}

func lenientString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
