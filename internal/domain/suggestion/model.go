package suggestion

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/clima-assistant/pkg/metrics"
)

// Type is the closed set of intent categories a turn is classified into.
type Type string

const (
	TypeActivities       Type = "activities_request"
	TypeClothing         Type = "clothing_advice"
	TypeTipsHot          Type = "weather_tips_hot"
	TypeTipsCold         Type = "weather_tips_cold"
	TypeTipsRain         Type = "weather_tips_rain"
	TypeForecastTomorrow Type = "forecast_tomorrow"
	TypeForecastWeek     Type = "forecast_week"
	TypeRainPrediction   Type = "rain_prediction"
	TypeCityComparison   Type = "city_comparison"
	TypeHelp             Type = "help_request"
	TypeGeneralWeather   Type = "general_weather"
)

// AllTypes lists every category in prompt order.
var AllTypes = []Type{
	TypeActivities,
	TypeClothing,
	TypeTipsHot,
	TypeTipsCold,
	TypeTipsRain,
	TypeForecastTomorrow,
	TypeForecastWeek,
	TypeRainPrediction,
	TypeCityComparison,
	TypeHelp,
	TypeGeneralWeather,
}

// ParseType maps a label onto the closed set.
func ParseType(raw string) (Type, bool) {
	for _, t := range AllTypes {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

// Level is shared by user expertise and analysis complexity.
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func parseLevel(raw string) Level {
	switch Level(raw) {
	case LevelBasic, LevelIntermediate, LevelAdvanced:
		return Level(raw)
	default:
		return LevelBasic
	}
}

// Urgency of the user's need.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func parseUrgency(raw string) Urgency {
	switch Urgency(raw) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return Urgency(raw)
	default:
		return UrgencyLow
	}
}

// WeatherContext is the fully populated weather view used downstream of the Sanitizer.
type WeatherContext struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	MinTemp     float64 `json:"minTemp"`
	MaxTemp     float64 `json:"maxTemp"`
	Description string  `json:"description"`
	Humidity    float64 `json:"humidity"`
	IsForecast  bool    `json:"isForecast"`
}

// UserContext is the fully populated user profile.
type UserContext struct {
	QueryCount          int    `json:"queryCount"`
	LastCity            string `json:"lastCity"`
	PreferredCity       string `json:"preferredCity"`
	ExpertiseLevel      Level  `json:"expertiseLevel"`
	PreferredComplexity string `json:"preferredComplexity"`
}

// Analysis is the structural description of a request accepted by GenerateSuggestions.
type Analysis struct {
	Type           string `json:"type"`
	City           string `json:"city"`
	Intent         string `json:"intent"`
	ExpertiseLevel Level  `json:"expertiseLevel"`
}

// AnalysisResult is produced by either the AI analyzer or the rule classifier.
type AnalysisResult struct {
	SuggestionType    Type     `json:"suggestionType"`
	Confidence        float64  `json:"confidence"`
	Reasoning         string   `json:"reasoning"`
	ContextualFactors []string `json:"contextualFactors"`
	UserIntent        string   `json:"userIntent"`
	Urgency           Urgency  `json:"urgency"`
	Complexity        Level    `json:"complexity"`
}

// SuggestionSet holds exactly three distinct labels of at most 18 characters
// once it has passed ValidateSuggestions.
type SuggestionSet []string

func (s SuggestionSet) clone() SuggestionSet {
	return append(SuggestionSet(nil), s...)
}

// GenerateRequest is the input of GenerateSuggestions. Every field is optional.
type GenerateRequest struct {
	Analysis *AnalysisInput `json:"analysis"`
	Weather  *WeatherInput  `json:"weather"`
	User     *UserInput     `json:"user"`
}

// RespondRequest is the input of ProcessSuggestionResponse.
type RespondRequest struct {
	Text    string        `json:"text"`
	Weather *WeatherInput `json:"weather"`
	User    *UserInput    `json:"user"`
}

// ProcessResult is returned for a conversational turn.
type ProcessResult struct {
	Success            bool                `json:"success"`
	Response           string              `json:"response"`
	Suggestions        SuggestionSet       `json:"suggestions"`
	SuggestionType     Type                `json:"suggestionType"`
	OriginalSuggestion string              `json:"originalSuggestion"`
	AIPowered          bool                `json:"aiPowered"`
	TokenUsage         *metrics.TokenUsage `json:"tokenUsage,omitempty"`
	// FailureReason is diagnostic only; it never reaches end users.
	FailureReason string `json:"-"`
}

// Interaction is the record kept for each processed turn.
type Interaction struct {
	ID             uuid.UUID     `json:"id"`
	Utterance      string        `json:"utterance"`
	City           string        `json:"city"`
	SuggestionType Type          `json:"suggestionType"`
	Suggestions    SuggestionSet `json:"suggestions"`
	AIPowered      bool          `json:"aiPowered"`
	FailureReason  string        `json:"failureReason,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Config carries the completion parameters for the AI tiers.
type Config struct {
	Model               string
	Timeout             time.Duration
	AnalysisTemperature float32
	ResponseTemperature float32
	FollowUpTemperature float32
	TopP                float32
	FrequencyPenalty    float32
	PresencePenalty     float32
	AnalysisMaxTokens   int
	ResponseMaxTokens   int
	FollowUpMaxTokens   int
	MaxUtteranceTokens  int
}
