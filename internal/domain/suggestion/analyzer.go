package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/yanqian/clima-assistant/pkg/errors"
	"github.com/yanqian/clima-assistant/pkg/metrics"
)

var typeDescriptions = map[Type]string{
	TypeActivities:       "o utilizador quer ideias do que fazer",
	TypeClothing:         "o utilizador quer saber que roupa usar",
	TypeTipsHot:          "dicas para lidar com calor",
	TypeTipsCold:         "dicas para lidar com frio",
	TypeTipsRain:         "dicas para se proteger da chuva",
	TypeForecastTomorrow: "previsão para amanhã",
	TypeForecastWeek:     "previsão para os próximos dias",
	TypeRainPrediction:   "se vai chover ou parar de chover",
	TypeCityComparison:   "comparar o tempo entre cidades",
	TypeHelp:             "ajuda sobre como usar o assistente",
	TypeGeneralWeather:   "qualquer outra pergunta sobre o tempo",
}

const analysisSystemPrompt = "És um classificador de intenções para um assistente meteorológico em Moçambique. " +
	"Responde APENAS com um objeto JSON válido, sem texto adicional."

// analyze asks the completion endpoint to classify the utterance.
func (s *service) analyze(ctx context.Context, text string, weather WeatherContext, user UserContext) (AnalysisResult, metrics.TokenUsage, error) {
	if s.client == nil {
		return AnalysisResult{}, metrics.TokenUsage{}, apperrors.Wrap(apperrors.CodeNoToken, "completion credential not configured", nil)
	}
	if s.counter != nil && s.cfg.MaxUtteranceTokens > 0 && s.counter.Count(text) > s.cfg.MaxUtteranceTokens {
		text = s.counter.Truncate(text, s.cfg.MaxUtteranceTokens)
	}

	content, usage, err := s.complete(ctx, completion{
		system:      analysisSystemPrompt,
		user:        buildAnalysisPrompt(text, weather, user),
		temperature: s.cfg.AnalysisTemperature,
		maxTokens:   s.cfg.AnalysisMaxTokens,
	})
	if err != nil {
		return AnalysisResult{}, usage, err
	}
	result, err := parseAnalysis(content)
	if err != nil {
		return AnalysisResult{}, usage, apperrors.Wrap(apperrors.CodeParseError, "analysis response malformed", err)
	}
	return result, usage, nil
}

func buildAnalysisPrompt(text string, weather WeatherContext, user UserContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mensagem do utilizador: %q\n\n", text)
	fmt.Fprintf(&b, "Contexto do tempo: cidade %s, %.0f°C (mín %.0f°C, máx %.0f°C), %s, humidade %.0f%%",
		weather.City, weather.Temperature, weather.MinTemp, weather.MaxTemp, weather.Description, weather.Humidity)
	if weather.IsForecast {
		b.WriteString(", previsão")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Utilizador: %d consultas, última cidade %s, nível %s\n\n",
		user.QueryCount, user.LastCity, user.ExpertiseLevel)

	b.WriteString("Categorias possíveis:\n")
	for _, t := range AllTypes {
		fmt.Fprintf(&b, "- %s: %s\n", t, typeDescriptions[t])
	}

	b.WriteString("\nExemplos:\n")
	b.WriteString("- \"Dicas calor\" -> weather_tips_hot\n")
	b.WriteString("- \"Que roupa usar?\" -> clothing_advice\n")
	b.WriteString("- \"Vai parar chuva?\" -> rain_prediction\n")
	b.WriteString("- \"Dicas chuva\" -> weather_tips_rain\n")
	b.WriteString("- \"Tempo amanhã?\" -> forecast_tomorrow\n")
	b.WriteString("- \"Atividades hoje\" -> activities_request\n")

	b.WriteString("\nFormato da resposta:\n")
	b.WriteString(`{"suggestionType":"<categoria>","confidence":0.0-1.0,"reasoning":"...",` +
		`"contextualFactors":["..."],"userIntent":"...","urgency":"low|medium|high",` +
		`"complexity":"basic|intermediate|advanced"}`)
	return b.String()
}

type analysisWire struct {
	SuggestionType    string   `json:"suggestionType"`
	Confidence        float64  `json:"confidence"`
	Reasoning         string   `json:"reasoning"`
	ContextualFactors []string `json:"contextualFactors"`
	UserIntent        string   `json:"userIntent"`
	Urgency           string   `json:"urgency"`
	Complexity        string   `json:"complexity"`
}

func parseAnalysis(raw string) (AnalysisResult, error) {
	var wire analysisWire
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &wire); err != nil {
		return AnalysisResult{}, err
	}
	kind, ok := ParseType(strings.TrimSpace(wire.SuggestionType))
	if !ok {
		return AnalysisResult{}, fmt.Errorf("unknown suggestion type %q", wire.SuggestionType)
	}
	factors := make([]string, 0, len(wire.ContextualFactors))
	for _, f := range wire.ContextualFactors {
		if f = strings.TrimSpace(f); f != "" {
			factors = append(factors, f)
		}
	}
	return AnalysisResult{
		SuggestionType:    kind,
		Confidence:        clamp(wire.Confidence, 0, 1),
		Reasoning:         strings.TrimSpace(wire.Reasoning),
		ContextualFactors: factors,
		UserIntent:        strings.TrimSpace(wire.UserIntent),
		Urgency:           parseUrgency(strings.ToLower(strings.TrimSpace(wire.Urgency))),
		Complexity:        parseLevel(strings.ToLower(strings.TrimSpace(wire.Complexity))),
	}, nil
}
