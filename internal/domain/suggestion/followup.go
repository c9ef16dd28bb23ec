package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/yanqian/clima-assistant/pkg/errors"
	"github.com/yanqian/clima-assistant/pkg/metrics"
)

var rainFollowUps = []string{"Vai parar chuva?", "Atividades casa", "Filmes hoje"}

const followUpSystemPrompt = "Geras botões de resposta rápida para um assistente meteorológico. " +
	"Responde APENAS com um array JSON de 3 strings."

// aiFollowUps is the AI strategy of the follow-up generator.
func (s *service) aiFollowUps(ctx context.Context, kind Type, weather WeatherContext, text string) (SuggestionSet, metrics.TokenUsage, error) {
	content, usage, err := s.complete(ctx, completion{
		system:      followUpSystemPrompt,
		user:        buildFollowUpPrompt(kind, weather, text),
		temperature: s.cfg.FollowUpTemperature,
		maxTokens:   s.cfg.FollowUpMaxTokens,
	})
	if err != nil {
		return nil, usage, err
	}
	candidates, err := parseFollowUps(content)
	if err != nil {
		return nil, usage, apperrors.Wrap(apperrors.CodeParseError, "follow-up response malformed", err)
	}
	return ValidateSuggestions(candidates), usage, nil
}

func buildFollowUpPrompt(kind Type, weather WeatherContext, text string) string {
	var b strings.Builder
	if text != "" {
		fmt.Fprintf(&b, "Última mensagem: %q\n", text)
	}
	fmt.Fprintf(&b, "Categoria: %s\n", kind)
	fmt.Fprintf(&b, "Tempo em %s: %.0f°C, %s\n\n", weather.City, weather.Temperature, weather.Description)
	fmt.Fprintf(&b, "Cria 3 perguntas de seguimento curtas, cada uma com no máximo %d caracteres, diferentes entre si.\n", MaxLabelLength)
	b.WriteString(`Exemplo: ["Tempo amanhã?","Que roupa usar?","Dicas calor"]`)
	return b.String()
}

// parseFollowUps accepts a bare array or an object with a suggestions array.
func parseFollowUps(raw string) ([]any, error) {
	data := []byte(stripCodeFence(raw))
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		var wrapped struct {
			Suggestions []any `json:"suggestions"`
		}
		if werr := json.Unmarshal(data, &wrapped); werr != nil {
			return nil, err
		}
		items = wrapped.Suggestions
	}
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			return items, nil
		}
	}
	return nil, errors.New("no usable suggestions")
}

// ruleFollowUps is the deterministic follow-up table.
func ruleFollowUps(kind Type, w WeatherContext) SuggestionSet {
	rainy := isRainy(w.Description)
	hot := w.Temperature >= hotThreshold
	cold := w.Temperature < mildThreshold

	var labels []string
	switch kind {
	case TypeActivities:
		switch {
		case rainy:
			labels = rainFollowUps
		case hot:
			labels = []string{"Praias próximas", "Dicas calor", "Que roupa usar?"}
		default:
			labels = []string{"Passeios hoje", "Que roupa usar?", "Tempo amanhã?"}
		}
	case TypeClothing:
		switch {
		case rainy:
			labels = []string{"Dicas chuva", "Atividades casa", "Tempo amanhã?"}
		case hot:
			labels = []string{"Dicas calor", "Atividades hoje", "Tempo amanhã?"}
		case cold:
			labels = []string{"Dicas frio", "Atividades casa", "Tempo amanhã?"}
		default:
			labels = []string{"Atividades hoje", "Tempo amanhã?", "Dicas do tempo"}
		}
	case TypeTipsHot:
		labels = []string{"Que roupa usar?", "Praias próximas", "Tempo amanhã?"}
	case TypeTipsCold:
		labels = []string{"Que roupa usar?", "Atividades casa", "Tempo amanhã?"}
	case TypeTipsRain:
		labels = rainFollowUps
	case TypeForecastTomorrow:
		labels = []string{"Previsão semana", "Que roupa usar?", "Atividades amanhã"}
	case TypeForecastWeek:
		labels = []string{"Tempo amanhã?", "Fim de semana?", "Comparar cidades"}
	case TypeRainPrediction:
		if rainy {
			labels = rainFollowUps
		} else {
			labels = []string{"Tempo amanhã?", "Atividades hoje", "Dicas do tempo"}
		}
	case TypeCityComparison:
		labels = []string{"Tempo amanhã?", "Outra cidade", "Previsão semana"}
	case TypeHelp:
		labels = []string{"Tempo hoje", "Que roupa usar?", "Atividades hoje"}
	case TypeGeneralWeather:
		switch {
		case rainy:
			labels = rainFollowUps
		case hot:
			labels = []string{"Dicas calor", "Que roupa usar?", "Atividades hoje"}
		case cold:
			labels = []string{"Dicas frio", "Que roupa usar?", "Tempo amanhã?"}
		default:
			labels = []string{"Tempo amanhã?", "Que roupa usar?", "Atividades hoje"}
		}
	}
	return validateStrings(labels)
}
