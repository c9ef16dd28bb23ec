package suggestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanqian/clima-assistant/pkg/metrics"
)

const responseSystemPrompt = "És um assistente meteorológico simpático de Moçambique. " +
	"Falas português moçambicano, num tom próximo e descontraído, e usas emojis com moderação."

var responseInstructions = map[Type]string{
	TypeActivities:       "Sugere 3 a 4 atividades adequadas ao tempo, indicando se são ao ar livre ou em casa.",
	TypeClothing:         "Recomenda roupa e calçado concretos para a temperatura e a condição atuais.",
	TypeTipsHot:          "Dá dicas práticas para lidar com o calor: hidratação, sombra, proteção solar.",
	TypeTipsCold:         "Dá dicas práticas para lidar com o frio: agasalhos, bebidas quentes, casa.",
	TypeTipsRain:         "Dá dicas de proteção contra a chuva e segurança nas estradas.",
	TypeForecastTomorrow: "Resume a previsão para amanhã com mínima, máxima e o que planear.",
	TypeForecastWeek:     "Resume a tendência dos próximos dias e quando é melhor planear saídas.",
	TypeRainPrediction:   "Diz claramente se há ou não chuva e o que esperar nas próximas horas.",
	TypeCityComparison:   "Explica como comparar o tempo com outra cidade e pede o nome da cidade.",
	TypeHelp:             "Explica de forma curta o que o assistente consegue fazer, com exemplos.",
	TypeGeneralWeather:   "Resume o tempo atual e dá uma recomendação útil.",
}

// generateResponse is the AI strategy of the reply generator.
func (s *service) generateResponse(ctx context.Context, text string, analysis AnalysisResult, weather WeatherContext, user UserContext) (string, metrics.TokenUsage, error) {
	return s.complete(ctx, completion{
		system:      responseSystemPrompt,
		user:        buildResponsePrompt(text, analysis, weather, user),
		temperature: s.cfg.ResponseTemperature,
		maxTokens:   s.cfg.ResponseMaxTokens,
	})
}

func buildResponsePrompt(text string, analysis AnalysisResult, weather WeatherContext, user UserContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pergunta: %q\n", text)
	fmt.Fprintf(&b, "Categoria: %s (confiança %.2f, urgência %s)\n", analysis.SuggestionType, analysis.Confidence, analysis.Urgency)
	if analysis.UserIntent != "" {
		fmt.Fprintf(&b, "Intenção: %s\n", analysis.UserIntent)
	}
	if len(analysis.ContextualFactors) > 0 {
		fmt.Fprintf(&b, "Fatores: %s\n", strings.Join(analysis.ContextualFactors, ", "))
	}
	fmt.Fprintf(&b, "Tempo em %s: %.0f°C (mín %.0f°C, máx %.0f°C), %s, humidade %.0f%%\n",
		weather.City, weather.Temperature, weather.MinTemp, weather.MaxTemp, weather.Description, weather.Humidity)
	fmt.Fprintf(&b, "Utilizador: nível %s, %d consultas\n\n", user.ExpertiseLevel, user.QueryCount)

	instruction, ok := responseInstructions[analysis.SuggestionType]
	if !ok {
		instruction = responseInstructions[TypeGeneralWeather]
	}
	b.WriteString("Instruções: ")
	b.WriteString(instruction)
	b.WriteString("\n\nEstilo:\n")
	b.WriteString("- Máximo 300 palavras\n")
	b.WriteString("- Estrutura: título com emoji, informação principal, lista de dicas, dica final\n")
	b.WriteString("- Linguagem simples para nível basic, mais detalhe técnico para advanced\n")
	return b.String()
}
