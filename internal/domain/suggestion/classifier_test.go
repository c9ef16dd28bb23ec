package suggestion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyRules(t *testing.T) {
	weather := NormalizeWeather(nil)
	tests := []struct {
		text string
		want Type
	}{
		{"O que fazer hoje?", TypeActivities},
		{"Atividades hoje", TypeActivities},
		{"Que roupa usar?", TypeClothing},
		{"O que devo vestir", TypeClothing},
		{"Dicas calor", TypeTipsHot},
		{"Está muito FRIO", TypeTipsCold},
		{"Preciso de guarda-chuva?", TypeTipsRain},
		{"Dicas chuva", TypeTipsRain},
		{"Como me proteger da chuva", TypeTipsRain},
		{"Tempo amanhã?", TypeForecastTomorrow},
		{"Vai chover?", TypeRainPrediction},
		{"Vai parar chuva?", TypeRainPrediction},
		{"ajuda", TypeHelp},
		{"Passeios hoje", TypeActivities},
		{"Bebidas quentes", TypeTipsCold},
		{"Que calor!", TypeTipsHot},
		{"Olá", TypeGeneralWeather},
		{"", TypeGeneralWeather},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			got := ClassifyRules(tc.text, weather)
			require.Equal(t, tc.want, got.SuggestionType)
			require.Equal(t, LevelBasic, got.Complexity)
			require.InDelta(t, 0.75, got.Confidence, 0.16)
		})
	}
}

func TestClassifyRulesPriority(t *testing.T) {
	// clothing outranks the hot tips keyword
	got := ClassifyRules("que roupa usar no calor", NormalizeWeather(nil))
	require.Equal(t, TypeClothing, got.SuggestionType)
}

func TestClassifyRulesWeatherFactors(t *testing.T) {
	desc := "chuva moderada"
	got := ClassifyRules("vai chover?", NormalizeWeather(&WeatherInput{Description: &desc}))
	require.Equal(t, UrgencyHigh, got.Urgency)
	require.Contains(t, got.ContextualFactors, "chuva")
}

func TestClassifyRulesMatchesWholeWords(t *testing.T) {
	weather := NormalizeWeather(nil)
	tests := map[string]Type{
		"programação da TV": TypeGeneralWeather,
		"quentes":           TypeGeneralWeather,
		"friorento":         TypeGeneralWeather,
		"ver o programa":    TypeActivities,
	}
	for text, want := range tests {
		require.Equal(t, want, ClassifyRules(text, weather).SuggestionType, text)
	}
}

func TestClassifyRulesColdLabels(t *testing.T) {
	weather := NormalizeWeather(nil)
	want := map[string]Type{
		"Dicas frio":      TypeTipsCold,
		"Roupa quente?":   TypeClothing,
		"Bebidas quentes": TypeTipsCold,
	}
	for _, label := range primarySuggestions(TypeTipsCold, LevelBasic) {
		require.Equal(t, want[label], ClassifyRules(label, weather).SuggestionType, label)
	}
}
