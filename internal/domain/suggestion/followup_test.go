package suggestion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFollowUps(t *testing.T) {
	got, err := parseFollowUps("```json\n[\"Tempo amanhã?\", 3, \"Dicas calor\"]\n```")
	require.NoError(t, err)
	require.Equal(t, SuggestionSet{"Tempo amanhã?", "Dicas calor", "Que roupa usar?"}, ValidateSuggestions(got))

	got, err = parseFollowUps(`{"suggestions":["Filmes hoje"]}`)
	require.NoError(t, err)
	require.Len(t, got, 1)

	for _, raw := range []string{"Tempo amanhã?", `[1,2,3]`, `[]`, `{"other":true}`} {
		_, err := parseFollowUps(raw)
		require.Error(t, err, raw)
	}
}

func TestRuleFollowUpsRain(t *testing.T) {
	desc := "chuva fraca"
	weather := NormalizeWeather(&WeatherInput{Description: &desc})
	for _, kind := range []Type{TypeGeneralWeather, TypeActivities, TypeTipsRain, TypeRainPrediction} {
		require.Equal(t, SuggestionSet{"Vai parar chuva?", "Atividades casa", "Filmes hoje"}, ruleFollowUps(kind, weather), kind)
	}
}

func TestRuleFollowUpsTemperatureBranch(t *testing.T) {
	hot, cold := 34.0, 12.0
	require.Equal(t, "Dicas calor", ruleFollowUps(TypeClothing, NormalizeWeather(&WeatherInput{Temperature: &hot}))[0])
	require.Equal(t, "Dicas frio", ruleFollowUps(TypeClothing, NormalizeWeather(&WeatherInput{Temperature: &cold}))[0])
}

func TestRuleFollowUpsCoverEveryType(t *testing.T) {
	for _, kind := range AllTypes {
		requireValidSet(t, ruleFollowUps(kind, NormalizeWeather(nil)))
	}
}
