package suggestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveAnalysisType(t *testing.T) {
	tests := map[string]Type{
		"weather_data":    TypeGeneralWeather,
		"forecast":        TypeForecastTomorrow,
		"Weekly_Forecast": TypeForecastWeek,
		"clothing_advice": TypeClothing,
		"help":            TypeHelp,
		"":                TypeGeneralWeather,
		"something_else":  TypeGeneralWeather,
	}
	for label, want := range tests {
		require.Equal(t, want, ResolveAnalysisType(Analysis{Type: label}), label)
	}
}

func TestRuleSuggestions(t *testing.T) {
	tuesdayMorning := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	rain := "chuva forte"
	hot := 33.0

	tests := []struct {
		name    string
		kind    Type
		weather WeatherContext
		level   Level
		now     time.Time
		want    SuggestionSet
	}{
		{
			name:    "general on a mild morning",
			kind:    TypeGeneralWeather,
			weather: NormalizeWeather(nil),
			now:     tuesdayMorning,
			want:    SuggestionSet{"Tempo amanhã?", "Que roupa usar?", "Atividades hoje"},
		},
		{
			name:    "activities in the rain",
			kind:    TypeActivities,
			weather: NormalizeWeather(&WeatherInput{Description: &rain}),
			now:     tuesdayMorning,
			want:    SuggestionSet{"Atividades casa", "Passeios hoje", "Vai parar chuva?"},
		},
		{
			name:    "forecast on a hot weekend",
			kind:    TypeForecastWeek,
			weather: NormalizeWeather(&WeatherInput{Temperature: &hot}),
			now:     saturday,
			want:    SuggestionSet{"Previsão semana", "Fim de semana?", "Dicas calor"},
		},
		{
			name:    "advanced users get technical data",
			kind:    TypeClothing,
			weather: NormalizeWeather(nil),
			level:   LevelAdvanced,
			now:     tuesdayMorning,
			want:    SuggestionSet{"Dados técnicos", "Que roupa usar?", "Atividades hoje"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user := NormalizeUser(nil)
			if tc.level != "" {
				user.ExpertiseLevel = tc.level
			}
			got := ruleSuggestions(tc.kind, tc.weather, user, tc.now)
			require.Equal(t, tc.want, got)
			requireValidSet(t, got)
		})
	}
}

func TestTimeSuggestionsWeekend(t *testing.T) {
	sunday := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	require.Equal(t, []string{"Planos fim semana"}, timeSuggestions(sunday))

	tuesdayNight := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	require.Equal(t, []string{"Tempo amanhã?", "Previsão manhã"}, timeSuggestions(tuesdayNight))
}

func TestRuleSuggestionsCoverEveryType(t *testing.T) {
	now := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	for _, kind := range AllTypes {
		requireValidSet(t, ruleSuggestions(kind, NormalizeWeather(nil), NormalizeUser(nil), now))
	}
}
