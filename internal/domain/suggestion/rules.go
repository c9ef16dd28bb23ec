package suggestion

import (
	"strings"
	"time"
)

// analysisAliases maps the structural analysis labels used by callers onto
// the closed category set.
var analysisAliases = map[string]Type{
	"weather_data":    TypeGeneralWeather,
	"current_weather": TypeGeneralWeather,
	"weather":         TypeGeneralWeather,
	"forecast":        TypeForecastTomorrow,
	"tomorrow":        TypeForecastTomorrow,
	"weekly_forecast": TypeForecastWeek,
	"week":            TypeForecastWeek,
	"activities":      TypeActivities,
	"activity":        TypeActivities,
	"clothing":        TypeClothing,
	"rain":            TypeRainPrediction,
	"comparison":      TypeCityComparison,
	"compare":         TypeCityComparison,
	"help":            TypeHelp,
}

// ResolveAnalysisType maps a structural analysis onto a category. Unknown
// labels resolve to TypeGeneralWeather.
func ResolveAnalysisType(a Analysis) Type {
	label := strings.ToLower(strings.TrimSpace(a.Type))
	if t, ok := ParseType(label); ok {
		return t
	}
	if t, ok := analysisAliases[label]; ok {
		return t
	}
	return TypeGeneralWeather
}

// ruleSuggestions builds a set from the category, the weather and the clock.
func ruleSuggestions(kind Type, w WeatherContext, user UserContext, now time.Time) SuggestionSet {
	primary := primarySuggestions(kind, user.ExpertiseLevel)
	weather := weatherSuggestions(w)
	timed := timeSuggestions(now)

	candidates := make([]string, 0, len(primary)+len(weather)+len(timed))
	lead := min(2, len(primary))
	candidates = append(candidates, primary[:lead]...)
	if len(weather) > 0 {
		candidates = append(candidates, weather[0])
	}
	candidates = append(candidates, timed...)
	candidates = append(candidates, primary[lead:]...)
	if len(weather) > 1 {
		candidates = append(candidates, weather[1:]...)
	}
	return validateStrings(candidates)
}

func primarySuggestions(kind Type, level Level) []string {
	var out []string
	switch kind {
	case TypeActivities:
		out = []string{"Atividades casa", "Passeios hoje", "Eventos cidade"}
	case TypeClothing:
		out = []string{"Que roupa usar?", "Roupa amanhã", "Calçado ideal"}
	case TypeTipsHot:
		out = []string{"Dicas calor", "Praias próximas", "Hidratação"}
	case TypeTipsCold:
		out = []string{"Dicas frio", "Roupa quente?", "Bebidas quentes"}
	case TypeTipsRain:
		out = []string{"Dicas chuva", "Vai parar chuva?", "Atividades casa"}
	case TypeForecastTomorrow:
		out = []string{"Tempo amanhã?", "Previsão semana", "Roupa amanhã"}
	case TypeForecastWeek:
		out = []string{"Previsão semana", "Fim de semana?", "Tempo amanhã?"}
	case TypeRainPrediction:
		out = []string{"Vai chover?", "Vai parar chuva?", "Dicas chuva"}
	case TypeCityComparison:
		out = []string{"Comparar cidades", "Tempo na Beira", "Tempo Nampula"}
	case TypeHelp:
		out = []string{"Comandos", "Tempo hoje", "Que roupa usar?"}
	case TypeGeneralWeather:
		out = []string{"Tempo amanhã?", "Que roupa usar?", "Atividades hoje"}
	}
	if level == LevelAdvanced {
		out = append([]string{"Dados técnicos"}, out...)
	}
	return out
}

func weatherSuggestions(w WeatherContext) []string {
	switch {
	case isRainy(w.Description):
		return []string{"Vai parar chuva?", "Dicas chuva"}
	case w.Temperature >= hotThreshold:
		return []string{"Dicas calor", "Praias próximas"}
	case w.Temperature < mildThreshold:
		return []string{"Dicas frio", "Roupa quente?"}
	default:
		return []string{"Atividades hoje"}
	}
}

func timeSuggestions(now time.Time) []string {
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return []string{"Planos fim semana"}
	}
	switch PeriodOf(now) {
	case PeriodMorning:
		return []string{"Planos manhã", "Tempo à tarde"}
	case PeriodAfternoon:
		return []string{"Planos tarde", "Tempo à noite"}
	case PeriodEvening:
		return []string{"Planos noite", "Tempo amanhã?"}
	default:
		return []string{"Tempo amanhã?", "Previsão manhã"}
	}
}
