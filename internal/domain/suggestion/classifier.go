package suggestion

import (
	"slices"
	"strings"
	"unicode"
)

type rule struct {
	kind       Type
	confidence float64
	// keywords are whole words or phrases of whole words.
	keywords []string
	// combos match when every word of any one group is present.
	combos [][]string
}

// rules run in priority order; the first match wins.
var rules = []rule{
	{
		kind:       TypeActivities,
		confidence: 0.9,
		keywords: []string{
			"atividade", "atividades", "actividade", "actividades", "o que fazer", "fazer hoje",
			"passear", "passeio", "passeios", "programa",
		},
	},
	{
		kind:       TypeClothing,
		confidence: 0.9,
		keywords:   []string{"roupa", "roupas", "vestir", "vestuário", "calçar", "calçado"},
	},
	{
		kind:       TypeTipsHot,
		confidence: 0.85,
		keywords:   []string{"calor", "quente"},
	},
	{
		kind:       TypeTipsCold,
		confidence: 0.85,
		keywords:   []string{"frio", "fria", "gelado", "bebidas quentes"},
	},
	{
		kind:       TypeTipsRain,
		confidence: 0.85,
		keywords:   []string{"guarda-chuva", "guarda chuva"},
		combos: [][]string{
			{"dica", "chuva"}, {"dicas", "chuva"},
			{"proteger", "chuva"}, {"protege", "chuva"}, {"proteção", "chuva"},
		},
	},
	{
		kind:       TypeForecastTomorrow,
		confidence: 0.9,
		keywords:   []string{"amanhã", "amanha"},
	},
	{
		kind:       TypeRainPrediction,
		confidence: 0.8,
		keywords:   []string{"chover", "chuva", "vai parar"},
	},
	{
		kind:       TypeHelp,
		confidence: 0.9,
		keywords:   []string{"ajuda", "help", "comandos", "como funciona", "opções"},
	},
}

const generalConfidence = 0.6

// ClassifyRules is the keyword tier. It never fails.
func ClassifyRules(text string, weather WeatherContext) AnalysisResult {
	words := splitWords(text)
	for _, r := range rules {
		if r.matches(words) {
			return ruleResult(r.kind, r.confidence, text, weather)
		}
	}
	return ruleResult(TypeGeneralWeather, generalConfidence, text, weather)
}

func (r rule) matches(words []string) bool {
	for _, kw := range r.keywords {
		if containsPhrase(words, strings.Fields(kw)) {
			return true
		}
	}
	for _, group := range r.combos {
		all := true
		for _, word := range group {
			if !slices.Contains(words, word) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// splitWords lowercases text and splits it on anything that is not a
// letter, digit or hyphen.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		if slices.Equal(words[i:i+len(phrase)], phrase) {
			return true
		}
	}
	return false
}

func ruleResult(kind Type, confidence float64, text string, weather WeatherContext) AnalysisResult {
	return AnalysisResult{
		SuggestionType:    kind,
		Confidence:        confidence,
		Reasoning:         "classificação por palavras-chave",
		ContextualFactors: weatherFactors(weather),
		UserIntent:        strings.TrimSpace(text),
		Urgency:           urgencyFor(kind, weather),
		Complexity:        LevelBasic,
	}
}

func weatherFactors(w WeatherContext) []string {
	factors := []string{"cidade:" + strings.ToLower(w.City)}
	switch {
	case isRainy(w.Description):
		factors = append(factors, "chuva")
	case w.Temperature >= hotThreshold:
		factors = append(factors, "calor")
	case w.Temperature < mildThreshold:
		factors = append(factors, "frio")
	}
	if w.IsForecast {
		factors = append(factors, "previsão")
	}
	return factors
}

func urgencyFor(kind Type, w WeatherContext) Urgency {
	switch kind {
	case TypeTipsRain, TypeRainPrediction:
		if isRainy(w.Description) {
			return UrgencyHigh
		}
		return UrgencyMedium
	case TypeTipsHot:
		if w.Temperature >= hotThreshold {
			return UrgencyHigh
		}
		return UrgencyMedium
	case TypeTipsCold, TypeClothing, TypeForecastTomorrow:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func isRainy(description string) bool {
	d := strings.ToLower(description)
	return strings.Contains(d, "chuva") || strings.Contains(d, "chuvisco") || strings.Contains(d, "trovoada")
}
