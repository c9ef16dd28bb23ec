package suggestion

import "strings"

const emergencyResponse = "😅 Desculpe, tive um problema a processar o seu pedido. " +
	"Tente de novo ou escolha uma das opções abaixo."

// EmergencySuggestions is the last-resort set. It depends only on whether the
// raw description mentions rain.
func EmergencySuggestions(description string) SuggestionSet {
	if strings.Contains(strings.ToLower(description), "chuva") {
		return validateStrings([]string{"Vai parar chuva?", "Dicas chuva", "Atividades casa"})
	}
	return validateStrings([]string{"Tempo amanhã?", "Que roupa usar?", "Mais info"})
}

// rawDescription reads the description without going through the Sanitizer.
func rawDescription(w *WeatherInput) string {
	if w == nil || w.Description == nil {
		return ""
	}
	return *w.Description
}
