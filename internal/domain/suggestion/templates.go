package suggestion

import (
	"fmt"
	"strings"
)

const (
	hotThreshold  = 30.0
	warmThreshold = 25.0
	mildThreshold = 18.0
)

// RenderTemplate is the deterministic reply for a category. It never returns
// an empty string.
func RenderTemplate(kind Type, w WeatherContext, user UserContext) string {
	var body string
	switch kind {
	case TypeActivities:
		body = activitiesTemplate(w)
	case TypeClothing:
		body = clothingTemplate(w)
	case TypeTipsHot:
		body = hotTipsTemplate(w)
	case TypeTipsCold:
		body = coldTipsTemplate(w)
	case TypeTipsRain:
		body = rainTipsTemplate(w)
	case TypeForecastTomorrow:
		body = tomorrowTemplate(w)
	case TypeForecastWeek:
		body = weekTemplate(w)
	case TypeRainPrediction:
		body = rainPredictionTemplate(w)
	case TypeCityComparison:
		body = comparisonTemplate(w, user)
	case TypeHelp:
		body = helpTemplate()
	case TypeGeneralWeather:
		body = generalTemplate(w)
	default:
		body = generalTemplate(w)
	}
	return strings.TrimSpace(body)
}

func section(title, main string, tips []string, closing string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(main)
	b.WriteString("\n\n")
	for _, tip := range tips {
		b.WriteString("• ")
		b.WriteString(tip)
		b.WriteString("\n")
	}
	b.WriteString("\n💡 ")
	b.WriteString(closing)
	return b.String()
}

func conditions(w WeatherContext) string {
	return fmt.Sprintf("%s: %.0f°C, %s", w.City, w.Temperature, w.Description)
}

func activitiesTemplate(w WeatherContext) string {
	switch {
	case isRainy(w.Description):
		return section("🏠 *Atividades para dia de chuva*",
			conditions(w)+". Melhor ficar por dentro hoje.",
			[]string{"Cinema ou filmes em casa", "Museus e centros culturais", "Cozinhar uma matapa com a família"},
			"Tenha o guarda-chuva à mão se precisar de sair.")
	case w.Temperature >= hotThreshold:
		return section("🏖️ *Atividades para dia quente*",
			conditions(w)+". Dia perfeito para a praia, mas com cuidado.",
			[]string{"Praia cedo de manhã ou ao fim da tarde", "Piscina ou sombra no jardim", "Gelados e água de coco"},
			"Evite o sol entre as 10h e as 15h.")
	case w.Temperature < mildThreshold:
		return section("☕ *Atividades para dia fresco*",
			conditions(w)+". Está fresquinho lá fora.",
			[]string{"Visitar um mercado ou feira", "Um café quente com amigos", "Caminhada ao meio-dia, quando aquece"},
			"Leve um casaco leve para o fim do dia.")
	default:
		return section("🌳 *Atividades para hoje*",
			conditions(w)+". O tempo está agradável.",
			[]string{"Passeio pela marginal", "Piquenique no parque", "Desporto ao ar livre"},
			"Aproveite o dia, mas beba água.")
	}
}

func clothingTemplate(w WeatherContext) string {
	switch {
	case w.Temperature >= hotThreshold:
		return section("🔥 *Roupa para calor forte*",
			conditions(w)+". Está muito quente, vista-se para o calor.",
			[]string{"Roupas leves e claras de algodão ou linho", "Chapéu ou boné e óculos de sol", "Sandálias e protetor solar"},
			"Evite roupas escuras, absorvem mais calor.")
	case w.Temperature >= warmThreshold:
		return section("☀️ *Roupa para dia quente*",
			conditions(w)+". Calor agradável.",
			[]string{"T-shirt e calções ou saia leve", "Calçado aberto e confortável", "Óculos de sol"},
			"Um casaco fino ajuda se for sair à noite.")
	case w.Temperature >= mildThreshold:
		return section("🌤️ *Roupa para tempo ameno*",
			conditions(w)+". Temperatura amena.",
			[]string{"Camisa ou t-shirt com calças leves", "Um casaco fino para a noite", "Ténis confortáveis"},
			"Vista-se em camadas para acompanhar o dia.")
	default:
		return section("🧥 *Roupa para frio*",
			conditions(w)+". Está frio, agasalhe-se.",
			[]string{"Casaco quente e camisola", "Calças compridas e meias grossas", "Cachecol para a noite"},
			"Proteja bem as crianças e os idosos.")
	}
}

func hotTipsTemplate(w WeatherContext) string {
	return section("🌡️ *Dicas para o calor*",
		conditions(w)+".",
		[]string{"Beba água com frequência", "Procure sombra nas horas de maior calor", "Use protetor solar e chapéu", "Evite exercício intenso ao meio-dia"},
		"Atenção especial a crianças e idosos.")
}

func coldTipsTemplate(w WeatherContext) string {
	return section("❄️ *Dicas para o frio*",
		conditions(w)+".",
		[]string{"Vista-se em camadas", "Beba chá ou sopa quente", "Feche bem as janelas à noite"},
		"Mantenha os pés e as mãos aquecidos.")
}

func rainTipsTemplate(w WeatherContext) string {
	return section("☔ *Dicas para a chuva*",
		conditions(w)+".",
		[]string{"Leve guarda-chuva ou capa", "Use calçado que não escorregue", "Evite zonas alagadas e estradas de terra"},
		"Desligue aparelhos se houver trovoada.")
}

func tomorrowTemplate(w WeatherContext) string {
	main := fmt.Sprintf("%s: mínima de %.0f°C e máxima de %.0f°C, %s.", w.City, w.MinTemp, w.MaxTemp, w.Description)
	tips := []string{"Consulte de novo de manhã para confirmar"}
	if isRainy(w.Description) {
		tips = append(tips, "Prepare o guarda-chuva hoje à noite")
	} else if w.MaxTemp >= hotThreshold {
		tips = append(tips, "Planeie as saídas para o início do dia")
	}
	return section("📅 *Previsão para amanhã*", main, tips, "Bom planeamento faz o dia render.")
}

func weekTemplate(w WeatherContext) string {
	return section("🗓️ *Previsão da semana*",
		fmt.Sprintf("%s: temperaturas entre %.0f°C e %.0f°C nos próximos dias.", w.City, w.MinTemp, w.MaxTemp),
		[]string{"Pergunte pelo dia que lhe interessa", "As previsões longas podem mudar"},
		"Volte a consultar antes de planos importantes.")
}

func rainPredictionTemplate(w WeatherContext) string {
	if isRainy(w.Description) {
		return section("🌧️ *Sobre a chuva*",
			conditions(w)+". Está a chover neste momento.",
			[]string{"A chuva pode continuar nas próximas horas", "Evite deslocações desnecessárias"},
			"Pergunte de novo mais tarde para saber se já parou.")
	}
	return section("🌤️ *Sobre a chuva*",
		conditions(w)+". Não há sinais de chuva agora.",
		[]string{fmt.Sprintf("Humidade em %.0f%%", w.Humidity), "O céu pode mudar ao fim do dia"},
		"Leve guarda-chuva se o céu escurecer.")
}

func comparisonTemplate(w WeatherContext, user UserContext) string {
	other := user.PreferredCity
	if strings.EqualFold(other, w.City) {
		other = user.LastCity
	}
	return section("🏙️ *Comparar cidades*",
		conditions(w)+".",
		[]string{"Diga o nome de outra cidade para comparar", "Exemplo: \"tempo em " + other + "\""},
		"Posso comparar Maputo, Beira, Nampula e outras.")
}

func helpTemplate() string {
	return section("🤖 *Como posso ajudar*",
		"Pergunte-me sobre o tempo em qualquer cidade de Moçambique.",
		[]string{"\"Tempo em Maputo\"", "\"Que roupa usar?\"", "\"Vai chover amanhã?\"", "\"Atividades hoje\""},
		"Toque nos botões para perguntas rápidas.")
}

func generalTemplate(w WeatherContext) string {
	tips := []string{fmt.Sprintf("Humidade: %.0f%%", w.Humidity)}
	switch {
	case isRainy(w.Description):
		tips = append(tips, "Leve guarda-chuva")
	case w.Temperature >= hotThreshold:
		tips = append(tips, "Hidrate-se e procure sombra")
	case w.Temperature < mildThreshold:
		tips = append(tips, "Leve um casaco")
	default:
		tips = append(tips, "Bom dia para atividades ao ar livre")
	}
	return section("🌍 *Tempo agora*", conditions(w)+".", tips, "Pergunte-me o que fazer ou que roupa usar.")
}
