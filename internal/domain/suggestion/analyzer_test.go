package suggestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAnalysis(t *testing.T) {
	raw := "```json\n{\"suggestionType\":\"weather_tips_hot\",\"confidence\":1.4,\"reasoning\":\"pediu dicas\"," +
		"\"contextualFactors\":[\"calor\",\" \"],\"userIntent\":\"dicas\",\"urgency\":\"HIGH\",\"complexity\":\"expert\"}\n```"

	got, err := parseAnalysis(raw)
	require.NoError(t, err)
	require.Equal(t, TypeTipsHot, got.SuggestionType)
	require.Equal(t, 1.0, got.Confidence)
	require.Equal(t, []string{"calor"}, got.ContextualFactors)
	require.Equal(t, UrgencyHigh, got.Urgency)
	require.Equal(t, LevelBasic, got.Complexity)
}

func TestParseAnalysisErrors(t *testing.T) {
	tests := map[string]string{
		"plain text":   "Acho que é sobre roupa.",
		"unknown type": `{"suggestionType":"poetry","confidence":0.9}`,
		"wrong types":  `{"suggestionType":"clothing_advice","confidence":"alta"}`,
		"truncated":    `{"suggestionType":"clothing_advice"`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseAnalysis(raw)
			require.Error(t, err)
		})
	}
}

func TestBuildAnalysisPromptListsCategories(t *testing.T) {
	prompt := buildAnalysisPrompt("Dicas calor", NormalizeWeather(nil), NormalizeUser(nil))
	for _, kind := range AllTypes {
		require.Contains(t, prompt, string(kind))
	}
	require.True(t, strings.Contains(prompt, `"Dicas calor" -> weather_tips_hot`))
}

func TestStripCodeFence(t *testing.T) {
	require.Equal(t, `["a"]`, stripCodeFence("```json\n[\"a\"]\n```"))
	require.Equal(t, `["a"]`, stripCodeFence("  [\"a\"] "))
	require.Equal(t, `{"x":1}`, stripCodeFence("```\n{\"x\":1}\n```"))
}
