package suggestion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderTemplateCoversEveryType(t *testing.T) {
	for _, kind := range AllTypes {
		require.NotEmpty(t, RenderTemplate(kind, NormalizeWeather(nil), NormalizeUser(nil)), kind)
	}
}

func TestRenderClothingTemplateByTemperature(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{35, "Roupa para calor forte"},
		{27, "Roupa para dia quente"},
		{20, "Roupa para tempo ameno"},
		{10, "Roupa para frio"},
	}
	for _, tc := range tests {
		temp := tc.temp
		got := RenderTemplate(TypeClothing, NormalizeWeather(&WeatherInput{Temperature: &temp}), NormalizeUser(nil))
		require.Contains(t, got, tc.want)
		require.Contains(t, got, "Maputo")
	}
}
