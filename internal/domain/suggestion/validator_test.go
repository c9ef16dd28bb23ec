package suggestion

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func requireValidSet(t *testing.T, set SuggestionSet) {
	t.Helper()
	require.Len(t, set, SetSize)
	seen := map[string]bool{}
	for _, label := range set {
		require.NotEmpty(t, label)
		require.LessOrEqual(t, utf8.RuneCountInString(label), MaxLabelLength, label)
		require.False(t, seen[label], "duplicate %q", label)
		seen[label] = true
	}
}

func TestValidateSuggestions(t *testing.T) {
	tests := []struct {
		name string
		in   []any
		want SuggestionSet
	}{
		{
			name: "already valid",
			in:   []any{"Dicas calor", "Que roupa usar?", "Tempo amanhã?"},
			want: SuggestionSet{"Dicas calor", "Que roupa usar?", "Tempo amanhã?"},
		},
		{
			name: "non strings and blanks dropped",
			in:   []any{42, nil, "  ", map[string]any{"a": 1}, " Dicas chuva "},
			want: SuggestionSet{"Dicas chuva", "Tempo amanhã?", "Que roupa usar?"},
		},
		{
			name: "long labels truncated",
			in:   []any{"Quais são as atividades para hoje?", "ok", "ok"},
			want: SuggestionSet{"Quais são as ativi", "ok", "Tempo amanhã?"},
		},
		{
			name: "capped at three",
			in:   []any{"a", "b", "c", "d"},
			want: SuggestionSet{"a", "b", "c"},
		},
		{
			name: "backfill skips duplicates",
			in:   []any{"Tempo amanhã?"},
			want: SuggestionSet{"Tempo amanhã?", "Que roupa usar?", "Atividades hoje"},
		},
		{
			name: "empty",
			in:   nil,
			want: SuggestionSet{"Tempo amanhã?", "Que roupa usar?", "Atividades hoje"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateSuggestions(tc.in)
			require.Equal(t, tc.want, got)
			requireValidSet(t, got)
		})
	}
}

func TestValidateStringsTruncationCanCollide(t *testing.T) {
	got := validateStrings([]string{"Atividades em casa hoje", "Atividades em casa amanhã"})
	require.Equal(t, SuggestionSet{"Atividades em casa", "Tempo amanhã?", "Que roupa usar?"}, got)
}

func TestTruncateLabelCountsRunes(t *testing.T) {
	label := truncateLabel("Previsão próxima semana")
	require.Equal(t, "Previsão próxima s", label)
	require.Equal(t, MaxLabelLength, utf8.RuneCountInString(label))
}

func TestEmergencySuggestionsAreValidated(t *testing.T) {
	for _, desc := range []string{"", "ensolarado", "Chuva forte"} {
		requireValidSet(t, EmergencySuggestions(desc))
	}
	require.Equal(t, validateStrings([]string{"Tempo amanhã?", "Que roupa usar?", "Mais info"}), EmergencySuggestions("nublado"))
}
