package interactionlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
)

func interaction(text string) suggestion.Interaction {
	return suggestion.Interaction{
		ID:             uuid.New(),
		Utterance:      text,
		City:           "Maputo",
		SuggestionType: suggestion.TypeGeneralWeather,
		Suggestions:    suggestion.SuggestionSet{"Tempo amanhã?", "Que roupa usar?", "Mais info"},
		CreatedAt:      time.Now().UTC(),
	}
}

func TestMemoryRepositoryRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(3)
	for _, text := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Record(ctx, interaction(text)))
	}

	got, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "d", got[0].Utterance)
	require.Equal(t, "b", got[2].Utterance)

	got, err = repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "d", got[0].Utterance)
}

func TestClampLimit(t *testing.T) {
	require.Equal(t, defaultLimit, clampLimit(0))
	require.Equal(t, defaultLimit, clampLimit(-4))
	require.Equal(t, 7, clampLimit(7))
	require.Equal(t, maxLimit, clampLimit(5000))
}

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	id := dest[0].(*uuid.UUID)
	*id = f.values[0].(uuid.UUID)
	*dest[1].(*string) = f.values[1].(string)
	*dest[2].(*string) = f.values[2].(string)
	*dest[3].(*string) = f.values[3].(string)
	*dest[4].(*[]string) = f.values[4].([]string)
	*dest[5].(*bool) = f.values[5].(bool)
	return dest[6].(interface{ Scan(any) error }).Scan(f.values[6])
}

func TestScanInteraction(t *testing.T) {
	id := uuid.New()
	row := fakeRow{values: []any{id, "vai chover?", "Beira", "rain_prediction", []string{"Vai parar chuva?", "Atividades casa", "Filmes hoje"}, false, "no_token"}}

	got, err := scanInteraction(row)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, suggestion.TypeRainPrediction, got.SuggestionType)
	require.Equal(t, "no_token", got.FailureReason)
	require.Len(t, got.Suggestions, 3)

	_, err = scanInteraction(fakeRow{err: errors.New("bad row")})
	require.Error(t, err)
}
