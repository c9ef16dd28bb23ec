package interactionlog

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

const schema = `
	CREATE TABLE IF NOT EXISTS interactions (
		id              UUID PRIMARY KEY,
		utterance       TEXT NOT NULL,
		city            TEXT NOT NULL,
		suggestion_type TEXT NOT NULL,
		suggestions     TEXT[] NOT NULL,
		ai_powered      BOOLEAN NOT NULL,
		failure_reason  TEXT,
		created_at      TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS interactions_created_at_idx ON interactions (created_at DESC);
`

// PostgresRepository implements suggestion.InteractionLog using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the interactions table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// Record inserts one processed turn.
func (r *PostgresRepository) Record(ctx context.Context, interaction suggestion.Interaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO interactions (id, utterance, city, suggestion_type, suggestions, ai_powered, failure_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
	`,
		interaction.ID,
		interaction.Utterance,
		interaction.City,
		string(interaction.SuggestionType),
		[]string(interaction.Suggestions),
		interaction.AIPowered,
		interaction.FailureReason,
		interaction.CreatedAt,
	)
	return err
}

// Recent lists the newest interactions first.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]suggestion.Interaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, utterance, city, suggestion_type, suggestions, ai_powered, failure_reason, created_at
		FROM interactions
		ORDER BY created_at DESC
		LIMIT $1
	`, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []suggestion.Interaction
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, interaction)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInteraction(row rowScanner) (suggestion.Interaction, error) {
	var (
		interaction suggestion.Interaction
		kind        string
		suggestions []string
		reason      sql.NullString
	)
	if err := row.Scan(
		&interaction.ID,
		&interaction.Utterance,
		&interaction.City,
		&kind,
		&suggestions,
		&interaction.AIPowered,
		&reason,
		&interaction.CreatedAt,
	); err != nil {
		return suggestion.Interaction{}, err
	}
	interaction.SuggestionType = suggestion.Type(kind)
	interaction.Suggestions = suggestion.SuggestionSet(suggestions)
	if reason.Valid {
		interaction.FailureReason = reason.String
	}
	return interaction, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

var _ suggestion.InteractionLog = (*PostgresRepository)(nil)
