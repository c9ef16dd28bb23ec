package suggestion

import (
	"context"

	"github.com/yanqian/clima-assistant/internal/infra/llm/chatgpt"
)

// Store is the lookaside cache for generated suggestion sets. Implementations
// own expiry and the size bound.
type Store interface {
	Get(ctx context.Context, key string) (SuggestionSet, bool, error)
	Set(ctx context.Context, key string, suggestions SuggestionSet) error
}

// InteractionRecorder persists processed conversational turns.
type InteractionRecorder interface {
	Record(ctx context.Context, interaction Interaction) error
}

// ChatClient is the completion endpoint used by the AI tiers. A nil client
// means no credential is configured.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// TokenCounter bounds text embedded in prompts.
type TokenCounter interface {
	Count(text string) int
	Truncate(text string, maxTokens int) string
}

// InteractionLog records turns and lists the most recent ones, newest first.
type InteractionLog interface {
	InteractionRecorder
	Recent(ctx context.Context, limit int) ([]Interaction, error)
}

// WeatherProvider looks up current conditions for a city. Results are
// partial by contract and go through the Sanitizer.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (*WeatherInput, error)
}
