package suggestion

import (
	"context"
	"strings"

	"github.com/yanqian/clima-assistant/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/clima-assistant/pkg/errors"
	"github.com/yanqian/clima-assistant/pkg/metrics"
)

type completion struct {
	system      string
	user        string
	temperature float32
	maxTokens   int
}

// complete performs one bounded call against the completion endpoint. It is
// never retried; callers fall through to their deterministic tier.
func (s *service) complete(ctx context.Context, c completion) (string, metrics.TokenUsage, error) {
	if s.client == nil {
		return "", metrics.TokenUsage{}, apperrors.Wrap(apperrors.CodeNoToken, "completion credential not configured", nil)
	}

	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(callCtx, chatgpt.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatgpt.Message{
			{Role: "system", Content: c.system},
			{Role: "user", Content: c.user},
		},
		MaxTokens:        c.maxTokens,
		Temperature:      c.temperature,
		TopP:             s.cfg.TopP,
		FrequencyPenalty: s.cfg.FrequencyPenalty,
		PresencePenalty:  s.cfg.PresencePenalty,
	})
	if err != nil {
		return "", metrics.TokenUsage{}, apperrors.Wrap(apperrors.CodeAIError, "completion request failed", err)
	}

	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	content := strings.TrimSpace(resp.Content())
	if content == "" {
		return "", usage, apperrors.Wrap(apperrors.CodeAIError, "completion returned no content", nil)
	}
	return content, usage, nil
}

// stripCodeFence removes the markdown fence models like to wrap JSON in.
func stripCodeFence(raw string) string {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimPrefix(sanitized, "```JSON")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	return strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))
}

// FailureReason maps an absorbed error onto its diagnostic reason.
func FailureReason(err error) string {
	if err == nil {
		return ""
	}
	switch code := apperrors.CodeOf(err); code {
	case apperrors.CodeNoToken, apperrors.CodeAIError, apperrors.CodeParseError:
		return code
	default:
		return apperrors.CodeAnalysisFailure
	}
}
