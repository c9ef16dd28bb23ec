// Package tokens bounds prompt fragments by model tokens.
package tokens

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// Counter counts and truncates text with a tiktoken encoding.
type Counter struct {
	encoding string
	tke      *tiktoken.Tiktoken
}

// NewCounter resolves the encoding for model, falling back to cl100k_base.
// tiktoken fetches its BPE ranks on first use, so this can fail offline.
func NewCounter(model string) (*Counter, error) {
	model = strings.TrimSpace(model)
	if tke, err := tiktoken.EncodingForModel(model); err == nil {
		return &Counter{encoding: encodingName(model), tke: tke}, nil
	}
	tke, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %s: %w", defaultEncoding, err)
	}
	return &Counter{encoding: defaultEncoding, tke: tke}, nil
}

// encodingName mirrors the lookup EncodingForModel performs: exact model
// names first, then model prefixes.
func encodingName(model string) string {
	if name, ok := tiktoken.MODEL_TO_ENCODING[model]; ok {
		return name
	}
	for prefix, name := range tiktoken.MODEL_PREFIX_TO_ENCODING {
		if strings.HasPrefix(model, prefix) {
			return name
		}
	}
	return defaultEncoding
}

// Encoding reports which encoding is in use.
func (c *Counter) Encoding() string {
	return c.encoding
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	return len(c.tke.Encode(text, nil, nil))
}

// Truncate returns text cut to at most maxTokens tokens.
func (c *Counter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	ids := c.tke.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	out := c.tke.Decode(ids[:maxTokens])
	// a cut can land inside a multi-byte rune
	for !utf8.ValidString(out) && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return strings.TrimSpace(out)
}

// Estimator approximates four characters per token. It serves when no
// encoding could be loaded.
type Estimator struct{}

// Count implements the counter contract.
func (Estimator) Count(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

// Truncate implements the counter contract.
func (Estimator) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	limit := maxTokens * 4
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit]))
}
