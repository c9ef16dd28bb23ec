package suggestion

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// SetSize is the number of quick replies the messaging renderer shows.
	SetSize = 3
	// MaxLabelLength is the renderer's button label limit, in characters.
	MaxLabelLength = 18

	fillerLabel = "Outra pergunta"
)

var defaultPool = []string{
	"Tempo amanhã?",
	"Que roupa usar?",
	"Atividades hoje",
	"Dicas do tempo",
	"Mais info",
}

// ValidateSuggestions coerces arbitrary candidates into a SuggestionSet:
// only non-empty strings survive, labels are cut to MaxLabelLength,
// duplicates are dropped and the set is backfilled up to SetSize.
func ValidateSuggestions(candidates []any) SuggestionSet {
	labels := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if s, ok := c.(string); ok {
			labels = append(labels, s)
		}
	}
	return validateStrings(labels)
}

func validateStrings(candidates []string) SuggestionSet {
	out := make(SuggestionSet, 0, SetSize)
	seen := make(map[string]struct{}, SetSize)
	add := func(label string) {
		if len(out) >= SetSize {
			return
		}
		label = truncateLabel(strings.TrimSpace(label))
		if label == "" {
			return
		}
		if _, dup := seen[label]; dup {
			return
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}

	for _, c := range candidates {
		add(c)
	}
	for _, p := range defaultPool {
		add(p)
	}
	for i := 2; len(out) < SetSize; i++ {
		label := fillerLabel
		if _, dup := seen[label]; dup {
			label = fillerLabel + " " + strconv.Itoa(i)
		}
		add(label)
	}
	return out
}

func truncateLabel(label string) string {
	if utf8.RuneCountInString(label) <= MaxLabelLength {
		return label
	}
	runes := []rune(label)
	return strings.TrimSpace(string(runes[:MaxLabelLength]))
}
