package service

import (
	"regexp"
	"strings"
)

// Matched on the original string so byte offsets stay valid; lowercasing
// first would shift offsets when the text holds runes like "İ" whose case
// mapping changes byte length.
var answerCue = regexp.MustCompile(`(?i)answer:`)

var (
	openingQuotes = []string{`"`, "“"}
	closingQuotes = []string{`"`, "”"}
)

// CleanGeneratedAnswer extracts the answer from raw decoded model output.
// The decoded text may include the echoed prompt; everything up to and
// including the last case-insensitive "answer:" cue is discarded. If the cue
// is absent the full text is kept. A single layer of symmetric straight or
// curly quotes is then stripped.
func CleanGeneratedAnswer(raw string) string {
	text := strings.TrimSpace(raw)

	if locs := answerCue.FindAllStringIndex(text, -1); len(locs) > 0 {
		text = strings.TrimSpace(text[locs[len(locs)-1][1]:])
	}

	var opening, closing string
	for _, q := range openingQuotes {
		if strings.HasPrefix(text, q) {
			opening = q
			break
		}
	}
	for _, q := range closingQuotes {
		if strings.HasSuffix(text, q) {
			closing = q
			break
		}
	}
	if opening != "" && closing != "" && len(text) > len(opening)+len(closing) {
		text = strings.TrimSpace(text[len(opening) : len(text)-len(closing)])
	}

	return text
}
