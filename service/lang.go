package service

import (
	"regexp"
	"strings"

	"github.com/aguhub/rag-chatbot-be/types"
)

// Language detection is a cheap heuristic, not a classifier. The rules run in
// fixed priority order: English keywords win over Turkish-specific characters
// because short Turkish institutional terms often appear inside English
// sentences. Known failure modes (short Turkish text without accented
// characters, e.g. "kredi") are an accepted limitation.

var englishKeywords = map[string]struct{}{
	"who": {}, "what": {}, "where": {}, "when": {}, "why": {}, "how": {},
	"is": {}, "are": {}, "do": {}, "does": {}, "did": {},
	"can": {}, "could": {}, "should": {}, "would": {},
	"have": {}, "has": {}, "had": {},
	"university": {}, "program": {}, "mobility": {}, "internship": {},
	"study": {}, "traineeship": {}, "exchange": {}, "admitted": {},
	"application": {}, "requirements": {},
}

const turkishChars = "çğıöşüÇĞİÖŞÜ"

var alphaTokens = regexp.MustCompile(`[a-zA-Z]+`)

type langRule struct {
	matches func(text string) bool
	lang    string
}

var langRules = []langRule{
	{matches: containsEnglishKeyword, lang: types.LangEnglish},
	{matches: containsTurkishChar, lang: types.LangTurkish},
}

// DetectLang tags text as English or Turkish. Empty text defaults to English.
func DetectLang(text string) string {
	if text == "" {
		return types.LangEnglish
	}
	for _, rule := range langRules {
		if rule.matches(text) {
			return rule.lang
		}
	}
	return types.LangEnglish
}

func containsEnglishKeyword(text string) bool {
	for _, token := range alphaTokens.FindAllString(strings.ToLower(text), -1) {
		if _, ok := englishKeywords[token]; ok {
			return true
		}
	}
	return false
}

func containsTurkishChar(text string) bool {
	return strings.ContainsAny(text, turkishChars)
}
