package service

import (
	"strings"

	"github.com/aguhub/rag-chatbot-be/types"
)

// FallbackMessage is returned whenever retrieval yields no context, instead
// of letting the generator answer ungrounded.
const FallbackMessage = "I'm sorry, I don't have that information in my knowledge base."

const (
	languageRuleEnglish = "The user has asked this question in English, so you MUST answer in clear English.\n"
	languageRuleTurkish = "The user has asked this question in Turkish, so you MUST answer in clear Turkish.\n"
)

// BuildPrompt assembles the grounding prompt: the context block in explicit
// delimiters, a fixed rule list forcing the model to answer only from that
// context and in the question's language, and the question itself. Pure
// function of its inputs.
func BuildPrompt(query string, contextChunks []string) string {
	context := strings.Join(contextChunks, "\n\n")

	languageRule := languageRuleEnglish
	if DetectLang(query) == types.LangTurkish {
		languageRule = languageRuleTurkish
	}

	var b strings.Builder
	b.WriteString("You are an assistant for Abdullah Gül University (AGU).\n")
	b.WriteString("You answer questions ONLY using the information in the context below.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("1. Use ONLY the information inside <context> ... </context>.\n")
	b.WriteString("2. Do NOT invent new facts.\n")
	b.WriteString("3. " + languageRule)
	b.WriteString("4. Answer the question DIRECTLY and CONCISELY in 1-3 sentences.\n")
	b.WriteString("5. Do NOT give advice unless the question explicitly asks for advice.\n")
	b.WriteString("6. Do NOT talk about the context or about being an AI.\n\n")
	b.WriteString("<context>\n")
	b.WriteString(context)
	b.WriteString("\n</context>\n\n")
	b.WriteString("Question: " + query + "\n")
	b.WriteString("Answer:")
	return b.String()
}
