package service

import (
	"context"
	"log"
	"strings"

	"github.com/aguhub/rag-chatbot-be/types"
	"github.com/sashabaranov/go-openai"
)

const (
	// Input is truncated and output bounded per translation call so a single
	// oversized chunk cannot stall a request.
	translateInputLimit  = 2048
	translateOutputLimit = 256
)

// Translator converts text between one fixed pair of languages. A translator
// is a capability-checked optional dependency: Available reports whether the
// underlying model loaded, and callers consult it instead of catching an
// expected failure.
type Translator interface {
	Available() bool
	Translate(ctx context.Context, text string) (string, error)
}

// OpenAITranslator drives one directional translation model served from an
// OpenAI-compatible endpoint.
type OpenAITranslator struct {
	client    *openai.Client
	model     string
	available bool
}

// NewOpenAITranslator probes the endpoint once at construction. A failed
// probe leaves the translator unavailable; the caller degrades to identity
// translation rather than failing requests.
func NewOpenAITranslator(ctx context.Context, baseURL, apiKey, model string) *OpenAITranslator {
	if baseURL == "" || model == "" {
		return &OpenAITranslator{}
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	t := &OpenAITranslator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
	if _, err := t.client.ListModels(ctx); err != nil {
		log.Printf("WARNING: translator %s unavailable, contexts in the other language won't be translated: %v", model, err)
		return t
	}
	t.available = true
	return t
}

func (t *OpenAITranslator) Available() bool {
	return t.available
}

func (t *OpenAITranslator) Translate(ctx context.Context, text string) (string, error) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   translateOutputLimit,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TranslateService resolves language mismatches between a question and its
// retrieved evidence.
type TranslateService struct {
	trEn Translator
	enTr Translator
}

func NewTranslateService(trEn, enTr Translator) *TranslateService {
	return &TranslateService{
		trEn: trEn,
		enTr: enTr,
	}
}

// Translate converts text from src to tgt. It is the identity for empty
// text, src == tgt, an unsupported direction, or an unavailable translator;
// translation is best-effort and never fails a request.
func (s *TranslateService) Translate(ctx context.Context, text, src, tgt string) string {
	if text == "" || src == tgt {
		return text
	}

	var translator Translator
	switch {
	case src == types.LangTurkish && tgt == types.LangEnglish:
		translator = s.trEn
	case src == types.LangEnglish && tgt == types.LangTurkish:
		translator = s.enTr
	default:
		return text
	}
	if translator == nil || !translator.Available() {
		return text
	}

	input := text
	if runes := []rune(input); len(runes) > translateInputLimit {
		input = string(runes[:translateInputLimit])
	}

	translated, err := translator.Translate(ctx, input)
	if err != nil {
		log.Printf("Translation %s->%s failed, passing original text: %v", src, tgt, err)
		return text
	}
	if translated == "" {
		return text
	}
	return translated
}

// ResolveChunks brings every retrieved chunk into the language of the
// question, by original authorship or by translation, so the generator never
// sees mixed-language context. On degraded translation the chunk passes
// through verbatim; it is never dropped.
func (s *TranslateService) ResolveChunks(ctx context.Context, questionLang string, chunks []string) []string {
	resolved := make([]string, len(chunks))
	for i, chunk := range chunks {
		chunkLang := DetectLang(chunk)
		if chunkLang != questionLang {
			resolved[i] = s.Translate(ctx, chunk, chunkLang, questionLang)
		} else {
			resolved[i] = chunk
		}
	}
	return resolved
}
