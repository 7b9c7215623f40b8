package translation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// Translator handles German to English translation
type Translator struct {
	apiKey string
	client *openai.Client
}

// NewTranslator creates a new translator instance. The key is checked at
// construction time, not per call.
func NewTranslator(apiKey string) (*Translator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for translation")
	}
	return &Translator{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}, nil
}

// TranslateToEnglish translates a German word or sentence to English.
func (t *Translator) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the German text '%s' to English. Respond with only the English translation, nothing else.", text),
			},
		},
		MaxTokens:   100,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("empty translation returned")
	}
	return translation, nil
}

// Cache stores translations in memory for batch operations so the same
// example sentence is never translated twice in one run. It is safe for
// concurrent use; batch workers share a single cache.
type Cache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewCache creates a new translation cache
func NewCache() *Cache {
	return &Cache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (c *Cache) Add(text, translation string) {
	c.mu.Lock()
	c.translations[text] = translation
	c.mu.Unlock()
}

// Get retrieves a translation from the cache
func (c *Cache) Get(text string) (string, bool) {
	c.mu.RLock()
	translation, ok := c.translations[text]
	c.mu.RUnlock()
	return translation, ok
}

// EnglishTranslator is the capability the cache layer wraps.
type EnglishTranslator interface {
	TranslateToEnglish(ctx context.Context, text string) (string, error)
}

// CachedTranslator wraps an EnglishTranslator with a Cache.
type CachedTranslator struct {
	inner EnglishTranslator
	cache *Cache
}

// NewCachedTranslator wraps the given translator with an in-memory cache.
func NewCachedTranslator(inner EnglishTranslator) *CachedTranslator {
	return &CachedTranslator{inner: inner, cache: NewCache()}
}

// TranslateToEnglish returns the cached translation when present.
func (c *CachedTranslator) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	if translation, ok := c.cache.Get(text); ok {
		return translation, nil
	}
	translation, err := c.inner.TranslateToEnglish(ctx, text)
	if err != nil {
		return "", err
	}
	c.cache.Add(text, translation)
	return translation, nil
}
