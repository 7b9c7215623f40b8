package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// QueryGenerator refines a translated example sentence into a short,
// concrete image search query. It is an optional capability: when no key
// is configured the pipeline runs without it and uses the plain
// translation instead. That is an unavailable service, not an error.
type QueryGenerator struct {
	client *openai.Client
}

// NewQueryGenerator creates a query generator, or an error when no key is
// configured. Callers treat the nil generator as "capability unavailable".
func NewQueryGenerator(apiKey string) (*QueryGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for query generation")
	}
	return &QueryGenerator{client: openai.NewClient(apiKey)}, nil
}

// Generate distills the word and its translated example sentence into a
// few concrete search terms.
func (q *QueryGenerator) Generate(ctx context.Context, word, translatedExample string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You distill sentences into short image search queries. " +
					"Answer with 2-5 concrete, visual English words. No punctuation.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("The word is %q. The sentence is: %s", word, translatedExample),
			},
		},
		MaxTokens:   30,
		Temperature: 0.3,
	}

	resp, err := q.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no query returned")
	}

	query := strings.TrimSpace(resp.Choices[0].Message.Content)
	if query == "" {
		return "", fmt.Errorf("empty query returned")
	}
	return query, nil
}
