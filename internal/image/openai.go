package image

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures the OpenAI image generation client
type OpenAIConfig struct {
	APIKey  string
	Model   string // "dall-e-2" or "dall-e-3"
	Size    string // "256x256", "512x512", "1024x1024", ...
	Quality string // "standard" or "hd" (dall-e-3 only)
	Style   string // "natural" or "vivid" (dall-e-3 only)
}

// OpenAIClient implements Searcher by generating an image instead of
// searching for one. Search always yields exactly one result.
type OpenAIClient struct {
	client     *openai.Client
	httpClient *http.Client
	model      string
	size       string
	quality    string
	style      string

	mu         sync.Mutex // guards lastPrompt
	lastPrompt string
}

// NewOpenAIClient creates a new OpenAI image generation client
func NewOpenAIClient(config *OpenAIConfig) *OpenAIClient {
	c := &OpenAIClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		model:      config.Model,
		size:       config.Size,
		quality:    config.Quality,
		style:      config.Style,
	}

	if c.model == "" {
		c.model = "dall-e-2"
	}
	if c.size == "" {
		c.size = "512x512"
	}
	if c.quality == "" {
		c.quality = "standard"
	}
	if c.style == "" {
		c.style = "natural"
	}

	if config.APIKey != "" {
		c.client = openai.NewClient(config.APIKey)
	}

	return c
}

// Search generates an image for the query and returns it as a single
// search result pointing at the temporary OpenAI download URL.
func (c *OpenAIClient) Search(ctx context.Context, opts *SearchOptions) ([]SearchResult, error) {
	if c.client == nil {
		return nil, &SearchError{
			Provider: "openai",
			Code:     "NO_API_KEY",
			Message:  "OpenAI API key is required for image generation",
		}
	}

	prompt := c.createEducationalPrompt(opts.Word, opts.Query)
	c.mu.Lock()
	c.lastPrompt = prompt
	c.mu.Unlock()

	req := openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.model,
		Size:           c.size,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}
	if c.model == "dall-e-3" {
		req.Quality = c.quality
		req.Style = c.style
	}

	resp, err := c.client.CreateImage(ctx, req)
	if err != nil {
		return nil, &SearchError{
			Provider: "openai",
			Code:     "API_ERROR",
			Message:  err.Error(),
		}
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, &SearchError{
			Provider: "openai",
			Code:     "EMPTY_RESULT",
			Message:  "no image returned",
		}
	}

	return []SearchResult{{
		ID:          fmt.Sprintf("openai-%d", time.Now().UnixNano()),
		URL:         resp.Data[0].URL,
		Width:       c.getSizeWidth(),
		Height:      c.getSizeHeight(),
		Description: prompt,
		Attribution: c.GetAttribution(nil),
		Source:      "openai",
	}}, nil
}

// Download downloads the generated image from the given URL
func (c *OpenAIClient) Download(ctx context.Context, imageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// GetAttribution returns the attribution text for generated images
func (c *OpenAIClient) GetAttribution(result *SearchResult) string {
	return fmt.Sprintf("Image generated by OpenAI DALL-E (%s)", c.model)
}

// Name returns the name of the search provider
func (c *OpenAIClient) Name() string {
	return "openai"
}

// GetLastPrompt returns the prompt used for the most recent generation
func (c *OpenAIClient) GetLastPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPrompt
}

// createEducationalPrompt builds a DALL-E prompt for a vocabulary flashcard.
// The scene comes from the English query; the German word itself stays out
// of the image (text in generated images tends to come out garbled).
func (c *OpenAIClient) createEducationalPrompt(word, query string) string {
	scene := strings.TrimSpace(query)
	if scene == "" {
		scene = word
	}
	return fmt.Sprintf(
		"A simple, clear educational illustration for a language-learning flashcard depicting: %s. "+
			"Friendly, uncluttered style, single clear subject, no text or letters in the image.",
		scene)
}

func (c *OpenAIClient) getSizeWidth() int {
	w, _ := parseSize(c.size)
	return w
}

func (c *OpenAIClient) getSizeHeight() int {
	_, h := parseSize(c.size)
	return h
}

func parseSize(size string) (int, int) {
	var w, h int
	if _, err := fmt.Sscanf(size, "%dx%d", &w, &h); err != nil || w == 0 || h == 0 {
		return 512, 512
	}
	return w, h
}
