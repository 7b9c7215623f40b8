// Package testutil provides mocks and filesystem helpers shared by the
// package tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"codeberg.org/snonux/wortkarten/internal/image"
)

// MockAudioProvider implements audio.Provider and records every call so
// tests can assert how often synthesis was actually triggered.
type MockAudioProvider struct {
	mu          sync.Mutex
	Calls       []string // text passed to each GenerateAudio call
	Err         error    // returned by GenerateAudio when set
	AudioData   []byte   // written to the output file, defaults to a fake MP3 header
	Unavailable error    // returned by IsAvailable when set
}

// NewMockAudioProvider returns an available provider that writes fake
// MP3 bytes.
func NewMockAudioProvider() *MockAudioProvider {
	return &MockAudioProvider{
		AudioData: []byte{0xFF, 0xFB, 0x90, 0x00},
	}
}

func (m *MockAudioProvider) GenerateAudio(ctx context.Context, text, outputFile string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	return os.WriteFile(outputFile, m.AudioData, 0644)
}

func (m *MockAudioProvider) Name() string { return "mock" }

func (m *MockAudioProvider) IsAvailable() error { return m.Unavailable }

// CallCount returns how many GenerateAudio calls were made.
func (m *MockAudioProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockSearcher implements image.Searcher against a canned result list.
// Download serves fixed JPEG-ish bytes for any URL.
type MockSearcher struct {
	mu        sync.Mutex
	Queries   []string
	Results   []image.SearchResult
	Err       error
	ImageData []byte
}

func (m *MockSearcher) Search(ctx context.Context, opts *image.SearchOptions) ([]image.SearchResult, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, opts.Query)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

func (m *MockSearcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	data := m.ImageData
	if data == nil {
		data = []byte{0xFF, 0xD8, 0xFF, 0xE0}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockSearcher) GetAttribution(result *image.SearchResult) string {
	return result.Attribution
}

func (m *MockSearcher) Name() string { return "mock" }

// QueryCount returns how many searches were issued.
func (m *MockSearcher) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}

// MockTranslator satisfies the enricher's Translator interface with a
// fixed dictionary.
type MockTranslator struct {
	mu           sync.Mutex
	Translations map[string]string
	Errors       map[string]error
	Calls        []string
}

func (m *MockTranslator) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("translation of %s", text), nil
}

// MockQueryRefiner satisfies the enricher's QueryRefiner interface.
type MockQueryRefiner struct {
	Queries map[string]string
	Err     error
	Calls   []string
}

func (m *MockQueryRefiner) Generate(ctx context.Context, word, translatedExample string) (string, error) {
	m.Calls = append(m.Calls, word)
	if m.Err != nil {
		return "", m.Err
	}
	if q, ok := m.Queries[word]; ok {
		return q, nil
	}
	return translatedExample, nil
}
