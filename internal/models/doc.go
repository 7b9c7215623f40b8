// Package models lists and categorizes the OpenAI models available for
// an API key, so users can pick TTS, image and translation models.
package models
