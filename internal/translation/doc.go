// Package translation turns German text into English for image search
// queries. Translation failures propagate; the pipeline never silently
// falls back to the untranslated text.
package translation
