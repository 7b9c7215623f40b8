// Package domain derives behavior-bearing models from validated records.
// A model knows what text to synthesize as audio, how to search for an
// image, and the stable primary word used for cache file naming.
package domain

import (
	"codeberg.org/snonux/wortkarten/internal"
	"codeberg.org/snonux/wortkarten/internal/record"
)

// NoImage is the sentinel returned by ImageSearchStrategy for word types
// that are too abstract to illustrate (prepositions, conjunctions). It is
// an intentional omission, not an error.
const NoImage = ""

// Model is the media-generation capability contract. Every word type
// implements it; dispatch is always on the explicit type tag, never on
// attribute probing.
type Model interface {
	// Type returns the word-type tag of the underlying record.
	Type() record.Type

	// CombinedAudioText returns the exact text to synthesize for the
	// example audio: the word composed with its example sentence.
	CombinedAudioText() string

	// WordAudioText returns the text for the standalone pronunciation clip.
	WordAudioText() string

	// ImageSearchStrategy returns the search query for image lookup, or
	// NoImage when the word type requests no image.
	ImageSearchStrategy() string

	// PrimaryWord returns a filename-safe identifier for this item. It
	// must be stable across runs for the same source data; media cache
	// reuse depends on it.
	PrimaryWord() string
}

// ExtraAudio is implemented by models that carry a third audio clip beyond
// word and example (noun plural, verb conjugation).
type ExtraAudio interface {
	// ExtraAudioText returns the additional text to synthesize and the
	// enrichment key it belongs under.
	ExtraAudioText() (key, text string)
}

// FromRecord derives the model for a record. Exactly one model per record
// per pipeline pass; models are stateless after construction.
func FromRecord(r record.Record) (Model, error) {
	switch rec := r.(type) {
	case *record.Noun:
		return &nounModel{rec}, nil
	case *record.Verb:
		return &verbModel{rec}, nil
	case *record.Adjective:
		return &adjectiveModel{rec}, nil
	case *record.Adverb:
		return &adverbModel{rec}, nil
	case *record.Preposition:
		return &prepositionModel{rec}, nil
	case *record.Phrase:
		return &phraseModel{rec}, nil
	case *record.Conjunction:
		return &conjunctionModel{rec}, nil
	default:
		return nil, &record.UnsupportedTypeError{Type: string(r.Type())}
	}
}

func primary(word string) string {
	return internal.SanitizeFilename(word)
}
