// Package card assembles the ordered field arrays that the deck backend
// writes out, matched against per-word-type note type schemas.
package card

import (
	"codeberg.org/snonux/wortkarten/internal/enricher"
	"codeberg.org/snonux/wortkarten/internal/record"
)

// NoteType describes the flashcard schema a field array conforms to:
// the schema name, the field names in their fixed order, and the card
// template identifiers.
type NoteType struct {
	Name       string
	FieldNames []string
	Templates  []string
}

// mediaKeys maps media field names to their enrichment keys. Media fields
// are always empty on the record itself; enrichment is their only source.
var mediaKeys = map[string]string{
	"WordAudio":        enricher.KeyWordAudio,
	"ExampleAudio":     enricher.KeyExampleAudio,
	"PluralAudio":      enricher.KeyPluralAudio,
	"ConjugationAudio": enricher.KeyConjugationAudio,
	"Image":            enricher.KeyImage,
}

// noteTypes registers the field-name ordering for every word type. Record
// fields come first in raw CSV order, media fields after.
var noteTypes = map[record.Type]NoteType{
	record.TypeNoun: {
		Name: "German Noun",
		FieldNames: []string{
			"Noun", "Article", "English", "Plural", "Example",
			"WordAudio", "ExampleAudio", "PluralAudio", "Image",
		},
		Templates: []string{"Noun German->English", "Noun English->German"},
	},
	record.TypeVerb: {
		Name: "German Verb",
		FieldNames: []string{
			"Verb", "English", "PresentIch", "PresentDu", "PresentEr", "Perfekt", "Example",
			"WordAudio", "ExampleAudio", "ConjugationAudio", "Image",
		},
		Templates: []string{"Verb German->English", "Verb English->German"},
	},
	record.TypeAdjective: {
		Name: "German Adjective",
		FieldNames: []string{
			"Adjective", "English", "Comparative", "Superlative", "Example",
			"WordAudio", "ExampleAudio", "Image",
		},
		Templates: []string{"Adjective German->English", "Adjective English->German"},
	},
	record.TypeAdverb: {
		Name: "German Adverb",
		FieldNames: []string{
			"Adverb", "English", "Example",
			"WordAudio", "ExampleAudio", "Image",
		},
		Templates: []string{"Adverb German->English", "Adverb English->German"},
	},
	record.TypePreposition: {
		Name: "German Preposition",
		FieldNames: []string{
			"Preposition", "English", "Case", "Example",
			"WordAudio", "ExampleAudio",
		},
		Templates: []string{"Preposition German->English", "Preposition English->German"},
	},
	record.TypePhrase: {
		Name: "German Phrase",
		FieldNames: []string{
			"Phrase", "English",
			"WordAudio", "Image",
		},
		Templates: []string{"Phrase German->English", "Phrase English->German"},
	},
	record.TypeConjunction: {
		Name: "German Conjunction",
		FieldNames: []string{
			"Conjunction", "English", "Example",
			"WordAudio", "ExampleAudio",
		},
		Templates: []string{"Conjunction German->English", "Conjunction English->German"},
	},
}

// NoteTypeFor looks up the registered note type for a word type.
func NoteTypeFor(t record.Type) (NoteType, bool) {
	nt, ok := noteTypes[t]
	return nt, ok
}
