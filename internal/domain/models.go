package domain

import (
	"fmt"

	"codeberg.org/snonux/wortkarten/internal/record"
)

type nounModel struct {
	rec *record.Noun
}

func (m *nounModel) Type() record.Type { return record.TypeNoun }

func (m *nounModel) WordAudioText() string {
	// Article and noun together, the way learners should memorize it.
	return fmt.Sprintf("%s %s", m.rec.Article(), m.rec.Noun())
}

func (m *nounModel) CombinedAudioText() string {
	return fmt.Sprintf("%s %s. %s", m.rec.Article(), m.rec.Noun(), m.rec.Example())
}

func (m *nounModel) ImageSearchStrategy() string { return m.rec.Example() }

// PrimaryWord excludes the article so the cache key survives article fixes
// in the source data.
func (m *nounModel) PrimaryWord() string { return primary(m.rec.Noun()) }

func (m *nounModel) ExtraAudioText() (string, string) {
	return "plural_audio", fmt.Sprintf("die %s", m.rec.Plural())
}

type verbModel struct {
	rec *record.Verb
}

func (m *verbModel) Type() record.Type { return record.TypeVerb }

func (m *verbModel) WordAudioText() string { return m.rec.Verb() }

func (m *verbModel) CombinedAudioText() string {
	return fmt.Sprintf("%s. %s", m.rec.Verb(), m.rec.Example())
}

func (m *verbModel) ImageSearchStrategy() string { return m.rec.Example() }

func (m *verbModel) PrimaryWord() string { return primary(m.rec.Verb()) }

func (m *verbModel) ExtraAudioText() (string, string) {
	text := fmt.Sprintf("ich %s, du %s, er %s. %s",
		m.rec.PresentIch(), m.rec.PresentDu(), m.rec.PresentEr(), m.rec.Perfekt())
	return "conjugation_audio", text
}

type adjectiveModel struct {
	rec *record.Adjective
}

func (m *adjectiveModel) Type() record.Type { return record.TypeAdjective }

func (m *adjectiveModel) WordAudioText() string {
	return fmt.Sprintf("%s, %s, %s", m.rec.Adjective(), m.rec.Comparative(), m.rec.Superlative())
}

func (m *adjectiveModel) CombinedAudioText() string {
	return fmt.Sprintf("%s. %s", m.rec.Adjective(), m.rec.Example())
}

func (m *adjectiveModel) ImageSearchStrategy() string { return m.rec.Example() }

func (m *adjectiveModel) PrimaryWord() string { return primary(m.rec.Adjective()) }

type adverbModel struct {
	rec *record.Adverb
}

func (m *adverbModel) Type() record.Type { return record.TypeAdverb }

func (m *adverbModel) WordAudioText() string { return m.rec.Adverb() }

func (m *adverbModel) CombinedAudioText() string {
	return fmt.Sprintf("%s. %s", m.rec.Adverb(), m.rec.Example())
}

func (m *adverbModel) ImageSearchStrategy() string { return m.rec.Example() }

func (m *adverbModel) PrimaryWord() string { return primary(m.rec.Adverb()) }

type prepositionModel struct {
	rec *record.Preposition
}

func (m *prepositionModel) Type() record.Type { return record.TypePreposition }

func (m *prepositionModel) WordAudioText() string { return m.rec.Preposition() }

func (m *prepositionModel) CombinedAudioText() string {
	return fmt.Sprintf("%s. %s", m.rec.Preposition(), m.rec.Example())
}

// Prepositions are classified abstract: no image lookup.
func (m *prepositionModel) ImageSearchStrategy() string { return NoImage }

func (m *prepositionModel) PrimaryWord() string { return primary(m.rec.Preposition()) }

type phraseModel struct {
	rec *record.Phrase
}

func (m *phraseModel) Type() record.Type { return record.TypePhrase }

func (m *phraseModel) WordAudioText() string { return m.rec.Phrase() }

// A phrase is its own example.
func (m *phraseModel) CombinedAudioText() string { return m.rec.Phrase() }

func (m *phraseModel) ImageSearchStrategy() string { return m.rec.Phrase() }

func (m *phraseModel) PrimaryWord() string { return primary(m.rec.Phrase()) }

type conjunctionModel struct {
	rec *record.Conjunction
}

func (m *conjunctionModel) Type() record.Type { return record.TypeConjunction }

func (m *conjunctionModel) WordAudioText() string { return m.rec.Conjunction() }

func (m *conjunctionModel) CombinedAudioText() string {
	return fmt.Sprintf("%s. %s", m.rec.Conjunction(), m.rec.Example())
}

// Conjunctions are classified abstract: no image lookup.
func (m *conjunctionModel) ImageSearchStrategy() string { return NoImage }

func (m *conjunctionModel) PrimaryWord() string { return primary(m.rec.Conjunction()) }
