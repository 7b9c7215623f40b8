package record

import (
	"fmt"
	"strings"
)

// Each word type validates its own required fields in its constructor so
// the per-type rules stay explicit and auditable. All fields are required
// and must be non-empty after trimming.

// Noun is a German noun row: headword, article, translation, plural form
// and an example sentence.
type Noun struct {
	noun    string
	article string
	english string
	plural  string
	example string
}

// NewNoun validates raw noun fields and constructs the record.
func NewNoun(raw []string) (*Noun, error) {
	fields, err := trimmed(TypeNoun, raw, "Noun", "Article", "English", "Plural", "Example")
	if err != nil {
		return nil, err
	}
	return &Noun{
		noun:    fields[0],
		article: fields[1],
		english: fields[2],
		plural:  fields[3],
		example: fields[4],
	}, nil
}

func (n *Noun) Type() Type      { return TypeNoun }
func (n *Noun) Noun() string    { return n.noun }
func (n *Noun) Article() string { return n.article }
func (n *Noun) English() string { return n.english }
func (n *Noun) Plural() string  { return n.plural }
func (n *Noun) Example() string { return n.example }

func (n *Noun) Raw() []string {
	return []string{n.noun, n.article, n.english, n.plural, n.example}
}

func (n *Noun) Fields() map[string]string {
	return map[string]string{
		"Noun":    n.noun,
		"Article": n.article,
		"English": n.english,
		"Plural":  n.plural,
		"Example": n.example,
	}
}

// Verb is a German verb row: infinitive, translation, present-tense forms
// for ich/du/er, the Perfekt form (with auxiliary) and an example sentence.
type Verb struct {
	verb       string
	english    string
	presentIch string
	presentDu  string
	presentEr  string
	perfekt    string
	example    string
}

// NewVerb validates raw verb fields and constructs the record.
func NewVerb(raw []string) (*Verb, error) {
	fields, err := trimmed(TypeVerb, raw,
		"Verb", "English", "PresentIch", "PresentDu", "PresentEr", "Perfekt", "Example")
	if err != nil {
		return nil, err
	}
	return &Verb{
		verb:       fields[0],
		english:    fields[1],
		presentIch: fields[2],
		presentDu:  fields[3],
		presentEr:  fields[4],
		perfekt:    fields[5],
		example:    fields[6],
	}, nil
}

func (v *Verb) Type() Type         { return TypeVerb }
func (v *Verb) Verb() string       { return v.verb }
func (v *Verb) English() string    { return v.english }
func (v *Verb) PresentIch() string { return v.presentIch }
func (v *Verb) PresentDu() string  { return v.presentDu }
func (v *Verb) PresentEr() string  { return v.presentEr }
func (v *Verb) Perfekt() string    { return v.perfekt }
func (v *Verb) Example() string    { return v.example }

func (v *Verb) Raw() []string {
	return []string{v.verb, v.english, v.presentIch, v.presentDu, v.presentEr, v.perfekt, v.example}
}

func (v *Verb) Fields() map[string]string {
	return map[string]string{
		"Verb":       v.verb,
		"English":    v.english,
		"PresentIch": v.presentIch,
		"PresentDu":  v.presentDu,
		"PresentEr":  v.presentEr,
		"Perfekt":    v.perfekt,
		"Example":    v.example,
	}
}

// Adjective is a German adjective row with comparative and superlative.
type Adjective struct {
	adjective   string
	english     string
	comparative string
	superlative string
	example     string
}

// NewAdjective validates raw adjective fields and constructs the record.
func NewAdjective(raw []string) (*Adjective, error) {
	fields, err := trimmed(TypeAdjective, raw,
		"Adjective", "English", "Comparative", "Superlative", "Example")
	if err != nil {
		return nil, err
	}
	return &Adjective{
		adjective:   fields[0],
		english:     fields[1],
		comparative: fields[2],
		superlative: fields[3],
		example:     fields[4],
	}, nil
}

func (a *Adjective) Type() Type          { return TypeAdjective }
func (a *Adjective) Adjective() string   { return a.adjective }
func (a *Adjective) English() string     { return a.english }
func (a *Adjective) Comparative() string { return a.comparative }
func (a *Adjective) Superlative() string { return a.superlative }
func (a *Adjective) Example() string     { return a.example }

func (a *Adjective) Raw() []string {
	return []string{a.adjective, a.english, a.comparative, a.superlative, a.example}
}

func (a *Adjective) Fields() map[string]string {
	return map[string]string{
		"Adjective":   a.adjective,
		"English":     a.english,
		"Comparative": a.comparative,
		"Superlative": a.superlative,
		"Example":     a.example,
	}
}

// Adverb is a German adverb row.
type Adverb struct {
	adverb  string
	english string
	example string
}

// NewAdverb validates raw adverb fields and constructs the record.
func NewAdverb(raw []string) (*Adverb, error) {
	fields, err := trimmed(TypeAdverb, raw, "Adverb", "English", "Example")
	if err != nil {
		return nil, err
	}
	return &Adverb{adverb: fields[0], english: fields[1], example: fields[2]}, nil
}

func (a *Adverb) Type() Type      { return TypeAdverb }
func (a *Adverb) Adverb() string  { return a.adverb }
func (a *Adverb) English() string { return a.english }
func (a *Adverb) Example() string { return a.example }

func (a *Adverb) Raw() []string { return []string{a.adverb, a.english, a.example} }

func (a *Adverb) Fields() map[string]string {
	return map[string]string{
		"Adverb":  a.adverb,
		"English": a.english,
		"Example": a.example,
	}
}

// Preposition is a German preposition row including the grammatical case
// it governs.
type Preposition struct {
	preposition string
	english     string
	grammCase   string
	example     string
}

// NewPreposition validates raw preposition fields and constructs the record.
func NewPreposition(raw []string) (*Preposition, error) {
	fields, err := trimmed(TypePreposition, raw, "Preposition", "English", "Case", "Example")
	if err != nil {
		return nil, err
	}
	return &Preposition{
		preposition: fields[0],
		english:     fields[1],
		grammCase:   fields[2],
		example:     fields[3],
	}, nil
}

func (p *Preposition) Type() Type          { return TypePreposition }
func (p *Preposition) Preposition() string { return p.preposition }
func (p *Preposition) English() string     { return p.english }
func (p *Preposition) Case() string        { return p.grammCase }
func (p *Preposition) Example() string     { return p.example }

func (p *Preposition) Raw() []string {
	return []string{p.preposition, p.english, p.grammCase, p.example}
}

func (p *Preposition) Fields() map[string]string {
	return map[string]string{
		"Preposition": p.preposition,
		"English":     p.english,
		"Case":        p.grammCase,
		"Example":     p.example,
	}
}

// Phrase is a full German phrase with its translation. Phrases carry no
// separate example sentence; the phrase is its own example.
type Phrase struct {
	phrase  string
	english string
}

// NewPhrase validates raw phrase fields and constructs the record.
func NewPhrase(raw []string) (*Phrase, error) {
	fields, err := trimmed(TypePhrase, raw, "Phrase", "English")
	if err != nil {
		return nil, err
	}
	return &Phrase{phrase: fields[0], english: fields[1]}, nil
}

func (p *Phrase) Type() Type      { return TypePhrase }
func (p *Phrase) Phrase() string  { return p.phrase }
func (p *Phrase) English() string { return p.english }

func (p *Phrase) Raw() []string { return []string{p.phrase, p.english} }

func (p *Phrase) Fields() map[string]string {
	return map[string]string{
		"Phrase":  p.phrase,
		"English": p.english,
	}
}

// Conjunction is a German conjunction row.
type Conjunction struct {
	conjunction string
	english     string
	example     string
}

// NewConjunction validates raw conjunction fields and constructs the record.
func NewConjunction(raw []string) (*Conjunction, error) {
	fields, err := trimmed(TypeConjunction, raw, "Conjunction", "English", "Example")
	if err != nil {
		return nil, err
	}
	return &Conjunction{conjunction: fields[0], english: fields[1], example: fields[2]}, nil
}

func (c *Conjunction) Type() Type          { return TypeConjunction }
func (c *Conjunction) Conjunction() string { return c.conjunction }
func (c *Conjunction) English() string     { return c.english }
func (c *Conjunction) Example() string     { return c.example }

func (c *Conjunction) Raw() []string { return []string{c.conjunction, c.english, c.example} }

func (c *Conjunction) Fields() map[string]string {
	return map[string]string{
		"Conjunction": c.conjunction,
		"English":     c.english,
		"Example":     c.example,
	}
}

// trimmed checks the raw slice against the expected field names, trims every
// value and rejects rows with missing, extra or empty fields. Malformed
// source data is never padded or truncated.
func trimmed(t Type, raw []string, names ...string) ([]string, error) {
	if len(raw) != len(names) {
		return nil, &ValidationError{
			Type:   t,
			Reason: fmt.Sprintf("expected %d fields, got %d", len(names), len(raw)),
		}
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, &ValidationError{Type: t, Field: names[i], Reason: "must not be empty"}
		}
		out[i] = v
	}
	return out, nil
}
