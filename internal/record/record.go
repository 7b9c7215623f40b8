// Package record holds the validated, immutable per-row representations of
// the source vocabulary data, one variant per word type, plus the mapper
// that turns raw CSV fields into them.
package record

import "fmt"

// Type is the word-type discriminator for a vocabulary row.
type Type string

const (
	TypeNoun        Type = "noun"
	TypeVerb        Type = "verb"
	TypeAdjective   Type = "adjective"
	TypeAdverb      Type = "adverb"
	TypePreposition Type = "preposition"
	TypePhrase      Type = "phrase"
	TypeConjunction Type = "conjunction"
)

// Types lists all registered word types in a stable order.
func Types() []Type {
	return []Type{
		TypeNoun,
		TypeVerb,
		TypeAdjective,
		TypeAdverb,
		TypePreposition,
		TypePhrase,
		TypeConjunction,
	}
}

// Record is a validated, immutable representation of one source row.
type Record interface {
	// Type returns the word-type tag of this record.
	Type() Type

	// Fields returns the record's data keyed by field name. Media fields
	// are never part of this projection; they come from enrichment.
	Fields() map[string]string

	// Raw returns the original field values in schema order.
	Raw() []string
}

// UnsupportedTypeError indicates an unregistered word-type discriminator.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported word type: %q", e.Type)
}

// ValidationError indicates malformed or incomplete source data for a row.
type ValidationError struct {
	Type   Type
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s record: field %q: %s", e.Type, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s record: %s", e.Type, e.Reason)
}
