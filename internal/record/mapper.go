package record

import "strings"

// Create maps a raw CSV row to the record variant named by the word-type
// discriminator. Dispatch is a direct switch on the tag; each constructor
// performs its own validation.
func Create(wordType Type, raw []string) (Record, error) {
	switch wordType {
	case TypeNoun:
		return NewNoun(raw)
	case TypeVerb:
		return NewVerb(raw)
	case TypeAdjective:
		return NewAdjective(raw)
	case TypeAdverb:
		return NewAdverb(raw)
	case TypePreposition:
		return NewPreposition(raw)
	case TypePhrase:
		return NewPhrase(raw)
	case TypeConjunction:
		return NewConjunction(raw)
	default:
		return nil, &UnsupportedTypeError{Type: string(wordType)}
	}
}

// ParseType normalizes a discriminator string read from source data. It
// does not guess: anything but an exact (case-insensitive) match fails.
func ParseType(s string) (Type, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Types() {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", &UnsupportedTypeError{Type: s}
}
