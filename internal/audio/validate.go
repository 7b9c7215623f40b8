package audio

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateGermanText validates that the input is plausible German text:
// non-empty and made of Latin letters. Cyrillic or CJK input usually means
// a column mix-up in the source CSV, better caught before spending an API
// call on it.
func ValidateGermanText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	hasLatin := false
	for _, r := range text {
		if unicode.In(r, unicode.Cyrillic, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return fmt.Errorf("text contains non-Latin script: %q", r)
		}
		if unicode.In(r, unicode.Latin) {
			hasLatin = true
		}
	}

	if !hasLatin {
		return fmt.Errorf("text must contain letters")
	}

	return nil
}
