package internal

import (
	"crypto/md5"
	"encoding/hex"
)

// SanitizeFilename creates a safe filename from a string. German letters
// (including umlauts and ß) are kept, everything else becomes '_'.
func SanitizeFilename(s string) string {
	result := ""
	for _, r := range s {
		if isWordRune(r) || r == '-' || r == '_' {
			result += string(r)
		} else {
			result += "_"
		}
	}
	return result
}

// HashText returns the hex MD5 of the given strings concatenated. Used to
// derive stable media cache keys from generation inputs.
func HashText(parts ...string) string {
	h := md5.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func isWordRune(r rune) bool {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return true
	}
	switch r {
	case 'ä', 'ö', 'ü', 'Ä', 'Ö', 'Ü', 'ß':
		return true
	}
	return false
}
