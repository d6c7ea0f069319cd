package common

import "unicode"

// LowerFirst returns s with its first rune lowercased. Used to derive
// value-level names from type names.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}
