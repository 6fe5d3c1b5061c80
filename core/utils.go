package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NormalizeLang maps any input to one of the supported UI languages, "en" or "es".
func NormalizeLang(lang string) string {
	if CleanString(lang, true) == "es" {
		return "es"
	}
	return "en"
}
