// Package locale names the languages the site is published in.
package locale

import "strings"

type Locale string

const (
	ES Locale = "es"
	EN Locale = "en"

	Default = ES
)

// Parse maps a language tag ("en", "en-US", "ES") to a supported locale,
// falling back to Default.
func Parse(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_,;"); i >= 0 {
		tag = tag[:i]
	}
	switch Locale(tag) {
	case ES, EN:
		return Locale(tag)
	default:
		return Default
	}
}

// Pick returns the message for l, or the Default one when l has none.
func Pick(l Locale, msgs map[Locale]string) string {
	if m, ok := msgs[l]; ok {
		return m
	}
	return msgs[Default]
}
