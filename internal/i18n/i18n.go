// Package i18n holds the UI string tables for the four supported languages.
package i18n

import (
	"maps"
	"strings"

	"github.com/neexbeast/petmap/internal/poi"
)

// Lang is a UI language code.
type Lang string

const (
	Japanese Lang = "ja"
	English  Lang = "en"
	Chinese  Lang = "zh"
	Korean   Lang = "ko"
)

// Default is used whenever a language is missing or unsupported.
const Default = Japanese

var order = []Lang{Japanese, English, Chinese, Korean}

// Supported returns the languages in cycle order.
func Supported() []Lang {
	return append([]Lang(nil), order...)
}

// Parse normalizes s, returning Default for unsupported values.
func Parse(s string) Lang {
	l := Lang(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := translations[l]; ok {
		return l
	}
	return Default
}

// IsSupported reports whether s names a supported language.
func IsSupported(s string) bool {
	_, ok := translations[Lang(strings.ToLower(strings.TrimSpace(s)))]
	return ok
}

// Next returns the language after current in the cycle.
// Unknown languages go to the first one.
func Next(current Lang) Lang {
	idx := -1
	for i, l := range order {
		if l == current {
			idx = i
			break
		}
	}
	return order[(idx+1)%len(order)]
}

// Translate looks key up in lang, then in Default, then returns key itself.
func Translate(lang Lang, key string) string {
	if v, ok := translations[lang][key]; ok && v != "" {
		return v
	}
	if v, ok := translations[Default][key]; ok && v != "" {
		return v
	}
	return key
}

// CategoryLabel returns the display label for a marker category.
func CategoryLabel(lang Lang, c poi.Category) string {
	key := "cat_" + string(c)
	if v := Translate(lang, key); v != key {
		return v
	}
	return string(c)
}

// Dictionary returns a copy of the table for lang.
func Dictionary(lang Lang) map[string]string {
	return maps.Clone(translations[Parse(string(lang))])
}
