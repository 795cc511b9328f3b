// Package locale holds the languages the landing page is translated into,
// the country to language table and the per-request locale context.
package locale

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the supported content languages.
type Language string

const (
	English Language = "en"
	German  Language = "de"
	Polish  Language = "pl"
)

// Default is used whenever nothing better is known.
const Default = English

// Supported lists the languages in the order they are offered to visitors.
var Supported = []Language{English, German, Polish}

var tags = map[Language]language.Tag{
	English: language.English,
	German:  language.German,
	Polish:  language.Polish,
}

// countryLanguages maps upper-case ISO 3166-1 alpha-2 codes to languages.
var countryLanguages = map[string]Language{
	"DE": German,
	"PL": Polish,
}

// ForCountry maps a country code to a language. The mapping is total: unknown
// or empty codes map to English.
func ForCountry(country string) Language {
	if lang, ok := countryLanguages[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return lang
	}
	return Default
}

// Parse returns the supported language named by s (case-insensitive, region
// subtags ignored, so "de-AT" is German).
func Parse(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if idx := strings.IndexAny(s, "-_"); idx != -1 {
		s = s[:idx]
	}
	lang := Language(s)
	_, ok := tags[lang]
	return lang, ok
}

// Tag returns the BCP 47 tag for l, English for unsupported values.
func (l Language) Tag() language.Tag {
	if t, ok := tags[l]; ok {
		return t
	}
	return language.English
}

func (l Language) String() string { return string(l) }

// Context is the locale resolved for one request. It is a value and is never
// modified after it has been bound.
type Context struct {
	Language Language
	// Country is the visitor's ISO country code, empty when unknown.
	Country string
}

// DefaultContext is bound when resolution fails or never ran.
var DefaultContext = Context{Language: Default}

type contextKey struct{}

// WithContext returns a copy of ctx carrying lc. An unsupported language is
// replaced by the default.
func WithContext(ctx context.Context, lc Context) context.Context {
	if _, ok := tags[lc.Language]; !ok {
		lc.Language = Default
	}
	return context.WithValue(ctx, contextKey{}, lc)
}

// FromContext returns the locale bound to ctx, or DefaultContext.
func FromContext(ctx context.Context) Context {
	if lc, ok := ctx.Value(contextKey{}).(Context); ok {
		return lc
	}
	return DefaultContext
}
