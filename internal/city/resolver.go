// Package city maps free-form user input to the canonical slug the weather
// provider expects in its URLs.
package city

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnresolvable is returned when the input is neither a known city nor
// something that can be transliterated or passed through as a slug.
var ErrUnresolvable = errors.New("city name not recognized")

//go:embed cities.json
var citiesRaw []byte

// Resolved is a city name normalized to the provider's URL slug.
type Resolved struct {
	Slug string
}

// Resolver resolves user-typed city names against a static lookup table,
// falling back to Cyrillic transliteration for names the table does not know.
type Resolver struct {
	cities map[string]string
	titler cases.Caser
	log    zerolog.Logger
}

// NewResolver loads the embedded city table. The table is keyed by
// title-cased display names.
func NewResolver(log zerolog.Logger) (*Resolver, error) {
	cities := make(map[string]string)
	if err := json.Unmarshal(citiesRaw, &cities); err != nil {
		return nil, fmt.Errorf("load city table: %w", err)
	}
	return &Resolver{
		cities: cities,
		titler: cases.Title(language.Russian),
		log:    log.With().Str("component", "city").Logger(),
	}, nil
}

// Resolve maps input to a provider slug. Lookup order: the static table
// (case-insensitive via title-casing), then transliteration for Cyrillic
// input, then passthrough for input that already looks like a Latin slug.
func (r *Resolver) Resolve(input string) (Resolved, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return Resolved{}, ErrUnresolvable
	}

	titled := r.titler.String(strings.ToLower(name))
	if slug, ok := r.cities[titled]; ok {
		return Resolved{Slug: slug}, nil
	}
	r.log.Debug().Str("city", titled).Msg("city not in table, transliterating")

	if !containsCyrillic(name) {
		// Assume the caller already typed a provider slug (e.g. "london").
		if !containsLetter(name) {
			r.log.Warn().Str("input", input).Msg("city name not recognized")
			return Resolved{}, ErrUnresolvable
		}
		return Resolved{Slug: slugify(strings.ToLower(name))}, nil
	}

	slug := slugify(transliterate(strings.ToLower(name)))
	if !containsLetter(slug) {
		r.log.Warn().Str("input", input).Msg("city name not recognized")
		return Resolved{}, ErrUnresolvable
	}
	return Resolved{Slug: slug}, nil
}

// translit maps every Russian letter to its Latin counterpart. "х" maps to
// "kh" so that e.g. "Хабаровск" becomes "khabarovsk", which is the spelling
// the provider uses, not "habarovsk".
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

func transliterate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if latin, ok := translit[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func slugify(s string) string {
	return strings.Join(strings.Fields(s), "-")
}

func containsCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
