package weather

import (
	"strings"

	"github.com/rs/zerolog"
)

// daylightLabels are the daypart labels that select the day glyph table.
// The provider labels rows in the page language, so both English and Russian
// forms are recognized.
var daylightLabels = map[string]struct{}{
	"morning": {},
	"day":     {},
	"утро":    {},
	"день":    {},
	"утром":   {},
	"днём":    {},
	"днем":    {},
}

// dayGlyphs maps a lowercase Russian condition string to its daytime glyph.
// English condition text reaches these tables through the translations map.
var dayGlyphs = map[string]string{
	"ясно":                   "☀️",
	"малооблачно":            "🌤",
	"облачно с прояснениями": "⛅",
	"облачно":                "🌥",
	"пасмурно":               "☁️",
	"небольшой дождь":        "🌦",
	"дождь":                  "🌧",
	"ливень":                 "🌧",
	"гроза":                  "⛈",
	"дождь со снегом":        "🌨",
	"небольшой снег":         "🌨",
	"снег":                   "❄️",
	"метель":                 "🌨💨",
	"туман":                  "🌫",
}

// nightGlyphs is the nighttime counterpart; a clear night sky reads as a
// moon, not a sun.
var nightGlyphs = map[string]string{
	"ясно":                   "🌙",
	"малооблачно":            "🌙☁️",
	"облачно с прояснениями": "🌙☁️",
	"облачно":                "☁️",
	"пасмурно":               "☁️",
	"небольшой дождь":        "🌧",
	"дождь":                  "🌧",
	"ливень":                 "🌧",
	"гроза":                  "⛈",
	"дождь со снегом":        "🌨",
	"небольшой снег":         "🌨",
	"снег":                   "❄️",
	"метель":                 "🌨💨",
	"туман":                  "🌫",
}

// translations maps a condition term to its counterpart in the other
// supported language, in both directions, for the fallback lookup.
var translations = map[string]string{
	"ясно":                     "clear",
	"clear":                    "ясно",
	"малооблачно":              "partly cloudy",
	"partly cloudy":            "малооблачно",
	"облачно с прояснениями":   "cloudy with sunny spells",
	"cloudy with sunny spells": "облачно с прояснениями",
	"облачно":                  "cloudy",
	"cloudy":                   "облачно",
	"пасмурно":                 "overcast",
	"overcast":                 "пасмурно",
	"небольшой дождь":          "light rain",
	"light rain":               "небольшой дождь",
	"дождь":                    "rain",
	"rain":                     "дождь",
	"ливень":                   "heavy rain",
	"heavy rain":               "ливень",
	"гроза":                    "thunderstorm",
	"thunderstorm":             "гроза",
	"дождь со снегом":          "sleet",
	"sleet":                    "дождь со снегом",
	"небольшой снег":           "light snow",
	"light snow":               "небольшой снег",
	"снег":                     "snow",
	"snow":                     "снег",
	"метель":                   "blizzard",
	"blizzard":                 "метель",
	"туман":                    "fog",
	"fog":                      "туман",
	"mist":                     "туман",
}

// Annotator decorates condition strings with a glyph appropriate to the time
// of day.
type Annotator struct {
	log zerolog.Logger
}

func NewAnnotator(log zerolog.Logger) *Annotator {
	return &Annotator{log: log.With().Str("component", "condition").Logger()}
}

// Glyph returns the display glyph for a condition. The daypart label picks
// the day or night table first, then the condition is looked up
// case-insensitively, retrying through the cross-language map on a miss.
// A condition neither lookup knows degrades to an empty glyph; the report is
// still rendered.
func (a *Annotator) Glyph(condition, daypartLabel string) string {
	table := nightGlyphs
	if _, ok := daylightLabels[strings.ToLower(strings.TrimSpace(daypartLabel))]; ok {
		table = dayGlyphs
	}

	key := strings.ToLower(strings.TrimSpace(condition))
	if glyph, ok := lookupGlyph(table, key); ok {
		return glyph
	}
	if counterpart, ok := translations[key]; ok {
		if glyph, ok := lookupGlyph(table, counterpart); ok {
			return glyph
		}
	}

	a.log.Warn().Str("condition", condition).Str("daypart", daypartLabel).Msg("no glyph for condition")
	return ""
}

func lookupGlyph(table map[string]string, key string) (string, bool) {
	glyph, ok := table[key]
	return glyph, ok
}
