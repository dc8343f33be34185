package yandex

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/velikanov/weatherbot/internal/locale"
	"github.com/velikanov/weatherbot/internal/weather"
)

// Details pages stack one forecast card per day: cards 0 and 1 cover the
// rest of today, tomorrow starts at card 2.
const tomorrowCardIndex = 2

// maxWeekDays bounds how many day cards a weekly report consumes.
const maxWeekDays = 7

// Parser extracts normalized weather records out of provider markup. Regions
// are located by tag + class markers, not by position: the page layout moves
// around, the markers stay. Every sub-field lookup is independent, so one
// missing optional field degrades that field only, never the whole record.
type Parser struct {
	log zerolog.Logger
}

func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log.With().Str("component", "parser").Logger()}
}

// ParseCurrent extracts the right-now conditions from the city's main page.
// The `fact` block is required: the provider serves a placeholder layout
// without it for unknown cities, so its absence means "no such city".
func (p *Parser) ParseCurrent(markup string, lang locale.Lang) (weather.Current, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return weather.Current{}, fmt.Errorf("%w: %v", weather.ErrDocumentStructure, err)
	}

	fact := doc.Find("div.fact")
	if fact.Length() == 0 {
		p.log.Warn().Msg("fact block missing from current page")
		return weather.Current{}, fmt.Errorf("%w: no fact block", weather.ErrDocumentStructure)
	}

	cur := weather.Current{
		Header:    p.field(fact, "div.header-title h1.title", "header"),
		Temp:      p.field(fact, "div.fact__temp-wrap .temp__value", "temperature"),
		Humidity:  p.field(fact, "div.fact__humidity div.term__value", "humidity"),
		Condition: p.field(fact, "div.link__condition", "condition"),
		FeelsLike: p.field(fact, "div.term__value div.temp", "feels-like"),
	}

	speed, speedOK := text(fact, "div.fact__props span.wind-speed")
	unit, unitOK := text(fact, "div.fact__props span.fact__unit")
	if speedOK && unitOK {
		cur.Wind = speed + " " + unit
	} else {
		p.log.Info().Msg("no wind data on current page")
		cur.Wind = weather.NoWindSentinel(lang)
	}

	sun := doc.Find("div.sun-card__info")
	cur.DaylightHours = p.field(sun, "div.sun-card__day-duration-value", "daylight")
	cur.Sunrise = lastClock(p.field(sun, "div.sun-card__sunrise-sunset-info_value_rise-time", "sunrise"))
	cur.Sunset = lastClock(p.field(sun, "div.sun-card__sunrise-sunset-info_value_set-time", "sunset"))

	return cur, nil
}

// ParseDay extracts a single day's daypart table from the details page.
// ModeTomorrow reads the card after today's pair; every other mode reads the
// first card.
func (p *Parser) ParseDay(markup string, mode weather.Mode, lang locale.Lang) (weather.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return weather.Record{}, fmt.Errorf("%w: %v", weather.ErrDocumentStructure, err)
	}

	cards := doc.Find("div.card")
	idx := 0
	if mode == weather.ModeTomorrow {
		idx = tomorrowCardIndex
	}
	if cards.Length() <= idx {
		p.log.Warn().Int("cards", cards.Length()).Int("want", idx).Msg("forecast card missing from details page")
		return weather.Record{}, fmt.Errorf("%w: no forecast card %d", weather.ErrDocumentStructure, idx)
	}
	card := cards.Eq(idx)

	rec := weather.Record{
		City:     cityName(doc),
		Date:     cardDate(card),
		Dayparts: p.dayparts(card, lang),
	}
	if len(rec.Dayparts) == 0 {
		return weather.Record{}, fmt.Errorf("%w: forecast card has no daypart rows", weather.ErrDocumentStructure)
	}
	return rec, nil
}

// ParseWeek extracts up to seven day cards from the details page.
func (p *Parser) ParseWeek(markup string, lang locale.Lang) (weather.WeekRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return weather.WeekRecord{}, fmt.Errorf("%w: %v", weather.ErrDocumentStructure, err)
	}

	cards := doc.Find("div.card")
	if cards.Length() <= tomorrowCardIndex {
		p.log.Warn().Int("cards", cards.Length()).Msg("too few forecast cards for a weekly report")
		return weather.WeekRecord{}, fmt.Errorf("%w: no weekly forecast cards", weather.ErrDocumentStructure)
	}

	week := weather.WeekRecord{City: cityName(doc)}
	cards.Slice(tomorrowCardIndex, cards.Length()).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(week.Days) >= maxWeekDays {
			return false
		}
		parts := p.dayparts(card, lang)
		if len(parts) == 0 {
			// Not a forecast card (ads and notices share the marker).
			return true
		}
		week.Days = append(week.Days, weather.WeekDay{
			Date:     cardDate(card),
			Dayparts: parts,
		})
		return true
	})

	if len(week.Days) == 0 {
		return weather.WeekRecord{}, fmt.Errorf("%w: weekly cards have no daypart rows", weather.ErrDocumentStructure)
	}
	return week, nil
}

// dayparts pulls every daypart row out of a forecast card, in document
// order. Each field lookup is independent; a missing wind sub-structure
// falls back to the language's sentinel.
func (p *Parser) dayparts(card *goquery.Selection, lang locale.Lang) []weather.Daypart {
	var parts []weather.Daypart
	card.Find("tr.weather-table__row").Each(func(_ int, row *goquery.Selection) {
		part := weather.Daypart{
			Label:     p.field(row, "div.weather-table__daypart", "daypart label"),
			Temp:      p.field(row, "div.weather-table__temp", "daypart temperature"),
			Humidity:  p.field(row, "td.weather-table__body-cell_type_humidity", "daypart humidity"),
			Condition: p.field(row, "td.weather-table__body-cell_type_condition", "daypart condition"),
		}

		speed, speedOK := text(row, "span.weather-table__wind")
		direction, directionOK := text(row, "abbr.icon-abbr")
		if speedOK && directionOK {
			part.Wind = fmt.Sprintf("%s %s, %s", speed, locale.T(lang, locale.WindUnit), direction)
		} else {
			p.log.Info().Str("daypart", part.Label).Msg("no wind data for daypart")
			part.Wind = weather.NoWindSentinel(lang)
		}

		parts = append(parts, part)
	})
	return parts
}

// field is the single-field extraction step: present returns the trimmed
// text, absent logs and returns "" without failing the record.
func (p *Parser) field(scope *goquery.Selection, selector, name string) string {
	value, ok := text(scope, selector)
	if !ok {
		p.log.Info().Str("field", name).Msg("optional field missing")
	}
	return value
}

// text looks up the first node matching selector under scope and reports
// whether it was present at all.
func text(scope *goquery.Selection, selector string) (string, bool) {
	sel := scope.Find(selector)
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.First().Text()), true
}

// cityName reads the page title and keeps its last word, which is the city.
func cityName(doc *goquery.Document) string {
	title, ok := text(doc.Selection, "h1.title.title_level_1.header-title__title")
	if !ok {
		return ""
	}
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// cardDate joins the day number and month labels of a forecast card.
func cardDate(card *goquery.Selection) string {
	day, _ := text(card, "strong.forecast-details__day-number")
	month, _ := text(card, "span.forecast-details__day-month")
	return strings.TrimSpace(day + " " + month)
}

// lastClock keeps the trailing "HH:MM" of strings like "sunrise: 05:43".
func lastClock(s string) string {
	runes := []rune(s)
	if len(runes) <= 5 {
		return s
	}
	return string(runes[len(runes)-5:])
}
