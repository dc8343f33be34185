package weather

import "github.com/velikanov/weatherbot/internal/locale"

// Mode selects which report shape a request wants.
type Mode string

const (
	ModeNow        Mode = "now"
	ModeToday      Mode = "today"
	ModeTomorrow   Mode = "tomorrow"
	ModeWeek       Mode = "week"
	ModeDaily      Mode = "daily"
	ModePhenomenon Mode = "phenomenon"
)

// Daypart is the forecast for one quarter of a day (morning/day/evening/
// night). All fields are display-ready strings: formatting happens at
// extraction time, not later. Wind is either a real "speed unit, direction"
// string or the language's "no wind" sentinel, never empty.
type Daypart struct {
	Label     string
	Temp      string
	Humidity  string
	Condition string
	Wind      string
}

// Current holds the right-now conditions shown at the top of a "now" report.
type Current struct {
	Header        string
	Temp          string
	FeelsLike     string
	Wind          string
	Humidity      string
	Condition     string
	DaylightHours string
	Sunrise       string
	Sunset        string
}

// Record is the normalized weather view for a single day. Dayparts keep
// insertion order, which is chronological. Current is set only for "now"
// queries.
type Record struct {
	City     string
	Date     string
	Dayparts []Daypart
	Current  *Current
}

// WeekDay is one day inside a weekly forecast.
type WeekDay struct {
	Date     string
	Dayparts []Daypart
}

// WeekRecord is the normalized weekly forecast, days in chronological order.
type WeekRecord struct {
	City string
	Days []WeekDay
}

// NoWindSentinel returns the placeholder substituted when the provider omits
// the wind sub-structure for a daypart.
func NoWindSentinel(lang locale.Lang) string {
	return locale.T(lang, locale.NoWind)
}
