package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/velikanov/weatherbot/internal/locale"
)

var titler = cases.Title(language.Russian)

// Formatter renders normalized weather records into the HTML-tagged strings
// delivered to chats. Every formatter is pure over its inputs.
type Formatter struct {
	ann *Annotator
}

func NewFormatter(ann *Annotator) *Formatter {
	return &Formatter{ann: ann}
}

// FormatNow renders the "current weather" report: header, right-now
// conditions, the four daypart lines and the daylight block. now decides
// whether the current condition gets a day or a night glyph.
func (f *Formatter) FormatNow(rec Record, lang locale.Lang, now time.Time) string {
	var b strings.Builder

	if cur := rec.Current; cur != nil {
		glyph := f.ann.Glyph(cur.Condition, daypartForTime(now, cur.Sunset))
		b.WriteString(fmt.Sprintf("<i>%s</i>\n\n", cur.Header))
		b.WriteString(fmt.Sprintf("<b>%s: %s°; %s: %s\n",
			locale.T(lang, locale.TemperatureLabel), cur.Temp,
			locale.T(lang, locale.FeelsLike), cur.FeelsLike))
		b.WriteString(fmt.Sprintf("%s: %s; %s: %s\n",
			locale.T(lang, locale.WindLabel), cur.Wind,
			locale.T(lang, locale.HumidityLabel), cur.Humidity))
		b.WriteString(fmt.Sprintf("%s %s</b>\n\n", cur.Condition, glyph))
	}

	for _, part := range rec.Dayparts {
		wind := part.Wind
		if wind != NoWindSentinel(lang) {
			// Daypart lines show only the speed, not the direction tail.
			wind = strings.Split(wind, ", ")[0]
		}
		b.WriteString(fmt.Sprintf("%s: %s; %s: %s %s\n\n",
			titler.String(part.Label), part.Temp,
			locale.T(lang, locale.WindLabel), wind,
			f.ann.Glyph(part.Condition, part.Label)))
	}

	if cur := rec.Current; cur != nil {
		b.WriteString(fmt.Sprintf("%s: %s\n", locale.T(lang, locale.DaylightHours), cur.DaylightHours))
		b.WriteString(fmt.Sprintf("%s: %s - %s\n", locale.T(lang, locale.SunriseSunset), cur.Sunrise, cur.Sunset))
	}

	return b.String()
}

// FormatTomorrow renders the next-day report, one block per daypart.
func (f *Formatter) FormatTomorrow(rec Record, lang locale.Lang) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<i>%s %s %s</i>\n\n",
		rec.City, locale.T(lang, locale.TomorrowHeader), rec.Date))

	for _, part := range rec.Dayparts {
		b.WriteString(fmt.Sprintf("<b>%s</b>, %s %s: %s\n%s %s\n\n",
			titler.String(part.Label), part.Temp,
			locale.T(lang, locale.WindLabel), part.Wind,
			part.Condition, f.ann.Glyph(part.Condition, part.Label)))
	}

	return b.String()
}

// FormatWeek renders the weekly report. Date lines visually divide days;
// inside a day each daypart takes one line.
func (f *Formatter) FormatWeek(week WeekRecord, lang locale.Lang) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<i>%s. %s</i>\n", week.City, locale.T(lang, locale.WeekHeader)))

	for _, day := range week.Days {
		b.WriteString(fmt.Sprintf("\n<i><b>%s</b></i>\n", day.Date))
		for _, part := range day.Dayparts {
			b.WriteString(fmt.Sprintf("%s: %s;  %s %s\n",
				titler.String(part.Label), part.Temp,
				part.Wind, f.ann.Glyph(part.Condition, part.Label)))
		}
	}

	return b.String()
}

// FormatDaily renders the compact morning-digest shape: the first daypart
// only, one field per line.
func (f *Formatter) FormatDaily(rec Record, lang locale.Lang) string {
	if len(rec.Dayparts) == 0 {
		return ""
	}
	part := rec.Dayparts[0]
	return fmt.Sprintf("%s,\n%s,\n%s,\n%s\n",
		titler.String(part.Label), part.Temp, part.Condition, part.Wind)
}

// daypartForTime classifies a wall-clock moment as "day" or "night" by
// comparing it with the sunset time ("HH:MM") scraped from the page.
func daypartForTime(now time.Time, sunset string) string {
	h, m, ok := parseClock(sunset)
	if !ok {
		return "day"
	}
	if now.Hour()*60+now.Minute() > h*60+m {
		return "night"
	}
	return "day"
}

func parseClock(s string) (hours, minutes int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}
