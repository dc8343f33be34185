package yandex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/weatherbot/internal/locale"
	"github.com/velikanov/weatherbot/internal/weather"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestParseCurrent(t *testing.T) {
	p := NewParser(zerolog.Nop())

	cur, err := p.ParseCurrent(fixture(t, "current.html"), locale.RU)
	require.NoError(t, err)

	assert.Equal(t, "Погода в Москве", cur.Header)
	assert.Equal(t, "+5", cur.Temp)
	assert.Equal(t, "+2", cur.FeelsLike)
	assert.Equal(t, "3,2 м/с, СЗ", cur.Wind)
	assert.Equal(t, "87%", cur.Humidity)
	assert.Equal(t, "Снег", cur.Condition)
	assert.Equal(t, "9 ч 12 мин", cur.DaylightHours)
	assert.Equal(t, "08:11", cur.Sunrise)
	assert.Equal(t, "17:23", cur.Sunset)
}

// A page without the wind sub-structure must still produce a full record,
// with the wind field set to the language's sentinel.
func TestParseCurrentMissingWind(t *testing.T) {
	p := NewParser(zerolog.Nop())

	cur, err := p.ParseCurrent(fixture(t, "current_no_wind.html"), locale.RU)
	require.NoError(t, err)

	assert.Equal(t, locale.T(locale.RU, locale.NoWind), cur.Wind)
	assert.Equal(t, "-1", cur.Temp)
}

// An unknown city gets a placeholder page without the fact block; parsing it
// must fail with the structure error, which callers report as a bad city.
func TestParseCurrentNoFactBlock(t *testing.T) {
	p := NewParser(zerolog.Nop())

	_, err := p.ParseCurrent(fixture(t, "empty.html"), locale.RU)
	assert.ErrorIs(t, err, weather.ErrDocumentStructure)
}

func TestParseDayToday(t *testing.T) {
	p := NewParser(zerolog.Nop())

	rec, err := p.ParseDay(fixture(t, "details.html"), weather.ModeToday, locale.RU)
	require.NoError(t, err)

	assert.Equal(t, "Москве", rec.City)
	assert.Equal(t, "25 февраля", rec.Date)
	require.Len(t, rec.Dayparts, 4)

	morning := rec.Dayparts[0]
	assert.Equal(t, "утром", morning.Label)
	assert.Equal(t, "+2°", morning.Temp)
	assert.Equal(t, "84%", morning.Humidity)
	assert.Equal(t, "Небольшой дождь", morning.Condition)
	assert.Equal(t, "2,1 м/с, ЮЗ", morning.Wind)

	// The night row has no wind cell content: sentinel, not a blank.
	night := rec.Dayparts[3]
	assert.Equal(t, "ночью", night.Label)
	assert.Equal(t, locale.T(locale.RU, locale.NoWind), night.Wind)
}

func TestParseDayTomorrow(t *testing.T) {
	p := NewParser(zerolog.Nop())

	rec, err := p.ParseDay(fixture(t, "details.html"), weather.ModeTomorrow, locale.RU)
	require.NoError(t, err)

	assert.Equal(t, "26 февраля", rec.Date)
	require.Len(t, rec.Dayparts, 4)
	assert.Equal(t, "Метель", rec.Dayparts[1].Condition)
}

func TestParseDayKeepsChronologicalOrder(t *testing.T) {
	p := NewParser(zerolog.Nop())

	rec, err := p.ParseDay(fixture(t, "details.html"), weather.ModeToday, locale.RU)
	require.NoError(t, err)

	labels := make([]string, 0, len(rec.Dayparts))
	for _, part := range rec.Dayparts {
		labels = append(labels, part.Label)
	}
	assert.Equal(t, []string{"утром", "днём", "вечером", "ночью"}, labels)
}

func TestParseWeek(t *testing.T) {
	p := NewParser(zerolog.Nop())

	week, err := p.ParseWeek(fixture(t, "details.html"), locale.RU)
	require.NoError(t, err)

	assert.Equal(t, "Москве", week.City)
	require.Len(t, week.Days, 2)
	assert.Equal(t, "26 февраля", week.Days[0].Date)
	assert.Equal(t, "27 февраля", week.Days[1].Date)
	assert.Len(t, week.Days[0].Dayparts, 4)
	assert.Len(t, week.Days[1].Dayparts, 2)

	// The short last day still degrades missing wind to the sentinel.
	assert.Equal(t, locale.T(locale.RU, locale.NoWind), week.Days[1].Dayparts[0].Wind)
}

func TestParseDayEmptyDocument(t *testing.T) {
	p := NewParser(zerolog.Nop())

	_, err := p.ParseDay(fixture(t, "empty.html"), weather.ModeToday, locale.RU)
	assert.ErrorIs(t, err, weather.ErrDocumentStructure)

	_, err = p.ParseWeek(fixture(t, "empty.html"), locale.RU)
	assert.ErrorIs(t, err, weather.ErrDocumentStructure)
}
