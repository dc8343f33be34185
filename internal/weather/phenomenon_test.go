package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/weatherbot/internal/locale"
)

func day(parts ...Daypart) Record {
	return Record{Dayparts: parts}
}

// Two days with identical conditions and wind across all dayparts produce no
// message at all, not an empty-but-present one.
func TestPhenomenaIdenticalDaysProduceNothing(t *testing.T) {
	f := newTestFormatter()

	today := day(
		Daypart{Label: "утром", Temp: "+2°", Condition: "Ясно", Wind: "2 м/с, З"},
		Daypart{Label: "днём", Temp: "+5°", Condition: "Ясно", Wind: "3 м/с, З"},
		Daypart{Label: "вечером", Temp: "+1°", Condition: "Облачно", Wind: "2 м/с, З"},
		Daypart{Label: "ночью", Temp: "-2°", Condition: "Облачно", Wind: "1 м/с, З"},
	)
	tomorrow := day(
		Daypart{Label: "утром", Temp: "-4°", Condition: "Ясно", Wind: "2 м/с, З"},
		Daypart{Label: "днём", Temp: "0°", Condition: "Ясно", Wind: "3 м/с, З"},
		Daypart{Label: "вечером", Temp: "-5°", Condition: "Облачно", Wind: "2 м/с, З"},
		Daypart{Label: "ночью", Temp: "-9°", Condition: "Облачно", Wind: "1 м/с, З"},
	)

	assert.Empty(t, f.FormatPhenomena(today, tomorrow, locale.RU),
		"temperature swings alone are not a phenomenon")
}

func TestPhenomenaConditionChange(t *testing.T) {
	f := newTestFormatter()

	today := day(Daypart{Label: "днём", Condition: "Ясно", Wind: "3 м/с, З"})
	tomorrow := day(Daypart{Label: "днём", Condition: "Гроза", Wind: "3 м/с, З"})

	out := f.FormatPhenomena(today, tomorrow, locale.RU)
	require.NotEmpty(t, out)
	assert.Contains(t, out, locale.T(locale.RU, locale.PhenomenonHeader))
	assert.Contains(t, out, "Гроза")
	assert.Contains(t, out, "⛈")
}

func TestPhenomenaWindChange(t *testing.T) {
	f := newTestFormatter()

	today := day(Daypart{Label: "ночью", Condition: "Облачно", Wind: "2 м/с, З"})
	tomorrow := day(Daypart{Label: "ночью", Condition: "Облачно", Wind: "9 м/с, С"})

	out := f.FormatPhenomena(today, tomorrow, locale.RU)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "9 м/с, С")
}

func TestPhenomenaCaseInsensitiveComparison(t *testing.T) {
	f := newTestFormatter()

	today := day(Daypart{Label: "днём", Condition: "ясно", Wind: "3 м/с, З"})
	tomorrow := day(Daypart{Label: "днём", Condition: "Ясно", Wind: "3 м/с, З"})

	assert.Empty(t, f.FormatPhenomena(today, tomorrow, locale.RU))
}
