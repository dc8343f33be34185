// Package locale holds the phrase tables used when composing user-facing
// weather reports. Phrases are addressed by (language, semantic key) so a
// missing translation shows up as a failing completeness test instead of an
// off-by-one positional lookup.
package locale

// Lang selects one of the supported reply languages.
type Lang string

const (
	RU Lang = "ru"
	EN Lang = "en"
)

// Parse normalizes a free-form language code (e.g. a Telegram language_code)
// to a supported Lang. Anything that is not Russian falls back to English.
func Parse(code string) Lang {
	if code == "ru" {
		return RU
	}
	return EN
}

// Key identifies a single localized phrase.
type Key int

const (
	UnknownCity Key = iota
	TryAgain
	TemperatureLabel
	WindLabel
	FeelsLike
	DaylightHours
	SunriseSunset
	TomorrowHeader
	NoWind
	WeekHeader
	WindUnit
	HumidityLabel
	StartGreeting
	StartHint
	Help
	PhenomenonHeader
	ReminderSet
	ReminderBadTime
	PhenomenaCancelled
)

// Keys lists every defined phrase key; tests iterate it to prove the tables
// are complete for every supported language.
var Keys = []Key{
	UnknownCity,
	TryAgain,
	TemperatureLabel,
	WindLabel,
	FeelsLike,
	DaylightHours,
	SunriseSunset,
	TomorrowHeader,
	NoWind,
	WeekHeader,
	WindUnit,
	HumidityLabel,
	StartGreeting,
	StartHint,
	Help,
	PhenomenonHeader,
	ReminderSet,
	ReminderBadTime,
	PhenomenaCancelled,
}

var phrases = map[Lang]map[Key]string{
	RU: {
		UnknownCity:        "Неверное название города. Попробуйте ещё раз",
		TryAgain:           "Сервис погоды недоступен. Попробуйте позже",
		TemperatureLabel:   "Температура",
		WindLabel:          "Ветер",
		FeelsLike:          "Ощущается как",
		DaylightHours:      "Световой день",
		SunriseSunset:      "Рассвет - закат",
		TomorrowHeader:     "погода на",
		NoWind:             "нет ветра",
		WeekHeader:         "Прогноз на неделю",
		WindUnit:           "м/с",
		HumidityLabel:      "Влажность",
		StartGreeting:      "Привет, ",
		StartHint:          "!\nНапиши название города, и я пришлю прогноз погоды.\nКоманды: /help",
		Help:               "Отправь название города — я отвечу текущей погодой.\nДоступно: сегодня, завтра, неделя, ежедневный прогноз и напоминания.",
		PhenomenonHeader:   "Завтра погода изменится",
		ReminderSet:        "Напоминание установлено на ",
		ReminderBadTime:    "Не понял время. Формат: /daily 08:30",
		PhenomenaCancelled: "Напоминания об изменениях погоды отключены",
	},
	EN: {
		UnknownCity:        "Invalid city name. Try again",
		TryAgain:           "Weather service is unavailable. Try again later",
		TemperatureLabel:   "Temperature",
		WindLabel:          "Wind",
		FeelsLike:          "Feels like",
		DaylightHours:      "Daylight hours",
		SunriseSunset:      "Sunrise - sunset",
		TomorrowHeader:     "weather for",
		NoWind:             "no wind",
		WeekHeader:         "Weekly forecast",
		WindUnit:           "m/s",
		HumidityLabel:      "Humidity",
		StartGreeting:      "Hello, ",
		StartHint:          "!\nSend me a city name and I will reply with the forecast.\nCommands: /help",
		Help:               "Send a city name and I will answer with the current weather.\nAvailable: today, tomorrow, week, daily digest and reminders.",
		PhenomenonHeader:   "The weather will change tomorrow",
		ReminderSet:        "Reminder set for ",
		ReminderBadTime:    "Could not parse the time. Format: /daily 08:30",
		PhenomenaCancelled: "Weather change reminders are off",
	},
}

// T returns the phrase for the given language and key. Unsupported languages
// read from the English table.
func T(lang Lang, key Key) string {
	table, ok := phrases[lang]
	if !ok {
		table = phrases[EN]
	}
	return table[key]
}
