package weather

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/weatherbot/internal/city"
	"github.com/velikanov/weatherbot/internal/locale"
)

type stubResolver struct {
	slug string
	err  error
}

func (s stubResolver) Resolve(string) (city.Resolved, error) {
	return city.Resolved{Slug: s.slug}, s.err
}

type stubFetcher struct {
	current    string
	details    string
	currentErr error
	detailsErr error
	calls      int
}

func (s *stubFetcher) FetchCurrent(context.Context, string, locale.Lang) (string, error) {
	s.calls++
	return s.current, s.currentErr
}

func (s *stubFetcher) FetchDetails(context.Context, string, locale.Lang) (string, error) {
	s.calls++
	return s.details, s.detailsErr
}

type stubExtractor struct {
	current  Current
	today    Record
	tomorrow Record
	week     WeekRecord
	err      error
}

func (s stubExtractor) ParseCurrent(string, locale.Lang) (Current, error) {
	return s.current, s.err
}

func (s stubExtractor) ParseDay(_ string, mode Mode, _ locale.Lang) (Record, error) {
	if s.err != nil {
		return Record{}, s.err
	}
	if mode == ModeTomorrow {
		return s.tomorrow, nil
	}
	return s.today, nil
}

func (s stubExtractor) ParseWeek(string, locale.Lang) (WeekRecord, error) {
	return s.week, s.err
}

func newTestService(resolver Resolver, fetcher Fetcher, extractor Extractor) *Service {
	return NewService(resolver, fetcher, extractor, newTestFormatter(), zerolog.Nop())
}

func TestReportUnknownCity(t *testing.T) {
	svc := newTestService(
		stubResolver{err: city.ErrUnresolvable},
		&stubFetcher{},
		stubExtractor{},
	)

	out, err := svc.Report(context.Background(), "атлантида", ModeNow, locale.RU, time.Now())
	assert.ErrorIs(t, err, ErrUnknownCity)
	assert.Empty(t, out)
}

func TestReportFetchFailurePropagates(t *testing.T) {
	fetcher := &stubFetcher{currentErr: ErrFetch, detailsErr: ErrFetch}
	svc := newTestService(stubResolver{slug: "moskva"}, fetcher, stubExtractor{})

	_, err := svc.Report(context.Background(), "Москва", ModeNow, locale.RU, time.Now())
	assert.ErrorIs(t, err, ErrFetch)
}

// When extraction fails on document structure the error surfaces untouched
// and no report text is produced.
func TestReportStructureFailure(t *testing.T) {
	svc := newTestService(
		stubResolver{slug: "moskva"},
		&stubFetcher{details: "<html></html>"},
		stubExtractor{err: ErrDocumentStructure},
	)

	out, err := svc.Report(context.Background(), "Москва", ModeTomorrow, locale.RU, time.Now())
	assert.ErrorIs(t, err, ErrDocumentStructure)
	assert.Empty(t, out)
}

func TestReportNowCombinesCurrentAndDayparts(t *testing.T) {
	extractor := stubExtractor{
		current: Current{
			Header: "Погода в Москве", Temp: "+5", FeelsLike: "+2",
			Wind: "3 м/с, СЗ", Humidity: "87%", Condition: "Снег",
			DaylightHours: "9 ч", Sunrise: "08:11", Sunset: "17:23",
		},
		today: day(Daypart{Label: "утром", Temp: "+2°", Condition: "Ясно", Wind: "2 м/с, З"}),
	}
	svc := newTestService(stubResolver{slug: "moskva"}, &stubFetcher{}, extractor)

	out, err := svc.Report(context.Background(), "Москва", ModeNow, locale.RU, time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, out, "Погода в Москве")
	assert.Contains(t, out, "Утром: +2°")
}

func TestReportPhenomenonSilenceOnStableWeather(t *testing.T) {
	parts := day(
		Daypart{Label: "утром", Condition: "Ясно", Wind: "2 м/с, З"},
		Daypart{Label: "днём", Condition: "Ясно", Wind: "3 м/с, З"},
	)
	svc := newTestService(
		stubResolver{slug: "moskva"},
		&stubFetcher{},
		stubExtractor{today: parts, tomorrow: parts},
	)

	out, err := svc.Report(context.Background(), "Москва", ModePhenomenon, locale.RU, time.Now())
	require.NoError(t, err)
	assert.Empty(t, out, "stable weather must produce no message")
}

func TestReportWeek(t *testing.T) {
	svc := newTestService(
		stubResolver{slug: "moskva"},
		&stubFetcher{},
		stubExtractor{week: WeekRecord{
			City: "Москве",
			Days: []WeekDay{{Date: "26 февраля", Dayparts: []Daypart{{Label: "днём", Temp: "0°", Condition: "Снег", Wind: "4 м/с, С"}}}},
		}},
	)

	out, err := svc.Report(context.Background(), "Москва", ModeWeek, locale.RU, time.Now())
	require.NoError(t, err)
	assert.Contains(t, out, "Прогноз на неделю")
	assert.Contains(t, out, "26 февраля")
}

func TestReportUnsupportedMode(t *testing.T) {
	svc := newTestService(stubResolver{slug: "moskva"}, &stubFetcher{}, stubExtractor{})

	_, err := svc.Report(context.Background(), "Москва", Mode("hourly"), locale.RU, time.Now())
	assert.Error(t, err)
}
