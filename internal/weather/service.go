package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/velikanov/weatherbot/internal/city"
	"github.com/velikanov/weatherbot/internal/locale"
)

// Fetcher retrieves provider markup for a resolved city slug.
type Fetcher interface {
	FetchCurrent(ctx context.Context, slug string, lang locale.Lang) (string, error)
	FetchDetails(ctx context.Context, slug string, lang locale.Lang) (string, error)
}

// Extractor turns provider markup into normalized records.
type Extractor interface {
	ParseCurrent(markup string, lang locale.Lang) (Current, error)
	ParseDay(markup string, mode Mode, lang locale.Lang) (Record, error)
	ParseWeek(markup string, lang locale.Lang) (WeekRecord, error)
}

// Resolver maps free-form city input to a provider slug.
type Resolver interface {
	Resolve(input string) (city.Resolved, error)
}

// Service runs the resolve, fetch, extract, format pipeline. Every call
// builds its records fresh and discards them after formatting; the service
// holds no mutable state.
type Service struct {
	resolver  Resolver
	fetcher   Fetcher
	extractor Extractor
	formatter *Formatter
	log       zerolog.Logger
}

func NewService(resolver Resolver, fetcher Fetcher, extractor Extractor, formatter *Formatter, log zerolog.Logger) *Service {
	return &Service{
		resolver:  resolver,
		fetcher:   fetcher,
		extractor: extractor,
		formatter: formatter,
		log:       log.With().Str("component", "weather").Logger(),
	}
}

// Report produces the formatted reply for one request. For ModePhenomenon
// an empty string with a nil error means "no notable change, send nothing".
func (s *Service) Report(ctx context.Context, cityInput string, mode Mode, lang locale.Lang, now time.Time) (string, error) {
	resolved, err := s.resolver.Resolve(cityInput)
	if err != nil {
		if errors.Is(err, city.ErrUnresolvable) {
			return "", fmt.Errorf("%w: %q", ErrUnknownCity, cityInput)
		}
		return "", err
	}

	switch mode {
	case ModeNow:
		return s.reportNow(ctx, resolved.Slug, lang, now)
	case ModeToday:
		rec, err := s.day(ctx, resolved.Slug, ModeToday, lang)
		if err != nil {
			return "", err
		}
		return s.formatter.FormatTomorrow(rec, lang), nil
	case ModeTomorrow:
		rec, err := s.day(ctx, resolved.Slug, ModeTomorrow, lang)
		if err != nil {
			return "", err
		}
		return s.formatter.FormatTomorrow(rec, lang), nil
	case ModeWeek:
		markup, err := s.fetcher.FetchDetails(ctx, resolved.Slug, lang)
		if err != nil {
			return "", err
		}
		week, err := s.extractor.ParseWeek(markup, lang)
		if err != nil {
			return "", err
		}
		return s.formatter.FormatWeek(week, lang), nil
	case ModeDaily:
		rec, err := s.day(ctx, resolved.Slug, ModeToday, lang)
		if err != nil {
			return "", err
		}
		return s.formatter.FormatDaily(rec, lang), nil
	case ModePhenomenon:
		return s.reportPhenomena(ctx, resolved.Slug, lang)
	default:
		return "", fmt.Errorf("unsupported report mode %q", mode)
	}
}

// reportNow combines the current-conditions page with today's daypart table.
func (s *Service) reportNow(ctx context.Context, slug string, lang locale.Lang, now time.Time) (string, error) {
	markup, err := s.fetcher.FetchCurrent(ctx, slug, lang)
	if err != nil {
		return "", err
	}
	cur, err := s.extractor.ParseCurrent(markup, lang)
	if err != nil {
		return "", err
	}

	rec, err := s.day(ctx, slug, ModeToday, lang)
	if err != nil {
		return "", err
	}
	rec.Current = &cur

	return s.formatter.FormatNow(rec, lang, now), nil
}

// reportPhenomena parses today's and tomorrow's tables out of one details
// page and diffs them.
func (s *Service) reportPhenomena(ctx context.Context, slug string, lang locale.Lang) (string, error) {
	markup, err := s.fetcher.FetchDetails(ctx, slug, lang)
	if err != nil {
		return "", err
	}
	today, err := s.extractor.ParseDay(markup, ModeToday, lang)
	if err != nil {
		return "", err
	}
	tomorrow, err := s.extractor.ParseDay(markup, ModeTomorrow, lang)
	if err != nil {
		return "", err
	}

	msg := s.formatter.FormatPhenomena(today, tomorrow, lang)
	if msg == "" {
		s.log.Debug().Str("city", slug).Msg("no notable weather change")
	}
	return msg, nil
}

func (s *Service) day(ctx context.Context, slug string, mode Mode, lang locale.Lang) (Record, error) {
	markup, err := s.fetcher.FetchDetails(ctx, slug, lang)
	if err != nil {
		return Record{}, err
	}
	return s.extractor.ParseDay(markup, mode, lang)
}
