// Package bot routes incoming chat messages to the weather pipeline and
// composes the reply text.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/velikanov/weatherbot/internal/city"
	"github.com/velikanov/weatherbot/internal/locale"
	"github.com/velikanov/weatherbot/internal/store"
	"github.com/velikanov/weatherbot/internal/weather"
)

// Message is the inbound chat message, already stripped down to what the
// core needs.
type Message struct {
	ChatID       int64
	Text         string
	Username     string
	LanguageCode string
	Timestamp    time.Time
}

// Reporter runs the weather pipeline for one request.
type Reporter interface {
	Report(ctx context.Context, cityInput string, mode weather.Mode, lang locale.Lang, now time.Time) (string, error)
}

// Reminders manages the persisted reminder jobs.
type Reminders interface {
	Create(ctx context.Context, userID int64, hours, minutes int, phenomenon bool) (store.Reminder, error)
	DeletePhenomena(ctx context.Context, userID int64) error
}

// Handler turns messages into replies. It remembers each user's last city
// so mode keywords ("tomorrow", "week") work without retyping the city.
type Handler struct {
	store     store.Store
	reporter  Reporter
	reminders Reminders
	log       zerolog.Logger
}

func NewHandler(st store.Store, reporter Reporter, reminders Reminders, log zerolog.Logger) *Handler {
	return &Handler{
		store:     st,
		reporter:  reporter,
		reminders: reminders,
		log:       log.With().Str("component", "bot").Logger(),
	}
}

// modeKeywords maps normalized message text to a report mode, in both
// supported languages.
var modeKeywords = map[string]weather.Mode{
	"сегодня":   weather.ModeToday,
	"today":     weather.ModeToday,
	"завтра":    weather.ModeTomorrow,
	"tomorrow":  weather.ModeTomorrow,
	"неделя":    weather.ModeWeek,
	"на неделю": weather.ModeWeek,
	"week":      weather.ModeWeek,
	"прогноз":   weather.ModeDaily,
	"daily":     weather.ModeDaily,
}

// Handle produces the reply for one message. The returned string is ready
// for delivery; an empty string means nothing should be sent.
func (h *Handler) Handle(ctx context.Context, msg Message) string {
	text := strings.TrimSpace(msg.Text)
	lang := h.language(ctx, msg)

	switch {
	case text == "/start":
		h.rememberUser(ctx, msg, "")
		return locale.T(lang, locale.StartGreeting) + msg.Username + locale.T(lang, locale.StartHint)
	case text == "/help":
		return locale.T(lang, locale.Help)
	case strings.HasPrefix(text, "/daily"):
		return h.setReminder(ctx, msg, strings.TrimSpace(strings.TrimPrefix(text, "/daily")), false, lang)
	case strings.HasPrefix(text, "/phenomena"):
		return h.setReminder(ctx, msg, strings.TrimSpace(strings.TrimPrefix(text, "/phenomena")), true, lang)
	case text == "/cancelphenomena":
		return h.cancelPhenomena(ctx, msg, lang)
	}

	if mode, ok := modeKeywords[strings.ToLower(text)]; ok {
		return h.report(ctx, h.rememberedCity(ctx, msg.ChatID), mode, lang, msg.Timestamp)
	}

	// Anything else is a city name; answer with current weather and
	// remember the city for later mode requests and reminders.
	reply := h.report(ctx, text, weather.ModeNow, lang, msg.Timestamp)
	if reply != locale.T(lang, locale.UnknownCity) && reply != locale.T(lang, locale.TryAgain) {
		h.rememberUser(ctx, msg, text)
	}
	return reply
}

// report runs the pipeline and maps pipeline errors to user-facing phrases
// per the error taxonomy: resolution and structure failures read as an
// unknown city, fetch failures as a temporary problem.
func (h *Handler) report(ctx context.Context, cityInput string, mode weather.Mode, lang locale.Lang, now time.Time) string {
	if strings.TrimSpace(cityInput) == "" {
		return locale.T(lang, locale.UnknownCity)
	}

	out, err := h.reporter.Report(ctx, cityInput, mode, lang, now)
	switch {
	case err == nil:
		return out
	case errors.Is(err, weather.ErrUnknownCity),
		errors.Is(err, weather.ErrDocumentStructure),
		errors.Is(err, city.ErrUnresolvable):
		h.log.Warn().Err(err).Str("city", cityInput).Msg("city rejected")
		return locale.T(lang, locale.UnknownCity)
	case errors.Is(err, weather.ErrFetch):
		h.log.Warn().Err(err).Str("city", cityInput).Msg("provider unavailable")
		return locale.T(lang, locale.TryAgain)
	default:
		h.log.Error().Err(err).Str("city", cityInput).Msg("pipeline failed")
		return locale.T(lang, locale.TryAgain)
	}
}

// setReminder parses "/daily HH:MM" style commands and registers the job.
// The user must already have a remembered city for the reminder to report
// on.
func (h *Handler) setReminder(ctx context.Context, msg Message, arg string, phenomenon bool, lang locale.Lang) string {
	hours, minutes, ok := parseReminderTime(arg)
	if !ok {
		return locale.T(lang, locale.ReminderBadTime)
	}

	h.rememberUser(ctx, msg, "")
	user, err := h.store.UserByChatID(ctx, msg.ChatID)
	if err != nil {
		h.log.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("user lookup failed")
		return locale.T(lang, locale.TryAgain)
	}
	if user.City == "" {
		return locale.T(lang, locale.UnknownCity)
	}

	if _, err := h.reminders.Create(ctx, user.ID, hours, minutes, phenomenon); err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("reminder creation failed")
		return locale.T(lang, locale.TryAgain)
	}
	return fmt.Sprintf("%s%02d:%02d", locale.T(lang, locale.ReminderSet), hours, minutes)
}

func (h *Handler) cancelPhenomena(ctx context.Context, msg Message, lang locale.Lang) string {
	user, err := h.store.UserByChatID(ctx, msg.ChatID)
	if err != nil {
		return locale.T(lang, locale.PhenomenaCancelled)
	}
	if err := h.reminders.DeletePhenomena(ctx, user.ID); err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("phenomena cancellation failed")
		return locale.T(lang, locale.TryAgain)
	}
	return locale.T(lang, locale.PhenomenaCancelled)
}

// parseReminderTime accepts "8:30", "08.30" and bare hours like "8".
func parseReminderTime(arg string) (hours, minutes int, ok bool) {
	if arg == "" {
		return 0, 0, false
	}
	arg = strings.ReplaceAll(arg, ".", ":")
	if !strings.Contains(arg, ":") {
		arg += ":00"
	}
	h, m, ok := parseClock(arg)
	if !ok || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func parseClock(s string) (hours, minutes int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

func (h *Handler) language(ctx context.Context, msg Message) locale.Lang {
	if user, err := h.store.UserByChatID(ctx, msg.ChatID); err == nil && user.Language != "" {
		return locale.Parse(user.Language)
	}
	return locale.Parse(msg.LanguageCode)
}

func (h *Handler) rememberedCity(ctx context.Context, chatID int64) string {
	user, err := h.store.UserByChatID(ctx, chatID)
	if err != nil {
		return ""
	}
	return user.City
}

func (h *Handler) rememberUser(ctx context.Context, msg Message, cityName string) {
	user, err := h.store.UserByChatID(ctx, msg.ChatID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.log.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("user lookup failed")
		return
	}

	user.ChatID = msg.ChatID
	user.Username = msg.Username
	if user.Language == "" {
		user.Language = msg.LanguageCode
	}
	if cityName != "" {
		user.City = cityName
	}

	if _, err := h.store.UpsertUser(ctx, user); err != nil {
		h.log.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("user upsert failed")
	}
}
