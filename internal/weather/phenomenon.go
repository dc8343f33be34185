package weather

import (
	"fmt"
	"strings"

	"github.com/velikanov/weatherbot/internal/locale"
)

// FormatPhenomena compares today's and tomorrow's forecasts daypart by
// daypart and composes a notification listing the dayparts whose condition
// or wind changes. An empty string means nothing notable changes; callers
// must treat that as "send nothing", not as an empty message.
func (f *Formatter) FormatPhenomena(today, tomorrow Record, lang locale.Lang) string {
	n := len(today.Dayparts)
	if len(tomorrow.Dayparts) < n {
		n = len(tomorrow.Dayparts)
	}

	var changed []Daypart
	for i := 0; i < n; i++ {
		if notableChange(today.Dayparts[i], tomorrow.Dayparts[i]) {
			changed = append(changed, tomorrow.Dayparts[i])
		}
	}
	if len(changed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b>\n\n", locale.T(lang, locale.PhenomenonHeader)))
	for _, part := range changed {
		b.WriteString(fmt.Sprintf("%s: %s, %s: %s %s\n",
			titler.String(part.Label), part.Condition,
			locale.T(lang, locale.WindLabel), part.Wind,
			f.ann.Glyph(part.Condition, part.Label)))
	}
	return b.String()
}

// notableChange reports whether the forecast for the same daypart differs in
// condition or wind between two days. Temperatures drift every day, so they
// do not count as a phenomenon.
func notableChange(a, b Daypart) bool {
	if !strings.EqualFold(strings.TrimSpace(a.Condition), strings.TrimSpace(b.Condition)) {
		return true
	}
	return !strings.EqualFold(strings.TrimSpace(a.Wind), strings.TrimSpace(b.Wind))
}
