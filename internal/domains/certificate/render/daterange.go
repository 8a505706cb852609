package render

import (
	"fmt"
	"time"
)

// Locale selects the language of the date phrase. The locale is an explicit
// parameter on purpose; nothing here touches process-wide state.
type Locale string

const (
	LocalePTBR Locale = "pt-BR"
	LocaleEN   Locale = "en"
)

var monthNames = map[Locale][12]string{
	LocalePTBR: {
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	},
	LocaleEN: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// FormatDateRange turns an event's start and end dates into a human phrase.
// Four mutually exclusive branches, most specific first: single day, same
// month, same year, and fully qualified. Month names are words, never digits.
// A zero end date is treated as equal to start.
func FormatDateRange(start, end time.Time, locale Locale) string {
	if end.IsZero() {
		end = start
	}

	months, ok := monthNames[locale]
	if !ok {
		months = monthNames[LocalePTBR]
	}
	mStart := months[start.Month()-1]
	mEnd := months[end.Month()-1]

	sameDay := start.Year() == end.Year() && start.Month() == end.Month() && start.Day() == end.Day()

	switch {
	case sameDay:
		if locale == LocaleEN {
			return fmt.Sprintf("on %s %d, %d", mStart, start.Day(), start.Year())
		}
		return fmt.Sprintf("no dia %d de %s de %d", start.Day(), mStart, start.Year())
	case start.Year() == end.Year() && start.Month() == end.Month():
		if locale == LocaleEN {
			return fmt.Sprintf("from %s %d to %d, %d", mStart, start.Day(), end.Day(), start.Year())
		}
		return fmt.Sprintf("de %d a %d de %s de %d", start.Day(), end.Day(), mStart, start.Year())
	case start.Year() == end.Year():
		if locale == LocaleEN {
			return fmt.Sprintf("from %s %d to %s %d, %d", mStart, start.Day(), mEnd, end.Day(), start.Year())
		}
		return fmt.Sprintf("de %d de %s a %d de %s de %d", start.Day(), mStart, end.Day(), mEnd, start.Year())
	default:
		if locale == LocaleEN {
			return fmt.Sprintf("from %s %d, %d to %s %d, %d", mStart, start.Day(), start.Year(), mEnd, end.Day(), end.Year())
		}
		return fmt.Sprintf("de %d de %s de %d a %d de %s de %d", start.Day(), mStart, start.Year(), end.Day(), mEnd, end.Year())
	}
}
