package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		locale   Locale
		expected string
	}{
		{
			name:     "single day pt",
			start:    day(2024, time.May, 10),
			end:      day(2024, time.May, 10),
			locale:   LocalePTBR,
			expected: "no dia 10 de maio de 2024",
		},
		{
			name:     "single day en",
			start:    day(2024, time.May, 10),
			end:      day(2024, time.May, 10),
			locale:   LocaleEN,
			expected: "on May 10, 2024",
		},
		{
			name:     "same month pt",
			start:    day(2024, time.May, 10),
			end:      day(2024, time.May, 12),
			locale:   LocalePTBR,
			expected: "de 10 a 12 de maio de 2024",
		},
		{
			name:     "same month en",
			start:    day(2024, time.May, 10),
			end:      day(2024, time.May, 12),
			locale:   LocaleEN,
			expected: "from May 10 to 12, 2024",
		},
		{
			name:     "same year pt",
			start:    day(2024, time.May, 30),
			end:      day(2024, time.June, 2),
			locale:   LocalePTBR,
			expected: "de 30 de maio a 2 de junho de 2024",
		},
		{
			name:     "same year en",
			start:    day(2024, time.May, 30),
			end:      day(2024, time.June, 2),
			locale:   LocaleEN,
			expected: "from May 30 to June 2, 2024",
		},
		{
			name:     "different years pt",
			start:    day(2024, time.December, 30),
			end:      day(2025, time.January, 2),
			locale:   LocalePTBR,
			expected: "de 30 de dezembro de 2024 a 2 de janeiro de 2025",
		},
		{
			name:     "different years en",
			start:    day(2024, time.December, 30),
			end:      day(2025, time.January, 2),
			locale:   LocaleEN,
			expected: "from December 30, 2024 to January 2, 2025",
		},
		{
			name:     "zero end date means single day",
			start:    day(2024, time.May, 10),
			end:      time.Time{},
			locale:   LocalePTBR,
			expected: "no dia 10 de maio de 2024",
		},
		{
			name:     "unknown locale falls back to pt",
			start:    day(2024, time.May, 10),
			end:      day(2024, time.May, 10),
			locale:   Locale("fr"),
			expected: "no dia 10 de maio de 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDateRange(tt.start, tt.end, tt.locale))
		})
	}
}
