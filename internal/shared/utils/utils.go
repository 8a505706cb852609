package utils

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// invalidFilenameChars are stripped from names before they become archive
// entries or download file names.
const invalidFilenameChars = `\/:*?"<>|`

// CleanFilename removes characters that are invalid in file names.
func CleanFilename(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return -1
		}
		return r
	}, text)
}

var creditHoursPattern = regexp.MustCompile(`^(\d+)[hH](\d+)$`)

// CreditHours converts the "HHhMM" duration pattern into decimal hours,
// e.g. "02h30" -> 2.5. The pattern is hours-and-minutes text, never a float.
func CreditHours(hours string) (decimal.Decimal, error) {
	m := creditHoursPattern.FindStringSubmatch(strings.TrimSpace(hours))
	if m == nil {
		return decimal.Zero, fmt.Errorf("invalid credit hours %q: expected HHhMM", hours)
	}
	h, _ := decimal.NewFromString(m[1])
	min, _ := decimal.NewFromString(m[2])
	return h.Add(min.Div(decimal.NewFromInt(60))), nil
}

// SumCreditHours totals a list of HHhMM durations, skipping ones that do not
// parse, and rounds to two decimal places for display.
func SumCreditHours(hours []string) decimal.Decimal {
	total := decimal.Zero
	for _, h := range hours {
		if d, err := CreditHours(h); err == nil {
			total = total.Add(d)
		}
	}
	return total.Round(2)
}

// GetEnvVariable reads an environment variable with a fallback default.
func GetEnvVariable(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
