package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFilename(t *testing.T) {
	assert.Equal(t, "abcdefghij", CleanFilename(`a\b/c:d*e?f"g<h>i|j`))
	assert.Equal(t, "Semana Acadêmica 2024", CleanFilename("Semana Acadêmica 2024"))
	assert.Equal(t, "", CleanFilename(`\/:*?"<>|`))
}

func TestCreditHours(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"02h00", "2"},
		{"02h30", "2.5"},
		{"1h15", "1.25"},
		{"0h45", "0.75"},
		{" 10H00 ", "10"},
	}
	for _, tt := range tests {
		d, err := CreditHours(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, d.String(), tt.input)
	}

	for _, bad := range []string{"", "2.5", "duas horas", "h30", "02h"} {
		_, err := CreditHours(bad)
		assert.Error(t, err, bad)
	}
}

func TestSumCreditHours(t *testing.T) {
	total := SumCreditHours([]string{"02h00", "01h30", "not-hours", "00h45"})
	assert.Equal(t, "4.25", total.String())

	assert.Equal(t, "0", SumCreditHours(nil).String())
}

func TestGetEnvVariable(t *testing.T) {
	t.Setenv("UTILS_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnvVariable("UTILS_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnvVariable("UTILS_TEST_KEY_MISSING", "fallback"))
}
