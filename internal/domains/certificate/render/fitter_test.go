package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// runeMeasure approximates text width as rune count times font size, which
// keeps the scaling math exact for the shrink assertions.
func runeMeasure(text string, size float64) float64 {
	return float64(len([]rune(text))) * size
}

func TestFitName(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		maxWidth     float64
		expectedText string
		expectedSize float64
	}{
		{
			name:         "short name fits untouched",
			input:        "Ana Silva",
			maxWidth:     1000,
			expectedText: "Ana Silva",
			expectedSize: 30,
		},
		{
			name:         "long name abbreviates middle names",
			input:        "Maria Eduarda Santos Oliveira Pereira",
			maxWidth:     700,
			expectedText: "Maria E. S. O. Pereira",
			expectedSize: 30,
		},
		{
			name:         "lowercase connectives are dropped before abbreviating",
			input:        "João da Silva Santos",
			maxWidth:     450,
			expectedText: "João S. Santos",
			expectedSize: 30,
		},
		{
			name:         "two-token name keeps its text and shrinks",
			input:        "Ana Silva",
			maxWidth:     135,
			expectedText: "Ana Silva",
			expectedSize: 15,
		},
		{
			name:         "abbreviation still too wide falls back to shrinking",
			input:        "Maria Eduarda Santos Oliveira Pereira",
			maxWidth:     330,
			expectedText: "Maria E. S. O. Pereira",
			expectedSize: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, size := FitName(tt.input, tt.maxWidth, 30, runeMeasure)

			assert.Equal(t, tt.expectedText, text)
			assert.Equal(t, tt.expectedSize, size)
			assert.LessOrEqual(t, runeMeasure(text, size), tt.maxWidth+1,
				"fitted text must measure within the target width")
		})
	}
}

func TestIsLowerToken(t *testing.T) {
	assert.True(t, isLowerToken("de"))
	assert.True(t, isLowerToken("dos"))
	assert.False(t, isLowerToken("Silva"))
	assert.False(t, isLowerToken("D'Ávila"))
	assert.False(t, isLowerToken("123"), "tokens without letters are kept")
}
