package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationHash(t *testing.T) {
	hash := VerificationHash("Ana Silva", "Semana Acadêmica", "02h00", "ouvinte")

	assert.Len(t, hash, 40, "sha1 hex digest")
	assert.Regexp(t, "^[0-9a-f]{40}$", hash)

	// The code is derived only from its four inputs; the same inputs must
	// produce the same code forever.
	assert.Equal(t, hash, VerificationHash("Ana Silva", "Semana Acadêmica", "02h00", "ouvinte"))

	assert.NotEqual(t, hash, VerificationHash("Ana Souza", "Semana Acadêmica", "02h00", "ouvinte"))
	assert.NotEqual(t, hash, VerificationHash("Ana Silva", "Outro Evento", "02h00", "ouvinte"))
	assert.NotEqual(t, hash, VerificationHash("Ana Silva", "Semana Acadêmica", "04h00", "ouvinte"))
	assert.NotEqual(t, hash, VerificationHash("Ana Silva", "Semana Acadêmica", "02h00", "palestrante"))
}

func TestLegacyHostLabel(t *testing.T) {
	// First-generation documents hashed the Python boolean rendering; the
	// exact capitalization keeps their printed codes valid.
	assert.Equal(t, "True", LegacyHostLabel(true))
	assert.Equal(t, "False", LegacyHostLabel(false))
}
