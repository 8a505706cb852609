package certificate

import (
	"crypto/sha1"
	"encoding/hex"
)

// hashPrefix is the fixed literal every verification code is derived from.
// Changing it invalidates every code already printed on issued documents.
const hashPrefix = "Certificate "

// VerificationHash derives the content-addressed verification code printed
// on the document: SHA-1 over prefix + name + event + hours + role, in that
// order with no separators. It is a display hash for anonymous lookup, not a
// security boundary, and must stay stable across releases.
func VerificationHash(name, event, hours, role string) string {
	sum := sha1.Sum([]byte(hashPrefix + name + event + hours + role))
	return hex.EncodeToString(sum[:])
}

// LegacyHostLabel renders the legacy schema's host flag the way the first
// generation of documents hashed it. Existing codes depend on the exact
// capitalization.
func LegacyHostLabel(host bool) string {
	if host {
		return "True"
	}
	return "False"
}
