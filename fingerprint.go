package keysetpager

import (
	"crypto/sha256"
	"encoding/hex"
)

const _fingerprintBytes = 16

// Fingerprint returns a stable digest of the orderings. It changes whenever a
// column, its position or its direction changes, and is used only to detect
// that a continuation token is replayed against a different sort.
func (o Orderings) Fingerprint() string {
	sum := sha256.Sum256([]byte(o.ToSQL()))
	return hex.EncodeToString(sum[:_fingerprintBytes])
}
