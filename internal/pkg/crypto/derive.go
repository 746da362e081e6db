package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// KeyIterations is the PBKDF2 iteration count for credential-derived keys.
// The credential comes from the auth collaborator (account email or
// password), so derivation hardens low-entropy inputs.
const KeyIterations = 100_000

// DeriveKey stretches a user credential into a 32-byte AES key using
// PBKDF2-SHA256 with the given salt. The same credential and salt always
// yield the same key, which is how previously locked entries stay
// decryptable across sessions.
func DeriveKey(credential string, salt []byte) []byte {
	return pbkdf2.Key([]byte(credential), salt, KeyIterations, KeySize, sha256.New)
}
