package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testSalt = []byte("test-salt")

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := NewEncryptorForCredential("user@example.com", testSalt)
	require.NoError(t, err)

	tests := []string{
		"a short note",
		"",
		"unicode: caffè ☕ 日記",
		string(make([]byte, 64*1024)),
	}

	for _, plaintext := range tests {
		ciphertext, err := enc.EncryptString(plaintext)
		require.NoError(t, err)
		require.NotEqual(t, plaintext, ciphertext)

		got, err := enc.DecryptString(ciphertext)
		require.NoError(t, err)
		require.Equal(t, plaintext, got)
	}
}

func TestDecryptWithWrongCredentialFails(t *testing.T) {
	enc, err := NewEncryptorForCredential("right-password", testSalt)
	require.NoError(t, err)

	ciphertext, err := enc.EncryptString("dear diary")
	require.NoError(t, err)

	wrong, err := NewEncryptorForCredential("wrong-password", testSalt)
	require.NoError(t, err)

	_, err = wrong.DecryptString(ciphertext)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	enc, err := NewEncryptorForCredential("pw", testSalt)
	require.NoError(t, err)

	_, err = enc.DecryptString("not base64!!!")
	require.Error(t, err)

	_, err = enc.DecryptString("c2hvcnQ=") // valid base64, far too short
	require.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestEncryptionIsNondeterministic(t *testing.T) {
	enc, err := NewEncryptorForCredential("pw", testSalt)
	require.NoError(t, err)

	a, err := enc.EncryptString("same plaintext")
	require.NoError(t, err)
	b, err := enc.EncryptString("same plaintext")
	require.NoError(t, err)

	// Fresh nonce per call.
	require.NotEqual(t, a, b)
}

func TestNewEncryptorRejectsBadKeySize(t *testing.T) {
	_, err := NewEncryptor(make([]byte, 16))
	require.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestDeriveKey(t *testing.T) {
	a := DeriveKey("credential", testSalt)
	require.Len(t, a, KeySize)

	// Deterministic for the same inputs.
	require.Equal(t, a, DeriveKey("credential", testSalt))

	// Sensitive to both credential and salt.
	require.NotEqual(t, a, DeriveKey("other", testSalt))
	require.NotEqual(t, a, DeriveKey("credential", []byte("other-salt")))
}
