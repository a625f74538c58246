package privacy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := NewCipher(testSecret)
	require.NoError(t, err)
	return c
}

func TestNewCipherRejectsShortKey(t *testing.T) {
	for _, secret := range []string{"", "short", "0123456789abcdef0123456789abcde"} {
		_, err := NewCipher(secret)
		require.Error(t, err)
		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr), "want ConfigurationError for %q", secret)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := newTestCipher(t)

	cases := []string{
		"hello",
		"Customer asked about pricing. Follow up on Monday.",
		"multi\nline\ntranscript",
		"unicode: नमस्ते",
		"",
	}
	for _, plaintext := range cases {
		payload, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		assert.True(t, payload.Encrypted)
		assert.Equal(t, AlgAESGCM, payload.Alg)

		got, err := c.Decrypt(payload)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestEncryptEmptyStringIsSentinel(t *testing.T) {
	c := newTestCipher(t)

	payload, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, payload.Ciphertext)
	assert.Empty(t, payload.IV)
	assert.True(t, payload.Encrypted)
}

func TestEncryptNonceUniqueness(t *testing.T) {
	c := newTestCipher(t)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		payload, err := c.Encrypt("same plaintext every time")
		require.NoError(t, err)
		_, dup := seen[payload.IV]
		require.False(t, dup, "nonce reused after %d iterations", i)
		seen[payload.IV] = struct{}{}
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	c := newTestCipher(t)

	payload, err := c.Encrypt("sensitive transcript")
	require.NoError(t, err)

	flip := func(s string) string {
		b := []byte(s)
		if b[0] == 'f' {
			b[0] = '0'
		} else {
			b[0] = 'f'
		}
		return string(b)
	}

	tampered := payload
	tampered.Ciphertext = flip(payload.Ciphertext)
	_, err = c.Decrypt(tampered)
	var decErr *DecryptionError
	require.True(t, errors.As(err, &decErr), "tampered ciphertext must fail authentication")

	tampered = payload
	tampered.IV = flip(payload.IV)
	_, err = c.Decrypt(tampered)
	require.True(t, errors.As(err, &decErr), "tampered iv must fail authentication")
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	c := newTestCipher(t)
	var decErr *DecryptionError

	_, err := c.Decrypt(EncryptedPayload{Ciphertext: "zz", IV: "zz", Encrypted: true, Alg: AlgAESGCM})
	require.True(t, errors.As(err, &decErr))

	_, err = c.Decrypt(EncryptedPayload{Ciphertext: "abcd", IV: "abcd", Encrypted: true, Alg: AlgAESGCM})
	require.True(t, errors.As(err, &decErr), "nonce of wrong length must be rejected")
}

func TestDecryptRejectsUnknownAlg(t *testing.T) {
	c := newTestCipher(t)

	payload, err := c.Encrypt("content")
	require.NoError(t, err)
	payload.Alg = "AES-128-CBC"

	_, err = c.Decrypt(payload)
	var decErr *DecryptionError
	require.True(t, errors.As(err, &decErr))
}

func TestDecryptWithWrongKey(t *testing.T) {
	c1 := newTestCipher(t)
	c2, err := NewCipher("another-secret-another-secret-too!!")
	require.NoError(t, err)

	payload, err := c1.Encrypt("for c1 only")
	require.NoError(t, err)

	_, err = c2.Decrypt(payload)
	var decErr *DecryptionError
	require.True(t, errors.As(err, &decErr))
}
