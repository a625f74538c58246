// File: services/privacy/encryption.go
package privacy

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// AlgAESGCM is the only cipher suite this payload format supports. Consumers
// must refuse to decrypt payloads carrying any other value.
const AlgAESGCM = "AES-256-GCM"

// MinKeyLength is the minimum acceptable length of the configured secret.
const MinKeyLength = 32

// EncryptedPayload is the stable wire format for encrypted fields.
type EncryptedPayload struct {
	Ciphertext string `json:"ciphertext" bson:"ciphertext"`
	IV         string `json:"iv" bson:"iv"`
	Encrypted  bool   `json:"encrypted" bson:"encrypted"`
	Alg        string `json:"alg" bson:"alg"`
}

// ConfigurationError indicates the encryption key is missing or too short.
// Raised before any cryptographic operation is attempted; the service never
// degrades to plaintext passthrough.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("privacy: configuration error: %s", e.Reason)
}

// DecryptionError indicates malformed input, a wrong key, or an
// authentication-tag mismatch. No partial plaintext is ever returned.
type DecryptionError struct {
	Reason string
	Err    error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("privacy: decryption failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("privacy: decryption failed: %s", e.Reason)
}

func (e *DecryptionError) Unwrap() error { return e.Err }

// Cipher wraps AES-256-GCM with a key derived from a single process-wide
// secret. The secret is injected at construction so no global state is read at
// call time.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives a 32-byte key from the secret using SHA-256 and prepares
// the GCM instance. Fails fast when the secret is absent or under the minimum
// length.
func NewCipher(secret string) (*Cipher, error) {
	if len(secret) < MinKeyLength {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("encryption key must be at least %d characters", MinKeyLength),
		}
	}

	keyHash := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(keyHash[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals the plaintext under a fresh 96-bit random nonce. An empty
// plaintext yields a payload with empty ciphertext/iv — the sentinel for "no
// content", not an encryption of the empty string.
func (c *Cipher) Encrypt(plaintext string) (EncryptedPayload, error) {
	payload := EncryptedPayload{Encrypted: true, Alg: AlgAESGCM}
	if plaintext == "" {
		return payload, nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return EncryptedPayload{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	payload.Ciphertext = hex.EncodeToString(ciphertext)
	payload.IV = hex.EncodeToString(nonce)
	return payload, nil
}

// Decrypt is the inverse of Encrypt. It is used only in trusted contexts.
func (c *Cipher) Decrypt(payload EncryptedPayload) (string, error) {
	if payload.Alg != AlgAESGCM {
		return "", &DecryptionError{Reason: fmt.Sprintf("unsupported alg %q", payload.Alg)}
	}
	if payload.Ciphertext == "" && payload.IV == "" {
		return "", nil
	}

	nonce, err := hex.DecodeString(payload.IV)
	if err != nil {
		return "", &DecryptionError{Reason: "malformed iv", Err: err}
	}
	if len(nonce) != c.aead.NonceSize() {
		return "", &DecryptionError{Reason: "bad nonce length"}
	}
	ciphertext, err := hex.DecodeString(payload.Ciphertext)
	if err != nil {
		return "", &DecryptionError{Reason: "malformed ciphertext", Err: err}
	}

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", &DecryptionError{Reason: "authentication failed", Err: err}
	}
	return string(plaintext), nil
}
