package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrMissingSecret is returned when a Sealer is built without a secret.
	ErrMissingSecret = errors.New("cryptox: missing sealing secret")

	// ErrInvalidPayload reports a sealed token that is not three canonical
	// base64url segments of the expected sizes. No decryption is attempted.
	ErrInvalidPayload = errors.New("cryptox: invalid sealed payload")

	// ErrAuthenticationFailed reports a token whose tag does not verify under
	// the current key, or whose plaintext is not JSON.
	ErrAuthenticationFailed = errors.New("cryptox: sealed payload authentication failed")
)

const (
	// SealKeySize is the AES-256 key length in bytes.
	SealKeySize = 32

	sealNonceSize = 12
	sealTagSize   = 16
)

// DeriveKey turns a configured secret into a 256-bit AES key with SHA-256.
// The derivation is deterministic so every process sharing the secret can
// open each other's tokens.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	sum := sha256.Sum256([]byte(secret))
	return sum[:], nil
}

// Sealer encrypts JSON values into compact URL-safe tokens of the form
// base64url(nonce) "." base64url(tag) "." base64url(ciphertext).
//
// A Sealer holds no state besides its AEAD and is safe for concurrent use.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives the key from secret once and prepares AES-256-GCM.
func NewSealer(secret string) (*Sealer, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}
	return NewSealerWithKey(key)
}

// NewSealerWithKey builds a Sealer from an already derived 32-byte key.
func NewSealerWithKey(key []byte) (*Sealer, error) {
	if len(key) != SealKeySize {
		return nil, fmt.Errorf("cryptox: seal key must be %d bytes, got %d", SealKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, sealNonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: gcm}, nil
}

// Seal serialises v (nil becomes JSON null) and encrypts it under a fresh
// random nonce. Sealing the same value twice yields different tokens.
func (s *Sealer) Seal(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode sealed value: %w", err)
	}

	nonce := make([]byte, sealNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// GCM appends the tag to the ciphertext; the token carries it separately.
	out := s.aead.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := out[:len(out)-sealTagSize], out[len(out)-sealTagSize:]

	enc := base64.RawURLEncoding
	return enc.EncodeToString(nonce) + "." + enc.EncodeToString(tag) + "." + enc.EncodeToString(ciphertext), nil
}

// Unseal verifies and decrypts a token produced by Seal and returns the
// decoded JSON value. Numbers decode as json.Number so they survive a
// re-encode unchanged.
func (s *Sealer) Unseal(token string) (any, error) {
	plaintext, err := s.open(token)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(plaintext))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: plaintext is not json", ErrAuthenticationFailed)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after json value", ErrAuthenticationFailed)
	}
	return v, nil
}

// UnsealInto is like Unseal but decodes the plaintext into out.
func (s *Sealer) UnsealInto(token string, out any) error {
	plaintext, err := s.open(token)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("%w: plaintext is not json", ErrAuthenticationFailed)
	}
	return nil
}

func (s *Sealer) open(token string) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrInvalidPayload, len(parts))
	}

	// Strict rejects set padding bits, so every payload has exactly one encoding.
	enc := base64.RawURLEncoding.Strict()
	nonce, err := enc.DecodeString(parts[0])
	if err != nil || len(nonce) != sealNonceSize {
		return nil, fmt.Errorf("%w: bad nonce segment", ErrInvalidPayload)
	}
	tag, err := enc.DecodeString(parts[1])
	if err != nil || len(tag) != sealTagSize {
		return nil, fmt.Errorf("%w: bad tag segment", ErrInvalidPayload)
	}
	ciphertext, err := enc.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: bad ciphertext segment", ErrInvalidPayload)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := s.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
