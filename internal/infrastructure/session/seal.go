package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

var ErrInvalidSealKey = errors.New("session seal key must be 32 bytes (64 hex characters)")

// SealedSlot wraps another Slot and encrypts values at rest with
// XChaCha20-Poly1305. The blob layout is nonce || ciphertext. Session blobs
// carry the bearer token, so the shared store never sees them in the clear.
type SealedSlot struct {
	inner Slot
	key   []byte
}

// NewSealedSlot builds a SealedSlot from a hex-encoded 32-byte key.
func NewSealedSlot(inner Slot, hexKey string) (*SealedSlot, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidSealKey
	}
	return &SealedSlot{inner: inner, key: key}, nil
}

func (s *SealedSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	blob, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, false, err
	}
	if len(blob) < aead.NonceSize() {
		return nil, false, errors.New("sealed session blob too short")
	}
	nonce, ct := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, false, fmt.Errorf("open sealed session: %w", err)
	}
	return plain, true, nil
}

func (s *SealedSlot) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return err
	}
	blob := aead.Seal(nonce, nonce, value, nil)
	return s.inner.Set(ctx, key, blob, ttl)
}
