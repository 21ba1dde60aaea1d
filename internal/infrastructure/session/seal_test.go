package session

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"
	"time"
)

const testSealKey = "5a6c8f0d3b1e9a7c2f4d6b8e0a1c3e5f7a9b0d2c4e6f8a1b3d5c7e9f0a2b4d6c"

func TestSealedSlot_Roundtrip(t *testing.T) {
	sealed, err := NewSealedSlot(NewMemorySlot(), testSealKey)
	if err != nil {
		t.Fatalf("new sealed slot: %v", err)
	}
	ctx := context.Background()

	plain := []byte(`{"version":1,"session":{"token":"fake-jwt-token"}}`)
	if err := sealed.Set(ctx, keyPrefix+"abc", plain, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := sealed.Get(ctx, keyPrefix+"abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("roundtrip mismatch: got %q", got)
	}
}

func TestSealedSlot_CiphertextAtRest(t *testing.T) {
	inner := NewMemorySlot()
	sealed, err := NewSealedSlot(inner, testSealKey)
	if err != nil {
		t.Fatalf("new sealed slot: %v", err)
	}
	ctx := context.Background()

	plain := []byte("fake-jwt-token")
	if err := sealed.Set(ctx, "k", plain, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	raw, ok, err := inner.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("inner get: ok=%v err=%v", ok, err)
	}
	if bytes.Contains(raw, plain) {
		t.Fatal("expected value to be encrypted at rest")
	}
}

func TestSealedSlot_TamperedBlob(t *testing.T) {
	inner := NewMemorySlot()
	sealed, err := NewSealedSlot(inner, testSealKey)
	if err != nil {
		t.Fatalf("new sealed slot: %v", err)
	}
	ctx := context.Background()

	if err := sealed.Set(ctx, "k", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, _, _ := inner.Get(ctx, "k")
	raw[len(raw)-1] ^= 0xff
	if err := inner.Set(ctx, "k", raw, time.Hour); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	if _, _, err := sealed.Get(ctx, "k"); err == nil {
		t.Fatal("expected tampered blob to fail authentication")
	}
}

func TestSealedSlot_ShortBlob(t *testing.T) {
	inner := NewMemorySlot()
	sealed, err := NewSealedSlot(inner, testSealKey)
	if err != nil {
		t.Fatalf("new sealed slot: %v", err)
	}
	ctx := context.Background()

	if err := inner.Set(ctx, "k", []byte("tiny"), time.Hour); err != nil {
		t.Fatalf("seed inner: %v", err)
	}
	if _, _, err := sealed.Get(ctx, "k"); err == nil {
		t.Fatal("expected short blob to be rejected")
	}
}

func TestNewSealedSlot_InvalidKey(t *testing.T) {
	cases := []string{
		"",
		"zz",
		"abcd",
		hex.EncodeToString(make([]byte, 16)), // wrong length
	}
	for _, key := range cases {
		if _, err := NewSealedSlot(NewMemorySlot(), key); err != ErrInvalidSealKey {
			t.Fatalf("NewSealedSlot(%q): expected ErrInvalidSealKey, got %v", key, err)
		}
	}
}
