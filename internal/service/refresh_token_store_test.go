package service

import (
	"testing"
	"time"
)

func TestMemoryRefreshTokenStore_StoreExistsRevoke(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if err := store.Store("jti-1", "admin@example.com", time.Minute); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	ok, err := store.Exists("jti-1")
	if err != nil || !ok {
		t.Fatalf("expected token to exist, got ok=%v err=%v", ok, err)
	}

	if err := store.Revoke("jti-1"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	ok, err = store.Exists("jti-1")
	if err != nil || ok {
		t.Fatalf("expected token revoked, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryRefreshTokenStore_Expiry(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if err := store.Store("jti-exp", "admin@example.com", -time.Second); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	ok, err := store.Exists("jti-exp")
	if err != nil || ok {
		t.Fatalf("expired token must not exist, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryRefreshTokenStore_UnknownToken(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	ok, err := store.Exists("never-stored")
	if err != nil || ok {
		t.Fatalf("unknown token must not exist, got ok=%v err=%v", ok, err)
	}
	if err := store.Revoke("never-stored"); err != nil {
		t.Fatalf("revoking unknown token must not fail: %v", err)
	}
}

func TestMemoryRefreshTokenStore_EmptyJTIIgnored(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if err := store.Store("", "admin@example.com", time.Minute); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	ok, _ := store.Exists("")
	if ok {
		t.Fatalf("empty jti must not be stored")
	}
}
