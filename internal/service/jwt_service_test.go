package service

import (
	"errors"
	"testing"
	"time"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-secret", 15*time.Minute, time.Hour)
}

func TestGeneratePair_AndParseAccess(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GeneratePair("admin@example.com")
	if err != nil {
		t.Fatalf("generate pair failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("unexpected expires_in: %d", pair.ExpiresIn)
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access failed: %v", err)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("unexpected email claim: %q", claims.Email)
	}
	if claims.TokenType != "access" {
		t.Fatalf("unexpected token type: %q", claims.TokenType)
	}
}

func TestParseAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GeneratePair("admin@example.com")
	if err != nil {
		t.Fatalf("generate pair failed: %v", err)
	}

	if _, err := svc.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("refresh token must not validate as access, got %v", err)
	}
}

func TestParseAccessToken_RejectsGarbage(t *testing.T) {
	svc := newTestJWTService()

	for _, token := range []string{"", "   ", "not.a.jwt"} {
		if _, err := svc.ParseAccessToken(token); err == nil {
			t.Fatalf("expected error for token %q", token)
		}
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService("other-secret", 15*time.Minute, time.Hour)

	pair, err := svc.GeneratePair("admin@example.com")
	if err != nil {
		t.Fatalf("generate pair failed: %v", err)
	}
	if _, err := other.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid with wrong secret, got %v", err)
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)
	svc.accessTTL = -time.Minute

	pair, err := svc.GeneratePair("admin@example.com")
	if err != nil {
		t.Fatalf("generate pair failed: %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestRefreshPair_RotatesToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GeneratePair("admin@example.com")
	if err != nil {
		t.Fatalf("generate pair failed: %v", err)
	}

	renewed, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if renewed.AccessToken == "" || renewed.RefreshToken == "" {
		t.Fatalf("expected renewed pair, got %+v", renewed)
	}

	// El refresh es de un solo uso: el token viejo queda revocado.
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected old refresh token revoked, got %v", err)
	}
}

func TestRefreshPair_RejectsAccessToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GeneratePair("admin@example.com")
	if err != nil {
		t.Fatalf("generate pair failed: %v", err)
	}
	if _, err := svc.RefreshPair(pair.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
}

func TestRevokeRefresh(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GeneratePair("admin@example.com")
	if err != nil {
		t.Fatalf("generate pair failed: %v", err)
	}
	if err := svc.RevokeRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected revoked token rejected, got %v", err)
	}
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc := NewJWTService("", 15*time.Minute, time.Hour)

	if _, err := svc.GeneratePair("admin@example.com"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid without secret, got %v", err)
	}
}
