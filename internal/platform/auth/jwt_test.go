package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"associates/internal/platform/config"
)

func newTestService(clock clockwork.Clock) *TokenService {
	return NewTokenService(config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}, clock)
}

func TestTokenService_RoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 12, 3, 15, 0, 0, 0, time.UTC))
	svc := newTestService(clock)

	token, err := svc.GenerateSessionToken("sess-1", "www.amazon.de", clock.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.SessionID != "sess-1" || claims.Marketplace != "www.amazon.de" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_Expired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 12, 3, 15, 0, 0, 0, time.UTC))
	svc := newTestService(clock)

	token, err := svc.GenerateSessionToken("sess-1", "www.amazon.com", clock.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	clock.Advance(2 * time.Minute)
	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}

func TestTokenService_TTLCapsExpiry(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 12, 3, 15, 0, 0, 0, time.UTC))
	svc := newTestService(clock)

	token, err := svc.GenerateSessionToken("sess-1", "www.amazon.com", clock.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if want := clock.Now().Add(time.Hour); !claims.ExpiresAt.Time.Equal(want) {
		t.Errorf("ExpiresAt = %s, want %s", claims.ExpiresAt.Time, want)
	}
}

func TestTokenService_Rejects(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 12, 3, 15, 0, 0, 0, time.UTC))
	svc := newTestService(clock)
	other := NewTokenService(config.JWTConfig{Secret: "other-secret"}, clock)

	foreign, _ := other.GenerateSessionToken("sess-1", "www.amazon.com", clock.Now().Add(time.Hour))

	noSession := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
		},
	})
	noSessionToken, _ := noSession.SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"Garbage", "not-a-token"},
		{"Wrong secret", foreign},
		{"Missing session", noSessionToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(tt.token); err == nil {
				t.Error("Expected token to be rejected")
			}
		})
	}
}
