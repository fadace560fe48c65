package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"associates/internal/platform/config"
)

const issuer = "associates"

type Claims struct {
	SessionID   string `json:"sid"`
	Marketplace string `json:"mkt"`
	jwt.RegisteredClaims
}

type TokenService struct {
	config config.JWTConfig
	clock  clockwork.Clock
}

func NewTokenService(cfg config.JWTConfig, clock clockwork.Clock) *TokenService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenService{config: cfg, clock: clock}
}

// GenerateSessionToken issues a token that expires with the session, or
// after AccessTokenTTL when that comes first.
func (s *TokenService) GenerateSessionToken(sessionID, marketplace string, expiresAt time.Time) (string, error) {
	now := s.clock.Now()
	if ttl := s.config.AccessTokenTTL; ttl > 0 && now.Add(ttl).Before(expiresAt) {
		expiresAt = now.Add(ttl)
	}
	claims := Claims{
		SessionID:   sessionID,
		Marketplace: marketplace,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.clock.Now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.SessionID != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
