package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "typ" claim
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Kind   string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

func MintTokens(userID int64, email, secret string, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	at, err := sign(userID, email, TokenAccess, secret, accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	rt, err := sign(userID, email, TokenRefresh, secret, refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: at, RefreshToken: rt}, nil
}

func sign(userID int64, email, kind, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "signature-fitness",
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(secret))
}

func ParseClaims(tokenStr, secret string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// ParseAccess parses a token and rejects refresh tokens
func ParseAccess(tokenStr, secret string) (*Claims, error) {
	c, err := ParseClaims(tokenStr, secret)
	if err != nil {
		return nil, err
	}
	if c.Kind == TokenRefresh {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return c, nil
}

// ParseRefresh parses a token and requires it to be a refresh token
func ParseRefresh(tokenStr, secret string) (*Claims, error) {
	c, err := ParseClaims(tokenStr, secret)
	if err != nil {
		return nil, err
	}
	if c.Kind != TokenRefresh {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return c, nil
}
