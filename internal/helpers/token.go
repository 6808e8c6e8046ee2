package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access and refresh tokens. The two token
// kinds use independent secrets and lifetimes, so a refresh token presented
// where an access token is expected never verifies.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (tm *TokenManager) IssuePair(userID, role string) (*TokenPair, error) {
	access, err := tm.sign(userID, role, tm.accessSecret, tm.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := tm.sign(userID, role, tm.refreshSecret, tm.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(tm.accessTTL.Seconds()),
	}, nil
}

func (tm *TokenManager) sign(userID, role string, secret []byte, ttl time.Duration) (string, error) {
	if userID == "" || role == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	claims := TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (tm *TokenManager) VerifyAccess(tokenStr string) (Principal, error) {
	return tm.verify(tokenStr, tm.accessSecret)
}

func (tm *TokenManager) VerifyRefresh(tokenStr string) (Principal, error) {
	return tm.verify(tokenStr, tm.refreshSecret)
}

func (tm *TokenManager) verify(tokenStr string, secret []byte) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return Principal{}, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return Principal{}, errors.New("invalid token claims")
	}

	return Principal{UserID: claims.Subject, Role: claims.Role}, nil
}
