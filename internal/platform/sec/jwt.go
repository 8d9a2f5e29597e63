// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides token signing and verification for reading sessions.
//
// # Architecture
//
// This package isolates security-sensitive code (JWT signing) from the domain
// logic. Sessions are anonymous: a token only proves that the server issued the
// session id it carries, so bookmarks and settings can be keyed by it.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrWeakSecret is returned when the signing secret is too short for HS256.
var ErrWeakSecret = errors.New("sec: session secret must be at least 32 bytes")

const minSecretLength = 32

// SessionClaims is the payload embedded inside a session token.
//
// The session id is duplicated in 'sid' so handlers never have to interpret
// the registered 'sub' claim.
type SessionClaims struct {
	jwt.RegisteredClaims

	SessionID string `json:"sid"`
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration
	now        func() time.Time
}

// NewTokenService creates a new TokenService signing with secret.
func NewTokenService(secret, issuer string, timeToLive time.Duration) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}
	if timeToLive <= 0 {
		return nil, fmt.Errorf("sec: session ttl must be positive, got %s", timeToLive)
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		timeToLive: timeToLive,
		now:        time.Now,
	}, nil
}

// TimeToLive reports how long issued tokens stay valid.
func (service *TokenService) TimeToLive() time.Duration {
	return service.timeToLive
}

// IssueToken signs a token for sessionID and returns it with its expiry.
func (service *TokenService) IssueToken(sessionID string) (string, time.Time, error) {
	issuedAt := service.now()
	expiresAt := issuedAt.Add(service.timeToLive)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// VerifyToken checks the signature, issuer and expiry of a token string.
func (service *TokenService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer), jwt.WithTimeFunc(service.now))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
