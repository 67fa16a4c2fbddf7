// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth issues and verifies the signed, time-limited tokens used by
// the admin API. Sessions are stateless: a token is valid while its HS256
// signature checks out and its expiry has not passed.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"portfolio/internal/models"
)

const (
	// TokenTypeAccess marks tokens accepted by the bearer middleware.
	TokenTypeAccess = "access"

	// TokenTypeRefresh marks tokens accepted only by the refresh endpoint.
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Identity is the caller identity carried by an access token.
type Identity struct {
	UserID uuid.UUID   `json:"id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

// Pair is the result of a successful login.
type Pair struct {
	Access  string
	Refresh string
}

// claims is the JWT payload. Refresh tokens leave Email and Role empty.
type claims struct {
	Email     string      `json:"email,omitempty"`
	Role      models.Role `json:"role,omitempty"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a single server-held secret.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService creates a token service.
func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IssuePair creates an access token encoding the user's id, email and role,
// and a refresh token encoding only the id.
func (s *Service) IssuePair(u *models.User) (Pair, error) {
	access, err := s.IssueAccess(u)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.sign(claims{TokenType: TokenTypeRefresh}, u.ID, s.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// IssueAccess creates a fresh access token for the user.
func (s *Service) IssueAccess(u *models.User) (string, error) {
	return s.sign(claims{Email: u.Email, Role: u.Role, TokenType: TokenTypeAccess}, u.ID, s.accessTTL)
}

// VerifyAccess validates an access token and returns the identity it carries.
func (s *Service) VerifyAccess(token string) (Identity, error) {
	c, id, err := s.parse(token, TokenTypeAccess)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: id, Email: c.Email, Role: c.Role}, nil
}

// VerifyRefresh validates a refresh token and returns the user id.
func (s *Service) VerifyRefresh(token string) (uuid.UUID, error) {
	_, id, err := s.parse(token, TokenTypeRefresh)
	return id, err
}

func (s *Service) sign(c claims, userID uuid.UUID, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 || ttl <= 0 {
		return "", fmt.Errorf("sign %s token: service not configured", c.TokenType)
	}

	now := s.now().UTC()
	c.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", c.TokenType, err)
	}
	return signed, nil
}

func (s *Service) parse(token, wantType string) (claims, uuid.UUID, error) {
	p := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var c claims
	_, err := p.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return claims{}, uuid.Nil, ErrTokenExpired
		}
		return claims{}, uuid.Nil, ErrTokenInvalid
	}

	if c.TokenType != wantType {
		return claims{}, uuid.Nil, ErrTokenInvalid
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return claims{}, uuid.Nil, ErrTokenInvalid
	}
	return c, id, nil
}
