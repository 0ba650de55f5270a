// Package jwt issues and verifies the HS256 session tokens handed to API callers.
package jwt

import (
	"errors"
	"time"

	"booking-platform/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer = "booking-platform"
	leeway = 5 * time.Second
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims travel in every token. Subject duplicates UserID for generic consumers.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

type Service struct {
	key    []byte
	ttl    map[TokenType]time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewService(secretKey string, accessTokenDuration, refreshTokenDuration time.Duration) *Service {
	s := &Service{
		key: []byte(secretKey),
		ttl: map[TokenType]time.Duration{
			TokenTypeAccess:  accessTokenDuration,
			TokenTypeRefresh: refreshTokenDuration,
		},
		now: time.Now,
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s
}

func (s *Service) AccessTokenDuration() time.Duration  { return s.ttl[TokenTypeAccess] }
func (s *Service) RefreshTokenDuration() time.Duration { return s.ttl[TokenTypeRefresh] }

func (s *Service) GenerateAccessToken(userID uuid.UUID, role user.Role) (string, error) {
	return s.sign(userID, role, TokenTypeAccess)
}

func (s *Service) GenerateRefreshToken(userID uuid.UUID, role user.Role) (string, error) {
	return s.sign(userID, role, TokenTypeRefresh)
}

func (s *Service) sign(userID uuid.UUID, role user.Role, kind TokenType) (string, error) {
	issued := s.now()
	claims := Claims{
		UserID:    userID,
		Role:      role.String(),
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl[kind])),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// ValidateToken verifies signature, issuer and expiry. Every failure other
// than expiry collapses to ErrInvalidToken.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := s.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil, !token.Valid:
		return nil, ErrInvalidToken
	case claims.TokenType != TokenTypeAccess && claims.TokenType != TokenTypeRefresh:
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
