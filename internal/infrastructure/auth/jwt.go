package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/inventory/backend/internal/infrastructure/config"
)

// TokenType distinguishes the two locally issued token kinds
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrMissingUserID      = errors.New("missing user_id in claims")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	ErrTokenBlacklisted   = errors.New("token has been revoked")
)

// NumericDate claims carry milliseconds; user-wide revocation compares iat
// against the deactivation time at that precision.
func init() {
	jwt.TimePrecision = time.Millisecond
}

// Claims of a locally issued token. Refresh tokens carry only the user id
// and the refresh counter; profile fields are re-read from the user on refresh.
type Claims struct {
	jwt.RegisteredClaims
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role,omitempty"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

func (c *Claims) GetIssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

func (c *Claims) GetExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// GetRemainingTTL is how long a blacklist entry for this token must live
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// GenerateTokenInput is the user snapshot embedded in an access token
type GenerateTokenInput struct {
	UserID int64
	Name   string
	Email  string
	Role   string
}

// tokenKey signs and verifies one token kind
type tokenKey struct {
	kind   TokenType
	secret []byte
	ttl    time.Duration
}

// JWTService issues and verifies HS256 tokens. Access and refresh tokens use
// separate secrets when jwt.refresh_secret is set.
type JWTService struct {
	access          tokenKey
	refresh         tokenKey
	issuer          string
	maxRefreshCount int
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		access:          tokenKey{kind: TokenTypeAccess, secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
		refresh:         tokenKey{kind: TokenTypeRefresh, secret: []byte(refreshSecret), ttl: cfg.RefreshTokenExpiration},
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
	}
}

// GenerateTokenPair issues a fresh pair at login
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	return s.issue(input, 0)
}

// RefreshTokenPair rotates a validated refresh token. input is the user as it
// is now, so a role change takes effect on the next refresh.
func (s *JWTService) RefreshTokenPair(refreshClaims *Claims, input GenerateTokenInput) (*TokenPair, error) {
	switch {
	case refreshClaims.TokenType != TokenTypeRefresh:
		return nil, ErrInvalidTokenType
	case refreshClaims.RefreshCount >= s.maxRefreshCount:
		return nil, ErrMaxRefreshExceeded
	case refreshClaims.UserID != input.UserID:
		return nil, ErrInvalidClaims
	}
	return s.issue(input, refreshClaims.RefreshCount+1)
}

func (s *JWTService) ValidateAccessToken(raw string) (*Claims, error) {
	return s.verify(s.access, raw)
}

func (s *JWTService) ValidateRefreshToken(raw string) (*Claims, error) {
	return s.verify(s.refresh, raw)
}

func (s *JWTService) GetAccessTokenExpiration() time.Duration  { return s.access.ttl }
func (s *JWTService) GetRefreshTokenExpiration() time.Duration { return s.refresh.ttl }

func (s *JWTService) issue(input GenerateTokenInput, refreshCount int) (*TokenPair, error) {
	if input.UserID <= 0 {
		return nil, ErrMissingUserID
	}
	now := time.Now()

	access, err := s.sign(s.access, now, &Claims{
		UserID: input.UserID,
		Name:   input.Name,
		Email:  input.Email,
		Role:   input.Role,
	})
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(s.refresh, now, &Claims{
		UserID:       input.UserID,
		RefreshCount: refreshCount,
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  now.Add(s.access.ttl),
		RefreshTokenExpiresAt: now.Add(s.refresh.ttl),
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) sign(key tokenKey, now time.Time, claims *Claims) (string, error) {
	claims.TokenType = key.kind
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   strconv.FormatInt(claims.UserID, 10),
		Audience:  jwt.ClaimStrings{s.issuer},
		ExpiresAt: jwt.NewNumericDate(now.Add(key.ttl)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
}

func (s *JWTService) verify(key tokenKey, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return key.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithIssuedAt(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.TokenType != key.kind:
		return nil, ErrInvalidTokenType
	case claims.UserID <= 0:
		return nil, ErrMissingUserID
	}
	return claims, nil
}
