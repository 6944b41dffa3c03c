package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/inventory/backend/internal/infrastructure/config"
)

const entraAuthority = "https://login.microsoftonline.com"

// ErrOIDCDisabled is returned when directory tokens are presented but OIDC is not configured
var ErrOIDCDisabled = errors.New("oidc verification is disabled")

// DirectoryClaims are the Microsoft Entra ID claims the service reads
type DirectoryClaims struct {
	jwt.RegisteredClaims
	ObjectID          string `json:"oid,omitempty"`
	TenantID          string `json:"tid,omitempty"`
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
	UPN               string `json:"upn,omitempty"`
	Email             string `json:"email,omitempty"`
	// UTI is Entra's token identifier; access tokens carry it instead of jti
	UTI string `json:"uti,omitempty"`
}

// DirectoryIdentity is a verified directory sign-in
type DirectoryIdentity struct {
	ObjectID  string
	Email     string
	Name      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// OIDCVerifier verifies RS256 tokens issued by Microsoft Entra ID against the tenant JWKS
type OIDCVerifier struct {
	keyfunc  jwt.Keyfunc
	audience string
	issuer   string
}

// ResolveOIDCConfig fills the Entra defaults for audience, issuer and JWKS URL
func ResolveOIDCConfig(cfg config.OIDCConfig) config.OIDCConfig {
	if cfg.Audience == "" {
		cfg.Audience = cfg.ClientID
	}
	if cfg.Issuer == "" && cfg.TenantID != "" {
		cfg.Issuer = fmt.Sprintf("%s/%s/v2.0", entraAuthority, cfg.TenantID)
	}
	if cfg.JWKSURL == "" && cfg.TenantID != "" {
		cfg.JWKSURL = fmt.Sprintf("%s/%s/discovery/v2.0/keys", entraAuthority, cfg.TenantID)
	}
	return cfg
}

// NewOIDCVerifier fetches the JWKS and keeps it refreshed in the background until ctx is done.
// Unknown key ids trigger a rate limited refresh, so signing key rotation is picked up.
func NewOIDCVerifier(ctx context.Context, cfg config.OIDCConfig) (*OIDCVerifier, error) {
	cfg = ResolveOIDCConfig(cfg)
	if cfg.JWKSURL == "" {
		return nil, errors.New("oidc: tenant_id or jwks_url is required")
	}
	kf, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
	if err != nil {
		return nil, fmt.Errorf("oidc: failed to load JWKS from %s: %w", cfg.JWKSURL, err)
	}
	return NewOIDCVerifierWithKeyfunc(cfg, kf.Keyfunc), nil
}

// NewOIDCVerifierWithKeyfunc creates a verifier with a caller supplied key lookup
func NewOIDCVerifierWithKeyfunc(cfg config.OIDCConfig, kf jwt.Keyfunc) *OIDCVerifier {
	cfg = ResolveOIDCConfig(cfg)
	return &OIDCVerifier{
		keyfunc:  kf,
		audience: cfg.Audience,
		issuer:   cfg.Issuer,
	}
}

// Verify checks signature, audience, issuer and lifetime and extracts the identity
func (v *OIDCVerifier) Verify(tokenString string) (*DirectoryIdentity, error) {
	if v == nil {
		return nil, ErrOIDCDisabled
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &DirectoryClaims{}, v.keyfunc, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*DirectoryClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	identity := &DirectoryIdentity{
		ObjectID: firstNonEmpty(claims.ObjectID, claims.Subject),
		Email:    strings.ToLower(firstNonEmpty(claims.PreferredUsername, claims.UPN, claims.Email)),
		Name:     strings.TrimSpace(claims.Name),
		TokenID:  firstNonEmpty(claims.ID, claims.UTI),
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	if identity.ObjectID == "" {
		return nil, ErrInvalidClaims
	}
	return identity, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
