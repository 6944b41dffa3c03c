package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inventory/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T) (*OIDCVerifier, *rsa.PrivateKey, config.OIDCConfig) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := ResolveOIDCConfig(config.OIDCConfig{Enabled: true, TenantID: "tenant-1", ClientID: "client-1"})
	kf := func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}
	return NewOIDCVerifierWithKeyfunc(cfg, kf), key, cfg
}

func signDirectoryToken(t *testing.T, key *rsa.PrivateKey, claims DirectoryClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "k1"
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func directoryClaims(cfg config.OIDCConfig) DirectoryClaims {
	now := time.Now()
	return DirectoryClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   "sub-1",
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		ObjectID:          "oid-1",
		Name:              "Ada Lovelace",
		PreferredUsername: "Ada@Example.com",
		UTI:               "uti-1",
	}
}

func TestResolveOIDCConfig(t *testing.T) {
	cfg := ResolveOIDCConfig(config.OIDCConfig{TenantID: "abc", ClientID: "app"})
	assert.Equal(t, "app", cfg.Audience)
	assert.Equal(t, "https://login.microsoftonline.com/abc/v2.0", cfg.Issuer)
	assert.Equal(t, "https://login.microsoftonline.com/abc/discovery/v2.0/keys", cfg.JWKSURL)

	custom := ResolveOIDCConfig(config.OIDCConfig{TenantID: "abc", ClientID: "app", Audience: "api://inv"})
	assert.Equal(t, "api://inv", custom.Audience)
}

func TestOIDCVerifier_Verify(t *testing.T) {
	verifier, key, cfg := newTestVerifier(t)

	t.Run("valid token", func(t *testing.T) {
		identity, err := verifier.Verify(signDirectoryToken(t, key, directoryClaims(cfg)))
		require.NoError(t, err)
		assert.Equal(t, "oid-1", identity.ObjectID)
		assert.Equal(t, "ada@example.com", identity.Email)
		assert.Equal(t, "Ada Lovelace", identity.Name)
		assert.Equal(t, "uti-1", identity.TokenID)
		assert.False(t, identity.ExpiresAt.IsZero())
	})

	t.Run("falls back to sub and upn", func(t *testing.T) {
		claims := directoryClaims(cfg)
		claims.ObjectID = ""
		claims.PreferredUsername = ""
		claims.UPN = "ada@corp.example.com"
		identity, err := verifier.Verify(signDirectoryToken(t, key, claims))
		require.NoError(t, err)
		assert.Equal(t, "sub-1", identity.ObjectID)
		assert.Equal(t, "ada@corp.example.com", identity.Email)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := directoryClaims(cfg)
		claims.Audience = jwt.ClaimStrings{"someone-else"}
		_, err := verifier.Verify(signDirectoryToken(t, key, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := directoryClaims(cfg)
		claims.Issuer = "https://evil.example.com"
		_, err := verifier.Verify(signDirectoryToken(t, key, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := directoryClaims(cfg)
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := verifier.Verify(signDirectoryToken(t, key, claims))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("HS256 is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, directoryClaims(cfg))
		signed, err := token.SignedString([]byte("shared-secret"))
		require.NoError(t, err)
		_, err = verifier.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("nil verifier", func(t *testing.T) {
		var disabled *OIDCVerifier
		_, err := disabled.Verify("anything")
		assert.ErrorIs(t, err, ErrOIDCDisabled)
	})
}
