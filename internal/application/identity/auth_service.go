package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Errors returned to callers that fail authentication
var (
	ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")
	ErrInvalidToken       = shared.NewDomainError(shared.CodeUnauthorized, "Invalid token")
	ErrTokenExpired       = shared.NewDomainError(shared.CodeUnauthorized, "Token has expired")
	ErrTokenRevoked       = shared.NewDomainError(shared.CodeUnauthorized, "Token has been revoked")
	ErrMaxRefreshExceeded = shared.NewDomainError(shared.CodeUnauthorized, "Maximum token refresh count exceeded. Please log in again")
	ErrUserInactive       = shared.NewDomainError(shared.CodeForbidden, "User inactive or not found")
)

// DirectoryVerifier verifies bearer tokens issued by the organization's identity provider
type DirectoryVerifier interface {
	Verify(token string) (*auth.DirectoryIdentity, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	directory  DirectoryVerifier
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service.
// directory may be nil, in which case only locally issued tokens are accepted.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	directory DirectoryVerifier,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		directory:  directory,
		logger:     logger,
	}
}

// Login authenticates a user with a local password and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	email := identity.NormalizeEmail(req.Email)
	s.logger.Info("Login attempt", zap.String("email", email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during login", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		s.logger.Warn("Login attempt for inactive user", zap.Int64("user_id", user.ID))
		return nil, ErrUserInactive
	}

	pair, err := s.jwtService.GenerateTokenPair(tokenInput(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login - just log the error
		s.logger.Error("Failed to record login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	s.logger.Info("User logged in successfully", zap.Int64("user_id", user.ID))
	resp := toTokenResponse(pair)
	userResp := ToUserResponse(user)
	resp.User = &userResp
	return resp, nil
}

// RefreshToken exchanges a refresh token for a new pair. The used refresh token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}
	if s.isRevoked(ctx, claims.ID, claims.UserID, claims.GetIssuedAtTime()) {
		return nil, ErrTokenRevoked
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserInactive
		}
		return nil, err
	}
	if !user.Active {
		s.logger.Warn("Token refresh for inactive user", zap.Int64("user_id", user.ID))
		return nil, ErrUserInactive
	}

	pair, err := s.jwtService.RefreshTokenPair(claims, tokenInput(user))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}
	s.revoke(ctx, claims.ID, claims.GetRemainingTTL())

	s.logger.Info("Token refreshed successfully", zap.Int64("user_id", user.ID))
	return toTokenResponse(pair), nil
}

// Logout revokes the caller's access token and, when given, its refresh token
func (s *AuthService) Logout(ctx context.Context, principal *Principal, req LogoutRequest) error {
	if principal.TokenID != "" {
		ttl := time.Until(principal.ExpiresAt)
		if principal.ExpiresAt.IsZero() {
			ttl = s.jwtService.GetAccessTokenExpiration()
		}
		s.revoke(ctx, principal.TokenID, ttl)
	}

	if req.RefreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
		if err == nil && claims.UserID == principal.UserID {
			s.revoke(ctx, claims.ID, claims.GetRemainingTTL())
		}
	}

	s.logger.Info("User logout", zap.Int64("user_id", principal.UserID), zap.String("source", string(principal.Source)))
	return nil
}

// Me returns the current user
func (s *AuthService) Me(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NameNotFound(err, "User", userID)
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Authenticate verifies a bearer token and resolves the active user behind it.
// Locally issued tokens are tried first; other tokens go to the directory verifier when configured.
// The returned role is the user's current role, not the one recorded in the token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.jwtService.ValidateAccessToken(token)
	if err == nil {
		return s.authenticateLocal(ctx, claims)
	}
	if errors.Is(err, auth.ErrExpiredToken) || s.directory == nil {
		return nil, mapTokenError(err)
	}

	ident, derr := s.directory.Verify(token)
	if derr != nil {
		s.logger.Debug("Bearer token rejected", zap.NamedError("local", err), zap.NamedError("directory", derr))
		return nil, mapTokenError(derr)
	}
	return s.authenticateDirectory(ctx, ident)
}

func (s *AuthService) authenticateLocal(ctx context.Context, claims *auth.Claims) (*Principal, error) {
	if s.isRevoked(ctx, claims.ID, claims.UserID, claims.GetIssuedAtTime()) {
		return nil, ErrTokenRevoked
	}
	user, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return &Principal{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		TokenID:   claims.ID,
		IssuedAt:  claims.GetIssuedAtTime(),
		ExpiresAt: claims.GetExpiresAtTime(),
		Source:    TokenSourceLocal,
	}, nil
}

// authenticateDirectory maps a directory identity to a user, creating a STAFF user on first sign-in.
// Existing users registered with the same email are linked to the directory account.
func (s *AuthService) authenticateDirectory(ctx context.Context, ident *auth.DirectoryIdentity) (*Principal, error) {
	if s.isRevoked(ctx, ident.TokenID, 0, time.Time{}) {
		return nil, ErrTokenRevoked
	}

	user, err := s.userRepo.FindByDirectoryID(ctx, ident.ObjectID)
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrNotFound):
		user, err = s.provisionDirectoryUser(ctx, ident)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserInactive
	}
	if s.isRevoked(ctx, "", user.ID, ident.IssuedAt) {
		return nil, ErrTokenRevoked
	}
	return &Principal{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		TokenID:   ident.TokenID,
		IssuedAt:  ident.IssuedAt,
		ExpiresAt: ident.ExpiresAt,
		Source:    TokenSourceOIDC,
	}, nil
}

func (s *AuthService) provisionDirectoryUser(ctx context.Context, ident *auth.DirectoryIdentity) (*identity.User, error) {
	if ident.Email == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(ctx, ident.Email)
	switch {
	case err == nil:
		if err := user.SetDirectoryID(ident.ObjectID); err != nil {
			return nil, err
		}
		s.logger.Info("Linked directory account to existing user",
			zap.Int64("user_id", user.ID),
			zap.String("oid", ident.ObjectID),
		)
	case errors.Is(err, shared.ErrNotFound):
		user, err = identity.NewDirectoryUser(ident.ObjectID, ident.Name, ident.Email)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Provisioning user on first directory sign-in",
			zap.String("email", user.Email),
			zap.String("oid", ident.ObjectID),
		)
	default:
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) activeUser(ctx context.Context, id int64) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserInactive
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrUserInactive
	}
	return user, nil
}

// isRevoked checks the blacklist. Lookup failures are logged and treated as not revoked.
func (s *AuthService) isRevoked(ctx context.Context, jti string, userID int64, issuedAt time.Time) bool {
	if s.blacklist == nil {
		return false
	}
	if jti != "" {
		blacklisted, err := s.blacklist.IsBlacklisted(ctx, jti)
		if err != nil {
			s.logger.Error("Failed to check token blacklist", zap.String("jti", jti), zap.Error(err))
		} else if blacklisted {
			return true
		}
	}
	if userID > 0 && !issuedAt.IsZero() {
		invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, userID, issuedAt)
		if err != nil {
			s.logger.Error("Failed to check user token invalidation", zap.Int64("user_id", userID), zap.Error(err))
		} else if invalidated {
			return true
		}
	}
	return false
}

func (s *AuthService) revoke(ctx context.Context, jti string, ttl time.Duration) {
	if s.blacklist == nil || jti == "" || ttl <= 0 {
		return
	}
	if err := s.blacklist.AddToBlacklist(ctx, jti, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.String("jti", jti), zap.Error(err))
	}
}

func tokenInput(user *identity.User) auth.GenerateTokenInput {
	return auth.GenerateTokenInput{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role.String(),
	}
}

func toTokenResponse(pair *auth.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return ErrMaxRefreshExceeded
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return ErrTokenRevoked
	}
	return ErrInvalidToken
}
