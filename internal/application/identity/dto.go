package identity

import (
	"time"

	"github.com/inventory/backend/internal/domain/identity"
)

// LoginRequest contains the credentials for a local login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest contains the refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token so it is revoked as well
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	AccessToken           string        `json:"access_token"`
	RefreshToken          string        `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time     `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time     `json:"refresh_token_expires_at"`
	TokenType             string        `json:"token_type"`
	User                  *UserResponse `json:"user,omitempty"`
}

// TokenSource says how a bearer token was verified
type TokenSource string

const (
	TokenSourceLocal TokenSource = "local"
	TokenSourceOIDC  TokenSource = "oidc"
)

// Principal is the authenticated caller of a request
type Principal struct {
	UserID    int64
	Email     string
	Name      string
	Role      identity.Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Source    TokenSource
}

// HasRole reports whether the principal holds one of roles
func (p *Principal) HasRole(roles ...identity.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	M365OID     *string    `json:"m365_oid"`
	HasPassword bool       `json:"has_password"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role.String(),
		Active:      u.Active,
		M365OID:     u.M365OID,
		HasPassword: u.PasswordHash != "",
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// RegisterUserRequest represents a request to register a user
type RegisterUserRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=120"`
	Email    string  `json:"email" binding:"required,email,max=200"`
	Role     string  `json:"role" binding:"omitempty,oneof=ADMIN STAFF AUDITOR admin staff auditor"`
	Password string  `json:"password" binding:"omitempty,min=8,max=72"`
	M365OID  *string `json:"m365_oid" binding:"omitempty,max=255"`
	Active   *bool   `json:"active"`
}

// BulkRegisterRequest registers several users at once
type BulkRegisterRequest struct {
	Users []RegisterUserRequest `json:"users" binding:"required,min=1,max=500,dive"`
}

// BulkRegisterResult lists the created users
type BulkRegisterResult struct {
	Created []UserResponse `json:"created"`
	Count   int            `json:"count"`
}

// UpdateUserRequest represents a request to update a user; nil fields keep their value.
// An empty m365_oid unlinks the directory account.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=120"`
	Email    *string `json:"email" binding:"omitempty,email,max=200"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN STAFF AUDITOR admin staff auditor"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	M365OID  *string `json:"m365_oid" binding:"omitempty,max=255"`
}
