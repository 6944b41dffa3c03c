package identity

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inventory/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the access level of a user
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStaff   Role = "STAFF"
	RoleAuditor Role = "AUDITOR"
)

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleAuditor:
		return true
	}
	return false
}

// ParseRole parses a role, defaulting to STAFF when empty
func ParseRole(s string) (Role, error) {
	if strings.TrimSpace(s) == "" {
		return RoleStaff, nil
	}
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewDomainError(shared.CodeInvalidInput, "Role must be one of ADMIN, STAFF, AUDITOR")
	}
	return r, nil
}

// Password cost for bcrypt
const bcryptCost = 12

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hasLetterRe = regexp.MustCompile(`[a-zA-Z]`)
	hasNumberRe = regexp.MustCompile(`[0-9]`)
)

// User is a person allowed to use the inventory console
type User struct {
	shared.BaseAggregateRoot
	Name         string     `gorm:"type:varchar(120);not null"`
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_email"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'STAFF'"`
	Active       bool       `gorm:"not null"`
	M365OID      *string    `gorm:"column:m365_oid;type:varchar(255);uniqueIndex:idx_users_m365_oid"`
	PasswordHash string     `gorm:"type:varchar(255)" json:"-"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user
func NewUser(name, email string, role Role) (*User, error) {
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Active:            true,
	}
	if err := u.apply(name, email, role); err != nil {
		return nil, err
	}
	return u, nil
}

// NewDirectoryUser creates a STAFF user on first sign-in through the identity provider
func NewDirectoryUser(oid, name, email string) (*User, error) {
	oid = strings.TrimSpace(oid)
	if oid == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Directory object ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		name = email
	}
	u, err := NewUser(name, email, RoleStaff)
	if err != nil {
		return nil, err
	}
	u.M365OID = &oid
	return u, nil
}

// Update changes the profile and role
func (u *User) Update(name, email string, role Role) error {
	if err := u.apply(name, email, role); err != nil {
		return err
	}
	u.MarkChanged()
	return nil
}

// SetDirectoryID links the user to an identity provider object ID. Empty clears it.
func (u *User) SetDirectoryID(oid string) error {
	oid = strings.TrimSpace(oid)
	if oid == "" {
		u.M365OID = nil
		return nil
	}
	if utf8.RuneCountInString(oid) > 255 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Directory object ID cannot exceed 255 characters")
	}
	u.M365OID = &oid
	u.Touch()
	return nil
}

// SetPassword hashes and stores a local password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword checks a local password. Users without one never match.
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Activate re-enables a user
func (u *User) Activate() error {
	if u.Active {
		return shared.NewDomainError(shared.CodeInvalidState, "User is already active")
	}
	u.Active = true
	u.MarkChanged()
	return nil
}

// Deactivate disables a user; deactivated users cannot authenticate
func (u *User) Deactivate() error {
	if !u.Active {
		return shared.NewDomainError(shared.CodeInvalidState, "User is already inactive")
	}
	u.Active = false
	u.MarkChanged()
	return nil
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

// HasRole reports whether the user holds one of roles
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// DirectoryID returns the identity provider object ID or an empty string
func (u *User) DirectoryID() string {
	if u.M365OID == nil {
		return ""
	}
	return *u.M365OID
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) apply(name, email string, role Role) error {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 120 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Name cannot exceed 120 characters")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if role == "" {
		role = RoleStaff
	}
	if !role.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Role must be one of ADMIN, STAFF, AUDITOR")
	}

	u.Name = name
	u.Email = email
	u.Role = role
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Password cannot exceed 72 bytes")
	}
	if !hasLetterRe.MatchString(password) || !hasNumberRe.MatchString(password) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Password must contain at least one letter and one number")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid email format")
	}
	return nil
}
