package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new user service. tokenTTL is the longest lifetime
// of an issued token and bounds how long a deactivation revocation is kept.
func NewUserService(
	userRepo identity.UserRepository,
	blacklist auth.TokenBlacklist,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// List retrieves a page of users. Supported filters: role, active.
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	filter = filter.Normalize("name", shared.SortOrderAsc)
	if raw, ok := filter.Filters["role"].(string); ok {
		role, err := identity.ParseRole(raw)
		if err != nil {
			return nil, err
		}
		filter.Filters["role"] = role.String()
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Register creates a user
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	user, err := newUserFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, user.Email, 0); err != nil {
		return nil, err
	}
	if err := s.checkDirectoryID(ctx, user.DirectoryID(), 0); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role.String()),
	)
	resp := ToUserResponse(user)
	return &resp, nil
}

// BulkRegister creates all users or none. Emails repeated in the request or
// already registered are reported together.
func (s *UserService) BulkRegister(ctx context.Context, req BulkRegisterRequest) (*BulkRegisterResult, error) {
	if len(req.Users) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "At least one user is required")
	}

	users := make([]*identity.User, 0, len(req.Users))
	emails := make([]string, 0, len(req.Users))
	seen := make(map[string]bool, len(req.Users))
	var repeated []string
	for i, r := range req.Users {
		user, err := newUserFromRequest(r)
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) {
				return nil, shared.NewDomainError(de.Code, fmt.Sprintf("users[%d]: %s", i, de.Message))
			}
			return nil, err
		}
		if seen[user.Email] {
			repeated = append(repeated, user.Email)
		}
		seen[user.Email] = true
		users = append(users, user)
		emails = append(emails, user.Email)
	}
	if len(repeated) > 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			"Duplicate emails in request: "+strings.Join(repeated, ", "))
	}

	existing, err := s.userRepo.ExistingEmails(ctx, emails)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists,
			"Emails already registered: "+strings.Join(existing, ", "))
	}

	if err := s.userRepo.SaveBatch(ctx, users); err != nil {
		return nil, err
	}

	s.logger.Info("users registered in bulk", zap.Int("count", len(users)))
	result := &BulkRegisterResult{Created: make([]UserResponse, len(users)), Count: len(users)}
	for i, u := range users {
		result.Created[i] = ToUserResponse(u)
	}
	return result, nil
}

// Update changes a user's profile, role, password or directory link
func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	name, email, role := user.Name, user.Email, user.Role
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Role != nil {
		if role, err = identity.ParseRole(*req.Role); err != nil {
			return nil, err
		}
	}
	if err := user.Update(name, email, role); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, user.Email, id); err != nil {
		return nil, err
	}
	if req.M365OID != nil {
		if err := user.SetDirectoryID(*req.M365OID); err != nil {
			return nil, err
		}
		if err := s.checkDirectoryID(ctx, user.DirectoryID(), id); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if req.Password != nil {
		s.invalidateTokens(ctx, id)
	}
	s.logger.Info("user updated", zap.Int64("user_id", id))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Deactivate disables a user and revokes the tokens already issued to them.
// actorID is the admin performing the change; admins cannot deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, id, actorID int64) (*UserResponse, error) {
	if id == actorID {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "You cannot deactivate your own account")
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateTokens(ctx, id)

	s.logger.Info("user deactivated", zap.Int64("user_id", id), zap.Int64("actor_id", actorID))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Activate re-enables a user
func (s *UserService) Activate(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user activated", zap.Int64("user_id", id))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete is a soft delete: the user is deactivated and kept for history
func (s *UserService) Delete(ctx context.Context, id, actorID int64) (*UserResponse, error) {
	return s.Deactivate(ctx, id, actorID)
}

func (s *UserService) invalidateTokens(ctx context.Context, id int64) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.InvalidateUserTokens(ctx, id, s.tokenTTL); err != nil {
		s.logger.Error("failed to invalidate user tokens", zap.Int64("user_id", id), zap.Error(err))
	}
}

func (s *UserService) checkEmail(ctx context.Context, email string, excludeID int64) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "User with this email already exists")
	}
	return nil
}

func (s *UserService) checkDirectoryID(ctx context.Context, oid string, excludeID int64) error {
	if oid == "" {
		return nil
	}
	other, err := s.userRepo.FindByDirectoryID(ctx, oid)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if other.ID != excludeID {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Directory account is already linked to another user")
	}
	return nil
}

func (s *UserService) find(ctx context.Context, id int64) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NameNotFound(err, "User", id)
	}
	return user, nil
}

func newUserFromRequest(req RegisterUserRequest) (*identity.User, error) {
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(req.Name, req.Email, role)
	if err != nil {
		return nil, err
	}
	if req.M365OID != nil {
		if err := user.SetDirectoryID(*req.M365OID); err != nil {
			return nil, err
		}
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}
	if req.Active != nil && !*req.Active {
		user.Active = false
	}
	return user, nil
}
