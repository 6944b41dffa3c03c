package identity

import (
	"context"

	"github.com/inventory/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByDirectoryID(ctx context.Context, oid string) (*User, error)
	// FindAll supports the filters role and active
	FindAll(ctx context.Context, filter shared.Filter) ([]User, int64, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	// ExistingEmails returns which of the given emails are already registered
	ExistingEmails(ctx context.Context, emails []string) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, user *User) error
	SaveBatch(ctx context.Context, users []*User) error
}
