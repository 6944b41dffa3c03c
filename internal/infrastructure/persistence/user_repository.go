package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail finds a user by email, ignoring case
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.findOne(ctx, "email = ?", identity.NormalizeEmail(email))
}

// FindByDirectoryID finds a user by Microsoft 365 object id
func (r *GormUserRepository) FindByDirectoryID(ctx context.Context, oid string) (*identity.User, error) {
	return r.findOne(ctx, "m365_oid = ?", strings.TrimSpace(oid))
}

func (r *GormUserRepository) findOne(ctx context.Context, cond string, arg interface{}) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll lists users. Supported filters: role, active (bool).
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.User{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []identity.User
	query = applyOrderAndPage(query, filter, UserSortFields, "name", shared.SortOrderAsc, "id")
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *GormUserRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name", "email")
	if role, ok := filterString(filter, "role"); ok {
		query = query.Where("role = ?", strings.ToUpper(role))
	}
	if active, ok := filterBool(filter, "active"); ok {
		query = query.Where("active = ?", active)
	}
	return query
}

// ExistsByID checks if a user exists
func (r *GormUserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks for another user with the same email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&identity.User{}).Where("email = ?", identity.NormalizeEmail(email))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistingEmails returns which of the given emails are already registered
func (r *GormUserRepository) ExistingEmails(ctx context.Context, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return []string{}, nil
	}
	normalized := make([]string, len(emails))
	for i, e := range emails {
		normalized[i] = identity.NormalizeEmail(e)
	}
	var found []string
	if err := r.db.WithContext(ctx).Model(&identity.User{}).
		Where("email IN ?", normalized).
		Order("email ASC").
		Pluck("email", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Count returns the total number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.User{}).Count(&count).Error
	return count, err
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Save(user).Error)
}

// SaveBatch inserts several new users in one statement
func (r *GormUserRepository) SaveBatch(ctx context.Context, users []*identity.User) error {
	if len(users) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Create(&users).Error)
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
