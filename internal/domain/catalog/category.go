package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/inventory/backend/internal/domain/shared"
)

// Category groups items in the catalog
type Category struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(120);not null;uniqueIndex:idx_categories_name"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.MarkChanged()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 120 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Category name cannot exceed 120 characters")
	}
	return nil
}
