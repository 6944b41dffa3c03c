package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/inventory/backend/internal/domain/shared"
)

// DefaultUnitMultiplier is used when a unit is created without a multiplier
const DefaultUnitMultiplier = 1

// Unit is a unit of measure items are counted in (piece, box of 12, ...)
type Unit struct {
	shared.BaseAggregateRoot
	Name       string `gorm:"type:varchar(50);not null;uniqueIndex:idx_units_name"`
	Symbol     string `gorm:"type:varchar(20);not null;uniqueIndex:idx_units_symbol"`
	Multiplier int    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Unit) TableName() string {
	return "units"
}

// NewUnit creates a new unit of measure
func NewUnit(name, symbol string, multiplier int) (*Unit, error) {
	u := &Unit{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := u.apply(name, symbol, multiplier); err != nil {
		return nil, err
	}
	return u, nil
}

// Update replaces the unit's attributes
func (u *Unit) Update(name, symbol string, multiplier int) error {
	if err := u.apply(name, symbol, multiplier); err != nil {
		return err
	}
	u.MarkChanged()
	return nil
}

func (u *Unit) apply(name, symbol string, multiplier int) error {
	name = strings.TrimSpace(name)
	symbol = strings.TrimSpace(symbol)

	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 50 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit name cannot exceed 50 characters")
	}
	if symbol == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit symbol cannot be empty")
	}
	if utf8.RuneCountInString(symbol) > 20 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit symbol cannot exceed 20 characters")
	}
	if multiplier < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit multiplier cannot be negative")
	}

	u.Name = name
	u.Symbol = symbol
	u.Multiplier = multiplier
	return nil
}
