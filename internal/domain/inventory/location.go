package inventory

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/inventory/backend/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	locationCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9._-]*$`)
	upper               = cases.Upper(language.Und)
)

// Location is a place where stock is kept (shelf, room, van)
type Location struct {
	shared.BaseAggregateRoot
	Name   string `gorm:"type:varchar(120);not null"`
	Code   string `gorm:"type:varchar(30);not null;uniqueIndex:idx_locations_code"`
	Active bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NormalizeLocationCode trims and uppercases a location code
func NormalizeLocationCode(code string) string {
	return upper.String(strings.TrimSpace(code))
}

// NewLocation creates a new active location
func NewLocation(name, code string) (*Location, error) {
	l := &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Active:            true,
	}
	if err := l.apply(name, code); err != nil {
		return nil, err
	}
	return l, nil
}

// Update changes name and code
func (l *Location) Update(name, code string) error {
	if err := l.apply(name, code); err != nil {
		return err
	}
	l.MarkChanged()
	return nil
}

// SetActive toggles whether stock can be moved in or out of the location
func (l *Location) SetActive(active bool) {
	if l.Active == active {
		return
	}
	l.Active = active
	l.MarkChanged()
}

func (l *Location) apply(name, code string) error {
	name = strings.TrimSpace(name)
	code = NormalizeLocationCode(code)

	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Location name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 120 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Location name cannot exceed 120 characters")
	}
	if code == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Location code cannot be empty")
	}
	if utf8.RuneCountInString(code) > 30 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Location code cannot exceed 30 characters")
	}
	if !locationCodePattern.MatchString(code) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Location code may only contain letters, digits, '.', '_' and '-'")
	}

	l.Name = name
	l.Code = code
	return nil
}
