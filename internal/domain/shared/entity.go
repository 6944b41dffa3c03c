package shared

import "time"

// Entity is anything persisted with a surrogate key and audit timestamps
type Entity interface {
	GetID() int64
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity holds the columns every table shares. ID stays zero until the
// row is inserted; the database assigns it.
type BaseEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{CreatedAt: now, UpdatedAt: now}
}

func (e *BaseEntity) GetID() int64            { return e.ID }
func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }
func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// IsNew reports whether the row has not been inserted yet
func (e *BaseEntity) IsNew() bool { return e.ID == 0 }

// Touch refreshes updated_at
func (e *BaseEntity) Touch() { e.UpdatedAt = time.Now() }
