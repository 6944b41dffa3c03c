package shared

// AggregateRoot is an entity that owns a consistency boundary. It carries a
// version and buffers the domain events raised by its state changes until the
// application layer drains them after a successful commit.
type AggregateRoot interface {
	Entity
	GetVersion() int
	PendingEvents() []DomainEvent
	PullEvents() []DomainEvent
}

// BaseAggregateRoot is embedded by every aggregate
type BaseAggregateRoot struct {
	BaseEntity
	Version int           `gorm:"not null;default:1"`
	pending []DomainEvent `gorm:"-"`
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// MarkChanged records a mutation: the version moves forward and updated_at is refreshed
func (a *BaseAggregateRoot) MarkChanged() {
	a.Version++
	a.Touch()
}

// RecordEvent queues an event for publication
func (a *BaseAggregateRoot) RecordEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// PendingEvents returns the queued events without removing them
func (a *BaseAggregateRoot) PendingEvents() []DomainEvent {
	return a.pending
}

// PullEvents returns the queued events and empties the queue
func (a *BaseAggregateRoot) PullEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	return events
}
