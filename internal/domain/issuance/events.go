package issuance

import "github.com/inventory/backend/internal/domain/shared"

// AggregateTypeIssue is the aggregate type of issue events
const AggregateTypeIssue = "Issue"

// EventTypeIssueStatusChanged is raised on every lifecycle transition
const EventTypeIssueStatusChanged = "IssueStatusChanged"

// IssueStatusChangedEvent records a lifecycle transition
type IssueStatusChangedEvent struct {
	shared.BaseDomainEvent
	Code       string      `json:"code"`
	FromStatus IssueStatus `json:"from_status"`
	ToStatus   IssueStatus `json:"to_status"`
	ActorID    int64       `json:"actor_id"`
}

// NewIssueStatusChangedEvent creates a new IssueStatusChangedEvent
func NewIssueStatusChangedEvent(issue *Issue, from IssueStatus, actorID int64) *IssueStatusChangedEvent {
	return &IssueStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIssueStatusChanged, AggregateTypeIssue, issue.ID),
		Code:            issue.Code,
		FromStatus:      from,
		ToStatus:        issue.Status,
		ActorID:         actorID,
	}
}
