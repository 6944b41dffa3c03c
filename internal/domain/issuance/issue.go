package issuance

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inventory/backend/internal/domain/shared"
)

// IssueStatus is the lifecycle state of an issue
type IssueStatus string

const (
	IssueStatusDraft     IssueStatus = "DRAFT"
	IssueStatusApproved  IssueStatus = "APPROVED"
	IssueStatusIssued    IssueStatus = "ISSUED"
	IssueStatusCancelled IssueStatus = "CANCELLED"
)

// AllIssueStatuses lists the statuses in lifecycle order
func AllIssueStatuses() []IssueStatus {
	return []IssueStatus{IssueStatusDraft, IssueStatusApproved, IssueStatusIssued, IssueStatusCancelled}
}

// String returns the string representation of IssueStatus
func (s IssueStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueStatusDraft, IssueStatusApproved, IssueStatusIssued, IssueStatusCancelled:
		return true
	}
	return false
}

var allowedTransitions = map[IssueStatus][]IssueStatus{
	IssueStatusDraft:    {IssueStatusApproved, IssueStatusCancelled},
	IssueStatusApproved: {IssueStatusIssued, IssueStatusCancelled},
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s IssueStatus) CanTransitionTo(next IssueStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Issue is a request to hand out stock, tracked through approval to issuance
type Issue struct {
	shared.BaseAggregateRoot
	Code        string      `gorm:"type:varchar(50);not null;uniqueIndex:idx_issues_code"`
	Status      IssueStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	RequestedBy *int64      `gorm:"index"`
	ApprovedBy  *int64
	IssuedAt    *time.Time
	Note        string `gorm:"type:varchar(1000)"`
}

// TableName returns the table name for GORM
func (Issue) TableName() string {
	return "issues"
}

// NewIssue creates a draft issue
func NewIssue(code string, requestedBy *int64, note string) (*Issue, error) {
	i := &Issue{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            IssueStatusDraft,
	}
	if err := i.apply(code, requestedBy, note); err != nil {
		return nil, err
	}
	return i, nil
}

// Update changes the header of a draft issue
func (i *Issue) Update(code string, requestedBy *int64, note string) error {
	if !i.IsDraft() {
		return shared.NewDomainError(shared.CodeInvalidState, "Only draft issues can be edited")
	}
	if err := i.apply(code, requestedBy, note); err != nil {
		return err
	}
	i.MarkChanged()
	return nil
}

// Approve moves a draft issue to APPROVED
func (i *Issue) Approve(approverID int64) error {
	if !i.IsDraft() {
		return shared.NewDomainError(shared.CodeInvalidState, "Only draft issues can be approved")
	}
	return i.TransitionTo(IssueStatusApproved, approverID)
}

// TransitionTo moves the issue to next when the lifecycle allows it
func (i *Issue) TransitionTo(next IssueStatus, actorID int64) error {
	if !next.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Status must be one of DRAFT, APPROVED, ISSUED, CANCELLED")
	}
	if !i.Status.CanTransitionTo(next) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot change issue status from %s to %s", i.Status, next))
	}

	previous := i.Status
	i.Status = next
	switch next {
	case IssueStatusApproved:
		approver := actorID
		i.ApprovedBy = &approver
	case IssueStatusIssued:
		now := time.Now()
		i.IssuedAt = &now
	}
	i.MarkChanged()
	i.RecordEvent(NewIssueStatusChangedEvent(i, previous, actorID))
	return nil
}

// MarkLinesChanged records a change to the issue's lines. It bumps the
// version so that a line change and a concurrent status change conflict.
func (i *Issue) MarkLinesChanged() error {
	if !i.IsDraft() {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Issue items can only be changed while the issue is DRAFT (issue %d is %s)", i.ID, i.Status))
	}
	i.MarkChanged()
	return nil
}

// IsDraft reports whether lines can still be changed
func (i *Issue) IsDraft() bool {
	return i.Status == IssueStatusDraft
}

// CanDelete reports whether the issue may be removed
func (i *Issue) CanDelete() bool {
	return i.Status == IssueStatusDraft || i.Status == IssueStatusCancelled
}

func (i *Issue) apply(code string, requestedBy *int64, note string) error {
	code = strings.TrimSpace(code)
	note = strings.TrimSpace(note)

	if code == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Issue code cannot be empty")
	}
	if utf8.RuneCountInString(code) > 50 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Issue code cannot exceed 50 characters")
	}
	if utf8.RuneCountInString(note) > 1000 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Note cannot exceed 1000 characters")
	}
	if requestedBy != nil && *requestedBy <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Requested by user ID must be positive")
	}

	i.Code = code
	i.RequestedBy = requestedBy
	i.Note = note
	return nil
}
