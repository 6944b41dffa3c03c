package handler

import (
	"net/http"
	"testing"

	issuanceapp "github.com/inventory/backend/internal/application/issuance"
	inventoryapp "github.com/inventory/backend/internal/application/inventory"
	"github.com/inventory/backend/internal/domain/issuance"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type issueFixture struct {
	handler *IssueHandler
	issues  *testutil.MockIssueRepository
	lines   *testutil.MockIssueItemRepository
}

func newIssueFixture() *issueFixture {
	f := &issueFixture{
		issues: new(testutil.MockIssueRepository),
		lines:  new(testutil.MockIssueItemRepository),
	}
	levels := new(testutil.MockStockLevelRepository)
	txs := new(testutil.MockStockTransactionRepository)
	svc := issuanceapp.NewIssueService(
		f.issues,
		f.lines,
		new(testutil.MockUserRepository),
		new(testutil.MockItemRepository),
		new(testutil.MockLocationRepository),
		inventoryapp.NewNoOpTransactionScope(levels, txs),
		testutil.NewStaticSettings(nil),
		zap.NewNop(),
	)
	f.handler = NewIssueHandler(svc, zap.NewNop())
	return f
}

func draftIssue(id int64, code string) *issuance.Issue {
	issue, _ := issuance.NewIssue(code, nil, "")
	issue.ID = id
	return issue
}

func TestIssueHandler_Stats(t *testing.T) {
	f := newIssueFixture()
	f.issues.On("CountByStatus", mock.Anything).Return(map[issuance.IssueStatus]int64{
		issuance.IssueStatusDraft:  3,
		issuance.IssueStatusIssued: 1,
	}, nil)

	engine := newTestEngine(staffPrincipal())
	engine.GET("/issues/stats", f.handler.Stats)
	w := testutil.Do(t, engine, testutil.Request{Path: "/issues/stats"})

	stats := testutil.AssertSuccess[issuance.IssueStats](t, w, http.StatusOK)
	assert.Equal(t, int64(4), stats.Total)
	require.Len(t, stats.StatusBreakdown, 4)
	assert.Equal(t, issuance.StatusCount{Count: 3, Percentage: 75}, stats.StatusBreakdown["draft"])
	assert.Equal(t, issuance.StatusCount{Count: 0, Percentage: 0}, stats.StatusBreakdown["cancelled"])
}

func TestIssueHandler_AdvancedStats_Empty(t *testing.T) {
	f := newIssueFixture()
	f.issues.On("CountByStatus", mock.Anything).Return(map[issuance.IssueStatus]int64{}, nil)
	f.lines.On("Count", mock.Anything).Return(int64(0), nil)

	engine := newTestEngine(staffPrincipal())
	engine.GET("/issues/advanced-stats", f.handler.AdvancedStats)
	w := testutil.Do(t, engine, testutil.Request{Path: "/issues/advanced-stats"})

	stats := testutil.AssertSuccess[issuance.AdvancedIssueStats](t, w, http.StatusOK)
	assert.Zero(t, stats.TotalIssues)
	assert.Zero(t, stats.AvgItemsPerIssue)
	assert.Zero(t, stats.IssueCompletionRate)
	for _, key := range []string{`"total_items"`, `"avg_items_per_issue"`, `"issue_completion_rate"`} {
		assert.Contains(t, w.Body.String(), key)
	}
}

func TestIssueHandler_GetByCode(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newIssueFixture()
		f.issues.On("FindByCode", mock.Anything, "ISS-7").Return(draftIssue(7, "ISS-7"), nil)

		engine := newTestEngine(staffPrincipal())
		engine.GET("/issues/code/:code", f.handler.GetByCode)
		w := testutil.Do(t, engine, testutil.Request{Path: "/issues/code/ISS-7"})

		issue := testutil.AssertSuccess[issuanceapp.IssueResponse](t, w, http.StatusOK)
		assert.Equal(t, int64(7), issue.ID)
		assert.Equal(t, "DRAFT", issue.Status)
	})

	t.Run("not found", func(t *testing.T) {
		f := newIssueFixture()
		f.issues.On("FindByCode", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)

		engine := newTestEngine(staffPrincipal())
		engine.GET("/issues/code/:code", f.handler.GetByCode)
		w := testutil.Do(t, engine, testutil.Request{Path: "/issues/code/NOPE"})

		detail := testutil.AssertError(t, w, http.StatusNotFound, "ERR_NOT_FOUND")
		assert.Equal(t, "Issue with code 'NOPE' not found", detail)
	})
}

func TestIssueHandler_Approve(t *testing.T) {
	t.Run("draft is approved by the caller", func(t *testing.T) {
		f := newIssueFixture()
		issue := draftIssue(4, "ISS-4")
		f.issues.On("FindByID", mock.Anything, int64(4)).Return(issue, nil)
		f.issues.On("Save", mock.Anything, issue).Return(nil)

		engine := newTestEngine(adminPrincipal())
		engine.PATCH("/issues/:id/approve", f.handler.Approve)
		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodPatch, Path: "/issues/4/approve"})

		resp := testutil.AssertSuccess[issuanceapp.IssueResponse](t, w, http.StatusOK)
		assert.Equal(t, "APPROVED", resp.Status)
		require.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, int64(1), *resp.ApprovedBy)
	})

	t.Run("approved issue cannot be approved again", func(t *testing.T) {
		f := newIssueFixture()
		issue := draftIssue(4, "ISS-4")
		require.NoError(t, issue.Approve(1))
		f.issues.On("FindByID", mock.Anything, int64(4)).Return(issue, nil)

		engine := newTestEngine(adminPrincipal())
		engine.PATCH("/issues/:id/approve", f.handler.Approve)
		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodPatch, Path: "/issues/4/approve"})

		detail := testutil.AssertError(t, w, http.StatusUnprocessableEntity, "ERR_INVALID_STATE")
		assert.Equal(t, "Only draft issues can be approved", detail)
		f.issues.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
