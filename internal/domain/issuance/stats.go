package issuance

import "math"

// StatusCount is the number of issues in one status and its share of the total
type StatusCount struct {
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// IssueStats is the per-status breakdown of all issues
type IssueStats struct {
	Total           int64                  `json:"total"`
	StatusBreakdown map[string]StatusCount `json:"status_breakdown"`
}

// AdvancedIssueStats extends IssueStats with line level figures
type AdvancedIssueStats struct {
	TotalIssues         int64                  `json:"total_issues"`
	TotalItems          int64                  `json:"total_items"`
	AvgItemsPerIssue    float64                `json:"avg_items_per_issue"`
	StatusBreakdown     map[string]StatusCount `json:"status_breakdown"`
	IssueCompletionRate float64                `json:"issue_completion_rate"`
}

// Round2 rounds to two decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentage returns part/total*100 rounded to two decimals, 0 when total is 0
func Percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// BuildIssueStats computes the breakdown from per-status counts.
// Every status is present in the result, keyed by its lower-case name.
func BuildIssueStats(counts map[IssueStatus]int64) IssueStats {
	var total int64
	for _, c := range counts {
		total += c
	}

	breakdown := make(map[string]StatusCount, 4)
	for _, s := range AllIssueStatuses() {
		breakdown[statusKey(s)] = StatusCount{
			Count:      counts[s],
			Percentage: Percentage(counts[s], total),
		}
	}
	return IssueStats{Total: total, StatusBreakdown: breakdown}
}

// BuildAdvancedIssueStats adds line totals and the completion rate
func BuildAdvancedIssueStats(counts map[IssueStatus]int64, totalLines int64) AdvancedIssueStats {
	basic := BuildIssueStats(counts)

	avg := 0.0
	if basic.Total > 0 {
		avg = Round2(float64(totalLines) / float64(basic.Total))
	}

	return AdvancedIssueStats{
		TotalIssues:         basic.Total,
		TotalItems:          totalLines,
		AvgItemsPerIssue:    avg,
		StatusBreakdown:     basic.StatusBreakdown,
		IssueCompletionRate: Percentage(counts[IssueStatusApproved]+counts[IssueStatusIssued], basic.Total),
	}
}

func statusKey(s IssueStatus) string {
	switch s {
	case IssueStatusDraft:
		return "draft"
	case IssueStatusApproved:
		return "approved"
	case IssueStatusIssued:
		return "issued"
	case IssueStatusCancelled:
		return "cancelled"
	}
	return string(s)
}
