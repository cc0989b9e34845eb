package insight

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type OverallStatus string

const (
	StatusOnTrack  OverallStatus = "on_track"
	StatusAtRisk   OverallStatus = "at_risk"
	StatusOffTrack OverallStatus = "off_track"
)

// Alert is a coded, severity-tagged flag about a task's condition.
// Code is the alert's identity within a single insight: merging dedups by it.
// Alerts are never mutated after construction.
type Alert struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// TaskInsight is produced fresh on every cache miss and never mutated
// afterwards; a refresh replaces the cached value with a new one.
type TaskInsight struct {
	TaskID      int64    `json:"task_id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Status      string   `json:"status"`
	RiskLevel   Severity `json:"risk_level"`
	Alerts      []Alert  `json:"alerts"`
	NextActions []string `json:"next_actions"`
}

type UserInsight struct {
	UserID        int64         `json:"user_id"`
	UserName      string        `json:"user_name"`
	Summary       string        `json:"summary"`
	OverallStatus OverallStatus `json:"overall_status"`
	RiskLevel     Severity      `json:"risk_level"`
	Alerts        []Alert       `json:"alerts"`
	TaskSummaries []TaskInsight `json:"task_summaries"`
}
