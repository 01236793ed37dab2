package model

// Category groups checks for display.
type Category string

const (
	CategoryOnPage    Category = "onpage"
	CategoryContent   Category = "content"
	CategorySocial    Category = "social"
	CategoryDiscovery Category = "discovery"
)

// Status is the verdict of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Severity is the editorial weight of a check, independent of its verdict.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// CheckResult is the verdict of one named rule. The same ID always carries
// the same Category and Severity.
type CheckResult struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Status   Status   `json:"status"`
	Severity Severity `json:"severity"`
	Evidence string   `json:"evidence,omitempty"`
}

// ScoreResult is the weighted 0-100 score over the scored checks.
type ScoreResult struct {
	Score             int `json:"score"`
	MaxPossiblePoints int `json:"max"`
	EarnedPoints      int `json:"total"`
}

// Recommendation is remediation advice derived from a non-passing check.
type Recommendation struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	Reason         string   `json:"reason"`
	HowToFix       []string `json:"howToFix"`
	RelatedCheckID string   `json:"relatedCheckId"`
}
