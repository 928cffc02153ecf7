package domain

import (
	"github.com/shopspring/decimal"
)

// WarningSeverity grades advisory findings from the capacity validator.
type WarningSeverity string

const (
	SeverityWarning WarningSeverity = "WARNING"
	SeverityError   WarningSeverity = "ERROR"
)

// AllocationWarning is an advisory finding attached to a validation result.
// Only the Accepted flag of AllocationCheck is load-bearing.
type AllocationWarning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
}

// Advisory warning codes raised by the capacity validator.
const (
	WarnNearFull        = "NEAR_FULL"
	WarnOvercommit      = "OVERCOMMIT"
	WarnLargeAllocation = "LARGE_ALLOCATION"
)

// AllocationRecommendation suggests how a rejected allocation could be made
// to fit.
type AllocationRecommendation struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

// Recommendation actions produced for rejected allocations.
const (
	RecommendIncreaseCapacity = "INCREASE_CAPACITY"
	RecommendReduceRequest    = "REDUCE_REQUEST"
	RecommendReassign         = "REASSIGN"
)

// AllocationCheck is the result of validating a requested allocation
// against a plot's remaining budget. Validation never reserves capacity;
// the caller must create the assignment in the same transaction.
type AllocationCheck struct {
	PlotID           int64                      `json:"plotID"`
	Requested        decimal.Decimal            `json:"requested"`
	Consumed         decimal.Decimal            `json:"consumed"`
	Remaining        decimal.Decimal            `json:"remaining"`
	UtilizationAfter decimal.Decimal            `json:"utilizationAfter"`
	Accepted         bool                       `json:"accepted"`
	Warnings         []AllocationWarning        `json:"warnings"`
	Recommendations  []AllocationRecommendation `json:"recommendations"`
}

// RiskLevel grades the duplicate-registration risk of a candidate plot.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
	RiskNone   RiskLevel = "NONE"
)

// PlotMatch is one existing plot matched by the duplicate detector.
type PlotMatch struct {
	PlotID   int64   `json:"plotID"`
	Location string  `json:"location"`
	Score    float64 `json:"score"`
}

// DuplicateReport scores a candidate plot registration against existing
// plots in the same field.
type DuplicateReport struct {
	FieldID        int64       `json:"fieldID"`
	Location       string      `json:"location"`
	ExactMatches   []PlotMatch `json:"exactMatches"`
	SimilarMatches []PlotMatch `json:"similarMatches"`
	NearbyMatches  []PlotMatch `json:"nearbyMatches"`
	RiskScore      int         `json:"riskScore"`
	RiskLevel      RiskLevel   `json:"riskLevel"`
}
