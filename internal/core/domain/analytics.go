package domain

import (
	"github.com/shopspring/decimal"
)

// Trend classifies day-over-day movement of a daily bucket.
type Trend string

const (
	TrendUp     Trend = "UP"
	TrendDown   Trend = "DOWN"
	TrendStable Trend = "STABLE"
)

// DailyBucket groups capacity-consuming assignments by calendar day.
type DailyBucket struct {
	Date              string          `json:"date"` // YYYY-MM-DD
	AssignmentCount   int             `json:"assignmentCount"`
	TotalCapacity     decimal.Decimal `json:"totalCapacity"`
	UniqueWorkerCount int             `json:"uniqueWorkerCount"`
	// Growth is day-over-day change in percent; nil for the first bucket.
	Growth *decimal.Decimal `json:"growth,omitempty"`
	Trend  Trend            `json:"trend"`
}

// WeeklyBucket aggregates a fixed-size window of 7 consecutive daily
// buckets starting from the first available day. Not calendar weeks.
type WeeklyBucket struct {
	WeekIndex         int             `json:"weekIndex"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	AssignmentCount   int             `json:"assignmentCount"`
	TotalCapacity     decimal.Decimal `json:"totalCapacity"`
	UniqueWorkerCount int             `json:"uniqueWorkerCount"`
}

// MonthlyBucket aggregates daily buckets sharing a YYYY-MM prefix.
type MonthlyBucket struct {
	Month             string          `json:"month"` // YYYY-MM
	AssignmentCount   int             `json:"assignmentCount"`
	TotalCapacity     decimal.Decimal `json:"totalCapacity"`
	UniqueWorkerCount int             `json:"uniqueWorkerCount"`
}

// WorkerProductivity ranks one worker's contribution on a plot or field.
type WorkerProductivity struct {
	WorkerID             int64           `json:"workerID"`
	WorkerName           string          `json:"workerName,omitempty"`
	TotalCapacity        decimal.Decimal `json:"totalCapacity"`
	AssignmentCount      int             `json:"assignmentCount"`
	AveragePerAssignment decimal.Decimal `json:"averagePerAssignment"`
	CompletedAssignments int             `json:"completedAssignments"`
	CompletionRate       decimal.Decimal `json:"completionRate"`
}

// RecommendationPriority grades capacity recommendations.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "HIGH"
	PriorityMedium RecommendationPriority = "MEDIUM"
	PriorityLow    RecommendationPriority = "LOW"
)

// CapacityRecommendation is one human-readable finding about a plot's
// declared capacity.
type CapacityRecommendation struct {
	Code     string                 `json:"code"`
	Priority RecommendationPriority `json:"priority"`
	Message  string                 `json:"message"`
}

// Capacity recommendation codes.
const (
	RecUnderutilized    = "UNDERUTILIZED"
	RecOverutilized     = "OVERUTILIZED"
	RecOptimal          = "OPTIMAL"
	RecCapacityShortage = "CAPACITY_SHORTAGE"
	RecCapacityExcess   = "CAPACITY_EXCESS"
)

// UtilizationReport summarizes one plot's capacity usage over a period.
type UtilizationReport struct {
	PlotID          int64           `json:"plotID"`
	TotalCapacity   decimal.Decimal `json:"totalCapacity"`
	Consumed        decimal.Decimal `json:"consumed"`
	UtilizationRate decimal.Decimal `json:"utilizationRate"`
	PeriodDays      int             `json:"periodDays"`
	// PeriodRate spreads consumption over the period length; zero capacity
	// or a zero-day period reports zero.
	PeriodRate decimal.Decimal `json:"periodRate"`
}

// DayOfWeekTotal aggregates daily buckets by weekday index (0=Sunday).
type DayOfWeekTotal struct {
	Weekday       int             `json:"weekday"`
	TotalCapacity decimal.Decimal `json:"totalCapacity"`
	BucketCount   int             `json:"bucketCount"`
}

// PlotTrendReport is the full time-series view for one plot.
type PlotTrendReport struct {
	PlotID        int64           `json:"plotID"`
	Daily         []DailyBucket   `json:"daily"`
	Weekly        []WeeklyBucket  `json:"weekly"`
	Monthly       []MonthlyBucket `json:"monthly"`
	BestDayOfWeek *DayOfWeekTotal `json:"bestDayOfWeek,omitempty"`
	PeakDay       *DailyBucket    `json:"peakDay,omitempty"`
}

// PlotComparison is one row of a cross-plot comparison over a field.
// Location is nil for plots registered without one.
type PlotComparison struct {
	PlotID          int64           `json:"plotID"`
	Location        *string         `json:"location"`
	TotalCapacity   decimal.Decimal `json:"totalCapacity"`
	Consumed        decimal.Decimal `json:"consumed"`
	UtilizationRate decimal.Decimal `json:"utilizationRate"`
	AssignmentCount int             `json:"assignmentCount"`
}

// PaymentSummary aggregates payments for a plot over a period.
type PaymentSummary struct {
	PlotID          int64           `json:"plotID"`
	PaymentCount    int             `json:"paymentCount"`
	TotalGross      decimal.Decimal `json:"totalGross"`
	TotalNet        decimal.Decimal `json:"totalNet"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
}
