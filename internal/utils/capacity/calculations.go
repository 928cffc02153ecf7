// Package capacity holds the aggregation arithmetic shared by the ledger
// and the analytics engine. All functions are pure and fold assignments
// supplied by the caller, so aggregation can later move into the store
// without changing service contracts.
package capacity

import (
	"sort"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// InstantUtilization computes consumed/total*100. Zero capacity reports
// zero, never an error.
func InstantUtilization(consumed, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return consumed.Div(total).Mul(hundred)
}

// PeriodUtilization spreads consumption over the period's day count:
// consumed/(total*days)*100. Zero capacity or a non-positive day count
// reports zero.
func PeriodUtilization(consumed, total decimal.Decimal, days int) decimal.Decimal {
	if total.IsZero() || days <= 0 {
		return decimal.Zero
	}
	return consumed.Div(total.Mul(decimal.NewFromInt(int64(days)))).Mul(hundred)
}

// DailyBuckets groups completed assignments by calendar day (engine-local
// date) into ascending buckets with counts, capacity totals and unique
// worker counts. Trend classification is applied in the same pass.
func DailyBuckets(assignments []domain.Assignment) []domain.DailyBucket {
	type acc struct {
		count   int
		total   decimal.Decimal
		workers map[int64]struct{}
	}
	byDay := make(map[string]*acc)
	for _, a := range assignments {
		if a.Status != domain.AssignmentCompleted {
			continue
		}
		day := a.AssignmentDate.Format(dateLayout)
		bucket, ok := byDay[day]
		if !ok {
			bucket = &acc{total: decimal.Zero, workers: make(map[int64]struct{})}
			byDay[day] = bucket
		}
		bucket.count++
		bucket.total = bucket.total.Add(a.CapacityCount)
		bucket.workers[a.WorkerID] = struct{}{}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	buckets := make([]domain.DailyBucket, len(days))
	for i, day := range days {
		a := byDay[day]
		buckets[i] = domain.DailyBucket{
			Date:              day,
			AssignmentCount:   a.count,
			TotalCapacity:     a.total,
			UniqueWorkerCount: len(a.workers),
			Trend:             domain.TrendStable,
		}
	}
	classifyTrends(buckets)
	return buckets
}

// classifyTrends sets day-over-day growth percentages: up above +10,
// down below -10, stable otherwise. The first bucket and buckets following
// a zero day carry no growth figure.
func classifyTrends(buckets []domain.DailyBucket) {
	for i := 1; i < len(buckets); i++ {
		prev := buckets[i-1].TotalCapacity
		if prev.IsZero() {
			continue
		}
		growth := buckets[i].TotalCapacity.Sub(prev).Div(prev).Mul(hundred)
		buckets[i].Growth = &growth
		switch {
		case growth.GreaterThan(decimal.NewFromInt(10)):
			buckets[i].Trend = domain.TrendUp
		case growth.LessThan(decimal.NewFromInt(-10)):
			buckets[i].Trend = domain.TrendDown
		default:
			buckets[i].Trend = domain.TrendStable
		}
	}
}

// WeeklyBuckets windows daily buckets into fixed chunks of 7 consecutive
// buckets starting from the first available day. Not calendar weeks.
func WeeklyBuckets(daily []domain.DailyBucket) []domain.WeeklyBucket {
	weekly := make([]domain.WeeklyBucket, 0, (len(daily)+6)/7)
	for start := 0; start < len(daily); start += 7 {
		end := start + 7
		if end > len(daily) {
			end = len(daily)
		}
		window := daily[start:end]
		w := domain.WeeklyBucket{
			WeekIndex:     len(weekly),
			StartDate:     window[0].Date,
			EndDate:       window[len(window)-1].Date,
			TotalCapacity: decimal.Zero,
		}
		workers := 0
		for _, d := range window {
			w.AssignmentCount += d.AssignmentCount
			w.TotalCapacity = w.TotalCapacity.Add(d.TotalCapacity)
			workers += d.UniqueWorkerCount
		}
		// Worker uniqueness is not preserved across day boundaries here;
		// the sum of daily uniques is the documented window figure.
		w.UniqueWorkerCount = workers
		weekly = append(weekly, w)
	}
	return weekly
}

// MonthlyBuckets groups daily buckets by their YYYY-MM prefix.
func MonthlyBuckets(daily []domain.DailyBucket) []domain.MonthlyBucket {
	monthly := make([]domain.MonthlyBucket, 0)
	index := make(map[string]int)
	for _, d := range daily {
		month := d.Date[:7]
		i, ok := index[month]
		if !ok {
			i = len(monthly)
			index[month] = i
			monthly = append(monthly, domain.MonthlyBucket{Month: month, TotalCapacity: decimal.Zero})
		}
		monthly[i].AssignmentCount += d.AssignmentCount
		monthly[i].TotalCapacity = monthly[i].TotalCapacity.Add(d.TotalCapacity)
		monthly[i].UniqueWorkerCount += d.UniqueWorkerCount
	}
	return monthly
}

// BestDayOfWeek groups daily buckets by weekday index (0=Sunday) and
// returns the weekday with the highest capacity total. Ties break to the
// weekday first seen in the series. Nil when there are no buckets.
func BestDayOfWeek(daily []domain.DailyBucket) *domain.DayOfWeekTotal {
	totals := make(map[int]*domain.DayOfWeekTotal)
	order := make([]int, 0, 7)
	for _, d := range daily {
		day, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			continue
		}
		wd := int(day.Weekday())
		t, ok := totals[wd]
		if !ok {
			t = &domain.DayOfWeekTotal{Weekday: wd, TotalCapacity: decimal.Zero}
			totals[wd] = t
			order = append(order, wd)
		}
		t.TotalCapacity = t.TotalCapacity.Add(d.TotalCapacity)
		t.BucketCount++
	}
	var best *domain.DayOfWeekTotal
	for _, wd := range order {
		if best == nil || totals[wd].TotalCapacity.GreaterThan(best.TotalCapacity) {
			best = totals[wd]
		}
	}
	return best
}

// PeakDay returns the daily bucket with the highest capacity total, ties
// broken by first occurrence. Nil when there are no buckets.
func PeakDay(daily []domain.DailyBucket) *domain.DailyBucket {
	var peak *domain.DailyBucket
	for i := range daily {
		if peak == nil || daily[i].TotalCapacity.GreaterThan(peak.TotalCapacity) {
			peak = &daily[i]
		}
	}
	if peak == nil {
		return nil
	}
	out := *peak
	return &out
}

// WorkerProductivity ranks workers by total capacity consumed
// (active+completed assignments). Per-worker average divides the consumed
// total by the worker's overall assignment count; completion rate is
// completed over total. Ranking ties break by ascending worker id.
func WorkerProductivity(assignments []domain.Assignment) []domain.WorkerProductivity {
	type acc struct {
		consumed  decimal.Decimal
		total     int
		completed int
	}
	byWorker := make(map[int64]*acc)
	for _, a := range assignments {
		w, ok := byWorker[a.WorkerID]
		if !ok {
			w = &acc{consumed: decimal.Zero}
			byWorker[a.WorkerID] = w
		}
		w.total++
		if a.Status.CountsTowardCapacity() {
			w.consumed = w.consumed.Add(a.CapacityCount)
		}
		if a.Status == domain.AssignmentCompleted {
			w.completed++
		}
	}

	out := make([]domain.WorkerProductivity, 0, len(byWorker))
	for id, w := range byWorker {
		count := decimal.NewFromInt(int64(w.total))
		p := domain.WorkerProductivity{
			WorkerID:             id,
			TotalCapacity:        w.consumed,
			AssignmentCount:      w.total,
			AveragePerAssignment: decimal.Zero,
			CompletedAssignments: w.completed,
			CompletionRate:       decimal.Zero,
		}
		if w.total > 0 {
			p.AveragePerAssignment = w.consumed.Div(count)
			p.CompletionRate = decimal.NewFromInt(int64(w.completed)).Div(count)
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCapacity.Equal(out[j].TotalCapacity) {
			return out[i].WorkerID < out[j].WorkerID
		}
		return out[i].TotalCapacity.GreaterThan(out[j].TotalCapacity)
	})
	return out
}
