// Package analytics computes dashboard statistics from raw records. Every
// function is pure and deterministic: given the same records it returns the
// same result regardless of input order, performs no I/O, and treats missing
// optional fields as zero or "Unknown".
package analytics

import (
	"math"
	"time"

	"github.com/swachhdev/waste-collect/internal/dates"
	"github.com/swachhdev/waste-collect/internal/models"
)

// UnknownKey groups records whose colony or waste type is missing.
const UnknownKey = "Unknown"

// Range optionally bounds an aggregation to [From, To] inclusive. A nil
// bound is open.
type Range struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls within the range.
func (r *Range) Contains(t time.Time) bool {
	if r == nil {
		return true
	}
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// SystemStats summarizes submissions for the authority dashboard.
type SystemStats struct {
	TotalSubmissions   int     `json:"total_submissions"`
	TodaySubmissions   int     `json:"today_submissions"`
	WeeklySubmissions  int     `json:"weekly_submissions"`
	MonthlySubmissions int     `json:"monthly_submissions"`
	TotalWeight        float64 `json:"total_weight"`
	TotalColonies      int     `json:"total_colonies"`
	TotalVehicles      int     `json:"total_vehicles"`
}

// TypeStat accumulates one waste type's share of the distribution.
type TypeStat struct {
	Weight float64 `json:"weight"`
	Count  int     `json:"count"`
}

// ColonyStat accumulates one colony's performance.
type ColonyStat struct {
	TotalWeight     float64   `json:"total_weight"`
	SubmissionCount int       `json:"submission_count"`
	LastSubmission  time.Time `json:"last_submission"`
}

// coerceWeight clamps weights that decoded to NaN, Inf, or a negative value
// so a single bad record cannot poison a sum.
func coerceWeight(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0
	}
	return w
}

// submissionTime prefers the record's DateTime, falling back to CreatedAt.
func submissionTime(s models.WasteSubmission) time.Time {
	if !s.DateTime.IsZero() {
		return s.DateTime
	}
	return s.CreatedAt
}

// ComputeSystemStats partitions submissions into the today/week/month windows
// (today is a calendar-day match, week and month are rolling windows ending
// at now) and sums their weights.
func ComputeSystemStats(subs []models.WasteSubmission, now time.Time) SystemStats {
	stats := SystemStats{TotalSubmissions: len(subs)}
	colonies := map[string]struct{}{}
	for _, s := range subs {
		ts := submissionTime(s)
		stats.TotalWeight += coerceWeight(s.Weight)
		if dates.IsToday(ts, now) {
			stats.TodaySubmissions++
		}
		if dates.IsThisWeek(ts, now) {
			stats.WeeklySubmissions++
		}
		if dates.IsThisMonth(ts, now) {
			stats.MonthlySubmissions++
		}
		if s.ColonyName != "" {
			colonies[s.ColonyName] = struct{}{}
		}
	}
	stats.TotalColonies = len(colonies)
	return stats
}

// UniqueColonies counts distinct non-empty colony names.
func UniqueColonies(subs []models.WasteSubmission) int {
	seen := map[string]struct{}{}
	for _, s := range subs {
		if s.ColonyName != "" {
			seen[s.ColonyName] = struct{}{}
		}
	}
	return len(seen)
}

// UniqueCollectors counts distinct non-empty collector IDs.
func UniqueCollectors(subs []models.WasteSubmission) int {
	seen := map[string]struct{}{}
	for _, s := range subs {
		if s.CollectorID != "" {
			seen[s.CollectorID] = struct{}{}
		}
	}
	return len(seen)
}

// UniqueVehicles counts distinct non-empty vehicle numbers.
func UniqueVehicles(points []models.VehicleTrackingPoint) int {
	seen := map[string]struct{}{}
	for _, p := range points {
		if p.VehicleNumber != "" {
			seen[p.VehicleNumber] = struct{}{}
		}
	}
	return len(seen)
}

// WasteTypeDistribution groups submissions by waste type, accumulating total
// weight and record count per type. Records outside the optional range are
// skipped; a missing waste type groups under "Unknown".
func WasteTypeDistribution(subs []models.WasteSubmission, r *Range) map[string]TypeStat {
	dist := map[string]TypeStat{}
	for _, s := range subs {
		if !r.Contains(submissionTime(s)) {
			continue
		}
		key := s.WasteType
		if key == "" {
			key = UnknownKey
		}
		stat := dist[key]
		stat.Weight += coerceWeight(s.Weight)
		stat.Count++
		dist[key] = stat
	}
	return dist
}

// ColonyPerformance groups submissions by colony, accumulating total weight,
// submission count, and the latest submission timestamp. LastSubmission is
// resolved by explicit comparison; input order is never trusted.
func ColonyPerformance(subs []models.WasteSubmission, r *Range) map[string]ColonyStat {
	perf := map[string]ColonyStat{}
	for _, s := range subs {
		ts := submissionTime(s)
		if !r.Contains(ts) {
			continue
		}
		key := s.ColonyName
		if key == "" {
			key = UnknownKey
		}
		stat := perf[key]
		stat.TotalWeight += coerceWeight(s.Weight)
		stat.SubmissionCount++
		if ts.After(stat.LastSubmission) {
			stat.LastSubmission = ts
		}
		perf[key] = stat
	}
	return perf
}

// LatestVehicleLocations folds tracking points down to one point per vehicle
// number, keeping the point with the maximum timestamp. This is the canonical
// "current location" rule: points arrive out of order over the network, so
// the fold compares timestamps explicitly instead of assuming insertion
// order. Points without a vehicle number are dropped.
func LatestVehicleLocations(points []models.VehicleTrackingPoint) map[string]models.VehicleTrackingPoint {
	latest := map[string]models.VehicleTrackingPoint{}
	for _, p := range points {
		if p.VehicleNumber == "" {
			continue
		}
		cur, ok := latest[p.VehicleNumber]
		if !ok || p.Timestamp.After(cur.Timestamp) {
			latest[p.VehicleNumber] = p
		}
	}
	return latest
}
