package export

import (
	"sort"
	"time"

	"github.com/swachhdev/waste-collect/internal/models"
)

type analyticsKey struct {
	day    time.Time
	colony string
	waste  string
}

// ColonyAnalyticsFromSubmissions aggregates submissions into one row per
// (calendar day, colony, waste type), counting distinct collectors. Rows are
// sorted by date, colony, and type so the same input always renders the same
// report.
func ColonyAnalyticsFromSubmissions(subs []models.WasteSubmissionWithCollector) []ColonyAnalyticsRow {
	type bucket struct {
		weight     float64
		count      int
		collectors map[string]struct{}
	}

	buckets := map[analyticsKey]*bucket{}
	for _, s := range subs {
		ts := s.DateTime
		if ts.IsZero() {
			ts = s.CreatedAt
		}
		key := analyticsKey{
			day:    time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
			colony: s.ColonyName,
			waste:  s.WasteType,
		}
		if key.colony == "" {
			key.colony = PlaceholderUnknown
		}
		if key.waste == "" {
			key.waste = PlaceholderUnknown
		}

		b := buckets[key]
		if b == nil {
			b = &bucket{collectors: map[string]struct{}{}}
			buckets[key] = b
		}
		b.weight += s.Weight
		b.count++
		if s.CollectorID != "" {
			b.collectors[s.CollectorID] = struct{}{}
		}
	}

	rows := make([]ColonyAnalyticsRow, 0, len(buckets))
	for key, b := range buckets {
		rows = append(rows, ColonyAnalyticsRow{
			Date:            key.day,
			ColonyName:      key.colony,
			WasteType:       key.waste,
			TotalWeight:     b.weight,
			SubmissionCount: b.count,
			CollectorCount:  len(b.collectors),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		if rows[i].ColonyName != rows[j].ColonyName {
			return rows[i].ColonyName < rows[j].ColonyName
		}
		return rows[i].WasteType < rows[j].WasteType
	})
	return rows
}
