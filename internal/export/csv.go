// Package export renders tabular reports as CSV text. The encoder is
// deliberately hand-rolled: a cell is quoted if and only if it contains a
// comma, a double quote, or a newline, which downstream spreadsheet tooling
// expects byte-for-byte and which encoding/csv does not reproduce (it also
// quotes leading-space cells and always terminates rows with CRLF).
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/swachhdev/waste-collect/internal/dates"
	"github.com/swachhdev/waste-collect/internal/models"
)

// Placeholders for unresolved joined fields.
const (
	PlaceholderUnknown = "Unknown"
	PlaceholderNA      = "N/A"
)

// SubmissionHeaders is the fixed column order of the waste submissions report.
var SubmissionHeaders = []string{
	"Date",
	"Time",
	"Waste Type",
	"Weight (kg)",
	"Colony Name",
	"Building Number",
	"House Number",
	"Collector Name",
	"Employee ID",
	"Vehicle Number",
	"Status",
	"Notes",
	"Submission ID",
}

// AnalyticsHeaders is the fixed column order of the colony analytics report.
var AnalyticsHeaders = []string{
	"Date",
	"Colony Name",
	"Waste Type",
	"Total Weight (kg)",
	"Submission Count",
	"Collector Count",
}

// ColonyAnalyticsRow is one aggregated line of the colony analytics report.
type ColonyAnalyticsRow struct {
	Date            time.Time `json:"date"`
	ColonyName      string    `json:"colony_name"`
	WasteType       string    `json:"waste_type"`
	TotalWeight     float64   `json:"total_weight"`
	SubmissionCount int       `json:"submission_count"`
	CollectorCount  int       `json:"collector_count"`
}

// escape quotes a cell only when its content would break the row: a comma, a
// double quote, or a newline. Inner quotes are doubled.
func escape(cell string) string {
	if strings.ContainsAny(cell, ",\"\n") {
		return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return cell
}

func writeRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(c))
	}
}

// render joins a header row and data rows into CSV text. Empty input yields
// an empty string, never a header-only document.
func render(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	writeRow(&b, headers)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(&b, row)
	}
	return b.String()
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// WasteSubmissionsCSV renders the 13-column submissions report. Unresolved
// collector fields fall back to their placeholders.
func WasteSubmissionsCSV(subs []models.WasteSubmissionWithCollector) string {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		name, employee, vehicle := PlaceholderUnknown, PlaceholderNA, PlaceholderNA
		if s.Collector != nil {
			if s.Collector.PersonalName != "" {
				name = s.Collector.PersonalName
			}
			if s.Collector.EmployeeID != "" {
				employee = s.Collector.EmployeeID
			}
			if s.Collector.VehicleNumber != "" {
				vehicle = s.Collector.VehicleNumber
			}
		}
		rows = append(rows, []string{
			dates.FormatDate(s.DateTime),
			dates.FormatTime(s.DateTime),
			s.WasteType,
			formatWeight(s.Weight),
			s.ColonyName,
			s.BuildingNumber,
			s.HouseNumber,
			name,
			employee,
			vehicle,
			s.Status,
			s.Notes,
			s.ID.Hex(),
		})
	}
	return render(SubmissionHeaders, rows)
}

// ColonyAnalyticsCSV renders the 6-column colony analytics report.
func ColonyAnalyticsCSV(items []ColonyAnalyticsRow) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			dates.FormatDate(item.Date),
			item.ColonyName,
			item.WasteType,
			formatWeight(item.TotalWeight),
			strconv.Itoa(item.SubmissionCount),
			strconv.Itoa(item.CollectorCount),
		})
	}
	return render(AnalyticsHeaders, rows)
}

// Filename builds the report file name from its type and range bounds,
// e.g. "waste_submissions_2025-03-01_to_2025-03-15.csv".
func Filename(reportType string, start, end time.Time) string {
	return fmt.Sprintf("%s_%s_to_%s.csv",
		reportType,
		dates.FormatDateForInput(start),
		dates.FormatDateForInput(end))
}
