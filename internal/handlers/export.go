package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/swachhdev/waste-collect/internal/dates"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/export"
	"github.com/swachhdev/waste-collect/internal/middleware"
	"github.com/swachhdev/waste-collect/internal/models"
)

// Report types accepted by the export endpoint.
const (
	ReportWasteSubmissions = "waste_submissions"
	ReportColonyAnalytics  = "colony_analytics"
)

// ExportHandler renders CSV reports for managers and authorities.
type ExportHandler struct {
	store *db.Store
}

// NewExportHandler creates a new export handler.
func NewExportHandler(store *db.Store) *ExportHandler {
	return &ExportHandler{store: store}
}

// Download streams a CSV report. Managers export their own colony; authorities
// export everything or a single colony via colony_name. The date range
// defaults to the last 30 days, end date inclusive.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	q := r.URL.Query()
	reportType := q.Get("report_type")
	if reportType == "" {
		reportType = ReportWasteSubmissions
	}
	if reportType != ReportWasteSubmissions && reportType != ReportColonyAnalytics {
		writeError(w, http.StatusBadRequest, "Unknown report type")
		return
	}

	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now
	if s := q.Get("start_date"); s != "" {
		t, err := dates.ParseTimestamp(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date")
			return
		}
		start = t
	}
	if e := q.Get("end_date"); e != "" {
		t, err := dates.ParseTimestamp(e)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date")
			return
		}
		end = t
	}

	spec := db.FilterSpec{
		Equals:     map[string]interface{}{},
		RangeField: "date_time",
		Gte:        start,
		Lte:        end.Add(24*time.Hour - time.Nanosecond),
		OrderBy:    "date_time",
		Desc:       true,
	}

	switch claims.Role {
	case models.RoleManager:
		profile, err := h.store.Managers.FindByUserID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load manager profile")
			return
		}
		if profile == nil || profile.ColonyName == "" {
			writeError(w, http.StatusNotFound, "No data available for the selected date range")
			return
		}
		spec.Equals["colony_name"] = profile.ColonyName
	case models.RoleAuthority:
		if colony := q.Get("colony_name"); colony != "" {
			spec.Equals["colony_name"] = colony
		}
	default:
		writeError(w, http.StatusForbidden, "Exports are not available for this role")
		return
	}

	subs, err := h.store.Submissions.FindSubmissions(r.Context(), spec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load submissions")
		return
	}

	joined, err := db.ResolveCollectors(r.Context(), subs, h.store.Collectors)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve collectors")
		return
	}

	var csv string
	switch reportType {
	case ReportWasteSubmissions:
		csv = export.WasteSubmissionsCSV(joined)
	case ReportColonyAnalytics:
		csv = export.ColonyAnalyticsCSV(export.ColonyAnalyticsFromSubmissions(joined))
	}
	if csv == "" {
		writeError(w, http.StatusNotFound, "No data available for the selected date range")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(reportType, start, end)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
