package handlers

import (
	"net/http"
	"time"

	"github.com/swachhdev/waste-collect/internal/analytics"
	"github.com/swachhdev/waste-collect/internal/dates"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/middleware"
	"github.com/swachhdev/waste-collect/internal/models"
)

// StatsHandler computes dashboard statistics for managers and authorities.
type StatsHandler struct {
	store *db.Store
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(store *db.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// periodRange resolves the period query param (today, week, month, year) into
// an inclusive aggregation range ending now. Unknown periods fall back to week.
func periodRange(period string, now time.Time) *analytics.Range {
	dr := dates.GetDateRange(period, now)
	from, err := dates.ParseTimestamp(dr.StartDate)
	if err != nil {
		return nil
	}
	return &analytics.Range{From: &from, To: &now}
}

// System serves the authority dashboard: system-wide totals, user counts by
// role, waste type distribution, and colony performance for the requested
// period.
func (h *StatsHandler) System(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	subs, err := h.store.Submissions.FindSubmissions(r.Context(), db.FilterSpec{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load submissions")
		return
	}

	points, err := h.store.Tracking.FindPoints(r.Context(), db.FilterSpec{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load tracking points")
		return
	}

	collectors, err := h.store.Users.CountByRole(r.Context(), models.RoleCollector)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}
	managers, err := h.store.Users.CountByRole(r.Context(), models.RoleManager)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}

	now := time.Now()
	stats := analytics.ComputeSystemStats(subs, now)
	stats.TotalVehicles = analytics.UniqueVehicles(points)

	rng := periodRange(r.URL.Query().Get("period"), now)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats":              stats,
		"total_collectors":   collectors,
		"total_managers":     managers,
		"waste_distribution": analytics.WasteTypeDistribution(subs, rng),
		"colony_performance": analytics.ColonyPerformance(subs, rng),
	})
}

// Colony serves the manager dashboard: the manager's own colony totals and
// waste type distribution for the requested period. A manager without a
// colony gets empty stats, not an error.
func (h *StatsHandler) Colony(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	profile, err := h.store.Managers.FindByUserID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load manager profile")
		return
	}
	if profile == nil || profile.ColonyName == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"stats":              analytics.SystemStats{},
			"waste_distribution": map[string]analytics.TypeStat{},
		})
		return
	}

	subs, err := h.store.Submissions.FindSubmissions(r.Context(), db.FilterSpec{
		Equals: map[string]interface{}{"colony_name": profile.ColonyName},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load submissions")
		return
	}

	now := time.Now()
	rng := periodRange(r.URL.Query().Get("period"), now)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"colony_name":        profile.ColonyName,
		"stats":              analytics.ComputeSystemStats(subs, now),
		"collector_count":    analytics.UniqueCollectors(subs),
		"waste_distribution": analytics.WasteTypeDistribution(subs, rng),
	})
}
