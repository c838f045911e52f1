package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/swachhdev/waste-collect/internal/analytics"
	"github.com/swachhdev/waste-collect/internal/dates"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/middleware"
	"github.com/swachhdev/waste-collect/internal/models"
	"github.com/swachhdev/waste-collect/internal/validation"
)

// TrackingHandler handles vehicle tracking requests.
type TrackingHandler struct {
	store *db.Store
}

// NewTrackingHandler creates a new tracking handler.
func NewTrackingHandler(store *db.Store) *TrackingHandler {
	return &TrackingHandler{store: store}
}

// Report appends a tracking point for the authenticated collector's vehicle.
func (h *TrackingHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var point models.VehicleTrackingPoint
	if err := json.Unmarshal(body, &point); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	errs := map[string]string{}
	if err := validation.ValidateVehicleNumber(point.VehicleNumber); err != nil {
		errs["vehicle_number"] = err.Error()
	}
	if point.Status == "" {
		point.Status = models.TrackingActive
	} else if !models.IsValidTrackingStatus(point.Status) {
		errs["status"] = "Please select a valid status"
	}
	if len(errs) > 0 {
		writeValidationErrors(w, validation.Result{Errors: errs})
		return
	}

	point.CollectorID = claims.UserID
	if err := h.store.Tracking.InsertPoint(r.Context(), point); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save tracking point")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"vehicle_number": point.VehicleNumber})
}

// List returns raw tracking points, optionally filtered by vehicle_number and
// a start_date/end_date window, newest first.
func (h *TrackingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()
	spec := db.FilterSpec{
		Equals:     map[string]interface{}{},
		RangeField: "timestamp",
		OrderBy:    "timestamp",
		Desc:       true,
	}
	if vehicle := q.Get("vehicle_number"); vehicle != "" {
		spec.Equals["vehicle_number"] = vehicle
	}
	if start := q.Get("start_date"); start != "" {
		t, err := dates.ParseTimestamp(start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date")
			return
		}
		spec.Gte = t
	}
	if end := q.Get("end_date"); end != "" {
		t, err := dates.ParseTimestamp(end)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end_date")
			return
		}
		spec.Lte = t.Add(24*time.Hour - time.Nanosecond)
	}

	points, err := h.store.Tracking.FindPoints(r.Context(), spec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load tracking points")
		return
	}
	if points == nil {
		points = []models.VehicleTrackingPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

// Latest returns the current location of every vehicle: the point with the
// maximum timestamp per vehicle number, regardless of insertion order. Each
// point carries its collector's profile reference when one exists.
func (h *TrackingHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	points, err := h.store.Tracking.FindPoints(r.Context(), db.FilterSpec{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load tracking points")
		return
	}

	latest := analytics.LatestVehicleLocations(points)

	ids := make([]string, 0, len(latest))
	seen := map[string]struct{}{}
	for _, p := range latest {
		if p.CollectorID == "" {
			continue
		}
		if _, ok := seen[p.CollectorID]; !ok {
			seen[p.CollectorID] = struct{}{}
			ids = append(ids, p.CollectorID)
		}
	}

	byUser := map[string]*models.CollectorRef{}
	if len(ids) > 0 {
		profiles, err := h.store.Collectors.FindByUserIDs(r.Context(), ids)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to resolve collectors")
			return
		}
		for _, p := range profiles {
			byUser[p.UserID] = &models.CollectorRef{
				PersonalName:  p.PersonalName,
				EmployeeID:    p.EmployeeID,
				VehicleNumber: p.VehicleNumber,
			}
		}
	}

	joined := make(map[string]models.TrackingPointWithCollector, len(latest))
	for vehicle, p := range latest {
		joined[vehicle] = models.TrackingPointWithCollector{
			VehicleTrackingPoint: p,
			Collector:            byUser[p.CollectorID],
		}
	}
	writeJSON(w, http.StatusOK, joined)
}
