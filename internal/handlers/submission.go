package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/swachhdev/waste-collect/internal/dates"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/middleware"
	"github.com/swachhdev/waste-collect/internal/models"
	"github.com/swachhdev/waste-collect/internal/validation"
)

// SubmissionHandler handles waste submission requests.
type SubmissionHandler struct {
	store *db.Store
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(store *db.Store) *SubmissionHandler {
	return &SubmissionHandler{store: store}
}

// Create records a waste submission for the authenticated collector. The
// form is validated before anything is persisted; validation problems come
// back as a field error map, never a 500.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var form models.WasteFormData
	if err := json.Unmarshal(body, &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if result := validation.ValidateWasteForm(form); !result.IsValid {
		writeValidationErrors(w, result)
		return
	}

	weight, _ := strconv.ParseFloat(strings.TrimSpace(form.Weight), 64)

	when := time.Now()
	if form.DateTime != "" {
		parsed, err := dates.ParseTimestamp(form.DateTime)
		if err != nil {
			writeValidationErrors(w, validation.Result{
				Errors: map[string]string{"date_time": "Please enter a valid date and time"},
			})
			return
		}
		when = parsed
	}

	sub := models.WasteSubmission{
		CollectorID:    claims.UserID,
		DateTime:       when,
		WasteType:      form.WasteType,
		Weight:         weight,
		ColonyName:     form.ColonyName,
		BuildingNumber: form.BuildingNumber,
		HouseNumber:    form.HouseNumber,
		Notes:          form.Notes,
		ImageURL:       form.ImageURL,
		Status:         models.StatusSubmitted,
	}

	id, err := h.store.Submissions.InsertSubmission(r.Context(), sub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save submission")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "status": sub.Status})
}

// List returns submissions scoped by the caller's role: collectors see
// their own records, managers their colony's, authorities everything.
// Optional query params: start_date, end_date (YYYY-MM-DD), waste_type,
// colony_name (authority only), limit.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	spec, errMsg := h.buildListSpec(r, claims)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}
	if spec == nil {
		// Manager without a colony yet: empty default, not an error.
		writeJSON(w, http.StatusOK, []models.WasteSubmission{})
		return
	}

	subs, err := h.store.Submissions.FindSubmissions(r.Context(), *spec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load submissions")
		return
	}

	joined, err := db.ResolveCollectors(r.Context(), subs, h.store.Collectors)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve collectors")
		return
	}

	writeJSON(w, http.StatusOK, joined)
}

// buildListSpec translates the caller's role and query params into a filter
// spec. A nil spec with no error means the caller legitimately has nothing
// to see yet.
func (h *SubmissionHandler) buildListSpec(r *http.Request, claims *models.Claims) (*db.FilterSpec, string) {
	q := r.URL.Query()
	spec := db.FilterSpec{
		Equals:     map[string]interface{}{},
		RangeField: "date_time",
		OrderBy:    "date_time",
		Desc:       true,
	}

	switch claims.Role {
	case models.RoleCollector:
		spec.Equals["collector_id"] = claims.UserID
	case models.RoleManager:
		profile, err := h.store.Managers.FindByUserID(r.Context(), claims.UserID)
		if err != nil {
			return nil, "Failed to load manager profile"
		}
		if profile == nil || profile.ColonyName == "" {
			return nil, ""
		}
		spec.Equals["colony_name"] = profile.ColonyName
	case models.RoleAuthority:
		if colony := q.Get("colony_name"); colony != "" {
			spec.Equals["colony_name"] = colony
		}
	}

	if wasteType := q.Get("waste_type"); wasteType != "" {
		spec.Equals["waste_type"] = wasteType
	}
	if start := q.Get("start_date"); start != "" {
		t, err := dates.ParseTimestamp(start)
		if err != nil {
			return nil, "Invalid start_date"
		}
		spec.Gte = t
	}
	if end := q.Get("end_date"); end != "" {
		t, err := dates.ParseTimestamp(end)
		if err != nil {
			return nil, "Invalid end_date"
		}
		// End bound is inclusive of the whole calendar day.
		spec.Lte = t.Add(24*time.Hour - time.Nanosecond)
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.ParseInt(limit, 10, 64)
		if err != nil || n < 0 {
			return nil, "Invalid limit"
		}
		spec.Limit = n
	}

	return &spec, ""
}

// UpdateStatus advances a submission along submitted -> verified ->
// processed. Managers verify; authorities process. The store rejects
// anything that would move a submission backwards.
func (h *SubmissionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	allowed := map[models.Role]string{
		models.RoleManager:   models.StatusVerified,
		models.RoleAuthority: models.StatusProcessed,
	}
	if allowed[claims.Role] != req.Status {
		writeError(w, http.StatusForbidden, "Status change not permitted for this role")
		return
	}

	if err := h.store.Submissions.UpdateStatus(r.Context(), req.ID, req.Status); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": req.ID, "status": req.Status})
}
