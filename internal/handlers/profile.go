package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/middleware"
	"github.com/swachhdev/waste-collect/internal/models"
	"github.com/swachhdev/waste-collect/internal/validation"
)

// ProfileHandler serves the role-specific profile of the authenticated user.
// A profile that has never been saved reads back as null — the client shows
// an empty form, not an error.
type ProfileHandler struct {
	store *db.Store
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(store *db.Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// ServeHTTP dispatches GET (load) and PUT (upsert) for the caller's own
// profile. Profiles are mutated only by their owning user; the user ID
// always comes from the token, never the payload.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, claims)
	case http.MethodPut:
		h.upsert(w, r, claims)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// Options returns the selectable values for the profile form pickers.
func (h *ProfileHandler) Options(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"working_statuses": models.WorkingStatusOptions,
		"shift_timings":    models.ShiftTimings,
	})
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, claims *models.Claims) {
	switch claims.Role {
	case models.RoleCollector:
		profile, err := h.store.Collectors.FindByUserID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load profile")
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case models.RoleManager:
		profile, err := h.store.Managers.FindByUserID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load profile")
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case models.RoleAuthority:
		profile, err := h.store.Authorities.FindByUserID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load profile")
			return
		}
		writeJSON(w, http.StatusOK, profile)
	default:
		writeError(w, http.StatusForbidden, "Unknown role")
	}
}

func (h *ProfileHandler) upsert(w http.ResponseWriter, r *http.Request, claims *models.Claims) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	switch claims.Role {
	case models.RoleCollector:
		var profile models.GarbageCollectorProfile
		if err := json.Unmarshal(body, &profile); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if result := validation.ValidateCollectorProfile(profile); !result.IsValid {
			writeValidationErrors(w, result)
			return
		}
		profile.UserID = claims.UserID
		if err := h.store.Collectors.Upsert(r.Context(), profile); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save profile")
			return
		}
	case models.RoleManager:
		var profile models.ColonyManagerProfile
		if err := json.Unmarshal(body, &profile); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if result := validation.ValidateManagerProfile(profile); !result.IsValid {
			writeValidationErrors(w, result)
			return
		}
		profile.UserID = claims.UserID
		if err := h.store.Managers.Upsert(r.Context(), profile); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save profile")
			return
		}
	case models.RoleAuthority:
		var profile models.GovernmentAuthorityProfile
		if err := json.Unmarshal(body, &profile); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if result := validation.ValidateAuthorityProfile(profile); !result.IsValid {
			writeValidationErrors(w, result)
			return
		}
		profile.UserID = claims.UserID
		if err := h.store.Authorities.Upsert(r.Context(), profile); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save profile")
			return
		}
	default:
		writeError(w, http.StatusForbidden, "Unknown role")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile saved successfully"})
}
