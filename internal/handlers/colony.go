package handlers

import (
	"net/http"

	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/models"
)

// ColonyHandler serves colony area lookups used by submission and profile
// forms.
type ColonyHandler struct {
	store *db.Store
}

// NewColonyHandler creates a new colony handler.
func NewColonyHandler(store *db.Store) *ColonyHandler {
	return &ColonyHandler{store: store}
}

// List returns active colonies ordered by name, each with its manager
// resolved when one is assigned. A non-empty q param switches to a
// case-insensitive search over name, address, and ward number.
func (h *ColonyHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var (
		colonies []models.ColonyArea
		err      error
	)
	if term := r.URL.Query().Get("q"); term != "" {
		colonies, err = h.store.Colonies.Search(r.Context(), term)
	} else {
		colonies, err = h.store.Colonies.ListActive(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load colonies")
		return
	}

	joined, err := db.ResolveManagers(r.Context(), colonies, h.store.Managers)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve managers")
		return
	}
	writeJSON(w, http.StatusOK, joined)
}
