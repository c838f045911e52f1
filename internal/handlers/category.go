package handlers

import (
	"net/http"

	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/models"
)

// CategoryHandler serves the waste category list for the submission form.
type CategoryHandler struct {
	store *db.Store
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(store *db.Store) *CategoryHandler {
	return &CategoryHandler{store: store}
}

// List returns the active waste categories. When the collection is empty the
// built-in waste type names are returned so the form is never blank.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	categories, err := h.store.Categories.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	if len(categories) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"waste_types": models.WasteTypes})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
