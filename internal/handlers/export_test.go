package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExportHandler_Download(t *testing.T) {
	t.Run("manager downloads colony submissions", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		managers := new(MockManagerProfiles)
		collectors := new(MockCollectorProfiles)
		handler := NewExportHandler(&db.Store{
			Submissions: submissions,
			Managers:    managers,
			Collectors:  collectors,
		})

		claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleManager}
		managers.On("FindByUserID", mock.Anything, claims.UserID).
			Return(&models.ColonyManagerProfile{UserID: claims.UserID, ColonyName: "Green Park"}, nil)

		collectorID := primitive.NewObjectID().Hex()
		subs := []models.WasteSubmission{{
			ID:          primitive.NewObjectID(),
			CollectorID: collectorID,
			DateTime:    time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC),
			WasteType:   "Paper",
			Weight:      12.5,
			ColonyName:  "Green Park",
			Status:      models.StatusSubmitted,
		}}
		submissions.On("FindSubmissions", mock.Anything, mock.MatchedBy(func(spec db.FilterSpec) bool {
			return spec.Equals["colony_name"] == "Green Park"
		})).Return(subs, nil)
		collectors.On("FindByUserIDs", mock.Anything, []string{collectorID}).
			Return([]models.GarbageCollectorProfile{}, nil)

		req := withClaims(httptest.NewRequest(http.MethodGet,
			"/api/export?report_type=waste_submissions&start_date=2025-03-01&end_date=2025-03-15", nil), claims)
		w := httptest.NewRecorder()
		handler.Download(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"),
			"waste_submissions_2025-03-01_to_2025-03-15.csv")

		lines := strings.Split(w.Body.String(), "\n")
		assert.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Date,Time,Waste Type"))
		// Unresolved collector fields render as placeholders.
		assert.Contains(t, lines[1], "Unknown,N/A,N/A")
	})

	t.Run("empty range is not found, never a header-only file", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		handler := NewExportHandler(&db.Store{Submissions: submissions})

		submissions.On("FindSubmissions", mock.Anything, mock.Anything).
			Return([]models.WasteSubmission{}, nil)

		claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleAuthority}
		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/export", nil), claims)
		w := httptest.NewRecorder()
		handler.Download(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("collectors cannot export", func(t *testing.T) {
		handler := NewExportHandler(&db.Store{})

		claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleCollector}
		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/export", nil), claims)
		w := httptest.NewRecorder()
		handler.Download(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown report type is rejected", func(t *testing.T) {
		handler := NewExportHandler(&db.Store{})

		claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleAuthority}
		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/export?report_type=everything", nil), claims)
		w := httptest.NewRecorder()
		handler.Download(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
