package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func collectorClaims() *models.Claims {
	return &models.Claims{
		UserID: primitive.NewObjectID().Hex(),
		Email:  "collector@example.com",
		Role:   models.RoleCollector,
	}
}

func validWasteForm() models.WasteFormData {
	return models.WasteFormData{
		WasteType:      "Paper",
		Weight:         "12.5",
		ColonyName:     "Green Park",
		BuildingNumber: "B-4",
		HouseNumber:    "102",
	}
}

func TestSubmissionHandler_Create(t *testing.T) {
	t.Run("successful submission", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		handler := NewSubmissionHandler(&db.Store{Submissions: submissions})

		claims := collectorClaims()
		submissions.On("InsertSubmission", mock.Anything, mock.MatchedBy(func(s models.WasteSubmission) bool {
			return s.CollectorID == claims.UserID &&
				s.WasteType == "Paper" &&
				s.Weight == 12.5 &&
				s.Status == models.StatusSubmitted
		})).Return(primitive.NewObjectID().Hex(), nil)

		req := withClaims(postJSON(t, "/api/submissions", validWasteForm()), claims)
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response["id"])
		assert.Equal(t, models.StatusSubmitted, response["status"])
		submissions.AssertExpectations(t)
	})

	t.Run("invalid form never reaches storage", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		handler := NewSubmissionHandler(&db.Store{Submissions: submissions})

		form := validWasteForm()
		form.Weight = "0"
		form.ColonyName = ""

		req := withClaims(postJSON(t, "/api/submissions", form), collectorClaims())
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response struct {
			Fields map[string]string `json:"fields"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Fields["weight"])
		assert.NotEmpty(t, response.Fields["colony_name"])
		submissions.AssertNotCalled(t, "InsertSubmission", mock.Anything, mock.Anything)
	})

	t.Run("unparseable date is a field error", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		handler := NewSubmissionHandler(&db.Store{Submissions: submissions})

		form := validWasteForm()
		form.DateTime = "15/03/2025"

		req := withClaims(postJSON(t, "/api/submissions", form), collectorClaims())
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		submissions.AssertNotCalled(t, "InsertSubmission", mock.Anything, mock.Anything)
	})
}

func TestSubmissionHandler_List(t *testing.T) {
	t.Run("collector sees only own submissions", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		collectors := new(MockCollectorProfiles)
		handler := NewSubmissionHandler(&db.Store{Submissions: submissions, Collectors: collectors})

		claims := collectorClaims()
		subs := []models.WasteSubmission{{CollectorID: claims.UserID, WasteType: "Paper"}}
		submissions.On("FindSubmissions", mock.Anything, mock.MatchedBy(func(spec db.FilterSpec) bool {
			return spec.Equals["collector_id"] == claims.UserID
		})).Return(subs, nil)
		collectors.On("FindByUserIDs", mock.Anything, []string{claims.UserID}).
			Return([]models.GarbageCollectorProfile{}, nil)

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/submissions", nil), claims)
		w := httptest.NewRecorder()
		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		submissions.AssertExpectations(t)
	})

	t.Run("manager without a colony gets an empty list", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		managers := new(MockManagerProfiles)
		handler := NewSubmissionHandler(&db.Store{Submissions: submissions, Managers: managers})

		claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleManager}
		managers.On("FindByUserID", mock.Anything, claims.UserID).Return(nil, nil)

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/submissions", nil), claims)
		w := httptest.NewRecorder()
		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
		submissions.AssertNotCalled(t, "FindSubmissions", mock.Anything, mock.Anything)
	})

	t.Run("manager is scoped to their colony", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		managers := new(MockManagerProfiles)
		collectors := new(MockCollectorProfiles)
		handler := NewSubmissionHandler(&db.Store{
			Submissions: submissions,
			Managers:    managers,
			Collectors:  collectors,
		})

		claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleManager}
		managers.On("FindByUserID", mock.Anything, claims.UserID).
			Return(&models.ColonyManagerProfile{UserID: claims.UserID, ColonyName: "Green Park"}, nil)
		submissions.On("FindSubmissions", mock.Anything, mock.MatchedBy(func(spec db.FilterSpec) bool {
			return spec.Equals["colony_name"] == "Green Park"
		})).Return([]models.WasteSubmission{}, nil)
		collectors.On("FindByUserIDs", mock.Anything, mock.Anything).
			Return([]models.GarbageCollectorProfile{}, nil).Maybe()

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/submissions", nil), claims)
		w := httptest.NewRecorder()
		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		submissions.AssertExpectations(t)
	})
}

func TestSubmissionHandler_UpdateStatus(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	t.Run("manager verifies", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		handler := NewSubmissionHandler(&db.Store{Submissions: submissions})

		submissions.On("UpdateStatus", mock.Anything, id, models.StatusVerified).Return(nil)

		claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleManager}
		req := withClaims(postJSON(t, "/api/submissions/status", map[string]string{
			"id": id, "status": models.StatusVerified,
		}), claims)
		w := httptest.NewRecorder()
		handler.UpdateStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		submissions.AssertExpectations(t)
	})

	t.Run("manager cannot process", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		handler := NewSubmissionHandler(&db.Store{Submissions: submissions})

		claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleManager}
		req := withClaims(postJSON(t, "/api/submissions/status", map[string]string{
			"id": id, "status": models.StatusProcessed,
		}), claims)
		w := httptest.NewRecorder()
		handler.UpdateStatus(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		submissions.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("backward transition is a conflict", func(t *testing.T) {
		submissions := new(MockSubmissionCollection)
		handler := NewSubmissionHandler(&db.Store{Submissions: submissions})

		submissions.On("UpdateStatus", mock.Anything, id, models.StatusProcessed).Return(assert.AnError)

		claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleAuthority}
		req := withClaims(postJSON(t, "/api/submissions/status", map[string]string{
			"id": id, "status": models.StatusProcessed,
		}), claims)
		w := httptest.NewRecorder()
		handler.UpdateStatus(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		submissions.AssertExpectations(t)
	})
}
