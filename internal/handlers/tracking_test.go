package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTrackingHandler_Report(t *testing.T) {
	t.Run("collector reports a point", func(t *testing.T) {
		tracking := new(MockTrackingCollection)
		handler := NewTrackingHandler(&db.Store{Tracking: tracking})

		claims := collectorClaims()
		tracking.On("InsertPoint", mock.Anything, mock.MatchedBy(func(p models.VehicleTrackingPoint) bool {
			return p.VehicleNumber == "WM-1001" &&
				p.CollectorID == claims.UserID &&
				p.Status == models.TrackingActive
		})).Return(nil)

		req := withClaims(postJSON(t, "/api/tracking", models.VehicleTrackingPoint{
			VehicleNumber: "WM-1001",
			Latitude:      28.6139,
			Longitude:     77.2090,
		}), claims)
		w := httptest.NewRecorder()
		handler.Report(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		tracking.AssertExpectations(t)
	})

	t.Run("invalid vehicle number is rejected", func(t *testing.T) {
		tracking := new(MockTrackingCollection)
		handler := NewTrackingHandler(&db.Store{Tracking: tracking})

		req := withClaims(postJSON(t, "/api/tracking", models.VehicleTrackingPoint{
			VehicleNumber: "X",
		}), collectorClaims())
		w := httptest.NewRecorder()
		handler.Report(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		tracking.AssertNotCalled(t, "InsertPoint", mock.Anything, mock.Anything)
	})
}

func TestTrackingHandler_Latest(t *testing.T) {
	tracking := new(MockTrackingCollection)
	collectors := new(MockCollectorProfiles)
	handler := NewTrackingHandler(&db.Store{Tracking: tracking, Collectors: collectors})

	base := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	// Later point listed first: the fold must pick by timestamp, not order.
	tracking.On("FindPoints", mock.Anything, mock.Anything).Return([]models.VehicleTrackingPoint{
		{VehicleNumber: "WM-1001", CollectorID: "c1", Timestamp: base.Add(10 * time.Minute), Latitude: 28.62},
		{VehicleNumber: "WM-1001", CollectorID: "c1", Timestamp: base, Latitude: 28.61},
		{VehicleNumber: "WM-1002", CollectorID: "c2", Timestamp: base, Latitude: 19.07},
	}, nil)
	collectors.On("FindByUserIDs", mock.Anything, mock.Anything).
		Return([]models.GarbageCollectorProfile{
			{UserID: "c1", PersonalName: "Ravi Kumar", EmployeeID: "GC-1042"},
		}, nil)

	claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleAuthority}
	req := withClaims(httptest.NewRequest(http.MethodGet, "/api/tracking/latest", nil), claims)
	w := httptest.NewRecorder()
	handler.Latest(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]models.TrackingPointWithCollector
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 2)
	assert.Equal(t, 28.62, response["WM-1001"].Latitude)
	assert.Equal(t, "Ravi Kumar", response["WM-1001"].Collector.PersonalName)
	assert.Nil(t, response["WM-1002"].Collector)
	tracking.AssertExpectations(t)
	collectors.AssertExpectations(t)
}
