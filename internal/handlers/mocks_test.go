package handlers

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/middleware"
	"github.com/swachhdev/waste-collect/internal/models"
)

// MockUserCollection is a mock implementation of db.UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserCollection) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserCollection) RoleOf(ctx context.Context, id string) (models.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Role), args.Error(1)
}

// MockSubmissionCollection is a mock implementation of db.SubmissionCollection
type MockSubmissionCollection struct {
	mock.Mock
}

func (m *MockSubmissionCollection) InsertSubmission(ctx context.Context, sub models.WasteSubmission) (string, error) {
	args := m.Called(ctx, sub)
	return args.String(0), args.Error(1)
}

func (m *MockSubmissionCollection) FindSubmissions(ctx context.Context, spec db.FilterSpec) ([]models.WasteSubmission, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WasteSubmission), args.Error(1)
}

func (m *MockSubmissionCollection) CountSubmissions(ctx context.Context, spec db.FilterSpec) (int64, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubmissionCollection) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockCollectorProfiles is a mock implementation of db.CollectorProfileCollection
type MockCollectorProfiles struct {
	mock.Mock
}

func (m *MockCollectorProfiles) Upsert(ctx context.Context, profile models.GarbageCollectorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCollectorProfiles) FindByUserID(ctx context.Context, userID string) (*models.GarbageCollectorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GarbageCollectorProfile), args.Error(1)
}

func (m *MockCollectorProfiles) FindByUserIDs(ctx context.Context, userIDs []string) ([]models.GarbageCollectorProfile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GarbageCollectorProfile), args.Error(1)
}

// MockManagerProfiles is a mock implementation of db.ManagerProfileCollection
type MockManagerProfiles struct {
	mock.Mock
}

func (m *MockManagerProfiles) Upsert(ctx context.Context, profile models.ColonyManagerProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockManagerProfiles) FindByUserID(ctx context.Context, userID string) (*models.ColonyManagerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ColonyManagerProfile), args.Error(1)
}

func (m *MockManagerProfiles) FindByColonyNames(ctx context.Context, names []string) ([]models.ColonyManagerProfile, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ColonyManagerProfile), args.Error(1)
}

// MockAuthorityProfiles is a mock implementation of db.AuthorityProfileCollection
type MockAuthorityProfiles struct {
	mock.Mock
}

func (m *MockAuthorityProfiles) Upsert(ctx context.Context, profile models.GovernmentAuthorityProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockAuthorityProfiles) FindByUserID(ctx context.Context, userID string) (*models.GovernmentAuthorityProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GovernmentAuthorityProfile), args.Error(1)
}

// MockTrackingCollection is a mock implementation of db.TrackingCollection
type MockTrackingCollection struct {
	mock.Mock
}

func (m *MockTrackingCollection) InsertPoint(ctx context.Context, point models.VehicleTrackingPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockTrackingCollection) FindPoints(ctx context.Context, spec db.FilterSpec) ([]models.VehicleTrackingPoint, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VehicleTrackingPoint), args.Error(1)
}

// withClaims attaches auth claims to a request the way the middleware does.
func withClaims(req *http.Request, claims *models.Claims) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}
