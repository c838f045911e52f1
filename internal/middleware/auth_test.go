package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swachhdev/waste-collect/internal/auth"
	"github.com/swachhdev/waste-collect/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestMiddleware(t *testing.T) (*AuthMiddleware, *auth.Service) {
	service, err := auth.NewService()
	assert.NoError(t, err)
	return NewAuthMiddleware(service), service
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m, _ := newTestMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	w := httptest.NewRecorder()
	m.Authenticate(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	m, _ := newTestMiddleware(t)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	m.Authenticate(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	m, service := newTestMiddleware(t)

	user := &models.User{ID: primitive.NewObjectID(), Email: "c@x.in", Role: models.RoleCollector}
	token, err := service.GenerateToken(user)
	assert.NoError(t, err)

	var captured *models.Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	m.Authenticate(inner).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, captured)
	assert.Equal(t, models.RoleCollector, captured.Role)
}

func TestAuthenticate_SkipsPublicPaths(t *testing.T) {
	m, _ := newTestMiddleware(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	w := httptest.NewRecorder()
	m.Authenticate(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	m, service := newTestMiddleware(t)

	user := &models.User{ID: primitive.NewObjectID(), Email: "m@x.in", Role: models.RoleManager}
	token, _ := service.GenerateToken(user)

	guarded := m.Authenticate(m.RequireRole(models.RoleManager)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/manager/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Roles are disjoint: a manager token cannot reach authority routes.
	guarded = m.Authenticate(m.RequireRole(models.RoleAuthority)(okHandler()))
	req = httptest.NewRequest(http.MethodGet, "/api/authority/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	guarded.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAnyRole(t *testing.T) {
	m, service := newTestMiddleware(t)

	manager := &models.User{ID: primitive.NewObjectID(), Email: "m@x.in", Role: models.RoleManager}
	collector := &models.User{ID: primitive.NewObjectID(), Email: "c@x.in", Role: models.RoleCollector}
	managerToken, _ := service.GenerateToken(manager)
	collectorToken, _ := service.GenerateToken(collector)

	guarded := m.Authenticate(m.RequireAnyRole(models.RoleManager, models.RoleAuthority)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/tracking", nil)
	req.Header.Set("Authorization", "Bearer "+managerToken)
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/tracking", nil)
	req.Header.Set("Authorization", "Bearer "+collectorToken)
	w = httptest.NewRecorder()
	guarded.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
