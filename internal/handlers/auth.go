package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/swachhdev/waste-collect/internal/auth"
	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/middleware"
	"github.com/swachhdev/waste-collect/internal/models"
	"github.com/swachhdev/waste-collect/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *auth.Service
	store       *db.Store
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, store *db.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// Register handles account registration. Creating an account is a two-step
// write: the user record, then an empty role profile. The steps are not
// transactional, so a failed profile insert compensates by deleting the user
// record instead of leaving a half-registered account behind.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req models.RegisterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	errs := map[string]string{}
	if err := validation.ValidateEmail(req.Email); err != nil {
		errs["email"] = err.Error()
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		errs["password"] = err.Error()
	}
	if err := validation.ValidateConfirmPassword(req.Password, req.ConfirmPassword); err != nil {
		errs["confirm_password"] = err.Error()
	}
	if !models.IsValidRole(req.Role) {
		errs["role"] = "Please select a valid role"
	}
	if len(errs) > 0 {
		writeValidationErrors(w, validation.Result{IsValid: false, Errors: errs})
		return
	}

	if _, err := h.store.Users.FindUserByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusConflict, "Email already exists")
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.store.Users.InsertUser(r.Context(), user); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if err := h.createEmptyProfile(r, user); err != nil {
		log.WithError(err).WithField("user_id", user.ID.Hex()).Error("profile creation failed, compensating")
		if delErr := h.store.Users.DeleteUser(r.Context(), user.ID.Hex()); delErr != nil {
			// Compensation itself failed; the account is now inconsistent.
			log.WithError(delErr).WithField("user_id", user.ID.Hex()).Error("compensation delete failed")
		}
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	token, err := h.authService.GenerateToken(&user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	refreshToken, err := h.authService.GenerateRefreshToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	writeJSON(w, http.StatusCreated, models.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// createEmptyProfile seeds the role-specific profile record so the profile
// screen can load an empty default immediately after signup.
func (h *AuthHandler) createEmptyProfile(r *http.Request, user models.User) error {
	userID := user.ID.Hex()
	switch user.Role {
	case models.RoleCollector:
		return h.store.Collectors.Upsert(r.Context(), models.GarbageCollectorProfile{UserID: userID})
	case models.RoleManager:
		return h.store.Managers.Upsert(r.Context(), models.ColonyManagerProfile{UserID: userID, Email: user.Email})
	case models.RoleAuthority:
		return h.store.Authorities.Upsert(r.Context(), models.GovernmentAuthorityProfile{UserID: userID, Email: user.Email})
	}
	return nil
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req models.LoginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.store.Users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive {
		writeError(w, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	if !h.authService.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	refreshToken, err := h.authService.GenerateRefreshToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	if err := h.store.Users.UpdateLastLogin(r.Context(), user.ID.Hex()); err != nil {
		log.WithError(err).Warn("failed to update last login")
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         *user,
	})
}

// Me returns the authenticated user's account and role, which the client's
// role router uses to pick a screen domain.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	user, err := h.store.Users.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
