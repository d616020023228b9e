package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"dettyclub/internal/api/v1/dto"
	"dettyclub/internal/middleware"
	"dettyclub/internal/model"
	"dettyclub/internal/service"
)

// UserHandler handles member profile endpoints
type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{userService: userService, validate: validate}
}

// RegisterRoutes mounts profile routes
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/me", authMw(http.HandlerFunc(h.handleMe)))
	mux.Handle("/admin/users", authMw(middleware.RequireAdmin(http.HandlerFunc(h.listUsers))))
	mux.Handle("/admin/users/", authMw(middleware.RequireAdmin(http.HandlerFunc(h.handleAdminUser))))
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getProfile(w, r)
	case http.MethodPut:
		h.upsertProfile(w, r)
	default:
		http.NotFound(w, r)
	}
}

// getProfile godoc
// @Summary Get own profile
// @Description Returns the authenticated member's profile.
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Profile not found"
// @Router /me [get]
func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	u, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve profile: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// upsertProfile godoc
// @Summary Create or update own profile
// @Description Upserts the authenticated member's profile row.
// @Tags users
// @Accept json
// @Produce json
// @Param profile body dto.UserProfileDTO true "Profile request"
// @Success 200 {object} model.User
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Router /me [put]
func (h *UserHandler) upsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.UserProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	u := &model.User{
		UserID:    userID,
		Name:      req.Name,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	}
	if err := h.userService.EnsureProfile(r.Context(), u); err != nil {
		http.Error(w, "Failed to save profile: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// listUsers godoc
// @Summary List members
// @Description Lists member profiles with optional name or email search. Admin only.
// @Tags admin
// @Produce json
// @Param search query string false "Name or email substring"
// @Param limit query int false "Page size, default 50"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.User
// @Failure 500 {string} string "Failed to list users"
// @Router /admin/users [get]
func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, offset := pagination(r, 50)
	users, err := h.userService.List(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		http.Error(w, "Failed to list users: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// setUserStatus godoc
// @Summary Suspend or reactivate a member
// @Description Sets a member's account status. Admin only.
// @Tags admin
// @Accept json
// @Param userId path string true "User ID"
// @Param body body dto.UserStatusDTO true "Status request"
// @Success 204 {string} string "No Content"
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 500 {string} string "Failed to set user status"
// @Router /admin/users/{userId}/status [patch]
func (h *UserHandler) handleAdminUser(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/users/")
	id, ok := strings.CutSuffix(rest, "/status")
	if !ok || r.Method != http.MethodPatch {
		http.NotFound(w, r)
		return
	}
	var req dto.UserStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.userService.SetStatus(r.Context(), id, req.Status); err != nil {
		http.Error(w, "Failed to set user status: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pagination parses limit and offset query params with a default page size.
func pagination(r *http.Request, defaultLimit int) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
