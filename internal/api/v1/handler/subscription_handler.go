package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"dettyclub/internal/api/v1/dto"
	"dettyclub/internal/middleware"
	"dettyclub/internal/service"
)

// SubscriptionHandler handles subscription endpoints
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
	validate            *validator.Validate
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService service.SubscriptionService, validate *validator.Validate) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService, validate: validate}
}

// RegisterRoutes mounts subscription routes
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/subscriptions", authMw(http.HandlerFunc(h.subscribe)))
	mux.Handle("/subscriptions/me", authMw(http.HandlerFunc(h.current)))
	mux.Handle("/subscriptions/me/slots", authMw(http.HandlerFunc(h.changeSlots)))
	mux.Handle("/admin/subscriptions", authMw(middleware.RequireAdmin(http.HandlerFunc(h.listByPackage))))
	mux.Handle("/admin/subscriptions/", authMw(middleware.RequireAdmin(http.HandlerFunc(h.setStatus))))
}

// subscribe godoc
// @Summary Subscribe to a package
// @Description Opens an active subscription on a package. One live subscription per member.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.SubscribeDTO true "Subscription request"
// @Success 201 {object} model.Subscription
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Package not found"
// @Failure 409 {string} string "Already subscribed"
// @Router /subscriptions [post]
func (h *SubscriptionHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.SubscribeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	sub, err := h.subscriptionService.Subscribe(r.Context(), userID, req.PackageID, req.Slots)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySubscribed):
			http.Error(w, "Already subscribed", http.StatusConflict)
		case errors.Is(err, service.ErrPackageNotFound):
			http.Error(w, "Package not found", http.StatusNotFound)
		default:
			http.Error(w, "Failed to subscribe: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// current godoc
// @Summary Get own subscription
// @Description Returns the authenticated member's live subscription.
// @Tags subscriptions
// @Produce json
// @Success 200 {object} model.Subscription
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "No active subscription"
// @Router /subscriptions/me [get]
func (h *SubscriptionHandler) current(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	sub, err := h.subscriptionService.Current(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			http.Error(w, "No active subscription", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve subscription: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// changeSlots godoc
// @Summary Change slot count
// @Description Adjusts the slot count on the member's live subscription.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param body body dto.SlotsDTO true "Slot count request"
// @Success 200 {object} model.Subscription
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "No active subscription"
// @Router /subscriptions/me/slots [patch]
func (h *SubscriptionHandler) changeSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.NotFound(w, r)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.SlotsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	sub, err := h.subscriptionService.ChangeSlots(r.Context(), userID, req.Slots)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			http.Error(w, "No active subscription", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to change slots: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// listByPackage godoc
// @Summary List subscriptions for a package
// @Description Lists subscriptions on a package. Admin only.
// @Tags admin
// @Produce json
// @Param package_id query string true "Package ID"
// @Param limit query int false "Page size, default 50"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.Subscription
// @Failure 400 {string} string "package_id query param required"
// @Failure 500 {string} string "Failed to list subscriptions"
// @Router /admin/subscriptions [get]
func (h *SubscriptionHandler) listByPackage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	packageID := r.URL.Query().Get("package_id")
	if packageID == "" {
		http.Error(w, "package_id query param required", http.StatusBadRequest)
		return
	}
	limit, offset := pagination(r, 50)
	subs, err := h.subscriptionService.ListByPackage(r.Context(), packageID, limit, offset)
	if err != nil {
		http.Error(w, "Failed to list subscriptions: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// setStatus godoc
// @Summary Set subscription status
// @Description Moves a subscription between active, reserved, suspended and inactive. Admin only.
// @Tags admin
// @Accept json
// @Param subscriptionId path string true "Subscription ID"
// @Param body body dto.SubscriptionStatusDTO true "Status request"
// @Success 204 {string} string "No Content"
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Subscription not found"
// @Router /admin/subscriptions/{subscriptionId}/status [patch]
func (h *SubscriptionHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/subscriptions/")
	id, ok := strings.CutSuffix(rest, "/status")
	if !ok || r.Method != http.MethodPatch {
		http.NotFound(w, r)
		return
	}
	var req dto.SubscriptionStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.subscriptionService.SetStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			http.Error(w, "Subscription not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to set subscription status: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
