package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"dettyclub/internal/api/v1/dto"
	"dettyclub/internal/middleware"
	"dettyclub/internal/model"
	"dettyclub/internal/service"
	"dettyclub/internal/valuation"
)

// DeliveryHandler handles delivery preference and fee endpoints
type DeliveryHandler struct {
	deliveryService service.DeliveryService
	validate        *validator.Validate
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService service.DeliveryService, validate *validator.Validate) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService, validate: validate}
}

// RegisterRoutes mounts delivery routes
func (h *DeliveryHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/delivery/preference", authMw(http.HandlerFunc(h.handlePreference)))
	mux.Handle("/delivery/fees", authMw(http.HandlerFunc(h.listFees)))
	mux.Handle("/delivery/fees/", authMw(http.HandlerFunc(h.getFee)))
	mux.Handle("/admin/delivery/fees", authMw(middleware.RequireAdmin(http.HandlerFunc(h.upsertFee))))
	mux.Handle("/admin/delivery/fees/", authMw(middleware.RequireAdmin(http.HandlerFunc(h.deleteFee))))
}

func (h *DeliveryHandler) handlePreference(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getPreference(w, r)
	case http.MethodPut:
		h.setPreference(w, r)
	default:
		http.NotFound(w, r)
	}
}

// getPreference godoc
// @Summary Get own delivery preference
// @Description Returns the member's delivery preference, defaulting to pickup.
// @Tags delivery
// @Produce json
// @Success 200 {object} model.DeliveryPreference
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Router /delivery/preference [get]
func (h *DeliveryHandler) getPreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	pref, err := h.deliveryService.GetPreference(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to retrieve delivery preference: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, pref)
}

// setPreference godoc
// @Summary Set own delivery preference
// @Description Saves the member's handover choice. Once a delivery fee is paid the method and state are locked.
// @Tags delivery
// @Accept json
// @Produce json
// @Param preference body dto.DeliveryPreferenceDTO true "Preference request"
// @Success 200 {object} model.DeliveryPreference
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 409 {string} string "Delivery preference is locked"
// @Router /delivery/preference [put]
func (h *DeliveryHandler) setPreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.DeliveryPreferenceDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	pref := &model.DeliveryPreference{
		UserID:      userID,
		Method:      req.Method,
		AddressLine: req.AddressLine,
		City:        req.City,
		State:       req.State,
		Phone:       req.Phone,
	}
	if err := h.deliveryService.SetPreference(r.Context(), pref); err != nil {
		if errors.Is(err, service.ErrDeliveryLocked) {
			http.Error(w, "Delivery preference is locked", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to save delivery preference: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, pref)
}

// listFees godoc
// @Summary List delivery fees
// @Description Returns the per-state delivery fee table.
// @Tags delivery
// @Produce json
// @Success 200 {array} model.DeliveryFee
// @Failure 500 {string} string "Failed to list delivery fees"
// @Router /delivery/fees [get]
func (h *DeliveryHandler) listFees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	fees, err := h.deliveryService.ListFees(r.Context())
	if err != nil {
		http.Error(w, "Failed to list delivery fees: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, fees)
}

// getFee godoc
// @Summary Get the fee for a state
// @Description Returns the delivery fee for one state.
// @Tags delivery
// @Produce json
// @Param state path string true "State name"
// @Success 200 {object} model.DeliveryFee
// @Failure 404 {string} string "No delivery fee for state"
// @Router /delivery/fees/{state} [get]
func (h *DeliveryHandler) getFee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	state := strings.TrimPrefix(r.URL.Path, "/delivery/fees/")
	fee, err := h.deliveryService.FeeForState(r.Context(), state)
	if err != nil {
		if errors.Is(err, service.ErrFeeNotFound) {
			http.Error(w, "No delivery fee for state", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve delivery fee: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, fee)
}

// upsertFee godoc
// @Summary Create or update a delivery fee
// @Description Upserts the fee for a state. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Param fee body dto.DeliveryFeeDTO true "Fee request"
// @Success 200 {object} model.DeliveryFee
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 500 {string} string "Failed to save delivery fee"
// @Router /admin/delivery/fees [put]
func (h *DeliveryHandler) upsertFee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.DeliveryFeeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	amount, err := valuation.ParseMoney("amount", req.Amount)
	if err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	fee := &model.DeliveryFee{State: req.State, Amount: amount}
	if err := h.deliveryService.UpsertFee(r.Context(), fee); err != nil {
		http.Error(w, "Failed to save delivery fee: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, fee)
}

// deleteFee godoc
// @Summary Delete a delivery fee
// @Description Removes the fee row for a state. Admin only.
// @Tags admin
// @Param state path string true "State name"
// @Success 204 {string} string "No Content"
// @Failure 500 {string} string "Failed to delete delivery fee"
// @Router /admin/delivery/fees/{state} [delete]
func (h *DeliveryHandler) deleteFee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	state := strings.TrimPrefix(r.URL.Path, "/admin/delivery/fees/")
	if err := h.deliveryService.DeleteFee(r.Context(), state); err != nil {
		http.Error(w, "Failed to delete delivery fee: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
