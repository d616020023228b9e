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
)

// AnnouncementHandler handles announcement endpoints
type AnnouncementHandler struct {
	announcementService service.AnnouncementService
	validate            *validator.Validate
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(announcementService service.AnnouncementService, validate *validator.Validate) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService, validate: validate}
}

// RegisterRoutes mounts announcement routes
func (h *AnnouncementHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/announcements", authMw(http.HandlerFunc(h.listActive)))
	mux.Handle("/admin/announcements", authMw(middleware.RequireAdmin(http.HandlerFunc(h.handleAdminCollection))))
	mux.Handle("/admin/announcements/", authMw(middleware.RequireAdmin(http.HandlerFunc(h.handleAdminItem))))
}

// listActive godoc
// @Summary List active announcements
// @Description Returns visible announcements, pinned ones first.
// @Tags announcements
// @Produce json
// @Param limit query int false "Page size, default 20"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.Announcement
// @Failure 500 {string} string "Failed to list announcements"
// @Router /announcements [get]
func (h *AnnouncementHandler) listActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, offset := pagination(r, 20)
	anns, err := h.announcementService.ListActive(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, "Failed to list announcements: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, anns)
}

func (h *AnnouncementHandler) handleAdminCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listAll(w, r)
	case http.MethodPost:
		h.publish(w, r)
	default:
		http.NotFound(w, r)
	}
}

// listAll godoc
// @Summary List all announcements
// @Description Lists announcements including inactive ones. Admin only.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size, default 20"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.Announcement
// @Failure 500 {string} string "Failed to list announcements"
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) listAll(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 20)
	anns, err := h.announcementService.ListAll(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, "Failed to list announcements: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, anns)
}

// publish godoc
// @Summary Publish an announcement
// @Description Creates a new announcement and notifies members. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Param announcement body dto.AnnouncementWriteDTO true "Announcement request"
// @Success 201 {object} model.Announcement
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 500 {string} string "Failed to create announcement"
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	a := &model.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		Pinned:    req.Pinned,
		Active:    active,
		CreatedBy: userID,
	}
	if err := h.announcementService.Publish(r.Context(), a); err != nil {
		http.Error(w, "Failed to create announcement: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AnnouncementHandler) handleAdminItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/announcements/")
	if id, ok := strings.CutSuffix(rest, "/pin"); ok && r.Method == http.MethodPatch {
		h.setPinned(w, r, id)
		return
	}
	switch r.Method {
	case http.MethodPut:
		h.update(w, r, rest)
	case http.MethodDelete:
		h.delete(w, r, rest)
	default:
		http.NotFound(w, r)
	}
}

// update godoc
// @Summary Update an announcement
// @Description Replaces an announcement's title, body and visibility. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Param announcementId path string true "Announcement ID"
// @Param announcement body dto.AnnouncementWriteDTO true "Announcement request"
// @Success 200 {object} model.Announcement
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Announcement not found"
// @Router /admin/announcements/{announcementId} [put]
func (h *AnnouncementHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	a := &model.Announcement{
		ID:     id,
		Title:  req.Title,
		Body:   req.Body,
		Active: active,
	}
	if err := h.announcementService.Update(r.Context(), a); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			http.Error(w, "Announcement not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update announcement: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// delete godoc
// @Summary Delete an announcement
// @Description Removes an announcement. Admin only.
// @Tags admin
// @Param announcementId path string true "Announcement ID"
// @Success 204 {string} string "No Content"
// @Failure 500 {string} string "Failed to delete announcement"
// @Router /admin/announcements/{announcementId} [delete]
func (h *AnnouncementHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.announcementService.Delete(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete announcement: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// setPinned godoc
// @Summary Pin or unpin an announcement
// @Description Toggles the pinned flag. Pinning only affects ordering, not visibility. Admin only.
// @Tags admin
// @Accept json
// @Param announcementId path string true "Announcement ID"
// @Param body body dto.PinDTO true "Pin request"
// @Success 204 {string} string "No Content"
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 500 {string} string "Failed to pin announcement"
// @Router /admin/announcements/{announcementId}/pin [patch]
func (h *AnnouncementHandler) setPinned(w http.ResponseWriter, r *http.Request, id string) {
	var req dto.PinDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.announcementService.SetPinned(r.Context(), id, req.Pinned); err != nil {
		http.Error(w, "Failed to pin announcement: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AnnouncementHandler) decode(w http.ResponseWriter, r *http.Request) (*dto.AnnouncementWriteDTO, bool) {
	var req dto.AnnouncementWriteDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}
