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

// ContributionHandler handles payment record endpoints
type ContributionHandler struct {
	contributionService service.ContributionService
	validate            *validator.Validate
}

// NewContributionHandler creates a new ContributionHandler
func NewContributionHandler(contributionService service.ContributionService, validate *validator.Validate) *ContributionHandler {
	return &ContributionHandler{contributionService: contributionService, validate: validate}
}

// RegisterRoutes mounts contribution routes
func (h *ContributionHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/contributions", authMw(http.HandlerFunc(h.handleContributions)))
	mux.Handle("/me/progress", authMw(http.HandlerFunc(h.getProgress)))
	mux.Handle("/admin/contributions/pending", authMw(middleware.RequireAdmin(http.HandlerFunc(h.listPending))))
	mux.Handle("/admin/contributions/", authMw(middleware.RequireAdmin(http.HandlerFunc(h.handleReview))))
}

func (h *ContributionHandler) handleContributions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.record(w, r)
	case http.MethodGet:
		h.history(w, r)
	default:
		http.NotFound(w, r)
	}
}

// record godoc
// @Summary Record a payment
// @Description Creates a pending contribution on the member's active subscription and returns a presigned receipt upload URL.
// @Tags contributions
// @Accept json
// @Produce json
// @Param contribution body dto.ContributionCreateDTO true "Payment record request"
// @Success 201 {object} dto.ContributionRecordedDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 409 {string} string "No active subscription"
// @Failure 500 {string} string "Failed to record contribution"
// @Router /contributions [post]
func (h *ContributionHandler) record(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.ContributionCreateDTO
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
	if !amount.IsPositive() {
		http.Error(w, "Validation failed: amount must be positive", http.StatusBadRequest)
		return
	}
	c := &model.Contribution{
		UserID: userID,
		Amount: amount,
		Type:   req.Type,
		Month:  req.Month,
		Year:   req.Year,
		Note:   req.Note,
	}
	created, uploadURL, err := h.contributionService.Record(r.Context(), c)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSubscription) {
			http.Error(w, "No active subscription", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to record contribution: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, dto.ContributionRecordedDTO{
		ID:               created.ID,
		Status:           created.Status,
		ReceiptUploadURL: uploadURL,
	})
}

// history godoc
// @Summary List own payment history
// @Description Returns the member's contributions on a package, oldest first.
// @Tags contributions
// @Produce json
// @Param package_id query string true "Package ID"
// @Success 200 {array} model.Contribution
// @Failure 400 {string} string "package_id query param required"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Router /contributions [get]
func (h *ContributionHandler) history(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	packageID := r.URL.Query().Get("package_id")
	if packageID == "" {
		http.Error(w, "package_id query param required", http.StatusBadRequest)
		return
	}
	contribs, err := h.contributionService.History(r.Context(), userID, packageID)
	if err != nil {
		http.Error(w, "Failed to list contributions: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, contribs)
}

// getProgress godoc
// @Summary Get own savings progress
// @Description Computes the member's progress summary on their active subscription.
// @Tags contributions
// @Produce json
// @Success 200 {object} valuation.ProgressSummary
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "No active subscription"
// @Router /me/progress [get]
func (h *ContributionHandler) getProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	summary, err := h.contributionService.GetProgress(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSubscription) {
			http.Error(w, "No active subscription", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to compute progress: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// listPending godoc
// @Summary List pending contributions
// @Description Lists contributions awaiting review, oldest first. Admin only.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size, default 50"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.Contribution
// @Failure 500 {string} string "Failed to list pending contributions"
// @Router /admin/contributions/pending [get]
func (h *ContributionHandler) listPending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, offset := pagination(r, 50)
	contribs, err := h.contributionService.ListPending(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, "Failed to list pending contributions: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, contribs)
}

func (h *ContributionHandler) handleReview(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/contributions/")
	if id, ok := strings.CutSuffix(rest, "/approve"); ok && r.Method == http.MethodPost {
		h.review(w, r, id, true)
		return
	}
	if id, ok := strings.CutSuffix(rest, "/decline"); ok && r.Method == http.MethodPost {
		h.review(w, r, id, false)
		return
	}
	if id, ok := strings.CutSuffix(rest, "/receipt"); ok && r.Method == http.MethodGet {
		h.receiptURL(w, r, id)
		return
	}
	http.NotFound(w, r)
}

// review godoc
// @Summary Approve or decline a contribution
// @Description Confirms or rejects a pending contribution. Only pending records can be reviewed. Admin only.
// @Tags admin
// @Param contributionId path string true "Contribution ID"
// @Success 204 {string} string "No Content"
// @Failure 401 {string} string "Unauthorized: User ID not found in context"
// @Failure 404 {string} string "Contribution not found"
// @Failure 409 {string} string "Contribution is not pending"
// @Router /admin/contributions/{contributionId}/approve [post]
func (h *ContributionHandler) review(w http.ResponseWriter, r *http.Request, id string, approve bool) {
	reviewerID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || reviewerID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var err error
	if approve {
		err = h.contributionService.Approve(r.Context(), id, reviewerID)
	} else {
		err = h.contributionService.Decline(r.Context(), id, reviewerID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContributionNotFound):
			http.Error(w, "Contribution not found", http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidTransition):
			http.Error(w, "Contribution is not pending", http.StatusConflict)
		default:
			http.Error(w, "Failed to review contribution: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// receiptURL godoc
// @Summary Get a receipt download URL
// @Description Generates a short-lived signed URL for a contribution's stored receipt. Admin only.
// @Tags admin
// @Produce json
// @Param contributionId path string true "Contribution ID"
// @Success 200 {object} dto.ReceiptURLDTO
// @Failure 404 {string} string "Contribution not found"
// @Failure 500 {string} string "Failed to generate receipt URL"
// @Router /admin/contributions/{contributionId}/receipt [get]
func (h *ContributionHandler) receiptURL(w http.ResponseWriter, r *http.Request, id string) {
	url, err := h.contributionService.ReceiptDownloadURL(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrContributionNotFound) {
			http.Error(w, "Contribution not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to generate receipt URL: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.ReceiptURLDTO{URL: url})
}
