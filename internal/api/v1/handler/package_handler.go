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
	"dettyclub/internal/valuation"
)

// PackageHandler handles catalog endpoints
type PackageHandler struct {
	catalogService service.CatalogService
	validate       *validator.Validate
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(catalogService service.CatalogService, validate *validator.Validate) *PackageHandler {
	return &PackageHandler{catalogService: catalogService, validate: validate}
}

// RegisterRoutes mounts catalog routes
func (h *PackageHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/packages", authMw(http.HandlerFunc(h.listPackages)))
	mux.Handle("/packages/", authMw(http.HandlerFunc(h.handlePackage)))
	mux.Handle("/admin/packages", authMw(middleware.RequireAdmin(http.HandlerFunc(h.createPackage))))
	mux.Handle("/admin/packages/", authMw(middleware.RequireAdmin(http.HandlerFunc(h.handleAdminPackage))))
}

// listPackages godoc
// @Summary List contribution packages
// @Description Returns the active catalog, normalized and merged with presentation styles.
// @Tags packages
// @Produce json
// @Success 200 {array} model.PackageDefinition
// @Failure 500 {string} string "Failed to list packages"
// @Router /packages [get]
func (h *PackageHandler) listPackages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	defs, err := h.catalogService.ListPackages(r.Context())
	if err != nil {
		http.Error(w, "Failed to list packages: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, defs)
}

func (h *PackageHandler) handlePackage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/packages/")
	if id, ok := strings.CutSuffix(rest, "/preview"); ok {
		h.previewValue(w, r, id)
		return
	}
	h.getPackage(w, r, rest)
}

// getPackage godoc
// @Summary Get a package
// @Description Retrieves one normalized package by its ID.
// @Tags packages
// @Produce json
// @Param packageId path string true "Package ID"
// @Success 200 {object} model.PackageDefinition
// @Failure 404 {string} string "Package not found"
// @Failure 500 {string} string "Failed to retrieve package"
// @Router /packages/{packageId} [get]
func (h *PackageHandler) getPackage(w http.ResponseWriter, r *http.Request, id string) {
	pkg, err := h.catalogService.GetPackage(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			http.Error(w, "Package not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve package: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

// previewValue godoc
// @Summary Preview savings progress
// @Description Computes the progress summary a subscriber would see after the given number of confirmed periods.
// @Tags packages
// @Produce json
// @Param packageId path string true "Package ID"
// @Param slots query int false "Slot count, default 1"
// @Param confirmed query int false "Confirmed period count, default 0"
// @Success 200 {object} valuation.ProgressSummary
// @Failure 404 {string} string "Package not found"
// @Failure 500 {string} string "Failed to compute preview"
// @Router /packages/{packageId}/preview [get]
func (h *PackageHandler) previewValue(w http.ResponseWriter, r *http.Request, id string) {
	slots, _ := strconv.Atoi(r.URL.Query().Get("slots"))
	confirmed, _ := strconv.Atoi(r.URL.Query().Get("confirmed"))
	summary, err := h.catalogService.PreviewValue(r.Context(), id, slots, confirmed)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			http.Error(w, "Package not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to compute preview: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// createPackage godoc
// @Summary Create a package
// @Description Creates a new contribution package. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Param package body dto.PackageWriteDTO true "Package creation request"
// @Success 201 {object} model.PackageRecord
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 500 {string} string "Failed to create package"
// @Router /admin/packages [post]
func (h *PackageHandler) createPackage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	record, ok := h.decodePackage(w, r)
	if !ok {
		return
	}
	if err := h.catalogService.CreatePackage(r.Context(), record); err != nil {
		writePackageError(w, err, "Failed to create package")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *PackageHandler) handleAdminPackage(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/packages/")
	if id, ok := strings.CutSuffix(rest, "/active"); ok && r.Method == http.MethodPatch {
		h.setActive(w, r, id)
		return
	}
	if r.Method == http.MethodPut {
		h.updatePackage(w, r, rest)
		return
	}
	http.NotFound(w, r)
}

// updatePackage godoc
// @Summary Update a package
// @Description Replaces a package's fields. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Param packageId path string true "Package ID"
// @Param package body dto.PackageWriteDTO true "Package update request"
// @Success 200 {object} model.PackageRecord
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Package not found"
// @Failure 500 {string} string "Failed to update package"
// @Router /admin/packages/{packageId} [put]
func (h *PackageHandler) updatePackage(w http.ResponseWriter, r *http.Request, id string) {
	record, ok := h.decodePackage(w, r)
	if !ok {
		return
	}
	record.ID = id
	if err := h.catalogService.UpdatePackage(r.Context(), record); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			http.Error(w, "Package not found", http.StatusNotFound)
			return
		}
		writePackageError(w, err, "Failed to update package")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// setActive godoc
// @Summary Toggle package visibility
// @Description Activates or deactivates a package in the catalog. Admin only.
// @Tags admin
// @Accept json
// @Param packageId path string true "Package ID"
// @Param body body dto.PackageActiveDTO true "Active flag"
// @Success 204 {string} string "No Content"
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 500 {string} string "Failed to update package"
// @Router /admin/packages/{packageId}/active [patch]
func (h *PackageHandler) setActive(w http.ResponseWriter, r *http.Request, id string) {
	var req dto.PackageActiveDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.catalogService.SetPackageActive(r.Context(), id, req.IsActive); err != nil {
		http.Error(w, "Failed to update package: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PackageHandler) decodePackage(w http.ResponseWriter, r *http.Request) (*model.PackageRecord, bool) {
	var req dto.PackageWriteDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return &model.PackageRecord{
		Name:                req.Name,
		Description:         req.Description,
		MonthlyContribution: req.MonthlyContribution,
		YearlyContribution:  req.YearlyContribution,
		PackageWorth:        req.PackageWorth,
		SavingsAmount:       req.SavingsAmount,
		SavingsPercentage:   req.SavingsPercentage,
		Benefits:            req.Benefits,
		Badge:               req.Badge,
		IsActive:            isActive,
	}, true
}

// writePackageError distinguishes bad monetary input from real failures.
func writePackageError(w http.ResponseWriter, err error, msg string) {
	var parseErr *valuation.ParseError
	if errors.As(err, &parseErr) {
		http.Error(w, "Validation failed: "+parseErr.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, msg+": "+err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
