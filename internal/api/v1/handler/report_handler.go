package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dettyclub/internal/middleware"
	"dettyclub/internal/service"
)

// ReportHandler handles admin reporting endpoints
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes mounts reporting routes
func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/admin/reports/breakdown", authMw(middleware.RequireAdmin(http.HandlerFunc(h.breakdown))))
	mux.Handle("/admin/reports/packages/", authMw(middleware.RequireAdmin(http.HandlerFunc(h.packageSummary))))
}

// breakdown godoc
// @Summary Monthly contribution breakdown
// @Description Returns per-month expected-vs-collected figures for a package and year. Use format=csv or format=xlsx for a file download. Admin only.
// @Tags admin
// @Produce json
// @Param package_id query string true "Package ID"
// @Param year query int false "Calendar year, default current"
// @Param format query string false "json, csv or xlsx"
// @Success 200 {object} service.BreakdownReport
// @Failure 400 {string} string "package_id query param required"
// @Failure 404 {string} string "Package not found"
// @Failure 500 {string} string "Failed to compute breakdown"
// @Router /admin/reports/breakdown [get]
func (h *ReportHandler) breakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	packageID := r.URL.Query().Get("package_id")
	if packageID == "" {
		http.Error(w, "package_id query param required", http.StatusBadRequest)
		return
	}
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		year = time.Now().Year()
	}
	report, err := h.reportService.MonthlyBreakdown(r.Context(), packageID, year)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			http.Error(w, "Package not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to compute breakdown: "+err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=breakdown-%d.csv", year))
		if err := h.reportService.WriteBreakdownCSV(w, report); err != nil {
			http.Error(w, "Failed to write file", http.StatusInternalServerError)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=breakdown-%d.xlsx", year))
		if err := h.reportService.WriteBreakdownXLSX(w, report); err != nil {
			http.Error(w, "Failed to write file", http.StatusInternalServerError)
		}
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

// packageSummary godoc
// @Summary Package rollup
// @Description Returns member count, slots and collection progress for one package. Admin only.
// @Tags admin
// @Produce json
// @Param packageId path string true "Package ID"
// @Success 200 {object} valuation.PackageSummary
// @Failure 404 {string} string "Package not found"
// @Failure 500 {string} string "Failed to compute summary"
// @Router /admin/reports/packages/{packageId}/summary [get]
func (h *ReportHandler) packageSummary(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/reports/packages/")
	id, ok := strings.CutSuffix(rest, "/summary")
	if !ok || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	summary, err := h.reportService.PackageSummary(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			http.Error(w, "Package not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to compute summary: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
