package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"dettyclub/internal/model"
	"dettyclub/internal/repository"
	"dettyclub/internal/valuation"
)

// BreakdownReport bundles the per-month rows with their fold for the admin
// overview screen and the export endpoints.
type BreakdownReport struct {
	PackageID string                        `json:"package_id"`
	Year      int                           `json:"year"`
	Entries   []model.MonthlyBreakdownEntry `json:"entries"`
	Totals    valuation.BreakdownTotals     `json:"totals"`
}

// ReportService defines the admin reporting surface.
type ReportService interface {
	MonthlyBreakdown(ctx context.Context, packageID string, year int) (*BreakdownReport, error)
	PackageSummary(ctx context.Context, packageID string) (*valuation.PackageSummary, error)
	WriteBreakdownCSV(w io.Writer, report *BreakdownReport) error
	WriteBreakdownXLSX(w io.Writer, report *BreakdownReport) error
}

type reportService struct {
	repo             repository.ReportRepository
	subRepo          repository.SubscriptionRepository
	contributionRepo repository.ContributionRepository
	catalog          CatalogService
	logger           zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	repo repository.ReportRepository,
	subRepo repository.SubscriptionRepository,
	contributionRepo repository.ContributionRepository,
	catalog CatalogService,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		repo:             repo,
		subRepo:          subRepo,
		contributionRepo: contributionRepo,
		catalog:          catalog,
		logger:           logger.With().Str("service", "ReportService").Logger(),
	}
}

// MonthlyBreakdown returns the expected-vs-collected rows for one package
// and year, with per-month percentages and the overall fold filled in.
func (s *reportService) MonthlyBreakdown(ctx context.Context, packageID string, year int) (*BreakdownReport, error) {
	if _, err := s.catalog.GetPackage(ctx, packageID); err != nil {
		return nil, err
	}
	entries, err := s.repo.MonthlyBreakdown(ctx, packageID, year)
	if err != nil {
		s.logger.Error().Err(err).Str("package_id", packageID).Int("year", year).Msg("Failed to compute monthly breakdown")
		return nil, err
	}
	for i := range entries {
		entries[i].ProgressPercentage = valuation.PercentOf(entries[i].TotalCollected, entries[i].ExpectedTotal)
	}
	return &BreakdownReport{
		PackageID: packageID,
		Year:      year,
		Entries:   entries,
		Totals:    valuation.ComputeMonthlyBreakdown(entries),
	}, nil
}

// PackageSummary rolls up one package. The maintained stats row wins when
// present; otherwise the summary is folded from raw records.
func (s *reportService) PackageSummary(ctx context.Context, packageID string) (*valuation.PackageSummary, error) {
	pkg, err := s.catalog.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.GetPackageStats(ctx, packageID)
	if err != nil {
		s.logger.Error().Err(err).Str("package_id", packageID).Msg("Failed to fetch package stats")
		return nil, err
	}

	var subs []model.Subscription
	var contribs []model.Contribution
	subs, err = s.subRepo.ListByPackage(ctx, packageID, 10000, 0)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		contribs, err = s.contributionRepo.ListByPackageAndYear(ctx, packageID, currentClubYear())
		if err != nil {
			return nil, err
		}
	}

	summary := valuation.ComputePackageSummary(subs, contribs, *pkg, stats)
	return &summary, nil
}

// currentClubYear is the contribution year reports default to when no
// maintained stats row narrows the window.
func currentClubYear() int {
	return time.Now().Year()
}

var breakdownHeader = []string{
	"Month", "Expected", "Collected", "Balance", "Expected Members", "Defaulted Members", "Progress %",
}

// WriteBreakdownCSV streams the report as CSV, one row per month plus a
// totals row.
func (s *reportService) WriteBreakdownCSV(w io.Writer, report *BreakdownReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(breakdownHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range report.Entries {
		row := []string{
			strconv.Itoa(e.Month),
			e.ExpectedTotal.String(),
			e.TotalCollected.String(),
			e.Balance.String(),
			strconv.Itoa(e.ExpectedUsersCount),
			strconv.Itoa(e.DefaultedUsersCount),
			e.ProgressPercentage.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for month %d: %w", e.Month, err)
		}
	}
	totals := []string{
		"Total",
		report.Totals.TotalExpected.String(),
		report.Totals.TotalCollected.String(),
		report.Totals.TotalBalance.String(),
		"", "",
		report.Totals.OverallProgressPercentage.String(),
	}
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("write csv totals row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteBreakdownXLSX writes the report as a single-sheet workbook.
func (s *reportService) WriteBreakdownXLSX(w io.Writer, report *BreakdownReport) error {
	f := excelize.NewFile()
	const sheet = "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	col := 'A'
	for _, h := range breakdownHeader {
		f.SetCellValue(sheet, string(col)+"1", h)
		col++
	}

	for i, e := range report.Entries {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+row, e.Month)
		f.SetCellValue(sheet, "B"+row, e.ExpectedTotal.String())
		f.SetCellValue(sheet, "C"+row, e.TotalCollected.String())
		f.SetCellValue(sheet, "D"+row, e.Balance.String())
		f.SetCellValue(sheet, "E"+row, e.ExpectedUsersCount)
		f.SetCellValue(sheet, "F"+row, e.DefaultedUsersCount)
		f.SetCellValue(sheet, "G"+row, e.ProgressPercentage.String())
	}

	totalsRow := fmt.Sprint(len(report.Entries) + 2)
	f.SetCellValue(sheet, "A"+totalsRow, "Total")
	f.SetCellValue(sheet, "B"+totalsRow, report.Totals.TotalExpected.String())
	f.SetCellValue(sheet, "C"+totalsRow, report.Totals.TotalCollected.String())
	f.SetCellValue(sheet, "D"+totalsRow, report.Totals.TotalBalance.String())
	f.SetCellValue(sheet, "G"+totalsRow, report.Totals.OverallProgressPercentage.String())

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
