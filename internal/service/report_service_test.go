package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"dettyclub/internal/model"
	"dettyclub/internal/valuation"
)

func sampleReport() *BreakdownReport {
	entries := []model.MonthlyBreakdownEntry{
		{
			Month:               1,
			ExpectedTotal:       decimal.NewFromInt(50000),
			TotalCollected:      decimal.NewFromInt(45000),
			Balance:             decimal.NewFromInt(5000),
			ExpectedUsersCount:  10,
			DefaultedUsersCount: 1,
			ProgressPercentage:  decimal.NewFromInt(90),
		},
		{
			Month:               2,
			ExpectedTotal:       decimal.NewFromInt(50000),
			TotalCollected:      decimal.NewFromInt(20000),
			Balance:             decimal.NewFromInt(30000),
			ExpectedUsersCount:  10,
			DefaultedUsersCount: 6,
			ProgressPercentage:  decimal.NewFromInt(40),
		},
	}
	return &BreakdownReport{
		PackageID: "p1",
		Year:      2026,
		Entries:   entries,
		Totals:    valuation.ComputeMonthlyBreakdown(entries),
	}
}

func TestWriteBreakdownCSVRoundTrip(t *testing.T) {
	svc := NewReportService(nil, nil, nil, nil, testLogger())
	report := sampleReport()

	var buf bytes.Buffer
	if err := svc.WriteBreakdownCSV(&buf, report); err != nil {
		t.Fatalf("WriteBreakdownCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read back CSV: %v", err)
	}
	// Header, two months, totals.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Month" {
		t.Fatalf("expected header row, got %v", rows[0])
	}
	if rows[1][2] != "45000" {
		t.Fatalf("expected collected 45000 in month row, got %s", rows[1][2])
	}
	totals := rows[3]
	if totals[0] != "Total" {
		t.Fatalf("expected totals row, got %v", totals)
	}
	if totals[1] != "100000" || totals[2] != "65000" || totals[3] != "35000" {
		t.Fatalf("unexpected totals row: %v", totals)
	}
	if totals[6] != "65" {
		t.Fatalf("expected overall percentage 65, got %s", totals[6])
	}
}

func TestWriteBreakdownXLSXRoundTrip(t *testing.T) {
	svc := NewReportService(nil, nil, nil, nil, testLogger())
	report := sampleReport()

	var buf bytes.Buffer
	if err := svc.WriteBreakdownXLSX(&buf, report); err != nil {
		t.Fatalf("WriteBreakdownXLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "C2")
	if err != nil {
		t.Fatalf("GetCellValue returned error: %v", err)
	}
	if got != "45000" {
		t.Fatalf("expected collected 45000 in C2, got %s", got)
	}
	got, err = f.GetCellValue("Sheet1", "A4")
	if err != nil {
		t.Fatalf("GetCellValue returned error: %v", err)
	}
	if got != "Total" {
		t.Fatalf("expected totals label in A4, got %s", got)
	}
}
