package service

import (
	"context"
	"errors"
	"testing"

	"dettyclub/internal/model"
	"dettyclub/internal/valuation"
)

func TestListPackagesFallsBackToStyles(t *testing.T) {
	svc := NewCatalogService(&fakePackageRepo{}, testLogger())

	defs, err := svc.ListPackages(context.Background())
	if err != nil {
		t.Fatalf("ListPackages returned error: %v", err)
	}
	styles := valuation.DefaultStyles()
	if len(defs) != len(styles) {
		t.Fatalf("expected %d fallback packages, got %d", len(styles), len(defs))
	}
	if defs[0].Name != styles[0].Name {
		t.Fatalf("expected fallback package %q, got %q", styles[0].Name, defs[0].Name)
	}
}

func TestListPackagesNormalizesRecords(t *testing.T) {
	repo := &fakePackageRepo{records: []model.PackageRecord{{
		ID:                  "p1",
		Name:                "Family Deluxe",
		MonthlyContribution: "₦12,500",
		YearlyContribution:  "150000",
		PackageWorth:        "200000",
		IsActive:            true,
	}}}
	svc := NewCatalogService(repo, testLogger())

	defs, err := svc.ListPackages(context.Background())
	if err != nil {
		t.Fatalf("ListPackages returned error: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 package, got %d", len(defs))
	}
	if got := defs[0].MonthlyAmount.String(); got != "12500" {
		t.Fatalf("expected monthly 12500, got %s", got)
	}
	// Savings absent in the record, recomputed as worth minus yearly.
	if got := defs[0].Savings.String(); got != "50000" {
		t.Fatalf("expected savings 50000, got %s", got)
	}
}

func TestGetPackageNotFound(t *testing.T) {
	svc := NewCatalogService(&fakePackageRepo{}, testLogger())
	if _, err := svc.GetPackage(context.Background(), "missing"); !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestPreviewValueMatchesProgressMath(t *testing.T) {
	repo := &fakePackageRepo{records: []model.PackageRecord{{
		ID:                  "p1",
		Name:                "Basic Box",
		MonthlyContribution: "5000",
		YearlyContribution:  "60000",
		PackageWorth:        "85700",
		IsActive:            true,
	}}}
	svc := NewCatalogService(repo, testLogger())

	summary, err := svc.PreviewValue(context.Background(), "p1", 1, 4)
	if err != nil {
		t.Fatalf("PreviewValue returned error: %v", err)
	}
	if summary.ConfirmedCount != 4 {
		t.Fatalf("expected 4 confirmed periods, got %d", summary.ConfirmedCount)
	}
	if got := summary.TotalContributed.String(); got != "20000" {
		t.Fatalf("expected total contributed 20000, got %s", got)
	}
	if got := summary.CurrentInKindValue.String(); got != "28567" {
		t.Fatalf("expected in-kind value 28567, got %s", got)
	}
}

func TestCreatePackageRejectsBadMoney(t *testing.T) {
	svc := NewCatalogService(&fakePackageRepo{}, testLogger())
	err := svc.CreatePackage(context.Background(), &model.PackageRecord{
		Name:                "Broken",
		MonthlyContribution: "abc",
		PackageWorth:        "200000",
	})
	var parseErr *valuation.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *valuation.ParseError, got %v", err)
	}
	if parseErr.Field != "monthly_contribution" {
		t.Fatalf("expected field monthly_contribution, got %s", parseErr.Field)
	}
}
