package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"dettyclub/internal/model"
	"dettyclub/internal/repository"
	"dettyclub/internal/valuation"
)

// ErrPackageNotFound is returned when no package exists for the given id.
var ErrPackageNotFound = errors.New("package_not_found")

// CatalogService exposes the normalized package catalog and value previews.
type CatalogService interface {
	ListPackages(ctx context.Context) ([]model.PackageDefinition, error)
	GetPackage(ctx context.Context, id string) (*model.PackageDefinition, error)
	PreviewValue(ctx context.Context, id string, slots, confirmedCount int) (*valuation.ProgressSummary, error)
	CreatePackage(ctx context.Context, p *model.PackageRecord) error
	UpdatePackage(ctx context.Context, p *model.PackageRecord) error
	SetPackageActive(ctx context.Context, id string, active bool) error
}

type catalogService struct {
	repo   repository.PackageRepository
	styles []model.PackageDefinition
	logger zerolog.Logger
}

// NewCatalogService creates a new CatalogService. The built-in style table
// doubles as the fallback catalog when no package rows exist.
func NewCatalogService(repo repository.PackageRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		styles: valuation.DefaultStyles(),
		logger: logger.With().Str("service", "CatalogService").Logger(),
	}
}

// ListPackages returns active packages normalized against the style table.
func (s *catalogService) ListPackages(ctx context.Context) ([]model.PackageDefinition, error) {
	records, err := s.repo.ListPackages(ctx, true)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list packages")
		return nil, err
	}
	defs, err := valuation.NormalizePackages(records, s.styles)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to normalize packages")
		return nil, err
	}
	return defs, nil
}

func (s *catalogService) GetPackage(ctx context.Context, id string) (*model.PackageDefinition, error) {
	record, err := s.repo.GetPackageByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("package_id", id).Msg("Failed to fetch package")
		return nil, err
	}
	if record == nil {
		return nil, ErrPackageNotFound
	}
	defs, err := valuation.NormalizePackages([]model.PackageRecord{*record}, s.styles)
	if err != nil {
		s.logger.Error().Err(err).Str("package_id", id).Msg("Failed to normalize package")
		return nil, err
	}
	return &defs[0], nil
}

// PreviewValue computes the progress summary a subscriber would see after
// confirmedCount paid periods on the given package.
func (s *catalogService) PreviewValue(ctx context.Context, id string, slots, confirmedCount int) (*valuation.ProgressSummary, error) {
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	if slots < 1 {
		slots = 1
	}
	if confirmedCount < 0 {
		confirmedCount = 0
	}
	perPeriod := pkg.MonthlyAmount.Mul(decimal.NewFromInt(int64(slots)))
	contribs := make([]model.Contribution, confirmedCount)
	for i := range contribs {
		contribs[i] = model.Contribution{
			Amount: perPeriod,
			Status: model.ContributionStatusApproved,
			Type:   model.ContributionTypeSavings,
		}
	}
	summary := valuation.ComputeProgress(contribs, *pkg, slots, valuation.DefaultRequiredPeriods)
	return &summary, nil
}

func (s *catalogService) CreatePackage(ctx context.Context, p *model.PackageRecord) error {
	if err := s.validateMoneyFields(p); err != nil {
		return err
	}
	if err := s.repo.CreatePackage(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("name", p.Name).Msg("Failed to create package")
		return err
	}
	return nil
}

func (s *catalogService) UpdatePackage(ctx context.Context, p *model.PackageRecord) error {
	if err := s.validateMoneyFields(p); err != nil {
		return err
	}
	existing, err := s.repo.GetPackageByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPackageNotFound
	}
	if err := s.repo.UpdatePackage(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("package_id", p.ID).Msg("Failed to update package")
		return err
	}
	return nil
}

func (s *catalogService) SetPackageActive(ctx context.Context, id string, active bool) error {
	if err := s.repo.SetPackageActive(ctx, id, active); err != nil {
		s.logger.Error().Err(err).Str("package_id", id).Msg("Failed to set package active flag")
		return err
	}
	return nil
}

// validateMoneyFields rejects admin input whose money strings would fail
// normalization later, surfacing the *valuation.ParseError at write time.
func (s *catalogService) validateMoneyFields(p *model.PackageRecord) error {
	fields := map[string]string{
		"monthly_contribution": p.MonthlyContribution,
		"yearly_contribution":  p.YearlyContribution,
		"package_worth":        p.PackageWorth,
		"savings_amount":       p.SavingsAmount,
	}
	for field, raw := range fields {
		if _, err := valuation.ParseMoney(field, raw); err != nil {
			return err
		}
	}
	return nil
}
