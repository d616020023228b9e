// Command seed-catalog inserts the built-in package catalog into an empty
// database. Running it against a database that already has packages is a
// no-op.
package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"dettyclub/internal/config"
	"dettyclub/internal/logger"
	"dettyclub/internal/model"
	"dettyclub/internal/repository"
	"dettyclub/internal/valuation"
)

func main() {
	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DBConnectionString)
	if err != nil {
		logger.Fatal().Msgf("Failed to open DB pool: %v", err)
	}
	defer pool.Close()

	repo := repository.NewPackageRepo(pool)
	existing, err := repo.ListPackages(ctx, false)
	if err != nil {
		logger.Fatal().Msgf("Failed to list packages: %v", err)
	}
	if len(existing) > 0 {
		logger.Info().Int("count", len(existing)).Msg("Packages already present, nothing to seed")
		return
	}

	for _, def := range valuation.DefaultStyles() {
		record := &model.PackageRecord{
			Name:                def.Name,
			Description:         def.Description,
			MonthlyContribution: def.MonthlyAmount.String(),
			YearlyContribution:  def.YearlyTotal.String(),
			PackageWorth:        def.EstimatedRetailValue.String(),
			SavingsAmount:       def.Savings.String(),
			SavingsPercentage:   def.SavingsPercent.String(),
			Benefits:            def.Benefits,
			Badge:               def.Badge,
			IsActive:            true,
		}
		if err := repo.CreatePackage(ctx, record); err != nil {
			logger.Fatal().Msgf("Failed to seed package %s: %v", def.Name, err)
		}
		logger.Info().Str("id", record.ID).Str("name", record.Name).Msg("Seeded package")
	}
	logger.Info().Msg("Catalog seeded")
}
