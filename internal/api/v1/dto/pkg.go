package dto

// PackageWriteDTO is used for incoming admin package create and update
// requests. Monetary fields arrive as decimal strings and may carry
// currency formatting; they are validated by the valuation parser, not
// here.
type PackageWriteDTO struct {
	Name                string   `json:"name" validate:"required"`
	Description         string   `json:"description,omitempty"`
	MonthlyContribution string   `json:"monthly_contribution" validate:"required"`
	YearlyContribution  string   `json:"yearly_contribution,omitempty"`
	PackageWorth        string   `json:"package_worth" validate:"required"`
	SavingsAmount       string   `json:"savings_amount,omitempty"`
	SavingsPercentage   string   `json:"savings_percentage,omitempty"`
	Benefits            []string `json:"benefits,omitempty"`
	Badge               string   `json:"badge,omitempty"`
	IsActive            *bool    `json:"is_active,omitempty"`
}

// PackageActiveDTO toggles a package's visibility in the catalog
type PackageActiveDTO struct {
	IsActive bool `json:"is_active"`
}

// PreviewQueryDTO is the parsed query for the value preview endpoint
type PreviewQueryDTO struct {
	Slots          int `json:"slots" validate:"omitempty,min=1"`
	ConfirmedCount int `json:"confirmed_count" validate:"omitempty,min=0"`
}
