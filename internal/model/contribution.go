package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution statuses. "confirmed" and "success" are legacy spellings of
// approved kept for records imported from the old payment provider.
const (
	ContributionStatusPending   = "pending"
	ContributionStatusApproved  = "approved"
	ContributionStatusConfirmed = "confirmed"
	ContributionStatusSuccess   = "success"
	ContributionStatusDeclined  = "declined"
	ContributionStatusFailed    = "failed"
)

// Contribution types. Delivery-fee payments ride on the same table but are a
// side-channel payment and never count toward savings totals.
const (
	ContributionTypeSavings  = "savings"
	ContributionTypeDelivery = "delivery"
)

// Contribution is a single monthly payment record toward a package.
type Contribution struct {
	ID         string          `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"user_id"`
	PackageID  string          `db:"package_id" json:"package_id"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Status     string          `db:"status" json:"status"`
	Type       string          `db:"type" json:"type"`
	Month      int             `db:"month" json:"month"`
	Year       int             `db:"year" json:"year"`
	ReceiptKey string          `db:"receipt_key" json:"receipt_key,omitempty"`
	ReviewedBy string          `db:"reviewed_by" json:"reviewed_by,omitempty"`
	Note       string          `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}
