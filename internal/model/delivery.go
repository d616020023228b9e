package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery methods
const (
	DeliveryMethodPickup   = "pickup"
	DeliveryMethodDelivery = "delivery"
)

// DeliveryPreference records how a user wants their end-of-year package
// handed over. Once a delivery fee payment is confirmed for a state the
// preference locks: the method cannot revert to pickup and the state is
// immutable.
type DeliveryPreference struct {
	UserID       string    `db:"user_id" json:"user_id"`
	Method       string    `db:"method" json:"method"`
	AddressLine  string    `db:"address_line" json:"address_line,omitempty"`
	City         string    `db:"city" json:"city,omitempty"`
	State        string    `db:"state" json:"state,omitempty"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	StatePaidFor string    `db:"state_paid_for" json:"state_paid_for,omitempty"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DeliveryFee is the admin-managed fee for delivering to a state.
type DeliveryFee struct {
	ID        string          `db:"id" json:"id"`
	State     string          `db:"state" json:"state"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
