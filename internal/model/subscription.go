package model

import "time"

// Subscription statuses
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusReserved  = "reserved"
	SubscriptionStatusSuspended = "suspended"
	SubscriptionStatusInactive  = "inactive"
)

// Subscription ties a user to a package. Slots is the number of concurrent
// package units the user pays for and multiplies every monetary figure
// derived from the package.
type Subscription struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	PackageID string    `db:"package_id" json:"package_id"`
	Slots     int       `db:"slots" json:"slots"`
	Status    string    `db:"status" json:"status"`
	StartedAt time.Time `db:"started_at" json:"started_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
