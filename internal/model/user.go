package model

import "time"

// User roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User account statuses
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User represents a club member profile. Identity is issued by the auth
// provider; the profile row is created on first login.
type User struct {
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	AvatarURL string    `db:"avatar_url" json:"avatar_url"`
	Role      string    `db:"role" json:"role"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
