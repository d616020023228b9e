package model

import "time"

// Announcement is an admin-published notice shown to members. Pinned and
// Active are distinct flags: Active controls visibility, Pinned only
// controls ordering.
type Announcement struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Body        string    `db:"body" json:"body"`
	Pinned      bool      `db:"pinned" json:"pinned"`
	Active      bool      `db:"active" json:"active"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
