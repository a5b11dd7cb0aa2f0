package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedSearch is a user-owned, named filter specification. Only the
// creating user may list or delete it.
type SavedSearch struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	UserID        uuid.UUID     `db:"user_id" json:"user_id"`
	Name          string        `db:"name" json:"name"`
	Filters       ListingFilter `db:"filters" json:"filters"`
	Notifications bool          `db:"notifications" json:"notifications"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
