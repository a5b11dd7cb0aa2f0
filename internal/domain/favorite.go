package domain

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ListingID string    `db:"listing_id" json:"listing_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FavoriteListItem pairs a favorite row with the listing it points to.
// Listing is nil when the record no longer resolves in either catalog
// source.
type FavoriteListItem struct {
	Favorite Favorite
	Listing  *Listing
}
