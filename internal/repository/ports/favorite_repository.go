package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
)

// FavoriteRepository owns Favorite rows. Toggle must be atomic with
// respect to the (user, listing) uniqueness constraint: concurrent calls
// for the same pair may never leave more than one row behind.
type FavoriteRepository interface {
	Toggle(ctx context.Context, userID uuid.UUID, listingID string) (favorited bool, err error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error)
	CountByListing(ctx context.Context, listingID string) (int64, error)
	CountForListings(ctx context.Context, listingIDs []string) (map[string]int64, error)
}
