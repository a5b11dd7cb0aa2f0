package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

type FavoriteService struct {
	favorites ports.FavoriteRepository
	catalog   *CatalogService
}

func NewFavoriteService(favoriteRepo ports.FavoriteRepository, catalog *CatalogService) *FavoriteService {
	return &FavoriteService{
		favorites: favoriteRepo,
		catalog:   catalog,
	}
}

// Toggle flips the favorite state and reports the new one. The listing is
// resolved through the catalog first so favorites can only point at
// listings that exist in some source.
func (s *FavoriteService) Toggle(ctx context.Context, userID uuid.UUID, listingID string) (bool, error) {
	listing, err := s.catalog.GetBySlugOrID(ctx, listingID)
	if err != nil {
		return false, err
	}

	favorited, err := s.favorites.Toggle(ctx, userID, listing.ID)
	if err != nil {
		// A concurrent toggle won the insert; the state is "favorited"
		// either way.
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, err
	}
	return favorited, nil
}

// List returns the user's favorites newest first, hydrated with listing
// details from the catalog. Favorites whose listing no longer resolves are
// kept with a nil Listing so the client can show a tombstone.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteListItem, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.FavoriteListItem, 0, len(favorites))
	for _, favorite := range favorites {
		item := domain.FavoriteListItem{Favorite: favorite}
		listing, err := s.catalog.GetBySlugOrID(ctx, favorite.ListingID)
		switch {
		case err == nil:
			item.Listing = listing
		case errors.Is(err, ErrListingNotFound):
			// keep the tombstone
		default:
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *FavoriteService) Count(ctx context.Context, listingID string) (int64, error) {
	return s.favorites.CountByListing(ctx, listingID)
}

// CountForListings decorates a page of listings with favorite counts.
func (s *FavoriteService) CountForListings(ctx context.Context, listingIDs []string) (map[string]int64, error) {
	return s.favorites.CountForListings(ctx, listingIDs)
}
