package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle flips the favorite state for (userID, listingID) in a single
// round-trip per branch. The insert relies on the unique constraint, so two
// concurrent toggles for the same pair cannot both insert: the loser's
// INSERT matches zero rows and falls through to the delete branch.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID uuid.UUID, listingID string) (bool, error) {
	const insert = `
		INSERT INTO favorite_listing (user_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, listing_id) DO NOTHING
		RETURNING id, user_id, listing_id, created_at
	`

	var favorite domain.Favorite
	err := r.db.GetContext(ctx, &favorite, insert, userID, listingID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	const remove = `
		DELETE FROM favorite_listing
		WHERE user_id = $1 AND listing_id = $2
	`
	if _, err := r.db.ExecContext(ctx, remove, userID, listingID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	const query = `
		SELECT id, user_id, listing_id, created_at
		FROM favorite_listing
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Favorite, 0)
	for rows.Next() {
		var item domain.Favorite
		if err := rows.StructScan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FavoriteRepository) CountByListing(ctx context.Context, listingID string) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM favorite_listing
		WHERE listing_id = $1
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, listingID); err != nil {
		return 0, err
	}
	return count, nil
}

// CountForListings returns per-listing favorite counts for a page of
// listings. IDs without rows are simply absent from the map.
func (r *FavoriteRepository) CountForListings(ctx context.Context, listingIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(listingIDs))
	if len(listingIDs) == 0 {
		return counts, nil
	}

	const query = `
		SELECT listing_id, COUNT(*) AS favorite_count
		FROM favorite_listing
		WHERE listing_id = ANY($1)
		GROUP BY listing_id
	`

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(listingIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			listingID string
			count     int64
		)
		if err := rows.Scan(&listingID, &count); err != nil {
			return nil, err
		}
		counts[listingID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

var _ ports.FavoriteRepository = (*FavoriteRepository)(nil)
