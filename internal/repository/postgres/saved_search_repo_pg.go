package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

type SavedSearchRepository struct {
	db *sqlx.DB
}

func NewSavedSearchRepo(db *sqlx.DB) *SavedSearchRepository {
	return &SavedSearchRepository{db: db}
}

func (r *SavedSearchRepository) Create(ctx context.Context, search *domain.SavedSearch) (*domain.SavedSearch, error) {
	const query = `
		INSERT INTO saved_search (user_id, name, filters, notifications)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, filters, notifications, created_at
	`

	var created domain.SavedSearch
	err := r.db.GetContext(ctx, &created, query,
		search.UserID, search.Name, search.Filters, search.Notifications)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *SavedSearchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error) {
	const query = `
		SELECT id, user_id, name, filters, notifications, created_at
		FROM saved_search
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.SavedSearch, 0)
	for rows.Next() {
		var item domain.SavedSearch
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

// DeleteOwned deletes the search only when it belongs to userID. Deleting
// someone else's search looks the same as deleting a missing one.
func (r *SavedSearchRepository) DeleteOwned(ctx context.Context, userID, id uuid.UUID) error {
	const query = `
		DELETE FROM saved_search
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.SavedSearchRepository = (*SavedSearchRepository)(nil)
