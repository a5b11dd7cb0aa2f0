package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
)

type SavedSearchRepository interface {
	Create(ctx context.Context, search *domain.SavedSearch) (*domain.SavedSearch, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error)
	// DeleteOwned removes the search only when it belongs to userID and
	// returns sql.ErrNoRows otherwise.
	DeleteOwned(ctx context.Context, userID, id uuid.UUID) error
}
