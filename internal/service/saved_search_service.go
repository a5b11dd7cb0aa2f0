package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

var (
	ErrSavedSearchNotFound   = errors.New("saved search not found")
	ErrSavedSearchValidation = errors.New("saved search validation failed")
)

type SavedSearchService struct {
	searches ports.SavedSearchRepository
}

func NewSavedSearchService(repo ports.SavedSearchRepository) *SavedSearchService {
	return &SavedSearchService{searches: repo}
}

func (s *SavedSearchService) Create(ctx context.Context, userID uuid.UUID, name string, filters domain.ListingFilter, notifications bool) (*domain.SavedSearch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrSavedSearchValidation)
	}

	return s.searches.Create(ctx, &domain.SavedSearch{
		UserID:        userID,
		Name:          name,
		Filters:       filters,
		Notifications: notifications,
	})
}

func (s *SavedSearchService) List(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error) {
	return s.searches.ListByUser(ctx, userID)
}

// Delete removes the user's own search. A search that does not exist and a
// search owned by someone else are indistinguishable to the caller.
func (s *SavedSearchService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.searches.DeleteOwned(ctx, userID, id); err != nil {
		if isNotFound(err) {
			return ErrSavedSearchNotFound
		}
		return err
	}
	return nil
}
