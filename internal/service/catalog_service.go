package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

var (
	ErrListingNotFound   = errors.New("listing not found")
	ErrListingValidation = errors.New("listing validation failed")
	ErrImageIndexInvalid = errors.New("image index out of range")
)

// CatalogService unifies the remote content service and the local file
// store behind one read/write surface. Reads prefer the remote source and
// fall back to the local store; writes go to exactly one authority so a
// listing never ends up split across both.
type CatalogService struct {
	remote ports.RemoteCatalog
	local  ports.ListingStore
}

func NewCatalogService(remote ports.RemoteCatalog, local ports.ListingStore) *CatalogService {
	return &CatalogService{remote: remote, local: local}
}

// List returns the filtered catalog. A remote error or an empty remote
// result silently falls back to the local store so the public site stays
// up when the content service is down or unprovisioned.
func (s *CatalogService) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	if s.remoteConfigured() {
		listings, err := s.remote.List(ctx)
		if err == nil && len(listings) > 0 {
			return filter.Apply(listings), nil
		}
	}

	listings, err := s.local.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(listings), nil
}

// GetBySlugOrID looks the key up remotely first, then locally.
func (s *CatalogService) GetBySlugOrID(ctx context.Context, key string) (*domain.Listing, error) {
	if s.remoteConfigured() {
		listing, err := s.remote.FindBySlugOrID(ctx, key)
		if err == nil && listing != nil {
			return listing, nil
		}
	}

	listing, err := s.local.FindBySlugOrID(ctx, key)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

func (s *CatalogService) Create(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	return s.writeStore().Create(ctx, draft)
}

func (s *CatalogService) Update(ctx context.Context, id string, patch domain.ListingPatch) (*domain.Listing, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	listing, err := s.writeStore().Update(ctx, id, patch)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	deleted, err := s.writeStore().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrListingNotFound
	}
	return nil
}

// AddImage appends an uploaded image to the listing. The first image
// becomes the main image.
func (s *CatalogService) AddImage(ctx context.Context, id string, image domain.ListingImage) (*domain.Listing, error) {
	store := s.writeStore()
	listing, err := store.FindBySlugOrID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	listing.AddImage(image)
	return store.Update(ctx, listing.ID, imagesPatch(listing))
}

// RemoveImage drops the image at index while keeping the main image either
// unset or pointing at a live index.
func (s *CatalogService) RemoveImage(ctx context.Context, id string, index int) (*domain.Listing, error) {
	store := s.writeStore()
	listing, err := store.FindBySlugOrID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	if !listing.RemoveImage(index) {
		return nil, fmt.Errorf("%w: %d", ErrImageIndexInvalid, index)
	}
	return store.Update(ctx, listing.ID, imagesPatch(listing))
}

func imagesPatch(listing *domain.Listing) domain.ListingPatch {
	images := append([]domain.ListingImage(nil), listing.Images...)
	patch := domain.ListingPatch{Images: &images}
	if listing.MainImage != nil {
		idx := *listing.MainImage
		patch.MainImage = &idx
	} else {
		patch.ClearMainImage = true
	}
	return patch
}

func (s *CatalogService) remoteConfigured() bool {
	return s.remote != nil && s.remote.Configured()
}

// writeStore picks the single write authority: the remote service when it
// holds mutation credentials, the local file store otherwise.
func (s *CatalogService) writeStore() ports.ListingStore {
	if s.remote != nil && s.remote.CanWrite() {
		return s.remote
	}
	return s.local
}

func validateDraft(draft domain.ListingDraft) error {
	var problems []string
	if draft.PropertyType != "" && !draft.PropertyType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown property type %q", draft.PropertyType))
	}
	if draft.Status != "" && !draft.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", draft.Status))
	}
	if draft.Price != nil && draft.Price.Amount < 0 {
		problems = append(problems, "price amount must not be negative")
	}
	if draft.MainImage != nil && (*draft.MainImage < 0 || *draft.MainImage >= len(draft.Images)) {
		problems = append(problems, "main image index out of range")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrListingValidation, strings.Join(problems, "; "))
	}
	return nil
}

func validatePatch(patch domain.ListingPatch) error {
	var problems []string
	if patch.PropertyType != nil && !patch.PropertyType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown property type %q", *patch.PropertyType))
	}
	if patch.Status != nil && !patch.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", *patch.Status))
	}
	if patch.Price != nil && patch.Price.Amount != nil && *patch.Price.Amount < 0 {
		problems = append(problems, "price amount must not be negative")
	}
	if patch.MainImage != nil && *patch.MainImage < 0 {
		problems = append(problems, "main image index must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrListingValidation, strings.Join(problems, "; "))
	}
	return nil
}
