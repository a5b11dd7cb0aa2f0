package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
)

type fakeSavedSearchRepo struct {
	rows map[uuid.UUID]domain.SavedSearch
	now  time.Time
}

func newFakeSavedSearchRepo() *fakeSavedSearchRepo {
	return &fakeSavedSearchRepo{
		rows: make(map[uuid.UUID]domain.SavedSearch),
		now:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeSavedSearchRepo) Create(_ context.Context, search *domain.SavedSearch) (*domain.SavedSearch, error) {
	created := *search
	created.ID = uuid.New()
	created.CreatedAt = f.now
	f.now = f.now.Add(time.Second)
	f.rows[created.ID] = created
	return &created, nil
}

func (f *fakeSavedSearchRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.SavedSearch, error) {
	var out []domain.SavedSearch
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSavedSearchRepo) DeleteOwned(_ context.Context, userID, id uuid.UUID) error {
	row, exists := f.rows[id]
	if !exists || row.UserID != userID {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func TestSavedSearchCreateRequiresName(t *testing.T) {
	searches := NewSavedSearchService(newFakeSavedSearchRepo())

	for _, name := range []string{"", "   "} {
		if _, err := searches.Create(context.Background(), uuid.New(), name, domain.ListingFilter{}, false); !errors.Is(err, ErrSavedSearchValidation) {
			t.Fatalf("name %q: expected validation error, got %v", name, err)
		}
	}
}

func TestSavedSearchCreateAndList(t *testing.T) {
	searches := NewSavedSearchService(newFakeSavedSearchRepo())
	userID := uuid.New()
	ctx := context.Background()

	min := int64(100000)
	if _, err := searches.Create(ctx, userID, "Tuscany villas", domain.ListingFilter{
		PropertyType: domain.PropertyTypeVilla,
		MinPrice:     &min,
	}, true); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := searches.Create(ctx, userID, "  Cheap flats  ", domain.ListingFilter{}, false); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	items, err := searches.List(ctx, userID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 searches, got %d", len(items))
	}
	if items[0].Name != "Cheap flats" {
		t.Fatalf("expected newest first and trimmed name, got %q", items[0].Name)
	}
	if items[1].Filters.PropertyType != domain.PropertyTypeVilla {
		t.Fatalf("filters not persisted: %+v", items[1].Filters)
	}
}

func TestSavedSearchDeleteEnforcesOwnership(t *testing.T) {
	repo := newFakeSavedSearchRepo()
	searches := NewSavedSearchService(repo)
	owner := uuid.New()
	intruder := uuid.New()
	ctx := context.Background()

	created, err := searches.Create(ctx, owner, "Mine", domain.ListingFilter{}, false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Someone else's delete looks like a miss and leaves the row alone.
	if err := searches.Delete(ctx, intruder, created.ID); !errors.Is(err, ErrSavedSearchNotFound) {
		t.Fatalf("expected ErrSavedSearchNotFound for foreign delete, got %v", err)
	}
	if _, exists := repo.rows[created.ID]; !exists {
		t.Fatalf("foreign delete removed the row")
	}

	if err := searches.Delete(ctx, owner, created.ID); err != nil {
		t.Fatalf("owner delete returned error: %v", err)
	}
	if err := searches.Delete(ctx, owner, created.ID); !errors.Is(err, ErrSavedSearchNotFound) {
		t.Fatalf("expected ErrSavedSearchNotFound for repeat delete, got %v", err)
	}
}
