package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
)

// fakeFavoriteRepo mimics the unique-constraint semantics of the real
// table: a (user, listing) pair holds at most one row, guarded by a mutex
// like the database guards it with the unique index.
type fakeFavoriteRepo struct {
	mu   sync.Mutex
	rows map[string]domain.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{rows: make(map[string]domain.Favorite)}
}

func favKey(userID uuid.UUID, listingID string) string {
	return userID.String() + "|" + listingID
}

func (f *fakeFavoriteRepo) Toggle(_ context.Context, userID uuid.UUID, listingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := favKey(userID, listingID)
	if _, exists := f.rows[key]; exists {
		delete(f.rows, key)
		return false, nil
	}
	f.rows[key] = domain.Favorite{ID: uuid.New(), UserID: userID, ListingID: listingID}
	return true, nil
}

func (f *fakeFavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Favorite
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) CountByListing(_ context.Context, listingID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, row := range f.rows {
		if row.ListingID == listingID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFavoriteRepo) CountForListings(ctx context.Context, listingIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(listingIDs))
	for _, id := range listingIDs {
		count, err := f.CountByListing(ctx, id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			counts[id] = count
		}
	}
	return counts, nil
}

func (f *fakeFavoriteRepo) rowCount(userID uuid.UUID, listingID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.rows[favKey(userID, listingID)]; exists {
		return 1
	}
	return 0
}

func newFavoriteFixture(listings ...domain.Listing) (*FavoriteService, *fakeFavoriteRepo) {
	repo := newFakeFavoriteRepo()
	catalog := NewCatalogService(nil, &fakeLocal{listings: listings})
	return NewFavoriteService(repo, catalog), repo
}

func TestToggleFlipsState(t *testing.T) {
	favorites, repo := newFavoriteFixture(domain.Listing{ID: "l1", Slug: "villa"})
	userID := uuid.New()
	ctx := context.Background()

	favorited, err := favorites.Toggle(ctx, userID, "l1")
	if err != nil || !favorited {
		t.Fatalf("first toggle: favorited=%v err=%v", favorited, err)
	}
	if repo.rowCount(userID, "l1") != 1 {
		t.Fatalf("expected one row after first toggle")
	}

	favorited, err = favorites.Toggle(ctx, userID, "l1")
	if err != nil || favorited {
		t.Fatalf("second toggle: favorited=%v err=%v", favorited, err)
	}
	if repo.rowCount(userID, "l1") != 0 {
		t.Fatalf("expected no rows after second toggle")
	}
}

func TestToggleResolvesSlugToListingID(t *testing.T) {
	favorites, repo := newFavoriteFixture(domain.Listing{ID: "l1", Slug: "villa"})
	userID := uuid.New()

	if _, err := favorites.Toggle(context.Background(), userID, "villa"); err != nil {
		t.Fatalf("Toggle by slug: %v", err)
	}
	if repo.rowCount(userID, "l1") != 1 {
		t.Fatalf("favorite should be keyed on the listing id, not the slug")
	}
}

func TestToggleUnknownListing(t *testing.T) {
	favorites, _ := newFavoriteFixture()
	if _, err := favorites.Toggle(context.Background(), uuid.New(), "ghost"); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestConcurrentTogglesNeverDuplicate(t *testing.T) {
	favorites, repo := newFavoriteFixture(domain.Listing{ID: "l1"})
	userID := uuid.New()

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := favorites.Toggle(context.Background(), userID, "l1"); err != nil {
				t.Errorf("concurrent toggle: %v", err)
			}
		}()
	}
	wg.Wait()

	// An even number of toggles must converge back to zero rows, and at
	// no point can the pair hold more than one.
	if count := repo.rowCount(userID, "l1"); count != 0 {
		t.Fatalf("expected 0 rows after %d toggles, got %d", workers, count)
	}
}

func TestListHydratesListings(t *testing.T) {
	favorites, repo := newFavoriteFixture(domain.Listing{ID: "l1", Title: domain.LocaleText{"en": "Kept"}})
	userID := uuid.New()
	ctx := context.Background()

	if _, err := favorites.Toggle(ctx, userID, "l1"); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	// A favorite pointing at a listing that no longer resolves.
	repo.rows[favKey(userID, "gone")] = domain.Favorite{ID: uuid.New(), UserID: userID, ListingID: "gone"}

	items, err := favorites.List(ctx, userID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	var hydrated, tombstones int
	for _, item := range items {
		if item.Listing != nil {
			hydrated++
		} else {
			tombstones++
		}
	}
	if hydrated != 1 || tombstones != 1 {
		t.Fatalf("expected 1 hydrated + 1 tombstone, got %d/%d", hydrated, tombstones)
	}
}

func TestCountForListings(t *testing.T) {
	favorites, _ := newFavoriteFixture(domain.Listing{ID: "l1"}, domain.Listing{ID: "l2"})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := favorites.Toggle(ctx, uuid.New(), "l1"); err != nil {
			t.Fatalf("Toggle returned error: %v", err)
		}
	}

	counts, err := favorites.CountForListings(ctx, []string{"l1", "l2"})
	if err != nil {
		t.Fatalf("CountForListings returned error: %v", err)
	}
	if counts["l1"] != 3 {
		t.Fatalf("expected 3 favorites for l1, got %d", counts["l1"])
	}
	if _, present := counts["l2"]; present {
		t.Fatalf("listings without favorites should be absent from the map")
	}
}
