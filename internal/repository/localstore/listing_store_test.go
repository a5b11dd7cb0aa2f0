package localstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
)

func newTestStore(t *testing.T) *ListingStore {
	t.Helper()
	return NewListingStore(filepath.Join(t.TempDir(), "properties.json"))
}

func TestListMissingFileReadsEmpty(t *testing.T) {
	store := newTestStore(t)

	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty store, got %d items", len(items))
	}
}

func TestCorruptFileReadsEmptyAndSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "properties.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	store := NewListingStore(path)

	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected corrupt store to read as empty, got %d", len(items))
	}

	if _, err := store.Create(context.Background(), domain.ListingDraft{
		Title: domain.LocaleText{"en": "Fresh start"},
	}); err != nil {
		t.Fatalf("Create after corruption: %v", err)
	}

	items, err = store.List(context.Background())
	if err != nil {
		t.Fatalf("List after heal: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 listing after heal, got %d", len(items))
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	store := newTestStore(t)

	listing, err := store.Create(context.Background(), domain.ListingDraft{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if listing.Title["en"] != "Untitled property" {
		t.Fatalf("expected default title, got %v", listing.Title)
	}
	if listing.PropertyType != domain.PropertyTypeApartment {
		t.Fatalf("expected default property type, got %s", listing.PropertyType)
	}
	if listing.Price.Currency != "EUR" {
		t.Fatalf("expected EUR, got %s", listing.Price.Currency)
	}
	if listing.Status != domain.ListingStatusAvailable {
		t.Fatalf("expected available status, got %s", listing.Status)
	}
	if listing.Location.City.Slug != "italy" {
		t.Fatalf("expected default location, got %+v", listing.Location)
	}
	if listing.MainImage != nil {
		t.Fatalf("listing without images must not have a main image")
	}
	if !strings.HasPrefix(listing.ID, "local-") {
		t.Fatalf("unexpected id %q", listing.ID)
	}
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, domain.ListingDraft{Title: domain.LocaleText{"en": "First"}}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := store.Create(ctx, domain.ListingDraft{Title: domain.LocaleText{"en": "Second"}}); err != nil {
		t.Fatalf("second create: %v", err)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 2 || items[0].Title["en"] != "Second" {
		t.Fatalf("expected newest first, got %v", items)
	}
}

func TestCreateSlugsStayUniqueAtSameTimestamp(t *testing.T) {
	store := newTestStore(t)
	// Freeze the clock so both creates derive the same slug base.
	frozen := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return frozen })

	ctx := context.Background()
	first, err := store.Create(ctx, domain.ListingDraft{Title: domain.LocaleText{"en": "Duplicate name"}})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := store.Create(ctx, domain.ListingDraft{Title: domain.LocaleText{"en": "Duplicate name"}})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if first.Slug == second.Slug {
		t.Fatalf("expected distinct slugs, both %q", first.Slug)
	}
	for _, listing := range []*domain.Listing{first, second} {
		if !strings.HasPrefix(listing.Slug, "duplicate-name-") {
			t.Fatalf("unexpected slug %q", listing.Slug)
		}
	}
}

func TestFindBySlugOrID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, domain.ListingDraft{Title: domain.LocaleText{"en": "Lookup target"}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	byID, err := store.FindBySlugOrID(ctx, created.ID)
	if err != nil || byID == nil {
		t.Fatalf("lookup by id failed: %v %v", byID, err)
	}
	bySlug, err := store.FindBySlugOrID(ctx, created.Slug)
	if err != nil || bySlug == nil {
		t.Fatalf("lookup by slug failed: %v %v", bySlug, err)
	}

	missing, err := store.FindBySlugOrID(ctx, "nope")
	if err != nil {
		t.Fatalf("miss returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for a miss, got %+v", missing)
	}
}

func TestUpdateMergesAndRederivesSlugOnTitleChange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, domain.ListingDraft{
		Title: domain.LocaleText{"en": "Original"},
		Price: &domain.Price{Amount: 100, Currency: "EUR"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	amount := int64(200)
	updated, err := store.Update(ctx, created.ID, domain.ListingPatch{
		Price: &domain.PricePatch{Amount: &amount},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Slug != created.Slug {
		t.Fatalf("slug changed without title change: %q -> %q", created.Slug, updated.Slug)
	}
	if updated.Price.Amount != 200 || updated.Price.Currency != "EUR" {
		t.Fatalf("price merge wrong: %+v", updated.Price)
	}

	updated, err = store.Update(ctx, created.ID, domain.ListingPatch{
		Title: &domain.LocaleText{"en": "Renamed listing"},
	})
	if err != nil {
		t.Fatalf("title update: %v", err)
	}
	if updated.Slug != "renamed-listing" {
		t.Fatalf("expected re-derived slug, got %q", updated.Slug)
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Update(context.Background(), "local-none", domain.ListingPatch{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteReportsRemoval(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, domain.ListingDraft{Title: domain.LocaleText{"en": "To delete"}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	deleted, err := store.Delete(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("expected deletion, got %v %v", deleted, err)
	}

	deleted, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if deleted {
		t.Fatalf("expected second delete to report no removal")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Seaside Villa, Positano!": "seaside-villa-positano",
		"  --- ":                   "untitled",
		"Già arredato":              "gi-arredato",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}
