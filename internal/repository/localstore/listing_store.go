package localstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

// ListingStore persists listings in a single JSON array file so the
// catalog keeps working without the remote content service. A missing or
// unparseable file reads as an empty store and is recreated on the next
// write. Writes are serialized by a mutex and land via temp-file + rename,
// so concurrent writers cannot lose each other's updates.
type ListingStore struct {
	path string

	mu  sync.Mutex
	now func() time.Time
}

func NewListingStore(path string) *ListingStore {
	return &ListingStore{
		path: path,
		now:  time.Now,
	}
}

// SetClock overrides the store clock, used by tests.
func (s *ListingStore) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *ListingStore) List(_ context.Context) ([]domain.Listing, error) {
	return s.read()
}

func (s *ListingStore) FindBySlugOrID(_ context.Context, key string) (*domain.Listing, error) {
	items, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Slug == key || items[i].ID == key {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (s *ListingStore) Create(_ context.Context, draft domain.ListingDraft) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	listing := newListingFromDraft(draft, now)
	listing.ID = fmt.Sprintf("local-%d-%s", now.UnixMilli(), randomToken())
	listing.Slug = ensureUniqueSlug(
		fmt.Sprintf("%s-%d", Slugify(titleForSlug(draft.Title)), now.UnixMilli()),
		listing.ID, items)

	// Newest first, matching the remote catalog's created-at ordering.
	items = append([]domain.Listing{listing}, items...)
	if err := s.write(items); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *ListingStore) Update(_ context.Context, id string, patch domain.ListingPatch) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	listing := items[idx]
	titleChanged := patch.Apply(&listing)
	if titleChanged {
		listing.Slug = ensureUniqueSlug(Slugify(titleForSlug(listing.Title)), listing.ID, items)
	}
	listing.UpdatedAt = s.now().UTC()

	items[idx] = listing
	if err := s.write(items); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *ListingStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return false, err
	}

	next := items[:0:0]
	for _, item := range items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	if len(next) == len(items) {
		return false, nil
	}
	if err := s.write(next); err != nil {
		return false, err
	}
	return true, nil
}

// read favors availability: a missing file is an empty store, and a file
// that no longer parses is treated the same way rather than failing every
// catalog read.
func (s *ListingStore) read() ([]domain.Listing, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Listing{}, nil
		}
		return nil, fmt.Errorf("read listing store: %w", err)
	}

	var items []domain.Listing
	if err := json.Unmarshal(raw, &items); err != nil {
		return []domain.Listing{}, nil
	}
	if items == nil {
		items = []domain.Listing{}
	}
	return items, nil
}

func (s *ListingStore) write(items []domain.Listing) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode listing store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".listings-*.json")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func newListingFromDraft(draft domain.ListingDraft, now time.Time) domain.Listing {
	listing := domain.Listing{
		Title:            draft.Title.Clone(),
		Description:      draft.Description.Clone(),
		SeoTitle:         draft.SeoTitle.Clone(),
		SeoDescription:   draft.SeoDescription.Clone(),
		PropertyType:     draft.PropertyType,
		Images:           append([]domain.ListingImage(nil), draft.Images...),
		Amenities:        append([]string(nil), draft.Amenities...),
		Keywords:         append([]string(nil), draft.Keywords...),
		Status:           draft.Status,
		Featured:         draft.Featured,
		SourceURL:        draft.SourceURL,
		ScheduledPublish: draft.ScheduledPublish,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if listing.Title.IsEmpty() {
		listing.Title = domain.LocaleText{
			domain.LocaleEN: "Untitled property",
			domain.LocaleCS: "Nezadany nazev",
			domain.LocaleIT: "Proprieta senza titolo",
		}
	}
	if listing.PropertyType == "" {
		listing.PropertyType = domain.PropertyTypeApartment
	}
	listing.Price = domain.Price{Currency: "EUR"}
	if draft.Price != nil {
		listing.Price.Amount = draft.Price.Amount
		if draft.Price.Currency != "" {
			listing.Price.Currency = draft.Price.Currency
		}
	}
	if draft.Specifications != nil {
		listing.Specifications = *draft.Specifications
	}
	if draft.Location != nil {
		listing.Location = *draft.Location
	} else {
		listing.Location = defaultLocation()
	}
	if listing.Status == "" {
		listing.Status = domain.ListingStatusAvailable
	}
	if draft.PublishAt != nil {
		at := *draft.PublishAt
		listing.PublishAt = &at
	}

	switch {
	case draft.MainImage != nil && *draft.MainImage >= 0 && *draft.MainImage < len(listing.Images):
		idx := *draft.MainImage
		listing.MainImage = &idx
	case len(listing.Images) > 0:
		idx := 0
		listing.MainImage = &idx
	}
	return listing
}

func defaultLocation() domain.Location {
	country := domain.LocaleText{
		domain.LocaleEN: "Italy",
		domain.LocaleCS: "Italie",
		domain.LocaleIT: "Italia",
	}
	return domain.Location{
		City: domain.City{
			Name: country.Clone(),
			Slug: "italy",
			Region: domain.Region{
				Name:    country.Clone(),
				Country: country.Clone(),
			},
		},
	}
}

func titleForSlug(title domain.LocaleText) string {
	for _, code := range []string{domain.LocaleEN, domain.LocaleIT, domain.LocaleCS} {
		if v := title[code]; v != "" {
			return v
		}
	}
	return "property"
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the value, collapses non-alphanumeric runs to single
// hyphens and trims leading/trailing hyphens.
func Slugify(value string) string {
	slug := strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(value), "-"), "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}

func ensureUniqueSlug(slug, selfID string, items []domain.Listing) string {
	taken := func(candidate string) bool {
		for _, item := range items {
			if item.Slug == candidate && item.ID != selfID {
				return true
			}
		}
		return false
	}
	for taken(slug) {
		slug = slug + "-" + randomToken()
	}
	return slug
}

func randomToken() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "000000"
	}
	return hex.EncodeToString(buf)
}

var _ ports.ListingStore = (*ListingStore)(nil)
