package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ListingFilter is the query specification applied over an in-memory
// listing set. Every predicate is optional; present predicates combine
// with logical AND. It is also the persisted payload of a saved search.
type ListingFilter struct {
	PropertyType PropertyType `json:"property_type,omitempty"`
	MinPrice     *int64       `json:"min_price,omitempty"`
	MaxPrice     *int64       `json:"max_price,omitempty"`
	City         string       `json:"city,omitempty"`
	Search       string       `json:"search,omitempty"`
	Featured     *bool        `json:"featured,omitempty"`
}

func (f ListingFilter) IsZero() bool {
	return f.PropertyType == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		f.City == "" && f.Search == "" && f.Featured == nil
}

// Matches reports whether the listing satisfies every present predicate.
func (f ListingFilter) Matches(l Listing) bool {
	if f.PropertyType != "" && l.PropertyType != f.PropertyType {
		return false
	}
	if f.MinPrice != nil && l.Price.Amount < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price.Amount > *f.MaxPrice {
		return false
	}
	if f.Featured != nil && l.Featured != *f.Featured {
		return false
	}
	if f.City != "" && !f.matchesCity(l) {
		return false
	}
	if f.Search != "" && !f.matchesSearch(l) {
		return false
	}
	return true
}

// Apply filters the sequence, preserving input order.
func (f ListingFilter) Apply(items []Listing) []Listing {
	if f.IsZero() {
		return items
	}
	out := make([]Listing, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// City matches either the city slug exactly or the default-locale city
// name as a case-insensitive substring.
func (f ListingFilter) matchesCity(l Listing) bool {
	city := l.Location.City
	if city.Slug == f.City {
		return true
	}
	name := strings.ToLower(city.Name.Resolve(LocaleEN, LocaleEN))
	return name != "" && strings.Contains(name, strings.ToLower(f.City))
}

// Free-text search: a listing matches when any of title, description
// (English or Italian) or the city name contains the query.
func (f ListingFilter) matchesSearch(l Listing) bool {
	q := strings.ToLower(f.Search)
	for _, field := range []string{
		l.Title[LocaleEN],
		l.Title[LocaleIT],
		l.Description[LocaleEN],
		l.Description[LocaleIT],
		l.Location.City.Name[LocaleEN],
	} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Value/Scan let the filter round-trip through a jsonb column.
func (f ListingFilter) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *ListingFilter) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = ListingFilter{}
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("unsupported filter source type %T", src)
	}
}
