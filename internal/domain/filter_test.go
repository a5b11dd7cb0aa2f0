package domain

import "testing"

func fixtureListings() []Listing {
	return []Listing{
		{
			ID:           "l1",
			Title:        LocaleText{"en": "Seaside villa in Positano"},
			Description:  LocaleText{"en": "Panoramic terrace over the Amalfi coast"},
			PropertyType: PropertyTypeVilla,
			Price:        Price{Amount: 1200000, Currency: "EUR"},
			Featured:     true,
			Location: Location{City: City{
				Name: LocaleText{"en": "Positano"},
				Slug: "positano",
			}},
		},
		{
			ID:           "l2",
			Title:        LocaleText{"en": "City apartment", "it": "Appartamento in centro"},
			PropertyType: PropertyTypeApartment,
			Price:        Price{Amount: 350000, Currency: "EUR"},
			Location: Location{City: City{
				Name: LocaleText{"en": "Florence"},
				Slug: "florence",
			}},
		},
		{
			ID:           "l3",
			Title:        LocaleText{"en": "Tuscan farmhouse"},
			PropertyType: PropertyTypeFarmhouse,
			Price:        Price{Amount: 780000, Currency: "EUR"},
			Location: Location{City: City{
				Name: LocaleText{"en": "Siena"},
				Slug: "siena",
			}},
		},
	}
}

func ids(items []Listing) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestFilterZeroMatchesEverything(t *testing.T) {
	items := fixtureListings()
	got := ListingFilter{}.Apply(items)
	if len(got) != len(items) {
		t.Fatalf("expected all %d listings, got %d", len(items), len(got))
	}
	for i := range got {
		if got[i].ID != items[i].ID {
			t.Fatalf("order changed at %d: %s != %s", i, got[i].ID, items[i].ID)
		}
	}
}

func TestFilterPredicatesCombineWithAnd(t *testing.T) {
	min := int64(500000)
	filter := ListingFilter{PropertyType: PropertyTypeVilla, MinPrice: &min}

	got := ids(filter.Apply(fixtureListings()))
	if len(got) != 1 || got[0] != "l1" {
		t.Fatalf("expected only l1, got %v", got)
	}

	// Same price bound with a different type excludes the villa.
	filter.PropertyType = PropertyTypeApartment
	if got := filter.Apply(fixtureListings()); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestFilterPriceRange(t *testing.T) {
	min, max := int64(300000), int64(800000)
	filter := ListingFilter{MinPrice: &min, MaxPrice: &max}

	got := ids(filter.Apply(fixtureListings()))
	if len(got) != 2 || got[0] != "l2" || got[1] != "l3" {
		t.Fatalf("expected [l2 l3], got %v", got)
	}
}

func TestFilterCityMatchesSlugOrNameFragment(t *testing.T) {
	bySlug := ListingFilter{City: "positano"}
	if got := ids(bySlug.Apply(fixtureListings())); len(got) != 1 || got[0] != "l1" {
		t.Fatalf("slug match failed: %v", got)
	}

	byFragment := ListingFilter{City: "flor"}
	if got := ids(byFragment.Apply(fixtureListings())); len(got) != 1 || got[0] != "l2" {
		t.Fatalf("name fragment match failed: %v", got)
	}
}

func TestFilterSearchSpansTitleDescriptionAndCity(t *testing.T) {
	cases := map[string]string{
		"AMALFI":       "l1", // description, case-insensitive
		"appartamento": "l2", // italian title
		"siena":        "l3", // city name
	}
	for query, want := range cases {
		got := ids(ListingFilter{Search: query}.Apply(fixtureListings()))
		if len(got) != 1 || got[0] != want {
			t.Fatalf("search %q: expected [%s], got %v", query, want, got)
		}
	}
}

func TestFilterFeatured(t *testing.T) {
	featured := true
	got := ids(ListingFilter{Featured: &featured}.Apply(fixtureListings()))
	if len(got) != 1 || got[0] != "l1" {
		t.Fatalf("expected [l1], got %v", got)
	}
}

func TestFilterScanRoundTrip(t *testing.T) {
	min := int64(100)
	original := ListingFilter{PropertyType: PropertyTypeVilla, MinPrice: &min, City: "rome"}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}

	var decoded ListingFilter
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if decoded.PropertyType != original.PropertyType || decoded.City != original.City {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if decoded.MinPrice == nil || *decoded.MinPrice != min {
		t.Fatalf("min price lost in round trip: %+v", decoded.MinPrice)
	}
}
