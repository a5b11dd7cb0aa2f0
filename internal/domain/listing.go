package domain

import "time"

type PropertyType string

const (
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeFarmhouse  PropertyType = "farmhouse"
	PropertyTypeCastle     PropertyType = "castle"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeLand       PropertyType = "land"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyTypeVilla, PropertyTypeHouse, PropertyTypeApartment,
		PropertyTypeFarmhouse, PropertyTypeCastle, PropertyTypeCommercial, PropertyTypeLand:
		return true
	}
	return false
}

type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusReserved  ListingStatus = "reserved"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusDraft     ListingStatus = "draft"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusAvailable, ListingStatusReserved, ListingStatusSold, ListingStatusDraft:
		return true
	}
	return false
}

type Price struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Specifications struct {
	Bedrooms      int `json:"bedrooms"`
	Bathrooms     int `json:"bathrooms"`
	SquareFootage int `json:"square_footage"`
}

type Region struct {
	Name    LocaleText `json:"name,omitempty"`
	Country LocaleText `json:"country,omitempty"`
}

type City struct {
	Name   LocaleText `json:"name,omitempty"`
	Slug   string     `json:"slug,omitempty"`
	Region Region     `json:"region"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	City        City         `json:"city"`
	Address     LocaleText   `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// ListingImage references an uploaded asset by its storage key plus the
// public URL the frontend renders.
type ListingImage struct {
	AssetRef string `json:"asset_ref,omitempty"`
	URL      string `json:"url"`
}

// Listing is the catalog's central entity. The same shape is served from
// the remote content service and from the local file store.
type Listing struct {
	ID               string         `json:"id"`
	Slug             string         `json:"slug"`
	Title            LocaleText     `json:"title,omitempty"`
	Description      LocaleText     `json:"description,omitempty"`
	SeoTitle         LocaleText     `json:"seo_title,omitempty"`
	SeoDescription   LocaleText     `json:"seo_description,omitempty"`
	PropertyType     PropertyType   `json:"property_type"`
	Price            Price          `json:"price"`
	Specifications   Specifications `json:"specifications"`
	Location         Location       `json:"location"`
	Images           []ListingImage `json:"images,omitempty"`
	MainImage        *int           `json:"main_image,omitempty"`
	Amenities        []string       `json:"amenities,omitempty"`
	Keywords         []string       `json:"keywords,omitempty"`
	Status           ListingStatus  `json:"status"`
	Featured         bool           `json:"featured"`
	SourceURL        string         `json:"source_url,omitempty"`
	PublishAt        *time.Time     `json:"publish_at,omitempty"`
	ScheduledPublish bool           `json:"scheduled_publish,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// AddImage appends an image. The first image becomes the main image when
// none is set yet.
func (l *Listing) AddImage(img ListingImage) {
	l.Images = append(l.Images, img)
	if l.MainImage == nil {
		idx := 0
		l.MainImage = &idx
	}
}

// RemoveImage drops the image at index and keeps MainImage either nil or a
// valid index: removals below the main image shift it down, removing the
// main image itself resets it to the first remaining image.
func (l *Listing) RemoveImage(index int) bool {
	if index < 0 || index >= len(l.Images) {
		return false
	}
	l.Images = append(l.Images[:index], l.Images[index+1:]...)

	if l.MainImage == nil {
		return true
	}
	switch {
	case len(l.Images) == 0:
		l.MainImage = nil
	case index < *l.MainImage:
		shifted := *l.MainImage - 1
		l.MainImage = &shifted
	case index == *l.MainImage:
		first := 0
		l.MainImage = &first
	}
	return true
}

// MainImageValid reports whether the main-image invariant holds.
func (l *Listing) MainImageValid() bool {
	if l.MainImage == nil {
		return true
	}
	return *l.MainImage >= 0 && *l.MainImage < len(l.Images)
}

// ListingDraft carries the caller-supplied fields for a create. Anything
// left zero receives a store-side default.
type ListingDraft struct {
	Title            LocaleText      `json:"title,omitempty"`
	Description      LocaleText      `json:"description,omitempty"`
	SeoTitle         LocaleText      `json:"seo_title,omitempty"`
	SeoDescription   LocaleText      `json:"seo_description,omitempty"`
	PropertyType     PropertyType    `json:"property_type,omitempty"`
	Price            *Price          `json:"price,omitempty"`
	Specifications   *Specifications `json:"specifications,omitempty"`
	Location         *Location       `json:"location,omitempty"`
	Images           []ListingImage  `json:"images,omitempty"`
	MainImage        *int            `json:"main_image,omitempty"`
	Amenities        []string        `json:"amenities,omitempty"`
	Keywords         []string        `json:"keywords,omitempty"`
	Status           ListingStatus   `json:"status,omitempty"`
	Featured         bool            `json:"featured,omitempty"`
	SourceURL        string          `json:"source_url,omitempty"`
	PublishAt        *time.Time      `json:"publish_at,omitempty"`
	ScheduledPublish bool            `json:"scheduled_publish,omitempty"`
}

type PricePatch struct {
	Amount   *int64  `json:"amount,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

type SpecificationsPatch struct {
	Bedrooms      *int `json:"bedrooms,omitempty"`
	Bathrooms     *int `json:"bathrooms,omitempty"`
	SquareFootage *int `json:"square_footage,omitempty"`
}

type LocationPatch struct {
	City        *City        `json:"city,omitempty"`
	Address     *LocaleText  `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// ListingPatch is a partial update: nil means "leave unchanged". Nested
// price/specifications/location merge field-by-field rather than replacing
// the whole object.
type ListingPatch struct {
	Title            *LocaleText          `json:"title,omitempty"`
	Description      *LocaleText          `json:"description,omitempty"`
	SeoTitle         *LocaleText          `json:"seo_title,omitempty"`
	SeoDescription   *LocaleText          `json:"seo_description,omitempty"`
	PropertyType     *PropertyType        `json:"property_type,omitempty"`
	Price            *PricePatch          `json:"price,omitempty"`
	Specifications   *SpecificationsPatch `json:"specifications,omitempty"`
	Location         *LocationPatch       `json:"location,omitempty"`
	Images           *[]ListingImage      `json:"images,omitempty"`
	MainImage        *int                 `json:"main_image,omitempty"`
	ClearMainImage   bool                 `json:"clear_main_image,omitempty"`
	Amenities        *[]string            `json:"amenities,omitempty"`
	Keywords         *[]string            `json:"keywords,omitempty"`
	Status           *ListingStatus       `json:"status,omitempty"`
	Featured         *bool                `json:"featured,omitempty"`
	SourceURL        *string              `json:"source_url,omitempty"`
	PublishAt        *time.Time           `json:"publish_at,omitempty"`
	ScheduledPublish *bool                `json:"scheduled_publish,omitempty"`
}

// Apply merges the patch into listing in place and reports whether the
// title changed, which is the store's cue to re-derive the slug.
func (p ListingPatch) Apply(l *Listing) (titleChanged bool) {
	if p.Title != nil {
		l.Title = p.Title.Clone()
		titleChanged = true
	}
	if p.Description != nil {
		l.Description = p.Description.Clone()
	}
	if p.SeoTitle != nil {
		l.SeoTitle = p.SeoTitle.Clone()
	}
	if p.SeoDescription != nil {
		l.SeoDescription = p.SeoDescription.Clone()
	}
	if p.PropertyType != nil {
		l.PropertyType = *p.PropertyType
	}
	if p.Price != nil {
		if p.Price.Amount != nil {
			l.Price.Amount = *p.Price.Amount
		}
		if p.Price.Currency != nil {
			l.Price.Currency = *p.Price.Currency
		}
	}
	if p.Specifications != nil {
		if p.Specifications.Bedrooms != nil {
			l.Specifications.Bedrooms = *p.Specifications.Bedrooms
		}
		if p.Specifications.Bathrooms != nil {
			l.Specifications.Bathrooms = *p.Specifications.Bathrooms
		}
		if p.Specifications.SquareFootage != nil {
			l.Specifications.SquareFootage = *p.Specifications.SquareFootage
		}
	}
	if p.Location != nil {
		if p.Location.City != nil {
			l.Location.City = *p.Location.City
		}
		if p.Location.Address != nil {
			l.Location.Address = p.Location.Address.Clone()
		}
		if p.Location.Coordinates != nil {
			coords := *p.Location.Coordinates
			l.Location.Coordinates = &coords
		}
	}
	if p.Images != nil {
		l.Images = append([]ListingImage(nil), (*p.Images)...)
	}
	if p.ClearMainImage {
		l.MainImage = nil
	} else if p.MainImage != nil {
		idx := *p.MainImage
		l.MainImage = &idx
	}
	if p.Amenities != nil {
		l.Amenities = append([]string(nil), (*p.Amenities)...)
	}
	if p.Keywords != nil {
		l.Keywords = append([]string(nil), (*p.Keywords)...)
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Featured != nil {
		l.Featured = *p.Featured
	}
	if p.SourceURL != nil {
		l.SourceURL = *p.SourceURL
	}
	if p.PublishAt != nil {
		at := *p.PublishAt
		l.PublishAt = &at
	}
	if p.ScheduledPublish != nil {
		l.ScheduledPublish = *p.ScheduledPublish
	}
	return titleChanged
}
