package sanity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/localstore"
	"github.com/njprem/Italian_Properties_BackEnd/internal/repository/ports"
)

// listingProjection resolves city/region references and normalizes image
// URLs so every document arrives in the same shape the local store uses.
const listingProjection = `{
  _id,
  title,
  slug,
  propertyType,
  price,
  description,
  specifications,
  "location": {
    "city": location.city->{
      name,
      slug,
      "region": region->{
        name,
        country
      }
    },
    "address": location.address,
    "coordinates": location.coordinates
  },
  "images": images[]{
    ...,
    "url": coalesce(url, asset->url)
  },
  mainImage,
  amenities,
  keywords,
  status,
  featured,
  sourceUrl,
  seoTitle,
  seoDescription,
  publishAt,
  scheduledPublish,
  _createdAt,
  _updatedAt
}`

const (
	allListingsQuery = `*[_type == "listing" && !(_id in path("drafts.**"))] | order(_createdAt desc) ` + listingProjection

	listingByKeyQuery = `*[_type == "listing" && (slug.current == $key || _id == $key)][0] ` + listingProjection
)

type slugDoc struct {
	Type    string `json:"_type,omitempty"`
	Current string `json:"current"`
}

type assetRef struct {
	Ref string `json:"_ref,omitempty"`
}

type imageDoc struct {
	URL   string    `json:"url,omitempty"`
	Asset *assetRef `json:"asset,omitempty"`
}

type regionDoc struct {
	Name    domain.LocaleText `json:"name,omitempty"`
	Country domain.LocaleText `json:"country,omitempty"`
}

type cityDoc struct {
	Name   domain.LocaleText `json:"name,omitempty"`
	Slug   *slugDoc          `json:"slug,omitempty"`
	Region *regionDoc        `json:"region,omitempty"`
}

type locationDoc struct {
	City        *cityDoc            `json:"city,omitempty"`
	Address     domain.LocaleText   `json:"address,omitempty"`
	Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
}

// listingDoc is the wire shape of a listing document. Field names follow
// the studio schema (camelCase) rather than the API's snake_case JSON.
type listingDoc struct {
	ID               string                 `json:"_id,omitempty"`
	Type             string                 `json:"_type,omitempty"`
	Title            domain.LocaleText      `json:"title,omitempty"`
	Slug             *slugDoc               `json:"slug,omitempty"`
	PropertyType     string                 `json:"propertyType,omitempty"`
	Price            *domain.Price          `json:"price,omitempty"`
	Description      domain.LocaleText      `json:"description,omitempty"`
	Specifications   *domain.Specifications `json:"specifications,omitempty"`
	Location         *locationDoc           `json:"location,omitempty"`
	Images           []imageDoc             `json:"images,omitempty"`
	MainImage        *int                   `json:"mainImage,omitempty"`
	Amenities        []string               `json:"amenities,omitempty"`
	Keywords         []string               `json:"keywords,omitempty"`
	Status           string                 `json:"status,omitempty"`
	Featured         bool                   `json:"featured,omitempty"`
	SourceURL        string                 `json:"sourceUrl,omitempty"`
	SeoTitle         domain.LocaleText      `json:"seoTitle,omitempty"`
	SeoDescription   domain.LocaleText      `json:"seoDescription,omitempty"`
	PublishAt        *time.Time             `json:"publishAt,omitempty"`
	ScheduledPublish bool                   `json:"scheduledPublish,omitempty"`
	CreatedAt        *time.Time             `json:"_createdAt,omitempty"`
	UpdatedAt        *time.Time             `json:"_updatedAt,omitempty"`
}

func (c *Client) List(ctx context.Context) ([]domain.Listing, error) {
	var docs []listingDoc
	if err := c.query(ctx, allListingsQuery, nil, &docs); err != nil {
		return nil, err
	}

	listings := make([]domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, doc.toDomain())
	}
	return listings, nil
}

func (c *Client) FindBySlugOrID(ctx context.Context, key string) (*domain.Listing, error) {
	var doc listingDoc
	if err := c.query(ctx, listingByKeyQuery, map[string]string{"key": key}, &doc); err != nil {
		return nil, err
	}
	if doc.ID == "" {
		return nil, nil
	}
	listing := doc.toDomain()
	return &listing, nil
}

func (c *Client) Create(ctx context.Context, draft domain.ListingDraft) (*domain.Listing, error) {
	doc := docFromDraft(draft, time.Now().UTC())
	docs, err := c.mutate(ctx, []mutation{{"create": doc}})
	if err != nil {
		return nil, err
	}
	return firstListing(docs)
}

func (c *Client) Update(ctx context.Context, id string, patch domain.ListingPatch) (*domain.Listing, error) {
	set, unset := patchFields(patch)
	body := map[string]any{"id": id}
	if len(set) > 0 {
		body["set"] = set
	}
	if len(unset) > 0 {
		body["unset"] = unset
	}

	docs, err := c.mutate(ctx, []mutation{{"patch": body}})
	if err != nil {
		return nil, err
	}
	return firstListing(docs)
}

func (c *Client) Delete(ctx context.Context, id string) (bool, error) {
	docs, err := c.mutate(ctx, []mutation{{"delete": map[string]any{"id": id}}})
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

func firstListing(docs []json.RawMessage) (*domain.Listing, error) {
	if len(docs) == 0 || len(docs[0]) == 0 {
		return nil, fmt.Errorf("sanity: mutation returned no document")
	}
	var doc listingDoc
	if err := json.Unmarshal(docs[0], &doc); err != nil {
		return nil, fmt.Errorf("decode mutated document: %w", err)
	}
	listing := doc.toDomain()
	return &listing, nil
}

func (d listingDoc) toDomain() domain.Listing {
	listing := domain.Listing{
		ID:               d.ID,
		Title:            d.Title,
		Description:      d.Description,
		SeoTitle:         d.SeoTitle,
		SeoDescription:   d.SeoDescription,
		PropertyType:     domain.PropertyType(d.PropertyType),
		MainImage:        d.MainImage,
		Amenities:        d.Amenities,
		Keywords:         d.Keywords,
		Status:           domain.ListingStatus(d.Status),
		Featured:         d.Featured,
		SourceURL:        d.SourceURL,
		PublishAt:        d.PublishAt,
		ScheduledPublish: d.ScheduledPublish,
	}
	if d.CreatedAt != nil {
		listing.CreatedAt = *d.CreatedAt
	}
	if d.UpdatedAt != nil {
		listing.UpdatedAt = *d.UpdatedAt
	}
	if d.Slug != nil {
		listing.Slug = d.Slug.Current
	}
	if d.Price != nil {
		listing.Price = *d.Price
	}
	if d.Specifications != nil {
		listing.Specifications = *d.Specifications
	}
	if d.Location != nil {
		if d.Location.City != nil {
			listing.Location.City.Name = d.Location.City.Name
			if d.Location.City.Slug != nil {
				listing.Location.City.Slug = d.Location.City.Slug.Current
			}
			if d.Location.City.Region != nil {
				listing.Location.City.Region.Name = d.Location.City.Region.Name
				listing.Location.City.Region.Country = d.Location.City.Region.Country
			}
		}
		listing.Location.Address = d.Location.Address
		listing.Location.Coordinates = d.Location.Coordinates
	}
	for _, img := range d.Images {
		image := domain.ListingImage{URL: img.URL}
		if img.Asset != nil {
			image.AssetRef = img.Asset.Ref
		}
		listing.Images = append(listing.Images, image)
	}
	// Guard against documents whose main image points past the array.
	if listing.MainImage != nil && (*listing.MainImage < 0 || *listing.MainImage >= len(listing.Images)) {
		listing.MainImage = nil
	}
	return listing
}

func docFromDraft(draft domain.ListingDraft, now time.Time) listingDoc {
	doc := listingDoc{
		Type:             "listing",
		Title:            draft.Title,
		Description:      draft.Description,
		SeoTitle:         draft.SeoTitle,
		SeoDescription:   draft.SeoDescription,
		PropertyType:     string(draft.PropertyType),
		Images:           imageDocs(draft.Images),
		MainImage:        draft.MainImage,
		Amenities:        draft.Amenities,
		Keywords:         draft.Keywords,
		Status:           string(draft.Status),
		Featured:         draft.Featured,
		SourceURL:        draft.SourceURL,
		PublishAt:        draft.PublishAt,
		ScheduledPublish: draft.ScheduledPublish,
	}
	doc.Slug = &slugDoc{
		Type:    "slug",
		Current: fmt.Sprintf("%s-%d", localstore.Slugify(draft.Title.Resolve(domain.LocaleEN, domain.LocaleIT)), now.UnixMilli()),
	}
	if draft.Price != nil {
		price := *draft.Price
		doc.Price = &price
	} else {
		doc.Price = &domain.Price{Currency: "EUR"}
	}
	if draft.Specifications != nil {
		specs := *draft.Specifications
		doc.Specifications = &specs
	}
	if draft.Location != nil {
		doc.Location = locationDocFrom(*draft.Location)
	}
	if doc.Status == "" {
		doc.Status = string(domain.ListingStatusAvailable)
	}
	return doc
}

func patchFields(p domain.ListingPatch) (set map[string]any, unset []string) {
	set = map[string]any{}
	if p.Title != nil {
		set["title"] = *p.Title
		set["slug"] = slugDoc{
			Type:    "slug",
			Current: localstore.Slugify(p.Title.Resolve(domain.LocaleEN, domain.LocaleIT)),
		}
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.SeoTitle != nil {
		set["seoTitle"] = *p.SeoTitle
	}
	if p.SeoDescription != nil {
		set["seoDescription"] = *p.SeoDescription
	}
	if p.PropertyType != nil {
		set["propertyType"] = string(*p.PropertyType)
	}
	if p.Price != nil {
		if p.Price.Amount != nil {
			set["price.amount"] = *p.Price.Amount
		}
		if p.Price.Currency != nil {
			set["price.currency"] = *p.Price.Currency
		}
	}
	if p.Specifications != nil {
		if p.Specifications.Bedrooms != nil {
			set["specifications.bedrooms"] = *p.Specifications.Bedrooms
		}
		if p.Specifications.Bathrooms != nil {
			set["specifications.bathrooms"] = *p.Specifications.Bathrooms
		}
		if p.Specifications.SquareFootage != nil {
			set["specifications.squareFootage"] = *p.Specifications.SquareFootage
		}
	}
	if p.Location != nil {
		if p.Location.City != nil {
			set["location.city"] = cityDocFrom(*p.Location.City)
		}
		if p.Location.Address != nil {
			set["location.address"] = *p.Location.Address
		}
		if p.Location.Coordinates != nil {
			set["location.coordinates"] = *p.Location.Coordinates
		}
	}
	if p.Images != nil {
		set["images"] = imageDocs(*p.Images)
	}
	if p.ClearMainImage {
		unset = append(unset, "mainImage")
	} else if p.MainImage != nil {
		set["mainImage"] = *p.MainImage
	}
	if p.Amenities != nil {
		set["amenities"] = *p.Amenities
	}
	if p.Keywords != nil {
		set["keywords"] = *p.Keywords
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.Featured != nil {
		set["featured"] = *p.Featured
	}
	if p.SourceURL != nil {
		set["sourceUrl"] = *p.SourceURL
	}
	if p.PublishAt != nil {
		set["publishAt"] = *p.PublishAt
	}
	if p.ScheduledPublish != nil {
		set["scheduledPublish"] = *p.ScheduledPublish
	}
	return set, unset
}

func locationDocFrom(loc domain.Location) *locationDoc {
	doc := &locationDoc{
		Address:     loc.Address,
		Coordinates: loc.Coordinates,
	}
	city := cityDocFrom(loc.City)
	doc.City = &city
	return doc
}

func cityDocFrom(city domain.City) cityDoc {
	doc := cityDoc{Name: city.Name}
	if city.Slug != "" {
		doc.Slug = &slugDoc{Type: "slug", Current: city.Slug}
	}
	region := regionDoc{Name: city.Region.Name, Country: city.Region.Country}
	doc.Region = &region
	return doc
}

func imageDocs(images []domain.ListingImage) []imageDoc {
	if images == nil {
		return nil
	}
	docs := make([]imageDoc, 0, len(images))
	for _, img := range images {
		doc := imageDoc{URL: img.URL}
		if img.AssetRef != "" {
			doc.Asset = &assetRef{Ref: img.AssetRef}
		}
		docs = append(docs, doc)
	}
	return docs
}

var _ ports.RemoteCatalog = (*Client)(nil)
