package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/media"
	"github.com/njprem/Italian_Properties_BackEnd/internal/service"
	"github.com/njprem/Italian_Properties_BackEnd/internal/util"
)

type ListingHandler struct {
	catalog   *service.CatalogService
	favorites *service.FavoriteService
	images    *service.ImageService
}

func RegisterListings(e *echo.Echo, auth *service.AuthService, catalog *service.CatalogService, favorites *service.FavoriteService, images *service.ImageService) {
	handler := &ListingHandler{
		catalog:   catalog,
		favorites: favorites,
		images:    images,
	}

	public := e.Group("/api/v1/properties")
	public.GET("", handler.listProperties)
	public.GET("/:key", handler.getProperty)
	public.GET("/:key/favorites/count", handler.countFavorites)

	protected := e.Group("/api/v1/properties", RequireAuth(auth))
	protected.POST("", handler.createProperty)
	protected.PUT("/:id", handler.updateProperty)
	protected.DELETE("/:id", handler.deleteProperty)
	protected.POST("/:id/images", handler.uploadImage)
	protected.DELETE("/:id/images/:index", handler.removeImage)
}

func (h *ListingHandler) listProperties(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	listings, err := h.catalog.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load properties"))
	}

	ids := make([]string, 0, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.ID)
	}
	counts, err := h.favorites.CountForListings(c.Request().Context(), ids)
	if err != nil {
		// The catalog page is still useful without counts.
		counts = map[string]int64{}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"properties":      listings,
		"favorite_counts": counts,
		"count":           len(listings),
	})
}

func (h *ListingHandler) getProperty(c echo.Context) error {
	listing, err := h.catalog.GetBySlugOrID(c.Request().Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("property not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load property"))
	}
	return c.JSON(http.StatusOK, util.Data("property", listing))
}

func (h *ListingHandler) createProperty(c echo.Context) error {
	var draft domain.ListingDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	listing, err := h.catalog.Create(c.Request().Context(), draft)
	if err != nil {
		if errors.Is(err, service.ErrListingValidation) {
			return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create property"))
	}
	return c.JSON(http.StatusCreated, util.Data("property", listing))
}

func (h *ListingHandler) updateProperty(c echo.Context) error {
	var patch domain.ListingPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	listing, err := h.catalog.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, util.Error("property not found"))
		case errors.Is(err, service.ErrListingValidation):
			return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to update property"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("property", listing))
}

func (h *ListingHandler) deleteProperty(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("property not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete property"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"deleted": true})
}

func (h *ListingHandler) uploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("image file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read image file"))
	}
	defer file.Close()

	image, err := h.images.UploadListingImage(c.Request().Context(), media.Upload{
		Reader:      file,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedImageType):
			return c.JSON(http.StatusUnsupportedMediaType, util.Error(err.Error()))
		case errors.Is(err, service.ErrImageTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to process image"))
		}
	}

	listing, err := h.catalog.AddImage(c.Request().Context(), c.Param("id"), *image)
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("property not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to attach image"))
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"image":    image,
		"property": listing,
	})
}

func (h *ListingHandler) removeImage(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("index must be an integer"))
	}

	listing, err := h.catalog.RemoveImage(c.Request().Context(), c.Param("id"), index)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, util.Error("property not found"))
		case errors.Is(err, service.ErrImageIndexInvalid):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to remove image"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("property", listing))
}

func (h *ListingHandler) countFavorites(c echo.Context) error {
	listing, err := h.catalog.GetBySlugOrID(c.Request().Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("property not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load property"))
	}

	count, err := h.favorites.Count(c.Request().Context(), listing.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to fetch favorites count"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"listing_id":      listing.ID,
		"favorites_count": count,
	})
}

func filterFromQuery(c echo.Context) (domain.ListingFilter, error) {
	var filter domain.ListingFilter

	if v := strings.TrimSpace(c.QueryParam("type")); v != "" {
		propertyType := domain.PropertyType(v)
		if !propertyType.Valid() {
			return filter, errors.New("unknown property type")
		}
		filter.PropertyType = propertyType
	}
	if v := strings.TrimSpace(c.QueryParam("min_price")); v != "" {
		amount, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("min_price must be an integer")
		}
		filter.MinPrice = &amount
	}
	if v := strings.TrimSpace(c.QueryParam("max_price")); v != "" {
		amount, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("max_price must be an integer")
		}
		filter.MaxPrice = &amount
	}
	if v := strings.TrimSpace(c.QueryParam("featured")); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errors.New("featured must be a boolean")
		}
		filter.Featured = &featured
	}
	filter.City = strings.TrimSpace(c.QueryParam("city"))
	filter.Search = strings.TrimSpace(c.QueryParam("q"))
	return filter, nil
}
