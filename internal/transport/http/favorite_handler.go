package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/service"
	"github.com/njprem/Italian_Properties_BackEnd/internal/util"
)

type FavoriteHandler struct {
	favorites *service.FavoriteService
}

type FavoriteItemResponse struct {
	ID        string          `json:"id"`
	ListingID string          `json:"listing_id"`
	SavedAt   string          `json:"saved_at"`
	Listing   *domain.Listing `json:"listing,omitempty"`
}

func RegisterFavorites(e *echo.Echo, auth *service.AuthService, favorites *service.FavoriteService) {
	handler := &FavoriteHandler{favorites: favorites}

	protected := e.Group("/api/v1/favorites", RequireAuth(auth))
	protected.GET("", handler.listFavorites)
	protected.POST("/toggle", handler.toggleFavorite)
}

// toggleFavorite flips the favorite state for the caller and the given
// listing, responding with the state after the flip.
func (h *FavoriteHandler) toggleFavorite(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		ListingID string `json:"listing_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	listingID := strings.TrimSpace(req.ListingID)
	if listingID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("listing_id is required"))
	}

	favorited, err := h.favorites.Toggle(c.Request().Context(), principal.ID, listingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, util.Error("property not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not update favorites"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"listing_id": listingID,
		"favorited":  favorited,
	})
}

func (h *FavoriteHandler) listFavorites(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	items, err := h.favorites.List(c.Request().Context(), principal.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load favorites"))
	}

	responses := make([]FavoriteItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, FavoriteItemResponse{
			ID:        item.Favorite.ID.String(),
			ListingID: item.Favorite.ListingID,
			SavedAt:   item.Favorite.CreatedAt.UTC().Format(time.RFC3339),
			Listing:   item.Listing,
		})
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"items": responses,
		"count": len(responses),
	})
}
