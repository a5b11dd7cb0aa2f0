package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/service"
	"github.com/njprem/Italian_Properties_BackEnd/internal/util"
)

type SavedSearchHandler struct {
	searches *service.SavedSearchService
}

func RegisterSavedSearches(e *echo.Echo, auth *service.AuthService, searches *service.SavedSearchService) {
	handler := &SavedSearchHandler{searches: searches}

	protected := e.Group("/api/v1/saved-searches", RequireAuth(auth))
	protected.GET("", handler.listSearches)
	protected.POST("", handler.createSearch)
	protected.DELETE("/:id", handler.deleteSearch)
}

func (h *SavedSearchHandler) createSearch(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Name          string               `json:"name"`
		Filters       domain.ListingFilter `json:"filters"`
		Notifications bool                 `json:"notifications"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	search, err := h.searches.Create(c.Request().Context(), principal.ID, req.Name, req.Filters, req.Notifications)
	if err != nil {
		if errors.Is(err, service.ErrSavedSearchValidation) {
			return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to save search"))
	}
	return c.JSON(http.StatusCreated, util.Data("saved_search", search))
}

func (h *SavedSearchHandler) listSearches(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	searches, err := h.searches.List(c.Request().Context(), principal.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load saved searches"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"items": searches,
		"count": len(searches),
	})
}

func (h *SavedSearchHandler) deleteSearch(c echo.Context) error {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	if err := h.searches.Delete(c.Request().Context(), principal.ID, id); err != nil {
		if errors.Is(err, service.ErrSavedSearchNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("saved search not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete saved search"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"deleted": true})
}
