package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/service"
	"github.com/njprem/Italian_Properties_BackEnd/internal/util"
)

type ArticleHandler struct {
	articles *service.ArticleService
}

func RegisterArticles(e *echo.Echo, auth *service.AuthService, articles *service.ArticleService) {
	handler := &ArticleHandler{articles: articles}

	public := e.Group("/api/v1/articles")
	public.GET("", handler.listArticles)
	public.GET("/:key", handler.getArticle)

	protected := e.Group("/api/v1/articles", RequireAuth(auth))
	protected.POST("", handler.createArticle)
	protected.PUT("/:id", handler.updateArticle)
	protected.DELETE("/:id", handler.deleteArticle)
}

func (h *ArticleHandler) listArticles(c echo.Context) error {
	articles, err := h.articles.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load articles"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"articles": articles,
		"count":    len(articles),
	})
}

func (h *ArticleHandler) getArticle(c echo.Context) error {
	article, err := h.articles.GetBySlugOrID(c.Request().Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("article not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load article"))
	}
	return c.JSON(http.StatusOK, util.Data("article", article))
}

func (h *ArticleHandler) createArticle(c echo.Context) error {
	var article domain.Article
	if err := c.Bind(&article); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	created, err := h.articles.Create(c.Request().Context(), article)
	if err != nil {
		if errors.Is(err, service.ErrArticleValidation) {
			return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create article"))
	}
	return c.JSON(http.StatusCreated, util.Data("article", created))
}

func (h *ArticleHandler) updateArticle(c echo.Context) error {
	var patch domain.ArticlePatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	article, err := h.articles.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("article not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update article"))
	}
	return c.JSON(http.StatusOK, util.Data("article", article))
}

func (h *ArticleHandler) deleteArticle(c echo.Context) error {
	if err := h.articles.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("article not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete article"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"deleted": true})
}
