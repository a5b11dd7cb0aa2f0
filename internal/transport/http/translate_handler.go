package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Italian_Properties_BackEnd/internal/service"
	"github.com/njprem/Italian_Properties_BackEnd/internal/util"
)

type TranslateHandler struct {
	translator *service.TranslationService
}

func RegisterTranslate(e *echo.Echo, auth *service.AuthService, translator *service.TranslationService) {
	handler := &TranslateHandler{translator: translator}

	protected := e.Group("/api/v1/translate", RequireAuth(auth))
	protected.POST("", handler.translate)
}

func (h *TranslateHandler) translate(c echo.Context) error {
	var req struct {
		Text       string `json:"text"`
		SourceLang string `json:"source_lang"`
		TargetLang string `json:"target_lang"`
		Context    string `json:"context"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.Text == "" || req.SourceLang == "" || req.TargetLang == "" {
		return c.JSON(http.StatusBadRequest, util.Error("text, source_lang and target_lang are required"))
	}

	translated, err := h.translator.Translate(c.Request().Context(), req.Text, req.SourceLang, req.TargetLang, req.Context)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTranslatorNotConfigured):
			return c.JSON(http.StatusServiceUnavailable, util.Error("translation service not configured"))
		case errors.Is(err, service.ErrTranslationEmptySource):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrUnsupportedLocale):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusBadGateway, util.Error("translation failed"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"translated_text": translated,
		"source_lang":     req.SourceLang,
		"target_lang":     req.TargetLang,
	})
}
