package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Italian_Properties_BackEnd/internal/domain"
	"github.com/njprem/Italian_Properties_BackEnd/internal/service"
	"github.com/njprem/Italian_Properties_BackEnd/internal/util"
)

const contextPrincipalKey = "auth.principal"

func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if strings.TrimSpace(authHeader) == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("missing authorization header"))
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, util.Error("invalid authorization header"))
			}
			principal, err := auth.VerifyToken(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
			}
			c.Set(contextPrincipalKey, principal)
			return next(c)
		}
	}
}

func CurrentPrincipal(c echo.Context) (*domain.Principal, bool) {
	principal, ok := c.Get(contextPrincipalKey).(*domain.Principal)
	return principal, ok && principal != nil
}
