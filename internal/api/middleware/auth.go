package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartblog/editor-api/internal/api/handler"
	"github.com/smartblog/editor-api/internal/core/domain"
	"github.com/smartblog/editor-api/internal/core/ports"
)

// Auth validates the bearer token and injects the username into the context.
// Rejections carry WWW-Authenticate: Bearer and never reach the handler.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return reject(c, domain.ErrUnauthenticated)
			}

			username, err := verifier.Verify(token)
			if err != nil {
				return reject(c, domain.ErrInvalidToken)
			}

			c.Set(handler.ContextKeyUsername, username)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reject(c echo.Context, err error) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return err
}
