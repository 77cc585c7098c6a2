package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/smartblog/editor-api/internal/core/domain"
)

// ContextKeyUsername is where the Auth middleware stores the caller.
const ContextKeyUsername = "username"

// ctxUsername returns the authenticated username placed by the Auth
// middleware. Its absence means the route was wired without the gate.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get(ContextKeyUsername).(string)
	if username == "" {
		return "", domain.ErrUnauthenticated
	}
	return username, nil
}
