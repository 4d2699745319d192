package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

// ctxActor extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a non-empty user id proves the
// middleware ran on this route.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ := c.Get("role").(string)

	return ports.Actor{ID: id, Role: role}, nil
}
