package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sonsdetaville/sounds-api/internal/api/middleware"
	"github.com/sonsdetaville/sounds-api/internal/notify"
)

// WSHandler upgrades authenticated clients to a WebSocket session on the
// notification hub.
type WSHandler struct {
	hub       *notify.Hub
	jwtSecret string
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

func NewWSHandler(hub *notify.Hub, jwtSecret string, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Connect handles GET /ws. The bearer token comes from the Authorization
// header or, for browser WebSocket clients that cannot set headers, the
// "token" query parameter.
func (h *WSHandler) Connect(c echo.Context) error {
	token := bearerToken(c.Request().Header.Get("Authorization"))
	if token == "" {
		token = c.QueryParam("token")
	}
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
	}

	actor, err := middleware.ParseToken(h.jwtSecret, token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Your token is invalid or has expired")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	h.hub.Attach(conn, actor.ID)
	return nil
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
