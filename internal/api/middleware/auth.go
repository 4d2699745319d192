package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

// Auth validates the bearer token and injects the acting identity into the
// request context under "user_id" and "role".
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is not a bearer token")
			}

			actor, err := ParseToken(jwtSecret, parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Your token is invalid or has expired")
			}

			c.Set("user_id", actor.ID)
			c.Set("role", actor.Role)

			return next(c)
		}
	}
}

// ParseToken verifies an HS256 JWT and extracts the actor from the sub and
// scope claims. Also used by the WebSocket handshake, which authenticates
// with the same tokens.
func ParseToken(jwtSecret, token string) (ports.Actor, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return ports.Actor{}, jwt.ErrTokenInvalidClaims
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return ports.Actor{}, errors.New("token missing subject claim")
	}
	scope, _ := claims["scope"].(string)

	return ports.Actor{ID: sub, Role: scope}, nil
}
