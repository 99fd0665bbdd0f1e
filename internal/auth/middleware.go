package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const actingUserKey = "acting_user_id"

// UserExists reports whether a token's user is still known.
type UserExists func(ctx context.Context, userID string) (bool, error)

// Middleware rejects requests without a valid bearer token for a known user
// and stores that user on the echo context.
func Middleware(issuer *Issuer, exists UserExists) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}

			userID, err := issuer.Parse(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
			}

			if exists != nil {
				ok, err := exists(c.Request().Context(), userID)
				if err != nil {
					return err
				}
				if !ok {
					return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, user not found")
				}
			}

			c.Set(actingUserKey, userID)
			return next(c)
		}
	}
}

// ActingUser returns the authenticated user id, or "" outside Middleware.
func ActingUser(c echo.Context) string {
	userID, _ := c.Get(actingUserKey).(string)
	return userID
}

// SetActingUser stores userID as the authenticated user of c.
func SetActingUser(c echo.Context, userID string) {
	c.Set(actingUserKey, userID)
}
