package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the caller's identity. There is no token or session
// validation; the app trusts the header, which is acceptable only for a
// low-stakes internal tool.
const UserIDHeader = "X-User-Id"

const userIDContextKey = "userID"

// RequireUser returns a middleware that reads the user-id header and stores
// it in the request context. Requests without a parseable id get a 401.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(UserIDHeader)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, UserIDHeader+" header required")
			}

			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || id == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid "+UserIDHeader+" header")
			}

			c.Set(userIDContextKey, uint(id))
			return next(c)
		}
	}
}

// UserID returns the authenticated user id from the context, or 0 when the
// request went through an unprotected route.
func UserID(c echo.Context) uint {
	if val := c.Get(userIDContextKey); val != nil {
		if id, ok := val.(uint); ok {
			return id
		}
	}
	return 0
}
