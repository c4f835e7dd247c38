package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/membersys/account-service/internal/core/ports"
)

// sessionCookie mirrors handler.SessionCookie; redeclared to keep the
// middleware free of a handler import.
const sessionCookie = "session"

// Session validates the session cookie and injects the bound username into
// the echo context. Requests without a valid session are redirected to
// redirectTo, or rejected with 401 when redirectTo is empty.
func Session(sessions ports.SessionService, redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookie)
			if err != nil || cookie.Value == "" {
				return reject(c, redirectTo)
			}

			username, err := sessions.Validate(c.Request().Context(), cookie.Value)
			if err != nil {
				return reject(c, redirectTo)
			}

			c.Set("username", username)
			return next(c)
		}
	}
}

func reject(c echo.Context, redirectTo string) error {
	if redirectTo != "" {
		return c.Redirect(http.StatusFound, redirectTo)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid session")
}
