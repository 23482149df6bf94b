package middleware

import (
	"net/http"
	"strings"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/perms"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/gigwise/eventops/internal/service"
	"github.com/labstack/echo/v4"
)

const userContextKey = "auth.user"

// Authenticate validates the bearer token and loads the user onto the echo
// context. Requests without a valid token are rejected up front.
func Authenticate(auth service.AuthService, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := auth.ParseToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireCan gates a route on one permission action. Denial is a 403, never
// an error page; unknown actions deny.
func RequireCan(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !perms.EmployeeCan(action, CurrentUser(c)) {
				return echo.NewHTTPError(http.StatusForbidden, "permission denied")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user, or nil on unauthenticated
// routes.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
