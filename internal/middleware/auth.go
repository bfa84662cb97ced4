package middleware

import (
	"net/http"
	"strings"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "admin_claims"

// TokenParser is the slice of AdminService the auth middleware needs.
type TokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

// RequireAdmin rejects requests without a valid admin bearer token. Both the
// admin and super_admin roles pass; the caller identity lands in the context.
func RequireAdmin(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := parser.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequireSuperAdmin guards admin-account management. Must run after
// RequireAdmin.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil || claims.Role != models.RoleSuperAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "super admin privileges required")
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the authenticated admin's claims, or nil.
func ClaimsFrom(c echo.Context) *service.Claims {
	claims, _ := c.Get(claimsContextKey).(*service.Claims)
	return claims
}
