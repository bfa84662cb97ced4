package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type fakeParser struct {
	claims *service.Claims
	err    error
}

func (f *fakeParser) ParseToken(token string) (*service.Claims, error) {
	return f.claims, f.err
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string, pre func(echo.Context)) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if pre != nil {
		pre(c)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, mw(next)(c)
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	_, err := invoke(t, RequireAdmin(&fakeParser{}), "", nil)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin_NotBearer(t *testing.T) {
	_, err := invoke(t, RequireAdmin(&fakeParser{}), "Basic dXNlcjpwYXNz", nil)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	parser := &fakeParser{err: errors.New("bad signature")}
	_, err := invoke(t, RequireAdmin(parser), "Bearer nope", nil)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin_ValidTokenStoresClaims(t *testing.T) {
	parser := &fakeParser{claims: &service.Claims{AdminID: 7, Username: "alice", Role: models.RoleAdmin}}
	c, err := invoke(t, RequireAdmin(parser), "Bearer good", nil)

	assert.NoError(t, err)
	claims := ClaimsFrom(c)
	assert.NotNil(t, claims)
	assert.Equal(t, "alice", claims.Username)
}

func TestRequireSuperAdmin_AdminRoleForbidden(t *testing.T) {
	_, err := invoke(t, RequireSuperAdmin(), "", func(c echo.Context) {
		c.Set(claimsContextKey, &service.Claims{Username: "alice", Role: models.RoleAdmin})
	})

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireSuperAdmin_NoClaims(t *testing.T) {
	_, err := invoke(t, RequireSuperAdmin(), "", nil)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireSuperAdmin_SuperAdminPasses(t *testing.T) {
	_, err := invoke(t, RequireSuperAdmin(), "", func(c echo.Context) {
		c.Set(claimsContextKey, &service.Claims{Username: "root", Role: models.RoleSuperAdmin})
	})

	assert.NoError(t, err)
}

func TestClaimsFrom_Empty(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Nil(t, ClaimsFrom(c))
}
