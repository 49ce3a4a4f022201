package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/smart-parking/internal/utils"
)

const testSecret = "test-secret"

// protectedApp wires a trivial route behind JWTAuth and RequireRole.
func protectedApp(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1")
	g.Use(JWTAuth(testSecret))
	g.Use(RequireRole(roles...))
	g.POST("/op", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"subject": c.Get("subject")})
	})
	return e
}

func doReq(e *echo.Echo, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/op", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "ops@lot.test", "OPERATOR", 5)
	require.NoError(t, err)

	rec := doReq(protectedApp("OPERATOR"), tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ops@lot.test")
}

func TestJWTAuthRejectsMissingOrGarbageToken(t *testing.T) {
	e := protectedApp("OPERATOR")

	rec := doReq(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doReq(e, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", "ops@lot.test", "OPERATOR", 5)
	require.NoError(t, err)

	rec := doReq(protectedApp("OPERATOR"), tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "viewer@lot.test", "VIEWER", 5)
	require.NoError(t, err)

	rec := doReq(protectedApp("OPERATOR"), tok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doReq(protectedApp("OPERATOR", "VIEWER"), tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
