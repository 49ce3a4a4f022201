package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/smart-parking/internal/auth"
	"github.com/iliyamo/smart-parking/internal/config"
)

func testAuthHandler() *AuthHandler {
	cfg := config.Config{
		JWTSecret:        "test-secret",
		AccessTTLMin:     15,
		RefreshTTLDays:   7,
		BcryptCost:       4, // minimum cost keeps the test fast
		OperatorEmail:    "ops@lot.test",
		OperatorPassword: "open-sesame",
		ViewerEmail:      "viewer@lot.test",
		ViewerPassword:   "look-only",
	}
	return NewAuthHandler(cfg, auth.NewTokenStore())
}

func decodeAuthResp(t *testing.T, body []byte) authResp {
	t.Helper()
	var resp authResp
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestLoginIssuesTokensPerRole(t *testing.T) {
	h := testAuthHandler()

	rec := postJSON(t, h.Login, `{"email": "ops@lot.test", "password": "open-sesame"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeAuthResp(t, rec.Body.Bytes())
	assert.Equal(t, RoleOperator, resp.Account.Role)
	assert.NotEmpty(t, resp.Access.Token)
	assert.NotEmpty(t, resp.Refresh.Token)

	rec = postJSON(t, h.Login, `{"email": "VIEWER@lot.test", "password": "look-only"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, RoleViewer, decodeAuthResp(t, rec.Body.Bytes()).Account.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := testAuthHandler()

	rec := postJSON(t, h.Login, `{"email": "ops@lot.test", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, h.Login, `{"email": "nobody@lot.test", "password": "open-sesame"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, h.Login, `{"email": "", "password": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	h := testAuthHandler()

	rec := postJSON(t, h.Login, `{"email": "ops@lot.test", "password": "open-sesame"}`)
	first := decodeAuthResp(t, rec.Body.Bytes())

	rec = postJSON(t, h.Refresh, `{"refresh_token": "`+first.Refresh.Token+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeAuthResp(t, rec.Body.Bytes())
	assert.NotEqual(t, first.Refresh.Token, second.Refresh.Token)
	assert.Equal(t, RoleOperator, second.Account.Role, "rotation keeps the role")

	// The consumed token is dead.
	rec = postJSON(t, h.Refresh, `{"refresh_token": "`+first.Refresh.Token+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	h := testAuthHandler()

	rec := postJSON(t, h.Login, `{"email": "ops@lot.test", "password": "open-sesame"}`)
	resp := decodeAuthResp(t, rec.Body.Bytes())

	rec = postJSON(t, h.Logout, `{"refresh_token": "`+resp.Refresh.Token+`"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = postJSON(t, h.Refresh, `{"refresh_token": "`+resp.Refresh.Token+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
