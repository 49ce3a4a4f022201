package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/auth"
	"github.com/iliyamo/smart-parking/internal/config"
	"github.com/iliyamo/smart-parking/internal/utils"
)

// Roles carried in the JWT "role" claim.  OPERATOR may drive the
// facility; VIEWER only reads.
const (
	RoleOperator = "OPERATOR"
	RoleViewer   = "VIEWER"
)

// account is one of the fixed logins configured through the
// environment.  There is no registration: a facility has one operator
// and optionally one viewer.
type account struct {
	email        string
	passwordHash string
	role         string
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Tokens   *auth.TokenStore
	accounts []account
}

// NewAuthHandler hashes the configured credentials once at startup and
// keeps only the hashes in memory.
func NewAuthHandler(cfg config.Config, tokens *auth.TokenStore) *AuthHandler {
	h := &AuthHandler{Cfg: cfg, Tokens: tokens}

	opHash, err := utils.HashPassword(cfg.OperatorPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash operator password: %v", err)
	}
	h.accounts = append(h.accounts, account{
		email:        strings.ToLower(cfg.OperatorEmail),
		passwordHash: opHash,
		role:         RoleOperator,
	})

	if cfg.ViewerEmail != "" && cfg.ViewerPassword != "" {
		viewHash, err := utils.HashPassword(cfg.ViewerPassword, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("hash viewer password: %v", err)
		}
		h.accounts = append(h.accounts, account{
			email:        strings.ToLower(cfg.ViewerEmail),
			passwordHash: viewHash,
			role:         RoleViewer,
		})
	}
	return h
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type accountPart struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
type authResp struct {
	Account accountPart `json:"account"`
	Access  tokenPart   `json:"access"`
	Refresh tokenPart   `json:"refresh"`
}

// findAccount returns the configured account matching the email.
func (h *AuthHandler) findAccount(email string) (account, bool) {
	for _, a := range h.accounts {
		if a.email == email {
			return a, true
		}
	}
	return account{}, false
}

// issuePair creates an access/refresh token pair for an account and
// records the refresh hash in the store.
func (h *AuthHandler) issuePair(email, role string) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, email, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, err
	}
	h.Tokens.Store(utils.HashRefreshRaw(refresh.Raw), email, role, refresh.Exp)

	return authResp{
		Account: accountPart{Email: email, Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// Login verifies credentials against the configured accounts and
// returns a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	acct, ok := h.findAccount(req.Email)
	if !ok || !utils.VerifyPassword(acct.passwordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	resp, err := h.issuePair(acct.email, acct.role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh rotates a refresh token: the presented raw token is consumed
// and a brand new pair is returned.  A consumed, expired or unknown
// token yields 401.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	email, role, ok := h.Tokens.Consume(utils.HashRefreshRaw(req.RefreshToken))
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	resp, err := h.issuePair(email, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout invalidates the presented refresh token.  Logging out twice is
// harmless; the response is 204 either way.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	h.Tokens.Delete(utils.HashRefreshRaw(req.RefreshToken))
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated principal from the JWT claims that
// JWTAuth stored in the context.
func (h *AuthHandler) Me(c echo.Context) error {
	email, _ := c.Get("subject").(string)
	role, _ := c.Get("role").(string)
	return c.JSON(http.StatusOK, accountPart{Email: email, Role: role})
}
