package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillpress/quillpress-backend/internal/config"
	"github.com/quillpress/quillpress-backend/internal/middleware"
	"github.com/quillpress/quillpress-backend/internal/model"
	"github.com/quillpress/quillpress-backend/internal/response"
	"github.com/quillpress/quillpress-backend/internal/service"
	"github.com/quillpress/quillpress-backend/internal/validator"
)

// AuthHandler handles the admin session endpoints: login, logout, verify.
type AuthHandler struct {
	authService  *service.AuthService
	adminService *service.AdminService
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, adminService *service.AdminService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		adminService: adminService,
		cfg:          cfg,
	}
}

// Login godoc
// POST /api/admin/login
// Validates username + password and sets the session cookie. Runs behind the
// login rate limiter. Unknown usernames and wrong passwords return the same
// 401 body so account existence cannot be probed.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, err := h.adminService.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	if err := h.authService.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
	})
}

// Logout godoc
// POST /api/admin/logout
// Clears the session cookie. Purely client-side: the token itself stays valid
// until natural expiry, an accepted property of stateless sessions.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Verify godoc
// GET /api/admin/verify
// Reports whether the request carries a valid session cookie.
func (h *AuthHandler) Verify(c *gin.Context) {
	token, err := c.Cookie(middleware.CookieName)
	if err != nil || token == "" {
		h.verifyFailed(c)
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		h.verifyFailed(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"admin": gin.H{
			"id":       claims.AdminID,
			"username": claims.Username,
		},
	})
}

func (h *AuthHandler) verifyFailed(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"authenticated": false,
		"error":         response.GetMessage(response.ErrUnauthorized),
		"code":          response.ErrUnauthorized,
	})
}

// setSessionCookie persists the token per the cookie contract: HttpOnly,
// 7-day lifetime, path "/", Secure + SameSite=Strict + domain in release
// mode, SameSite=Lax otherwise.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	sameSite := http.SameSiteLaxMode
	domain := ""
	if h.cfg.Production() {
		sameSite = http.SameSiteStrictMode
		domain = h.cfg.CookieDomain
	}

	c.SetSameSite(sameSite)
	c.SetCookie(
		middleware.CookieName,
		token,
		int(h.cfg.JWTExpiry.Seconds()),
		"/",
		domain,
		h.cfg.Production(),
		true,
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	domain := ""
	if h.cfg.Production() {
		domain = h.cfg.CookieDomain
	}
	c.SetCookie(middleware.CookieName, "", -1, "/", domain, h.cfg.Production(), true)
}
