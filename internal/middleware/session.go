package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillpress/quillpress-backend/internal/response"
	"github.com/quillpress/quillpress-backend/internal/service"
)

const (
	// CookieName is the session cookie holding the signed admin token.
	CookieName = "admin-token"

	// ContextKeyClaims is the Gin context key for validated session claims.
	ContextKeyClaims = "claims"
)

// RequireAdmin gates admin-only routes on a valid session cookie.
// An absent cookie, a malformed token, and an expired token all produce the
// identical 401 response; nothing about the failure mode leaks to the client.
func RequireAdmin(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the session claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}
