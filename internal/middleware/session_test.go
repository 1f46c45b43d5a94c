package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quillpress/quillpress-backend/internal/config"
	"github.com/quillpress/quillpress-backend/internal/middleware"
	"github.com/quillpress/quillpress-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatedEngine(authService *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/gated", middleware.RequireAdmin(authService), func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return engine
}

func doGated(engine *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin_DenialIsUniform(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	authService := service.NewAuthService(cfg)
	engine := newGatedEngine(authService)

	expiredCfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Minute}
	expiredToken, err := service.NewAuthService(expiredCfg).GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	foreignCfg := &config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour}
	foreignToken, err := service.NewAuthService(foreignCfg).GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	// Missing, malformed, expired, and wrongly signed cookies must be
	// indistinguishable: same status, same body.
	noCookie := doGated(engine, "")
	malformed := doGated(engine, "garbage")
	expired := doGated(engine, expiredToken)
	foreign := doGated(engine, foreignToken)

	for name, w := range map[string]*httptest.ResponseRecorder{
		"no cookie": noCookie, "malformed": malformed, "expired": expired, "foreign": foreign,
	} {
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.JSONEq(t, noCookie.Body.String(), w.Body.String(), name)
	}
}

func TestRequireAdmin_ValidCookiePasses(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	authService := service.NewAuthService(cfg)
	engine := newGatedEngine(authService)

	token, err := authService.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	w := doGated(engine, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"admin"}`, w.Body.String())
}
