package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quillpress/quillpress-backend/internal/config"
	"github.com/quillpress/quillpress-backend/internal/handler"
	"github.com/quillpress/quillpress-backend/internal/middleware"
	"github.com/quillpress/quillpress-backend/internal/ratelimit"
	"github.com/quillpress/quillpress-backend/internal/response"
	"github.com/quillpress/quillpress-backend/internal/service"
)

// articleReadCacheTTL is the Cache-Control lifetime for single-article reads.
const articleReadCacheTTL = 300

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Article *handler.ArticleHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	limiter *ratelimit.Limiter,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true // Session cookie must survive CORS
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID, security headers, and compression apply globally.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Public Articles ───────────────────────────────────────────────
	articles := router.Group("/api/articles")
	{
		articles.GET("", handlers.Article.ListArticles)
		articles.GET("/:slug", middleware.CacheControl(articleReadCacheTTL), handlers.Article.GetArticleBySlug)
	}

	// ─── Admin Session ─────────────────────────────────────────────────
	admin := router.Group("/api/admin")
	{
		admin.POST("/login",
			middleware.LoginRateLimit(limiter, cfg.LoginRateLimit, cfg.LoginRateWindow),
			handlers.Auth.Login,
		)
		admin.POST("/logout", handlers.Auth.Logout)
		admin.GET("/verify", handlers.Auth.Verify)

		// ─── Admin Articles (Session Gated) ────────────────────────────
		adminArticles := admin.Group("/articles", middleware.RequireAdmin(authService))
		{
			adminArticles.POST("", handlers.Article.CreateArticle)
			adminArticles.PATCH("/:id", handlers.Article.UpdateArticle)
			adminArticles.DELETE("/:id", handlers.Article.DeleteArticle)
		}
	}

	return router
}
