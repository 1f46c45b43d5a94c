package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quillpress/quillpress-backend/internal/middleware"
	"github.com/quillpress/quillpress-backend/internal/model"
	"github.com/quillpress/quillpress-backend/internal/response"
	"github.com/quillpress/quillpress-backend/internal/service"
	"github.com/quillpress/quillpress-backend/internal/validator"
)

// Cache lifetimes for article reads. The public list tolerates a minute of
// staleness; the admin view only a few seconds.
const (
	listCacheTTL      = 60
	adminListCacheTTL = 5
)

// ArticleHandler handles the public read endpoints and admin article CRUD.
type ArticleHandler struct {
	articleService *service.ArticleService
	authService    *service.AuthService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService *service.ArticleService, authService *service.AuthService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		authService:    authService,
	}
}

// ListArticles godoc
// GET /api/articles[?includeUnpublished=true]
// Public callers get published articles, newest first. The unpublished view
// requires a valid session cookie and is marked privately cacheable.
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	includeUnpublished := c.Query("includeUnpublished") == "true"

	if includeUnpublished {
		token, err := c.Cookie(middleware.CookieName)
		if err != nil || token == "" {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}
		if _, err := h.authService.ValidateToken(token); err != nil {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}
	}

	articles, err := h.articleService.List(c.Request.Context(), includeUnpublished)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if includeUnpublished {
		c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", adminListCacheTTL))
	} else {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", listCacheTTL))
	}

	c.JSON(http.StatusOK, articles)
}

// GetArticleBySlug godoc
// GET /api/articles/:slug
// Returns a published article. Drafts are indistinguishable from missing
// articles here.
func (h *ArticleHandler) GetArticleBySlug(c *gin.Context) {
	article, err := h.articleService.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.JSON(http.StatusOK, article)
}

// CreateArticle godoc
// POST /api/admin/articles
// Creates an article authored by the session's admin.
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	var req model.CreateArticleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	article := &model.Article{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Published:  req.Published,
		AuthorID:   claims.AdminID,
		Author: &model.ArticleAuthor{
			ID:       claims.AdminID,
			Username: claims.Username,
		},
	}

	if err := h.articleService.Create(c.Request.Context(), article); err != nil {
		h.failArticleWrite(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusCreated, article)
}

// UpdateArticle godoc
// PATCH /api/admin/articles/:id
// Partially updates an article; absent fields are left unchanged.
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	var req model.UpdateArticleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.failArticleWrite(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, article)
}

// DeleteArticle godoc
// DELETE /api/admin/articles/:id
// Deletes an article by ID.
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		h.failArticleWrite(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// failArticleWrite maps article mutation failures onto the error taxonomy.
// The slug pre-check catches most conflicts; a pg unique violation (23505)
// covers the race between check and insert.
func (h *ArticleHandler) failArticleWrite(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrArticleNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrSlugTaken):
		response.FailMsg(c, http.StatusConflict, response.ErrConflict, "Article with this slug already exists")
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.FailMsg(c, http.StatusConflict, response.ErrConflict, "Article with this slug already exists")
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
