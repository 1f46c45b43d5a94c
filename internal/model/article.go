package model

import (
	"time"

	"github.com/google/uuid"
)

// Article is a blog post. Slug is unique across all articles, published or not.
type Article struct {
	ID         uuid.UUID      `json:"id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	Content    string         `json:"content"`
	Excerpt    *string        `json:"excerpt"`
	CoverImage *string        `json:"cover_image"`
	Published  bool           `json:"published"`
	AuthorID   uuid.UUID      `json:"author_id"`
	Author     *ArticleAuthor `json:"author,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ArticleAuthor is the author projection embedded in article responses.
// Deliberately excludes everything but id and username.
type ArticleAuthor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// CreateArticleRequest is the payload for creating an article.
type CreateArticleRequest struct {
	Title      string  `json:"title" binding:"required,min=1,max=200"`
	Slug       string  `json:"slug" binding:"required,min=1,max=200"`
	Content    string  `json:"content" binding:"required"`
	Excerpt    *string `json:"excerpt" binding:"omitempty,max=500"`
	CoverImage *string `json:"cover_image" binding:"omitempty,max=2048"`
	Published  bool    `json:"published"`
}

// UpdateArticleRequest is the payload for partially updating an article.
// Nil fields are left unchanged.
type UpdateArticleRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=200"`
	Slug       *string `json:"slug" binding:"omitempty,min=1,max=200"`
	Content    *string `json:"content" binding:"omitempty,min=1"`
	Excerpt    *string `json:"excerpt" binding:"omitempty,max=500"`
	CoverImage *string `json:"cover_image" binding:"omitempty,max=2048"`
	Published  *bool   `json:"published"`
}
