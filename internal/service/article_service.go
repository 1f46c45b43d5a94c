package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quillpress/quillpress-backend/internal/config"
	"github.com/quillpress/quillpress-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Domain errors.
var (
	ErrArticleNotFound = errors.New("article not found")
	ErrSlugTaken       = errors.New("an article with this slug already exists")
)

// articleCacheTTL bounds staleness of the published-article cache.
const articleCacheTTL = 60 * time.Second

// ArticleRepo is the persistence surface ArticleService needs. Satisfied by
// repository.ArticleRepository; tests substitute an in-memory fake.
type ArticleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	List(ctx context.Context, includeUnpublished bool) ([]model.Article, error)
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ArticleService handles article business logic: slug uniqueness, the
// published/unpublished visibility split, and Redis read-through caching of
// public reads.
type ArticleService struct {
	articleRepo ArticleRepo
	rdb         *redis.Client // nil disables caching
	log         zerolog.Logger
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articleRepo ArticleRepo, rdb *redis.Client, log zerolog.Logger) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "article_service").Logger(),
	}
}

// List retrieves articles newest first. Unpublished articles are only
// included when the caller has already passed the admin gate.
func (s *ArticleService) List(ctx context.Context, includeUnpublished bool) ([]model.Article, error) {
	articles, err := s.articleRepo.List(ctx, includeUnpublished)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []model.Article{}
	}
	return articles, nil
}

// GetByID retrieves any article by ID, published or not.
func (s *ArticleService) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	return article, err
}

// GetPublishedBySlug retrieves a published article for the public read path,
// serving from the Redis cache when possible. Drafts are invisible here.
func (s *ArticleService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Article, error) {
	cacheKey := config.CacheKey.ArticleBySlug(slug)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var article model.Article
			if err := json.Unmarshal([]byte(cached), &article); err == nil {
				return &article, nil
			}
			// Unreadable payload: fall through to the database.
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("slug", slug).Msg("Article cache read failed")
		}
	}

	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	if !article.Published {
		return nil, ErrArticleNotFound
	}

	if s.rdb != nil {
		payload, err := json.Marshal(article)
		if err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, articleCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Str("slug", slug).Msg("Article cache write failed")
			}
		}
	}

	return article, nil
}

// Create inserts a new article after verifying the slug is free.
func (s *ArticleService) Create(ctx context.Context, article *model.Article) error {
	_, err := s.articleRepo.GetBySlug(ctx, article.Slug)
	if err == nil {
		return ErrSlugTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check slug: %w", err)
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return err
	}

	s.invalidate(ctx, article.Slug)
	return nil
}

// Update applies a partial update. Nil request fields leave the stored value
// unchanged; a slug change re-checks uniqueness against other articles.
func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateArticleRequest) (*model.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}

	oldSlug := article.Slug

	if req.Slug != nil && *req.Slug != article.Slug {
		existing, err := s.articleRepo.GetBySlug(ctx, *req.Slug)
		if err == nil && existing.ID != id {
			return nil, ErrSlugTaken
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("check slug: %w", err)
		}
		article.Slug = *req.Slug
	}
	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Excerpt != nil {
		article.Excerpt = req.Excerpt
	}
	if req.CoverImage != nil {
		article.CoverImage = req.CoverImage
	}
	if req.Published != nil {
		article.Published = *req.Published
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	s.invalidate(ctx, oldSlug, article.Slug)
	return article, nil
}

// Delete removes an article by ID.
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrArticleNotFound
	}
	if err != nil {
		return err
	}

	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, article.Slug)
	return nil
}

// invalidate drops cached payloads for the given slugs. Best effort: a failed
// delete only shortens to the cache TTL, it never corrupts data.
func (s *ArticleService) invalidate(ctx context.Context, slugs ...string) {
	if s.rdb == nil {
		return
	}
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, config.CacheKey.ArticleBySlug(slug))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Strs("slugs", slugs).Msg("Article cache invalidation failed")
	}
}
