package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillpress/quillpress-backend/internal/model"
)

// ArticleRepository handles article data access.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

const articleColumns = `a.id, a.title, a.slug, a.content, a.excerpt, a.cover_image,
	a.published, a.author_id, a.created_at, a.updated_at, ad.id, ad.username`

func scanArticle(row pgx.Row) (*model.Article, error) {
	art := &model.Article{Author: &model.ArticleAuthor{}}
	err := row.Scan(
		&art.ID, &art.Title, &art.Slug, &art.Content, &art.Excerpt, &art.CoverImage,
		&art.Published, &art.AuthorID, &art.CreatedAt, &art.UpdatedAt,
		&art.Author.ID, &art.Author.Username,
	)
	if err != nil {
		return nil, err
	}
	return art, nil
}

// GetByID retrieves an article by ID, regardless of published state.
func (r *ArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx,
		`SELECT `+articleColumns+`
		 FROM articles a JOIN admins ad ON a.author_id = ad.id
		 WHERE a.id = $1`, id,
	))
}

// GetBySlug retrieves an article by its unique slug, regardless of published
// state. The service layer applies published-only visibility for public reads.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx,
		`SELECT `+articleColumns+`
		 FROM articles a JOIN admins ad ON a.author_id = ad.id
		 WHERE a.slug = $1`, slug,
	))
}

// List retrieves articles newest first, optionally including drafts.
func (r *ArticleRepository) List(ctx context.Context, includeUnpublished bool) ([]model.Article, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+articleColumns+`
		 FROM articles a JOIN admins ad ON a.author_id = ad.id
		 WHERE a.published OR $1
		 ORDER BY a.created_at DESC`, includeUnpublished,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		art, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *art)
	}
	return articles, rows.Err()
}

// Create inserts a new article. A concurrent slug collision surfaces as a
// unique-constraint violation (23505) despite the service-level pre-check.
func (r *ArticleRepository) Create(ctx context.Context, art *model.Article) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO articles (title, slug, content, excerpt, cover_image, published, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		art.Title, art.Slug, art.Content, art.Excerpt, art.CoverImage, art.Published, art.AuthorID,
	).Scan(&art.ID, &art.CreatedAt, &art.UpdatedAt)
}

// Update replaces the mutable columns of an article.
func (r *ArticleRepository) Update(ctx context.Context, art *model.Article) error {
	return r.pool.QueryRow(ctx,
		`UPDATE articles
		 SET title = $2, slug = $3, content = $4, excerpt = $5, cover_image = $6,
		     published = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		art.ID, art.Title, art.Slug, art.Content, art.Excerpt, art.CoverImage, art.Published,
	).Scan(&art.UpdatedAt)
}

// Delete removes an article by ID.
func (r *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
