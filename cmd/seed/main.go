package main

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/quillpress/quillpress-backend/internal/config"
	"github.com/quillpress/quillpress-backend/internal/database"
	"github.com/quillpress/quillpress-backend/internal/logger"
	"github.com/quillpress/quillpress-backend/internal/model"
	"github.com/quillpress/quillpress-backend/internal/repository"
	"github.com/quillpress/quillpress-backend/internal/service"
)

// Seeds the initial admin account and a pair of sample articles. Safe to run
// repeatedly: existing rows are left untouched.
const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123" // Change this in production!
)

func strPtr(s string) *string { return &s }

var sampleArticles = []model.Article{
	{
		Title: "Getting Started with QuillPress",
		Slug:  "getting-started-with-quillpress",
		Content: `# Getting Started with QuillPress

Welcome! This sample article shows what a published post looks like.

## Writing

Articles are plain markdown. Give each one a unique slug; that slug is the
public URL and cannot collide with another article.

## Publishing

Drafts stay invisible to readers until you flip the published switch from the
admin dashboard.`,
		Excerpt:   strPtr("A short tour of writing and publishing articles."),
		Published: true,
	},
	{
		Title: "Draft: Writing Style Notes",
		Slug:  "draft-writing-style-notes",
		Content: `# Writing Style Notes

This one is a draft. Readers never see it; admins see it in the dashboard
and in the article list when requesting unpublished articles.`,
		Excerpt:   strPtr("An unpublished draft, visible to admins only."),
		Published: false,
	},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	adminRepo := repository.NewAdminRepository(pool)
	articleRepo := repository.NewArticleRepository(pool)
	authService := service.NewAuthService(cfg)

	// ─── Seed Admin ────────────────────────────────────────────────────
	admin, err := adminRepo.GetByUsername(ctx, seedAdminUsername)
	switch {
	case err == nil:
		log.Info().Str("username", admin.Username).Msg("Admin already exists, skipping")
	case errors.Is(err, pgx.ErrNoRows):
		hash, err := authService.HashPassword(seedAdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash admin password")
		}
		admin = &model.Admin{Username: seedAdminUsername, PasswordHash: hash}
		if err := adminRepo.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("Failed to create admin")
		}
		log.Info().Str("username", admin.Username).Msg("Admin created")
	default:
		log.Fatal().Err(err).Msg("Failed to look up admin")
	}

	// ─── Seed Articles ─────────────────────────────────────────────────
	for _, art := range sampleArticles {
		_, err := articleRepo.GetBySlug(ctx, art.Slug)
		if err == nil {
			log.Info().Str("slug", art.Slug).Msg("Article already exists, skipping")
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Fatal().Err(err).Str("slug", art.Slug).Msg("Failed to look up article")
		}

		art.AuthorID = admin.ID
		if err := articleRepo.Create(ctx, &art); err != nil {
			log.Fatal().Err(err).Str("slug", art.Slug).Msg("Failed to create article")
		}
		log.Info().Str("slug", art.Slug).Bool("published", art.Published).Msg("Article created")
	}

	log.Info().Msg("Seed complete")
}
