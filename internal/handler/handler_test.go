package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quillpress/quillpress-backend/internal/config"
	"github.com/quillpress/quillpress-backend/internal/handler"
	"github.com/quillpress/quillpress-backend/internal/middleware"
	"github.com/quillpress/quillpress-backend/internal/model"
	"github.com/quillpress/quillpress-backend/internal/ratelimit"
	"github.com/quillpress/quillpress-backend/internal/router"
	"github.com/quillpress/quillpress-backend/internal/service"
	"github.com/quillpress/quillpress-backend/internal/validator"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	m.Run()
}

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeAdminRepo struct {
	admins map[uuid.UUID]*model.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[uuid.UUID]*model.Admin)}
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Admin, error) {
	if a, ok := f.admins[id]; ok {
		return a, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range f.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) Create(_ context.Context, a *model.Admin) error {
	a.ID = uuid.New()
	f.admins[a.ID] = a
	return nil
}

type fakeArticleRepo struct {
	articles map[uuid.UUID]*model.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[uuid.UUID]*model.Article)}
}

func (f *fakeArticleRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Article, error) {
	if art, ok := f.articles[id]; ok {
		cp := *art
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeArticleRepo) GetBySlug(_ context.Context, slug string) (*model.Article, error) {
	for _, art := range f.articles {
		if art.Slug == slug {
			cp := *art
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeArticleRepo) List(_ context.Context, includeUnpublished bool) ([]model.Article, error) {
	var out []model.Article
	for _, art := range f.articles {
		if art.Published || includeUnpublished {
			out = append(out, *art)
		}
	}
	return out, nil
}

func (f *fakeArticleRepo) Create(_ context.Context, art *model.Article) error {
	art.ID = uuid.New()
	art.CreatedAt = time.Now()
	art.UpdatedAt = art.CreatedAt
	cp := *art
	f.articles[art.ID] = &cp
	return nil
}

func (f *fakeArticleRepo) Update(_ context.Context, art *model.Article) error {
	if _, ok := f.articles[art.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *art
	f.articles[art.ID] = &cp
	return nil
}

func (f *fakeArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.articles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.articles, id)
	return nil
}

// ─── Test server ────────────────────────────────────────────────────────────

type testServer struct {
	engine      *gin.Engine
	cfg         *config.Config
	authService *service.AuthService
	adminRepo   *fakeAdminRepo
	articleRepo *fakeArticleRepo
	admin       *model.Admin
}

// newTestServer wires the full router against in-memory repositories and a
// seeded admin account (admin/admin123).
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		GinMode:         gin.TestMode,
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		BcryptCost:      bcrypt.MinCost,
		LoginRateLimit:  5,
		LoginRateWindow: time.Minute,
	}

	adminRepo := newFakeAdminRepo()
	articleRepo := newFakeArticleRepo()

	authService := service.NewAuthService(cfg)
	adminService := service.NewAdminService(adminRepo)
	articleService := service.NewArticleService(articleRepo, nil, zerolog.Nop())

	hash, err := authService.HashPassword("admin123")
	require.NoError(t, err)
	admin := &model.Admin{Username: "admin", PasswordHash: hash}
	require.NoError(t, adminRepo.Create(context.Background(), admin))

	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService, adminService, cfg),
		Article: handler.NewArticleHandler(articleService, authService),
	}

	engine := router.SetupRouter(authService, ratelimit.New(), handlers, cfg)

	return &testServer{
		engine:      engine,
		cfg:         cfg,
		authService: authService,
		adminRepo:   adminRepo,
		articleRepo: articleRepo,
		admin:       admin,
	}
}

// do performs a JSON request; body may be nil. A non-empty sessionToken is
// attached as the admin-token cookie.
func (ts *testServer) do(t *testing.T, method, path string, body any, sessionToken string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: sessionToken})
	}

	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

// sessionToken issues a valid token for the seeded admin.
func (ts *testServer) sessionToken(t *testing.T) string {
	t.Helper()
	token, err := ts.authService.GenerateToken(ts.admin.ID, ts.admin.Username)
	require.NoError(t, err)
	return token
}

// seedArticle inserts an article directly into the fake repository.
func (ts *testServer) seedArticle(t *testing.T, slug string, published bool) *model.Article {
	t.Helper()
	art := &model.Article{
		Title:     "Title " + slug,
		Slug:      slug,
		Content:   "content",
		Published: published,
		AuthorID:  ts.admin.ID,
	}
	require.NoError(t, ts.articleRepo.Create(context.Background(), art))
	return art
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
