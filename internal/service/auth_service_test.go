package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quillpress/quillpress-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost, // Keep tests fast; production default is 12
	}
}

func TestAuthService_HashAndCheckPassword(t *testing.T) {
	s := NewAuthService(testAuthConfig())

	hash, err := s.HashPassword("admin123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "admin123", hash)

	assert.NoError(t, s.CheckPassword(hash, "admin123"))
	assert.ErrorIs(t, s.CheckPassword(hash, "admin124"), ErrInvalidCredentials)
	assert.ErrorIs(t, s.CheckPassword(hash, ""), ErrInvalidCredentials)
}

func TestAuthService_HashIsSalted(t *testing.T) {
	s := NewAuthService(testAuthConfig())

	h1, err := s.HashPassword("same-password")
	require.NoError(t, err)
	h2, err := s.HashPassword("same-password")
	require.NoError(t, err)

	// Salt is embedded, so the same password never hashes identically,
	// yet both hashes verify.
	assert.NotEqual(t, h1, h2)
	assert.NoError(t, s.CheckPassword(h1, "same-password"))
	assert.NoError(t, s.CheckPassword(h2, "same-password"))
}

func TestAuthService_CheckPassword_MalformedHash(t *testing.T) {
	s := NewAuthService(testAuthConfig())

	// A garbage hash must reduce to the same error as a wrong password,
	// never a panic or a distinct failure mode.
	assert.ErrorIs(t, s.CheckPassword("not-a-bcrypt-hash", "whatever"), ErrInvalidCredentials)
	assert.ErrorIs(t, s.CheckPassword("", "whatever"), ErrInvalidCredentials)
}

func TestAuthService_GenerateAndValidateToken(t *testing.T) {
	s := NewAuthService(testAuthConfig())

	adminID := uuid.New()
	token, err := s.GenerateToken(adminID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTExpiry = -time.Minute // Issued already expired
	s := NewAuthService(cfg)

	token, err := s.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Tampered(t *testing.T) {
	s := NewAuthService(testAuthConfig())

	token, err := s.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = s.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = s.ValidateToken("not-even-a-jwt")
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	s := NewAuthService(testAuthConfig())

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "rotated-secret"
	other := NewAuthService(otherCfg)

	token, err := s.GenerateToken(uuid.New(), "admin")
	require.NoError(t, err)

	// Rotating the secret invalidates previously issued tokens.
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
