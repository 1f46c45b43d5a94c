package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/quillpress/quillpress-backend/internal/model"
)

// AdminRepo is the persistence surface AdminService needs. Satisfied by
// repository.AdminRepository; tests substitute an in-memory fake.
type AdminRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	Create(ctx context.Context, admin *model.Admin) error
}

// AdminService handles admin account lookups.
type AdminService struct {
	adminRepo AdminRepo
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo AdminRepo) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// GetByUsername retrieves an admin by their unique username.
func (s *AdminService) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	return s.adminRepo.GetByUsername(ctx, username)
}

// Create inserts a new admin account.
func (s *AdminService) Create(ctx context.Context, admin *model.Admin) error {
	return s.adminRepo.Create(ctx, admin)
}
