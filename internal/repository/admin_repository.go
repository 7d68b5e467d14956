package repository

import (
	"context"
	"fmt"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

// AdminRepository is the read-only directory of provisioned staff accounts.
type AdminRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	List(ctx context.Context, filter AdminFilter) ([]domain.Admin, error)
}

// AdminFilter defines query params for admin listing.
type AdminFilter struct {
	Agency *domain.Agency
}

type adminRepository struct {
	admins  []domain.Admin
	byID    map[string]int
	byEmail map[string]int
}

// NewAdminRepository provisions the directory. Accounts are fixed for the
// lifetime of the process; duplicate IDs or emails are rejected.
func NewAdminRepository(admins []domain.Admin) (AdminRepository, error) {
	repo := &adminRepository{
		admins:  make([]domain.Admin, 0, len(admins)),
		byID:    make(map[string]int, len(admins)),
		byEmail: make(map[string]int, len(admins)),
	}
	for _, admin := range admins {
		if _, exists := repo.byID[admin.ID]; exists {
			return nil, fmt.Errorf("duplicate admin id %q", admin.ID)
		}
		if _, exists := repo.byEmail[admin.Email]; exists {
			return nil, fmt.Errorf("duplicate admin email %q", admin.Email)
		}
		repo.byID[admin.ID] = len(repo.admins)
		repo.byEmail[admin.Email] = len(repo.admins)
		repo.admins = append(repo.admins, admin)
	}
	return repo, nil
}

func (r *adminRepository) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	admin := r.admins[idx]
	return &admin, nil
}

func (r *adminRepository) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	idx, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	admin := r.admins[idx]
	return &admin, nil
}

func (r *adminRepository) List(_ context.Context, filter AdminFilter) ([]domain.Admin, error) {
	result := make([]domain.Admin, 0, len(r.admins))
	for _, admin := range r.admins {
		if filter.Agency != nil && admin.Agency != *filter.Agency {
			continue
		}
		result = append(result, admin)
	}
	return result, nil
}
