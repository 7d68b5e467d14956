package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

func TestAdminRepositoryLookups(t *testing.T) {
	repo, err := NewAdminRepository([]domain.Admin{
		{ID: "1", Name: "Jean Mutesi", Email: "rtda@example.com", Password: "password123", Agency: domain.AgencyRTDA},
		{ID: "2", Name: "Emmanuel Habimana", Email: "reg@example.com", Password: "password123", Agency: domain.AgencyREG},
	})
	require.NoError(t, err)
	ctx := context.Background()

	admin, err := repo.GetByEmail(ctx, "reg@example.com")
	require.NoError(t, err)
	assert.Equal(t, "2", admin.ID)

	_, err = repo.GetByEmail(ctx, "REG@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	admin, err = repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.AgencyRTDA, admin.Agency)

	agency := domain.AgencyREG
	admins, err := repo.List(ctx, AdminFilter{Agency: &agency})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "reg@example.com", admins[0].Email)
}

func TestAdminRepositoryRejectsDuplicates(t *testing.T) {
	_, err := NewAdminRepository([]domain.Admin{
		{ID: "1", Email: "a@example.com"},
		{ID: "2", Email: "a@example.com"},
	})
	assert.Error(t, err)

	_, err = NewAdminRepository([]domain.Admin{
		{ID: "1", Email: "a@example.com"},
		{ID: "1", Email: "b@example.com"},
	})
	assert.Error(t, err)
}
