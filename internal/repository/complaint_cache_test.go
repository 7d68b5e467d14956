package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

type countingRepository struct {
	ComplaintRepository
	gets int
}

func (r *countingRepository) GetByID(ctx context.Context, ticketID string) (*domain.Complaint, error) {
	r.gets++
	return r.ComplaintRepository.GetByID(ctx, ticketID)
}

func TestCachedRepositoryServesRepeatLookups(t *testing.T) {
	inner := &countingRepository{ComplaintRepository: NewMemoryComplaintRepository()}
	repo := NewCachedComplaintRepository(inner, 8, time.Minute)
	ctx := context.Background()
	require.NoError(t, inner.Create(ctx, newComplaint("RW-00000001-0001", domain.AgencyRTDA, domain.CategoryRoads)))

	for i := 0; i < 3; i++ {
		got, err := repo.GetByID(ctx, "RW-00000001-0001")
		require.NoError(t, err)
		assert.Equal(t, "RW-00000001-0001", got.TicketID)
	}
	assert.Equal(t, 1, inner.gets)
}

func TestCachedRepositoryReflectsUpdates(t *testing.T) {
	inner := &countingRepository{ComplaintRepository: NewMemoryComplaintRepository()}
	repo := NewCachedComplaintRepository(inner, 8, time.Minute)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newComplaint("RW-00000001-0001", domain.AgencyRTDA, domain.CategoryRoads)))

	_, err := repo.UpdateStatus(ctx, "RW-00000001-0001", domain.StatusResolved, "Fixed")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "RW-00000001-0001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, got.Status)
	assert.Equal(t, "Fixed", got.AdminResponse)
	assert.Zero(t, inner.gets)
}

func TestCachedRepositoryDoesNotCacheMisses(t *testing.T) {
	inner := &countingRepository{ComplaintRepository: NewMemoryComplaintRepository()}
	repo := NewCachedComplaintRepository(inner, 8, time.Minute)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "RW-00000001-0001")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, inner.Create(ctx, newComplaint("RW-00000001-0001", domain.AgencyRTDA, domain.CategoryRoads)))
	got, err := repo.GetByID(ctx, "RW-00000001-0001")
	require.NoError(t, err)
	assert.Equal(t, "RW-00000001-0001", got.TicketID)
}
