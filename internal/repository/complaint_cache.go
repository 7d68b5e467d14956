package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

// cachedComplaintRepository serves ticket lookups from an expiring LRU in front
// of a slower store. Writes go through to the inner store first.
type cachedComplaintRepository struct {
	inner ComplaintRepository
	cache *expirable.LRU[string, domain.Complaint]
}

// NewCachedComplaintRepository wraps inner with a read-through lookup cache.
func NewCachedComplaintRepository(inner ComplaintRepository, size int, ttl time.Duration) ComplaintRepository {
	if size <= 0 {
		size = 256
	}
	return &cachedComplaintRepository{
		inner: inner,
		cache: expirable.NewLRU[string, domain.Complaint](size, nil, ttl),
	}
}

func (r *cachedComplaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	if err := r.inner.Create(ctx, complaint); err != nil {
		return err
	}
	r.cache.Add(complaint.TicketID, *complaint)
	return nil
}

func (r *cachedComplaintRepository) GetByID(ctx context.Context, ticketID string) (*domain.Complaint, error) {
	if cached, ok := r.cache.Get(ticketID); ok {
		return &cached, nil
	}
	complaint, err := r.inner.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	r.cache.Add(ticketID, *complaint)
	return complaint, nil
}

func (r *cachedComplaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	return r.inner.List(ctx, filter)
}

func (r *cachedComplaintRepository) UpdateStatus(ctx context.Context, ticketID string, status domain.Status, response string) (*domain.Complaint, error) {
	complaint, err := r.inner.UpdateStatus(ctx, ticketID, status, response)
	if err != nil {
		r.cache.Remove(ticketID)
		return nil, err
	}
	r.cache.Add(ticketID, *complaint)
	return complaint, nil
}

func (r *cachedComplaintRepository) Count(ctx context.Context) (int, error) {
	return r.inner.Count(ctx)
}
