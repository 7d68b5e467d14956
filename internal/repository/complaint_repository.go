package repository

import (
	"context"
	"sync"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence. It is the only
// component allowed to mutate stored complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, ticketID string) (*domain.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, ticketID string, status domain.Status, response string) (*domain.Complaint, error)
	Count(ctx context.Context) (int, error)
}

// ListAll returns every complaint, newest first.
func ListAll(ctx context.Context, repo ComplaintRepository) ([]domain.Complaint, error) {
	return repo.List(ctx, ComplaintFilter{})
}

// ListByAgency returns every complaint assigned to agency, newest first.
func ListByAgency(ctx context.Context, repo ComplaintRepository, agency domain.Agency) ([]domain.Complaint, error) {
	return repo.List(ctx, ComplaintFilter{Agency: &agency})
}

type memoryComplaintRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*domain.Complaint
}

// NewMemoryComplaintRepository returns a process-local store. Records live as
// long as the returned value does.
func NewMemoryComplaintRepository() ComplaintRepository {
	return &memoryComplaintRepository{byID: make(map[string]*domain.Complaint)}
}

func (r *memoryComplaintRepository) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[complaint.TicketID]; exists {
		return ErrDuplicateTicketID
	}
	stored := *complaint
	r.byID[stored.TicketID] = &stored
	r.order = append([]string{stored.TicketID}, r.order...)
	return nil
}

func (r *memoryComplaintRepository) GetByID(_ context.Context, ticketID string) (*domain.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[ticketID]
	if !ok {
		return nil, ErrNotFound
	}
	complaint := *stored
	return &complaint, nil
}

func (r *memoryComplaintRepository) List(_ context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Complaint, 0, len(r.order))
	for _, id := range r.order {
		stored := r.byID[id]
		if filter.Matches(stored) {
			matched = append(matched, *stored)
		}
	}
	start, end := filter.window(len(matched))
	return matched[start:end], nil
}

func (r *memoryComplaintRepository) UpdateStatus(_ context.Context, ticketID string, status domain.Status, response string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[ticketID]
	if !ok {
		return nil, ErrNotFound
	}
	stored.Status = status
	if response != "" {
		stored.AdminResponse = response
	}
	complaint := *stored
	return &complaint, nil
}

func (r *memoryComplaintRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}
