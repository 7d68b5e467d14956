package repository

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

// StatusHistoryRepository stores the status audit trail.
type StatusHistoryRepository interface {
	Create(ctx context.Context, change *domain.StatusChange) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.StatusChange, error)
}

type memoryStatusHistoryRepository struct {
	mu       sync.RWMutex
	byTicket map[string][]domain.StatusChange
}

// NewMemoryStatusHistoryRepository keeps the audit trail in process memory.
func NewMemoryStatusHistoryRepository() StatusHistoryRepository {
	return &memoryStatusHistoryRepository{byTicket: make(map[string][]domain.StatusChange)}
}

func (r *memoryStatusHistoryRepository) Create(_ context.Context, change *domain.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTicket[change.TicketID] = append(r.byTicket[change.TicketID], *change)
	return nil
}

func (r *memoryStatusHistoryRepository) ListByTicket(_ context.Context, ticketID string) ([]domain.StatusChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.StatusChange{}, r.byTicket[ticketID]...), nil
}

type statusHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewStatusHistoryRepository builds the postgres-backed audit trail.
func NewStatusHistoryRepository(pool *pgxpool.Pool) StatusHistoryRepository {
	return &statusHistoryRepository{pool: pool}
}

func (r *statusHistoryRepository) Create(ctx context.Context, change *domain.StatusChange) error {
	const query = `
        INSERT INTO complaint_status_history (id, ticket_id, changed_by_id, actor_agency, old_status, new_status, response, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.pool.Exec(ctx, query,
		change.ID,
		change.TicketID,
		change.ChangedByID,
		change.ActorAgency,
		change.OldStatus,
		change.NewStatus,
		change.Response,
		change.CreatedAt,
	)
	return err
}

func (r *statusHistoryRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.StatusChange, error) {
	const query = `
        SELECT id, ticket_id, changed_by_id, actor_agency, old_status, new_status, response, created_at
        FROM complaint_status_history WHERE ticket_id=$1 ORDER BY created_at ASC, seq ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.StatusChange{}
	for rows.Next() {
		var change domain.StatusChange
		if err := rows.Scan(
			&change.ID,
			&change.TicketID,
			&change.ChangedByID,
			&change.ActorAgency,
			&change.OldStatus,
			&change.NewStatus,
			&change.Response,
			&change.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	return result, rows.Err()
}
