package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
)

const uniqueViolation = "23505"

const complaintColumns = `ticket_id, citizen_name, phone, email, province, district, sector, category,
               description, attachment_url, assigned_agency, status, admin_response, created_at`

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates the postgres-backed repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (` + complaintColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	_, err := r.pool.Exec(ctx, query,
		complaint.TicketID,
		complaint.CitizenName,
		complaint.Phone,
		complaint.Email,
		complaint.Province,
		complaint.District,
		complaint.Sector,
		complaint.Category,
		complaint.Description,
		complaint.AttachmentURL,
		complaint.AssignedAgency,
		complaint.Status,
		complaint.AdminResponse,
		complaint.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateTicketID
	}
	return err
}

func (r *complaintRepository) GetByID(ctx context.Context, ticketID string) (*domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE ticket_id=$1`
	complaint, err := scanComplaint(r.pool.QueryRow(ctx, query, ticketID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return complaint, err
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, ticketID string, status domain.Status, response string) (*domain.Complaint, error) {
	const query = `
        UPDATE complaints
           SET status=$2,
               admin_response=CASE WHEN $3 = '' THEN admin_response ELSE $3 END
         WHERE ticket_id=$1
     RETURNING ` + complaintColumns
	complaint, err := scanComplaint(r.pool.QueryRow(ctx, query, ticketID, status, response))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return complaint, err
}

func (r *complaintRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM complaints`).Scan(&count)
	return count, err
}

func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	base := `SELECT ` + complaintColumns + ` FROM complaints`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Agency != nil {
		args = append(args, *filter.Agency)
		clauses = append(clauses, fmt.Sprintf("assigned_agency=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Province != nil {
		args = append(args, *filter.Province)
		clauses = append(clauses, fmt.Sprintf("province=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if term := filter.searchTerm(); term != "" {
		args = append(args, "%"+term+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(ticket_id) LIKE %s OR LOWER(citizen_name) LIKE %s OR LOWER(description) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC, seq DESC`, base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := row.Scan(
		&complaint.TicketID,
		&complaint.CitizenName,
		&complaint.Phone,
		&complaint.Email,
		&complaint.Province,
		&complaint.District,
		&complaint.Sector,
		&complaint.Category,
		&complaint.Description,
		&complaint.AttachmentURL,
		&complaint.AssignedAgency,
		&complaint.Status,
		&complaint.AdminResponse,
		&complaint.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	result := []domain.Complaint{}
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *complaint)
	}
	return result, rows.Err()
}
