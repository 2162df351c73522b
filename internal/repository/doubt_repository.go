package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doutly/doutly-service/internal/domain"
)

// DoubtFilter captures dashboard listing parameters.
type DoubtFilter struct {
	OwnerID    *string
	AssignedTo *string
	Status     *domain.DoubtStatus
	Limit      int
}

// DoubtRepository encapsulates doubt persistence.
type DoubtRepository interface {
	Create(ctx context.Context, doubt *domain.Doubt) error
	GetByID(ctx context.Context, id string) (*domain.Doubt, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	List(ctx context.Context, filter DoubtFilter) ([]domain.Doubt, error)
	TicketNumbersByOwner(ctx context.Context, ownerID string) ([]string, error)
	SoftDelete(ctx context.Context, id string) error
}

type doubtRepository struct {
	pool *pgxpool.Pool
}

// NewDoubtRepository instantiates repository.
func NewDoubtRepository(pool *pgxpool.Pool) DoubtRepository {
	return &doubtRepository{pool: pool}
}

const doubtColumns = `id, ticket_number, owner_id, owner_email, subject, title, description,
       tutor_type, scheduled_date, scheduled_time, status, assigned_to, deleted, created_at, updated_at`

func (r *doubtRepository) Create(ctx context.Context, doubt *domain.Doubt) error {
	const query = `
        INSERT INTO doubts (ticket_number, owner_id, owner_email, subject, title, description,
                            tutor_type, scheduled_date, scheduled_time, status, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		doubt.TicketNumber,
		doubt.OwnerID,
		doubt.OwnerEmail,
		doubt.Subject,
		doubt.Title,
		doubt.Description,
		doubt.TutorType,
		doubt.ScheduledDate,
		doubt.ScheduledTime,
		doubt.Status,
		doubt.AssignedTo,
	).Scan(&doubt.ID, &doubt.CreatedAt, &doubt.UpdatedAt)
}

func (r *doubtRepository) GetByID(ctx context.Context, id string) (*domain.Doubt, error) {
	query := `SELECT ` + doubtColumns + ` FROM doubts WHERE id=$1`
	var doubt domain.Doubt
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&doubt.ID,
		&doubt.TicketNumber,
		&doubt.OwnerID,
		&doubt.OwnerEmail,
		&doubt.Subject,
		&doubt.Title,
		&doubt.Description,
		&doubt.TutorType,
		&doubt.ScheduledDate,
		&doubt.ScheduledTime,
		&doubt.Status,
		&doubt.AssignedTo,
		&doubt.Deleted,
		&doubt.CreatedAt,
		&doubt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &doubt, nil
}

// UpdateFields performs an unconditional partial merge of the given
// column/value pairs. Last writer wins; there is no version check.
func (r *doubtRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for column, value := range fields {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE doubts SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *doubtRepository) List(ctx context.Context, filter DoubtFilter) ([]domain.Doubt, error) {
	clauses := []string{"deleted=FALSE"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_id=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	query := fmt.Sprintf(`SELECT %s FROM doubts WHERE %s ORDER BY created_at DESC LIMIT %d`,
		doubtColumns, strings.Join(clauses, " AND "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDoubts(rows)
}

func (r *doubtRepository) TicketNumbersByOwner(ctx context.Context, ownerID string) ([]string, error) {
	const query = `
        SELECT ticket_number FROM doubts
        WHERE owner_id=$1 AND deleted=FALSE
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (r *doubtRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE doubts SET deleted=TRUE, updated_at=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanDoubts(rows pgx.Rows) ([]domain.Doubt, error) {
	var result []domain.Doubt
	for rows.Next() {
		var doubt domain.Doubt
		if err := rows.Scan(
			&doubt.ID,
			&doubt.TicketNumber,
			&doubt.OwnerID,
			&doubt.OwnerEmail,
			&doubt.Subject,
			&doubt.Title,
			&doubt.Description,
			&doubt.TutorType,
			&doubt.ScheduledDate,
			&doubt.ScheduledTime,
			&doubt.Status,
			&doubt.AssignedTo,
			&doubt.Deleted,
			&doubt.CreatedAt,
			&doubt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, doubt)
	}
	return result, rows.Err()
}
