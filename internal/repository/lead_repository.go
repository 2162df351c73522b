package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doutly/doutly-service/internal/domain"
)

// LeadFilter captures dashboard listing parameters.
type LeadFilter struct {
	AssignedTo *string
	Status     *domain.LeadStatus
	Vertical   *string
	Limit      int
}

// LeadRepository encapsulates lead persistence. AppendAssignment is
// the only mutation that touches assignment_history: the column is
// append-only by construction.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	AppendAssignment(ctx context.Context, id string, record domain.AssignmentRecord, status domain.LeadStatus, assignedTo, assignedLevel *string) error
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

const leadColumns = `id, lead_number, name, email, phone, vertical, source, notes,
       status, assigned_to, assigned_level, assignment_history, created_at, updated_at`

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (lead_number, name, email, phone, vertical, source, notes,
                           status, assigned_to, assigned_level, assignment_history)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	history := lead.AssignmentHistory
	if history == nil {
		history = []domain.AssignmentRecord{}
	}
	return r.pool.QueryRow(ctx, query,
		lead.LeadNumber,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Vertical,
		lead.Source,
		lead.Notes,
		lead.Status,
		lead.AssignedTo,
		lead.AssignedLevel,
		history,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1`
	var lead domain.Lead
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.LeadNumber,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Vertical,
		&lead.Source,
		&lead.Notes,
		&lead.Status,
		&lead.AssignedTo,
		&lead.AssignedLevel,
		&lead.AssignmentHistory,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateFields performs an unconditional partial merge of the given
// column/value pairs. assignment_history is deliberately not
// accepted here; hand-offs go through AppendAssignment.
func (r *leadRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for column, value := range fields {
		if column == "assignment_history" {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE leads SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AppendAssignment appends one audit record and overwrites the scalar
// assignment fields in a single statement. Concurrent callers both
// get their record appended; the scalars are last-writer-wins.
func (r *leadRepository) AppendAssignment(ctx context.Context, id string, record domain.AssignmentRecord, status domain.LeadStatus, assignedTo, assignedLevel *string) error {
	const query = `
        UPDATE leads
        SET assignment_history = assignment_history || $1::jsonb,
            status=$2, assigned_to=$3, assigned_level=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		[]domain.AssignmentRecord{record},
		status,
		assignedTo,
		assignedLevel,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Vertical != nil {
		args = append(args, *filter.Vertical)
		clauses = append(clauses, fmt.Sprintf("vertical=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE %s ORDER BY created_at DESC LIMIT %d`,
		leadColumns, strings.Join(clauses, " AND "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func scanLeads(rows pgx.Rows) ([]domain.Lead, error) {
	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.LeadNumber,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.Vertical,
			&lead.Source,
			&lead.Notes,
			&lead.Status,
			&lead.AssignedTo,
			&lead.AssignedLevel,
			&lead.AssignmentHistory,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}
