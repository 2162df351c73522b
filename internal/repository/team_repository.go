package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doutly/doutly-service/internal/domain"
)

// TeamRepository manages persistence for teams.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	UpdateMembers(ctx context.Context, id string, members []string) error
	ListByLeader(ctx context.Context, leaderEmail string) ([]domain.Team, error)
}

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository constructs repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	const query = `
        INSERT INTO teams (team_number, name, leader_email, members)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	members := team.Members
	if members == nil {
		members = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		team.TeamNumber,
		team.Name,
		team.LeaderEmail,
		members,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	const query = `
        SELECT id, team_number, name, leader_email, members, created_at, updated_at
        FROM teams WHERE id=$1`
	var team domain.Team
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.TeamNumber,
		&team.Name,
		&team.LeaderEmail,
		&team.Members,
		&team.CreatedAt,
		&team.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) UpdateMembers(ctx context.Context, id string, members []string) error {
	const query = `UPDATE teams SET members=$1, updated_at=NOW() WHERE id=$2`
	if members == nil {
		members = []string{}
	}
	cmd, err := r.pool.Exec(ctx, query, members, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *teamRepository) ListByLeader(ctx context.Context, leaderEmail string) ([]domain.Team, error) {
	const query = `
        SELECT id, team_number, name, leader_email, members, created_at, updated_at
        FROM teams WHERE leader_email=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, leaderEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.TeamNumber, &team.Name, &team.LeaderEmail, &team.Members, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, team)
	}
	return result, rows.Err()
}
