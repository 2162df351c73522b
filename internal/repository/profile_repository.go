package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doutly/doutly-service/internal/domain"
)

// ProfileRepository manages the stored half of user profiles. The
// ticket list is not stored here; it is derived from doubts by owner.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	AppendProject(ctx context.Context, userID, projectID string) error
	AppendEvent(ctx context.Context, userID, eventID string) error
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository constructs repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	const query = `
        SELECT id, user_id, projects, events, created_at, updated_at
        FROM user_profiles WHERE user_id=$1`
	var profile domain.UserProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Projects,
		&profile.Events,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert lazily creates the profile row on first access.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        INSERT INTO user_profiles (user_id, projects, events)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id) DO UPDATE SET updated_at=NOW()
        RETURNING id, created_at, updated_at`
	projects := profile.Projects
	if projects == nil {
		projects = []string{}
	}
	events := profile.Events
	if events == nil {
		events = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		projects,
		events,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

// AppendProject appends to the profile's project list. The profile
// row is lazily created, so a not-yet-created one surfaces as
// pgx.ErrNoRows instead of a silently lost append.
func (r *profileRepository) AppendProject(ctx context.Context, userID, projectID string) error {
	const query = `
        UPDATE user_profiles SET projects = array_append(projects, $1), updated_at=NOW()
        WHERE user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AppendEvent appends to the profile's event list, with the same
// missing-row behavior as AppendProject.
func (r *profileRepository) AppendEvent(ctx context.Context, userID, eventID string) error {
	const query = `
        UPDATE user_profiles SET events = array_append(events, $1), updated_at=NOW()
        WHERE user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
