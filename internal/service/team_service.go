package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/repository"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

// TeamService manages team rosters owned by team leaders.
type TeamService struct {
	teams repository.TeamRepository
}

// NewTeamService constructs the service.
func NewTeamService(teams repository.TeamRepository) *TeamService {
	return &TeamService{teams: teams}
}

// CreateTeam creates an empty roster owned by the leader.
func (s *TeamService) CreateTeam(ctx context.Context, leaderEmail, name string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("team name required", nil)
	}

	team := &domain.Team{
		TeamNumber:  newRefNumber("TEAM"),
		Name:        name,
		LeaderEmail: leaderEmail,
		Members:     []string{},
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// ListTeams returns the teams a leader owns.
func (s *TeamService) ListTeams(ctx context.Context, leaderEmail string) ([]domain.Team, error) {
	teams, err := s.teams.ListByLeader(ctx, leaderEmail)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return teams, nil
}

// AddMember appends a member email to the roster. Only the owning
// leader can mutate; duplicates are rejected.
func (s *TeamService) AddMember(ctx context.Context, actorEmail, teamID, memberEmail string) (*domain.Team, error) {
	memberEmail = strings.TrimSpace(memberEmail)
	if memberEmail == "" {
		return nil, apperrors.NewValidationError("member email required", nil)
	}

	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.LeaderEmail != actorEmail {
		return nil, apperrors.NewForbidden("only the team leader can modify the roster")
	}
	if team.HasMember(memberEmail) {
		return nil, apperrors.NewConflict("member already on roster", map[string]any{"email": memberEmail})
	}

	team.Members = append(team.Members, memberEmail)
	if err := s.teams.UpdateMembers(ctx, teamID, team.Members); err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// RemoveMember drops a member email from the roster.
func (s *TeamService) RemoveMember(ctx context.Context, actorEmail, teamID, memberEmail string) (*domain.Team, error) {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.LeaderEmail != actorEmail {
		return nil, apperrors.NewForbidden("only the team leader can modify the roster")
	}

	members := make([]string, 0, len(team.Members))
	found := false
	for _, m := range team.Members {
		if m == memberEmail {
			found = true
			continue
		}
		members = append(members, m)
	}
	if !found {
		return nil, apperrors.NewNotFound("member", map[string]any{"email": memberEmail})
	}

	team.Members = members
	if err := s.teams.UpdateMembers(ctx, teamID, members); err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_id": teamID})
		}
		return nil, apperrors.MapError(err)
	}
	return team, nil
}
