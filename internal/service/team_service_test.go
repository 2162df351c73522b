package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doutly/doutly-service/internal/domain"
)

type fakeTeamRepo struct {
	mu    sync.Mutex
	seq   int
	teams map[string]*domain.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*domain.Team)}
}

func (f *fakeTeamRepo) Create(_ context.Context, team *domain.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	team.ID = fmt.Sprintf("team-%d", f.seq)
	stored := *team
	stored.Members = append([]string(nil), team.Members...)
	f.teams[team.ID] = &stored
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id string) (*domain.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *team
	copied.Members = append([]string(nil), team.Members...)
	return &copied, nil
}

func (f *fakeTeamRepo) UpdateMembers(_ context.Context, id string, members []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return pgx.ErrNoRows
	}
	team.Members = append([]string(nil), members...)
	return nil
}

func (f *fakeTeamRepo) ListByLeader(_ context.Context, leaderEmail string) ([]domain.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Team
	for _, team := range f.teams {
		if team.LeaderEmail == leaderEmail {
			out = append(out, *team)
		}
	}
	return out, nil
}

func TestCreateTeamIssuesTeamNumber(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo())

	team, err := svc.CreateTeam(context.Background(), "erin.teamlead@doutly.com", "Alpha")
	require.NoError(t, err)
	assert.Regexp(t, `^TEAM-\d+-\d{1,3}$`, team.TeamNumber)
	assert.Empty(t, team.Members)

	_, err = svc.CreateTeam(context.Background(), "erin.teamlead@doutly.com", "  ")
	assert.Error(t, err)
}

func TestAddMemberLeaderOnly(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo())
	team, err := svc.CreateTeam(context.Background(), "erin.teamlead@doutly.com", "Alpha")
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), "intruder@doutly.com", team.ID, "dev@doutly.com")
	assert.Error(t, err)

	updated, err := svc.AddMember(context.Background(), "erin.teamlead@doutly.com", team.ID, "dev@doutly.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev@doutly.com"}, updated.Members)

	_, err = svc.AddMember(context.Background(), "erin.teamlead@doutly.com", team.ID, "dev@doutly.com")
	assert.Error(t, err, "duplicate roster entry must be rejected")
}

func TestRemoveMember(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo())
	team, err := svc.CreateTeam(context.Background(), "erin.teamlead@doutly.com", "Alpha")
	require.NoError(t, err)
	_, err = svc.AddMember(context.Background(), "erin.teamlead@doutly.com", team.ID, "dev@doutly.com")
	require.NoError(t, err)

	_, err = svc.RemoveMember(context.Background(), "erin.teamlead@doutly.com", team.ID, "ghost@doutly.com")
	assert.Error(t, err)

	updated, err := svc.RemoveMember(context.Background(), "erin.teamlead@doutly.com", team.ID, "dev@doutly.com")
	require.NoError(t, err)
	assert.Empty(t, updated.Members)
}
