package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  Role
	}{
		{"alice@doutly.com", RoleStudent},
		{"alice@gmail.com", RoleStudent},
		{"bob.tutor@doutly.com", RoleTutor},
		{"bob.subjectexpert@doutly.com", RoleSubjectExpert},
		{"carol.freelancer@doutly.com", RoleFreelancer},
		{"dan.manager@doutly.com", RoleManager},
		{"erin.teamleader@doutly.com", RoleTeamLeader},
		{"erin.teamlead@doutly.com", RoleTeamLeader},
		{"frank.verticalhead@doutly.com", RoleVerticalHead},
		{"gina.bda@doutly.com", RoleBDA},
		{"gina.sales@doutly.com", RoleBDA},
		{"admin@doutly.com", RoleAdmin},
		{"sales@doutly.com", RoleBDA},
		// mixed case addresses resolve the same way
		{"Bob.Tutor@Doutly.com", RoleTutor},
		// a non-doutly domain never gets an elevated role
		{"bob.tutor@gmail.com", RoleStudent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoleFromEmail(tc.email), "email %q", tc.email)
	}
}

func TestRoleFromEmailSuffixPrecedence(t *testing.T) {
	// the earlier pattern wins when an address matches several
	assert.Equal(t, RoleManager, RoleFromEmail("x.manager@doutly.com"))
	assert.Equal(t, RoleAdmin, RoleFromEmail("x.tutor.admin@doutly.com"))
}

func TestIsSalesRole(t *testing.T) {
	assert.True(t, IsSalesRole(RoleVerticalHead))
	assert.True(t, IsSalesRole(RoleManager))
	assert.True(t, IsSalesRole(RoleTeamLeader))
	assert.True(t, IsSalesRole(RoleBDA))
	assert.False(t, IsSalesRole(RoleStudent))
	assert.False(t, IsSalesRole(RoleTutor))
}

func TestNormalizeDoubtStatus(t *testing.T) {
	assert.Equal(t, DoubtStatusAssigned, NormalizeDoubtStatus("in-progress"))
	assert.Equal(t, DoubtStatusPending, NormalizeDoubtStatus("pending"))
	assert.Equal(t, DoubtStatusResolved, NormalizeDoubtStatus("resolved"))
}

func TestAssignedStatus(t *testing.T) {
	assert.Equal(t, LeadStatusAssignedVH, AssignedStatus("vh"))
	assert.Equal(t, LeadStatusAssignedManager, AssignedStatus("manager"))
	assert.Equal(t, LeadStatusAssignedTeamLead, AssignedStatus("teamlead"))
	assert.Equal(t, LeadStatusAssignedBDA, AssignedStatus("bda"))
}

func TestTeamHasMember(t *testing.T) {
	team := &Team{Members: []string{"a@doutly.com", "b@doutly.com"}}
	assert.True(t, team.HasMember("a@doutly.com"))
	assert.False(t, team.HasMember("c@doutly.com"))
}
