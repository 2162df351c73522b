package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doutly/doutly-service/internal/domain"
)

var ticketNumberPattern = regexp.MustCompile(`^TKT-\d+-\d{1,3}$`)

func newDoubtServiceForTest() (*DoubtService, *fakeDoubtRepo) {
	repo := newFakeDoubtRepo()
	svc := NewDoubtService(DoubtDependencies{DoubtRepo: repo})
	return svc, repo
}

func testStudent() *domain.User {
	return &domain.User{ID: "user-1", Email: "alice@doutly.com"}
}

func TestSubmitDoubtIssuesTicket(t *testing.T) {
	svc, _ := newDoubtServiceForTest()

	doubt, err := svc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{
		Subject: "math",
		Title:   "integration by parts",
	})
	require.NoError(t, err)

	assert.Regexp(t, ticketNumberPattern, doubt.TicketNumber)
	assert.Equal(t, domain.DoubtStatusPending, doubt.Status)
	assert.Nil(t, doubt.AssignedTo)
	assert.Equal(t, domain.TutorTypeInstant, doubt.TutorType)
	assert.Equal(t, "alice@doutly.com", doubt.OwnerEmail)
}

func TestSubmitDoubtRequiresSubjectAndTitle(t *testing.T) {
	svc, _ := newDoubtServiceForTest()

	_, err := svc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{
		Subject: "  ",
		Title:   "something",
	})
	assert.Error(t, err)
}

func TestSubmitDoubtScheduledNeedsDateAndTime(t *testing.T) {
	svc, _ := newDoubtServiceForTest()

	date := "2026-09-01"
	_, err := svc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{
		Subject:       "physics",
		Title:         "kinematics",
		TutorType:     domain.TutorTypeScheduled,
		ScheduledDate: &date,
	})
	assert.Error(t, err)

	slot := "15:00"
	doubt, err := svc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{
		Subject:       "physics",
		Title:         "kinematics",
		TutorType:     domain.TutorTypeScheduled,
		ScheduledDate: &date,
		ScheduledTime: &slot,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TutorTypeScheduled, doubt.TutorType)
}

func TestAssignDoubtMovesToAssigned(t *testing.T) {
	svc, _ := newDoubtServiceForTest()

	doubt, err := svc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{Subject: "math", Title: "limits"})
	require.NoError(t, err)

	assigned, err := svc.AssignDoubt(context.Background(), "ops.tutor@doutly.com", doubt.ID, "bob.tutor@doutly.com")
	require.NoError(t, err)
	assert.Equal(t, domain.DoubtStatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, "bob.tutor@doutly.com", *assigned.AssignedTo)
}

func TestAssignDoubtRejectsResolved(t *testing.T) {
	svc, _ := newDoubtServiceForTest()

	doubt, err := svc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{Subject: "math", Title: "limits"})
	require.NoError(t, err)
	_, err = svc.ResolveDoubt(context.Background(), "alice@doutly.com", doubt.ID)
	require.NoError(t, err)

	_, err = svc.AssignDoubt(context.Background(), "ops.tutor@doutly.com", doubt.ID, "bob.tutor@doutly.com")
	assert.Error(t, err)
}

func TestResolveDoubtRequiresOwnerOrAssignee(t *testing.T) {
	svc, _ := newDoubtServiceForTest()

	doubt, err := svc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{Subject: "math", Title: "limits"})
	require.NoError(t, err)

	_, err = svc.ResolveDoubt(context.Background(), "stranger@doutly.com", doubt.ID)
	assert.Error(t, err)

	resolved, err := svc.ResolveDoubt(context.Background(), "alice@doutly.com", doubt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DoubtStatusResolved, resolved.Status)
}

func TestDeleteDoubtOwnerOnlyAndHidesFromListings(t *testing.T) {
	svc, _ := newDoubtServiceForTest()

	doubt, err := svc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{Subject: "math", Title: "limits"})
	require.NoError(t, err)

	err = svc.DeleteDoubt(context.Background(), "someone-else", doubt.ID)
	assert.Error(t, err)

	require.NoError(t, svc.DeleteDoubt(context.Background(), "user-1", doubt.ID))

	doubts, err := svc.ListOwnDoubts(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, doubts)
}

func TestListDoubtsNormalizesLegacyStatus(t *testing.T) {
	svc, _ := newDoubtServiceForTest()

	doubt, err := svc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{Subject: "math", Title: "limits"})
	require.NoError(t, err)
	_, err = svc.AssignDoubt(context.Background(), "ops.tutor@doutly.com", doubt.ID, "bob.tutor@doutly.com")
	require.NoError(t, err)

	legacy := "in-progress"
	doubts, err := svc.ListDoubts(context.Background(), &legacy, nil)
	require.NoError(t, err)
	require.Len(t, doubts, 1)
	assert.Equal(t, domain.DoubtStatusAssigned, doubts[0].Status)
}

func TestProfileTicketsDerivedFromDoubts(t *testing.T) {
	doubtRepo := newFakeDoubtRepo()
	doubtSvc := NewDoubtService(DoubtDependencies{DoubtRepo: doubtRepo})
	profileSvc := NewProfileService(newFakeProfileRepo(), doubtRepo)

	first, err := doubtSvc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{Subject: "math", Title: "limits"})
	require.NoError(t, err)
	second, err := doubtSvc.SubmitDoubt(context.Background(), testStudent(), DoubtSubmitInput{Subject: "math", Title: "series"})
	require.NoError(t, err)

	profile, err := profileSvc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.TicketNumber, second.TicketNumber}, profile.Tickets)

	require.NoError(t, doubtSvc.DeleteDoubt(context.Background(), "user-1", first.ID))

	profile, err = profileSvc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{second.TicketNumber}, profile.Tickets)
}
