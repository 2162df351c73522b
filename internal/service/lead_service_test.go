package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doutly/doutly-service/internal/domain"
)

var leadNumberPattern = regexp.MustCompile(`^LEAD-\d+-\d{1,3}$`)

func newLeadServiceForTest() (*LeadService, *fakeLeadRepo) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(LeadDependencies{LeadRepo: repo})
	return svc, repo
}

func createTestLead(t *testing.T, svc *LeadService) *domain.Lead {
	t.Helper()
	lead, err := svc.CreateLead(context.Background(), "bda@doutly.com", LeadCreateInput{
		Name:     "Prospect One",
		Email:    "prospect@example.com",
		Vertical: "coding",
	})
	require.NoError(t, err)
	return lead
}

func TestCreateLeadStartsNewWithEmptyHistory(t *testing.T) {
	svc, _ := newLeadServiceForTest()

	lead := createTestLead(t, svc)
	assert.Regexp(t, leadNumberPattern, lead.LeadNumber)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)
	assert.Nil(t, lead.AssignedTo)
	assert.Empty(t, lead.AssignmentHistory)
}

func TestAssignLeadAppendsOneHistoryEntry(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	lead := createTestLead(t, svc)

	assigned, err := svc.AssignLead(context.Background(), lead.ID, "manager@doutly.com", "verticalhead@doutly.com", "manager")
	require.NoError(t, err)

	assert.Equal(t, domain.LeadStatusAssignedManager, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, "manager@doutly.com", *assigned.AssignedTo)
	require.Len(t, assigned.AssignmentHistory, 1)
	record := assigned.AssignmentHistory[0]
	assert.Equal(t, "manager@doutly.com", record.AssignedTo)
	assert.Equal(t, "verticalhead@doutly.com", record.AssignedBy)
	assert.Equal(t, "manager", record.AssignedLevel)
	assert.Equal(t, domain.LeadStatusAssignedManager, record.Status)
}

func TestAssignLeadNTimesProducesNEntries(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	lead := createTestLead(t, svc)

	_, err := svc.AssignLead(context.Background(), lead.ID, "manager@doutly.com", "verticalhead@doutly.com", "manager")
	require.NoError(t, err)
	_, err = svc.AssignLead(context.Background(), lead.ID, "lena.teamlead@doutly.com", "manager@doutly.com", "teamlead")
	require.NoError(t, err)
	final, err := svc.AssignLead(context.Background(), lead.ID, "ben.bda@doutly.com", "lena.teamlead@doutly.com", "bda")
	require.NoError(t, err)

	require.Len(t, final.AssignmentHistory, 3)
	assert.Equal(t, domain.LeadStatusAssignedBDA, final.Status)
	require.NotNil(t, final.AssignedTo)
	assert.Equal(t, "ben.bda@doutly.com", *final.AssignedTo)
	// scalar fields are last-writer-wins; the trail keeps every hop
	assert.Equal(t, "manager@doutly.com", final.AssignmentHistory[0].AssignedTo)
	assert.Equal(t, "lena.teamlead@doutly.com", final.AssignmentHistory[1].AssignedTo)
	assert.Equal(t, "ben.bda@doutly.com", final.AssignmentHistory[2].AssignedTo)
}

func TestAssignLeadRejectsUnknownLevel(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	lead := createTestLead(t, svc)

	_, err := svc.AssignLead(context.Background(), lead.ID, "someone@doutly.com", "bda@doutly.com", "director")
	assert.Error(t, err)
}

func TestUpdateStatusAppendsEntryWithAssigneeUnchanged(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	lead := createTestLead(t, svc)

	_, err := svc.AssignLead(context.Background(), lead.ID, "ben.bda@doutly.com", "manager@doutly.com", "bda")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), lead.ID, domain.LeadStatusBought, "ben.bda@doutly.com")
	require.NoError(t, err)

	assert.Equal(t, domain.LeadStatusBought, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, "ben.bda@doutly.com", *updated.AssignedTo)
	require.Len(t, updated.AssignmentHistory, 2)
	last := updated.AssignmentHistory[1]
	assert.Equal(t, "ben.bda@doutly.com", last.AssignedTo)
	assert.Equal(t, domain.LeadStatusBought, last.Status)
}

func TestUpdateStatusRejectsClosed(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	lead := createTestLead(t, svc)

	_, err := svc.UpdateStatus(context.Background(), lead.ID, domain.LeadStatusClosed, "bda@doutly.com")
	assert.Error(t, err)
}

func TestUpdateLeadRejectsWorkflowFields(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	lead := createTestLead(t, svc)

	_, err := svc.UpdateLead(context.Background(), lead.ID, map[string]any{"status": "bought"})
	assert.Error(t, err)

	updated, err := svc.UpdateLead(context.Background(), lead.ID, map[string]any{"notes": "called twice"})
	require.NoError(t, err)
	assert.Equal(t, "called twice", updated.Notes)
	assert.Empty(t, updated.AssignmentHistory)
}

func TestBulkAssignReportsPerLeadOutcomes(t *testing.T) {
	svc, _ := newLeadServiceForTest()
	first := createTestLead(t, svc)
	second := createTestLead(t, svc)

	ids := []string{first.ID, "missing-lead", second.ID}
	results := svc.BulkAssign(context.Background(), ids, "ben.bda@doutly.com", "manager@doutly.com", "bda")

	require.Len(t, results, 3)
	assert.Equal(t, first.ID, results[0].LeadID)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "missing-lead", results[1].LeadID)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 1, FailedCount(results))

	assigned, err := svc.GetLead(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusAssignedBDA, assigned.Status)
	require.Len(t, assigned.AssignmentHistory, 1)
}
