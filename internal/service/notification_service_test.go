package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doutly/doutly-service/internal/config"
	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/events"
)

func newNotificationServiceForTest() (*NotificationService, *fakeNotificationRepo) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(events.NewInMemoryDispatcher(), repo, zap.NewNop(), config.NotificationConfig{})
	return svc, repo
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	svc, repo := newNotificationServiceForTest()

	record := &domain.Notification{
		Recipient: "alice@doutly.com",
		Type:      domain.NotificationDoubtResolved,
		Message:   "Ticket TKT-1-1 resolved",
	}
	require.NoError(t, repo.Create(context.Background(), record))

	err := svc.MarkRead(context.Background(), "mallory@doutly.com", record.ID)
	assert.Error(t, err, "another account must not flip someone else's notification")

	list, err := svc.ListForRecipient(context.Background(), "alice@doutly.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)

	require.NoError(t, svc.MarkRead(context.Background(), "alice@doutly.com", record.ID))

	list, err = svc.ListForRecipient(context.Background(), "alice@doutly.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)
}

func TestMarkReadUnknownID(t *testing.T) {
	svc, _ := newNotificationServiceForTest()
	assert.Error(t, svc.MarkRead(context.Background(), "alice@doutly.com", "missing"))
}

func TestNotificationsStoredOnLeadAssigned(t *testing.T) {
	repo := newFakeNotificationRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, repo, zap.NewNop(), config.NotificationConfig{})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventLeadAssigned,
		SubjectID: "lead-1",
		Actor:     events.NewActor("manager@doutly.com"),
		Payload: events.LeadAssignedPayload{
			LeadNumber:    "LEAD-1-1",
			AssignedTo:    "ben.bda@doutly.com",
			AssignedLevel: "bda",
			Status:        domain.LeadStatusAssignedBDA,
		},
	})
	require.NoError(t, err)

	list, err := svc.ListForRecipient(context.Background(), "ben.bda@doutly.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotificationLeadAssigned, list[0].Type)
}
