package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/events"
	"github.com/doutly/doutly-service/internal/repository"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

// DoubtService coordinates the doubt/ticket workflow.
type DoubtService struct {
	doubts     repository.DoubtRepository
	dispatcher events.Dispatcher
}

// DoubtDependencies bundles repositories for the doubt service.
type DoubtDependencies struct {
	DoubtRepo  repository.DoubtRepository
	Dispatcher events.Dispatcher
}

// NewDoubtService constructs the service.
func NewDoubtService(deps DoubtDependencies) *DoubtService {
	return &DoubtService{
		doubts:     deps.DoubtRepo,
		dispatcher: deps.Dispatcher,
	}
}

// DoubtSubmitInput describes a doubt submission payload.
type DoubtSubmitInput struct {
	Subject       string
	Title         string
	Description   string
	TutorType     domain.TutorType
	ScheduledDate *string
	ScheduledTime *string
}

// SubmitDoubt issues a ticket number and creates the doubt. The
// owner's visible ticket list is derived from doubts by owner, so a
// successful create is all that is needed for the profile to reflect
// the new ticket.
func (s *DoubtService) SubmitDoubt(ctx context.Context, owner *domain.User, input DoubtSubmitInput) (*domain.Doubt, error) {
	subject := strings.TrimSpace(input.Subject)
	title := strings.TrimSpace(input.Title)
	if subject == "" || title == "" {
		return nil, apperrors.NewValidationError("subject and title required", nil)
	}

	tutorType := input.TutorType
	if tutorType == "" {
		tutorType = domain.TutorTypeInstant
	}
	if tutorType == domain.TutorTypeScheduled {
		if input.ScheduledDate == nil || input.ScheduledTime == nil {
			return nil, apperrors.NewValidationError("scheduled doubts require date and time", nil)
		}
	}

	doubt := &domain.Doubt{
		TicketNumber:  newRefNumber("TKT"),
		OwnerID:       owner.ID,
		OwnerEmail:    owner.Email,
		Subject:       subject,
		Title:         title,
		Description:   strings.TrimSpace(input.Description),
		TutorType:     tutorType,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		Status:        domain.DoubtStatusPending,
		AssignedTo:    nil,
	}
	if err := s.doubts.Create(ctx, doubt); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventDoubtSubmitted,
		SubjectID: doubt.ID,
		Actor:     events.NewActor(owner.Email),
		Payload: events.DoubtSubmittedPayload{
			TicketNumber: doubt.TicketNumber,
			OwnerEmail:   doubt.OwnerEmail,
			Subject:      doubt.Subject,
			Title:        doubt.Title,
			TutorType:    doubt.TutorType,
		},
	})
	return doubt, nil
}

// ListOwnDoubts returns the requester's doubts, newest first.
func (s *DoubtService) ListOwnDoubts(ctx context.Context, ownerID string) ([]domain.Doubt, error) {
	doubts, err := s.doubts.List(ctx, repository.DoubtFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return doubts, nil
}

// ListDoubts returns doubts for tutor-facing dashboards, optionally
// narrowed to a status or an assignee.
func (s *DoubtService) ListDoubts(ctx context.Context, status *string, assignedTo *string) ([]domain.Doubt, error) {
	filter := repository.DoubtFilter{AssignedTo: assignedTo}
	if status != nil {
		normalized := domain.NormalizeDoubtStatus(*status)
		filter.Status = &normalized
	}
	doubts, err := s.doubts.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return doubts, nil
}

// AssignDoubt hands the doubt to a tutor and moves it to assigned.
func (s *DoubtService) AssignDoubt(ctx context.Context, actorEmail, doubtID, tutorEmail string) (*domain.Doubt, error) {
	tutorEmail = strings.TrimSpace(tutorEmail)
	if tutorEmail == "" {
		return nil, apperrors.NewValidationError("tutor email required", nil)
	}
	doubt, err := s.getDoubt(ctx, doubtID)
	if err != nil {
		return nil, err
	}
	if doubt.Status == domain.DoubtStatusResolved {
		return nil, apperrors.NewConflict("doubt already resolved", map[string]any{"doubt_id": doubtID})
	}

	fields := map[string]any{
		"status":      domain.DoubtStatusAssigned,
		"assigned_to": tutorEmail,
	}
	if err := s.doubts.UpdateFields(ctx, doubtID, fields); err != nil {
		return nil, apperrors.MapError(err)
	}
	doubt.Status = domain.DoubtStatusAssigned
	doubt.AssignedTo = &tutorEmail

	s.publishEvent(ctx, events.Event{
		Type:      events.EventDoubtAssigned,
		SubjectID: doubt.ID,
		Actor:     events.NewActor(actorEmail),
		Payload: events.DoubtAssignedPayload{
			TicketNumber: doubt.TicketNumber,
			AssignedTo:   tutorEmail,
			OwnerEmail:   doubt.OwnerEmail,
		},
	})
	return doubt, nil
}

// ResolveDoubt closes out the doubt. Only the owner or the current
// assignee may resolve.
func (s *DoubtService) ResolveDoubt(ctx context.Context, actorEmail, doubtID string) (*domain.Doubt, error) {
	doubt, err := s.getDoubt(ctx, doubtID)
	if err != nil {
		return nil, err
	}
	if doubt.OwnerEmail != actorEmail && (doubt.AssignedTo == nil || *doubt.AssignedTo != actorEmail) {
		return nil, apperrors.NewForbidden("only the owner or assignee can resolve")
	}

	if err := s.doubts.UpdateFields(ctx, doubtID, map[string]any{"status": domain.DoubtStatusResolved}); err != nil {
		return nil, apperrors.MapError(err)
	}
	doubt.Status = domain.DoubtStatusResolved

	s.publishEvent(ctx, events.Event{
		Type:      events.EventDoubtResolved,
		SubjectID: doubt.ID,
		Actor:     events.NewActor(actorEmail),
		Payload: events.DoubtResolvedPayload{
			TicketNumber: doubt.TicketNumber,
			OwnerEmail:   doubt.OwnerEmail,
		},
	})
	return doubt, nil
}

// DeleteDoubt soft deletes an owned doubt. The row is retained; it
// only disappears from listings.
func (s *DoubtService) DeleteDoubt(ctx context.Context, ownerID, doubtID string) error {
	doubt, err := s.getDoubt(ctx, doubtID)
	if err != nil {
		return err
	}
	if doubt.OwnerID != ownerID {
		return apperrors.NewForbidden("only the owner can delete")
	}
	if err := s.doubts.SoftDelete(ctx, doubtID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *DoubtService) getDoubt(ctx context.Context, doubtID string) (*domain.Doubt, error) {
	doubt, err := s.doubts.GetByID(ctx, doubtID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("doubt", map[string]any{"doubt_id": doubtID})
		}
		return nil, apperrors.MapError(err)
	}
	return doubt, nil
}

func (s *DoubtService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
