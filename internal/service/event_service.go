package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/repository"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

// EventService manages published events and registrations.
type EventService struct {
	events   repository.EventRepository
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(events repository.EventRepository, profiles repository.ProfileRepository, logger *zap.Logger) *EventService {
	return &EventService{events: events, profiles: profiles, logger: logger}
}

// EventCreateInput describes an event creation payload.
type EventCreateInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
}

// CreateEvent publishes a new event.
func (s *EventService) CreateEvent(ctx context.Context, createdBy string, input EventCreateInput) (*domain.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.StartsAt.IsZero() {
		return nil, apperrors.NewValidationError("starts_at required", nil)
	}

	event := &domain.Event{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		StartsAt:    input.StartsAt,
		CreatedBy:   createdBy,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// ListUpcoming returns events that have not started yet.
func (s *EventService) ListUpcoming(ctx context.Context) ([]domain.Event, error) {
	list, err := s.events.ListUpcoming(ctx, 0)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// ListRegistrations returns the attendee list for an event.
func (s *EventService) ListRegistrations(ctx context.Context, eventID string) ([]domain.EventRegistration, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
		}
		return nil, apperrors.MapError(err)
	}
	list, err := s.events.ListRegistrations(ctx, eventID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// appendProfileEvent records the event on the profile, creating the
// lazily-initialized profile row first so the append cannot land on a
// missing row.
func appendProfileEvent(ctx context.Context, profiles repository.ProfileRepository, userID, eventID string) error {
	if err := profiles.Upsert(ctx, &domain.UserProfile{UserID: userID}); err != nil {
		return err
	}
	return profiles.AppendEvent(ctx, userID, eventID)
}

// Register signs a user up for an event. The profile's event list is
// updated best effort: the registration stands even if that second
// write fails.
func (s *EventService) Register(ctx context.Context, user *domain.User, eventID string) (*domain.EventRegistration, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
		}
		return nil, apperrors.MapError(err)
	}

	reg := &domain.EventRegistration{
		EventID: event.ID,
		UserID:  user.ID,
		Email:   user.Email,
	}
	if err := s.events.CreateRegistration(ctx, reg); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := appendProfileEvent(ctx, s.profiles, user.ID, event.ID); err != nil {
		s.logger.Warn("event registered but profile append failed",
			zap.String("event_id", event.ID),
			zap.String("user_id", user.ID),
			zap.Error(err))
	}
	return reg, nil
}
