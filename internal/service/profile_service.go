package service

import (
	"context"

	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/repository"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

// ProfileService assembles the per-account profile view. The profile
// row is created lazily; the ticket list is derived from doubts by
// owner on every read rather than stored, so it cannot drift.
type ProfileService struct {
	profiles repository.ProfileRepository
	doubts   repository.DoubtRepository
}

// NewProfileService constructs the service.
func NewProfileService(profiles repository.ProfileRepository, doubts repository.DoubtRepository) *ProfileService {
	return &ProfileService{profiles: profiles, doubts: doubts}
}

// Get returns the profile for a user, creating the stored half on
// first access.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile := &domain.UserProfile{UserID: userID}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}

	stored, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	tickets, err := s.doubts.TicketNumbersByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	stored.Tickets = tickets
	return stored, nil
}
