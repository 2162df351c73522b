package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/repository"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

// ProjectService manages dashboard projects.
type ProjectService struct {
	projects repository.ProjectRepository
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository, profiles repository.ProfileRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{projects: projects, profiles: profiles, logger: logger}
}

// CreateProject records a new active project for the owner.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID, title, description string) (*domain.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	project := &domain.Project{
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      domain.ProjectStatusActive,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.appendProfileProject(ctx, ownerID, project.ID); err != nil {
		s.logger.Warn("project created but profile append failed",
			zap.String("project_id", project.ID),
			zap.String("owner_id", ownerID),
			zap.Error(err))
	}
	return project, nil
}

// appendProfileProject creates the lazily-initialized profile row if
// needed before appending, so the append cannot land on a missing row.
func (s *ProjectService) appendProfileProject(ctx context.Context, ownerID, projectID string) error {
	if err := s.profiles.Upsert(ctx, &domain.UserProfile{UserID: ownerID}); err != nil {
		return err
	}
	return s.profiles.AppendProject(ctx, ownerID, projectID)
}

// ListOwnProjects returns the owner's projects, newest first.
func (s *ProjectService) ListOwnProjects(ctx context.Context, ownerID string) ([]domain.Project, error) {
	list, err := s.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}
