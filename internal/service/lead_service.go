package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/events"
	"github.com/doutly/doutly-service/internal/repository"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

// assignmentLevels enumerates valid hand-off levels, in hierarchy
// order: vertical head -> manager -> team leader -> BDA.
var assignmentLevels = map[string]struct{}{
	"vh":       {},
	"manager":  {},
	"teamlead": {},
	"bda":      {},
}

// settableStatuses are the statuses reachable through UpdateStatus.
// "closed" is declared on the domain type but no observed workflow
// transitions into it, so it is rejected here as unspecified.
var settableStatuses = map[domain.LeadStatus]struct{}{
	domain.LeadStatusNew:        {},
	domain.LeadStatusInterested: {},
	domain.LeadStatusFollowUp:   {},
	domain.LeadStatusDemo:       {},
	domain.LeadStatusBought:     {},
}

// LeadService coordinates lead records and the assignment workflow.
// Every hand-off and status change goes through a single transition
// path that appends to the lead's audit history.
type LeadService struct {
	leads      repository.LeadRepository
	dispatcher events.Dispatcher
}

// LeadDependencies bundles repositories for the lead service.
type LeadDependencies struct {
	LeadRepo   repository.LeadRepository
	Dispatcher events.Dispatcher
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	return &LeadService{
		leads:      deps.LeadRepo,
		dispatcher: deps.Dispatcher,
	}
}

// LeadCreateInput describes a lead creation payload.
type LeadCreateInput struct {
	Name     string
	Email    string
	Phone    string
	Vertical string
	Source   string
	Notes    string
}

// CreateLead records a new prospect with an empty audit history.
func (s *LeadService) CreateLead(ctx context.Context, actorEmail string, input LeadCreateInput) (*domain.Lead, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	lead := &domain.Lead{
		LeadNumber:        newRefNumber("LEAD"),
		Name:              name,
		Email:             strings.TrimSpace(input.Email),
		Phone:             strings.TrimSpace(input.Phone),
		Vertical:          input.Vertical,
		Source:            input.Source,
		Notes:             input.Notes,
		Status:            domain.LeadStatusNew,
		AssignedTo:        nil,
		AssignedLevel:     nil,
		AssignmentHistory: []domain.AssignmentRecord{},
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventLeadCreated,
		SubjectID: lead.ID,
		Actor:     events.NewActor(actorEmail),
		Payload: events.LeadCreatedPayload{
			LeadNumber: lead.LeadNumber,
			Vertical:   lead.Vertical,
			Source:     lead.Source,
		},
	})
	return lead, nil
}

// GetLead fetches a single lead.
func (s *LeadService) GetLead(ctx context.Context, leadID string) (*domain.Lead, error) {
	return s.getLead(ctx, leadID)
}

// ListLeads returns leads for dashboards, optionally narrowed to an
// assignee or a status.
func (s *LeadService) ListLeads(ctx context.Context, assignedTo *string, status *domain.LeadStatus) ([]domain.Lead, error) {
	leads, err := s.leads.List(ctx, repository.LeadFilter{AssignedTo: assignedTo, Status: status})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leads, nil
}

// UpdateLead applies a partial merge of contact fields. Status and
// assignment fields are not accepted here; those go through the
// transition path so the audit history stays complete.
func (s *LeadService) UpdateLead(ctx context.Context, leadID string, fields map[string]any) (*domain.Lead, error) {
	for column := range fields {
		switch column {
		case "name", "email", "phone", "vertical", "source", "notes":
		default:
			return nil, apperrors.NewValidationError("field not updatable", map[string]any{"field": column})
		}
	}
	if err := s.leads.UpdateFields(ctx, leadID, fields); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}
	return s.getLead(ctx, leadID)
}

// AssignLead hands the lead to the next custodian in the hierarchy.
// Exactly one history entry is appended per call: N calls produce N
// entries, while the scalar fields are last-writer-wins.
func (s *LeadService) AssignLead(ctx context.Context, leadID, assigneeEmail, assignerEmail, level string) (*domain.Lead, error) {
	assigneeEmail = strings.TrimSpace(assigneeEmail)
	if assigneeEmail == "" {
		return nil, apperrors.NewValidationError("assignee email required", nil)
	}
	if _, ok := assignmentLevels[level]; !ok {
		return nil, apperrors.NewValidationError("unknown assignment level", map[string]any{"level": level})
	}

	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	status := domain.AssignedStatus(level)
	record := domain.AssignmentRecord{
		AssignedTo:    assigneeEmail,
		AssignedBy:    assignerEmail,
		AssignedLevel: level,
		AssignedAt:    time.Now(),
		Status:        status,
	}
	if err := s.leads.AppendAssignment(ctx, leadID, record, status, &assigneeEmail, &level); err != nil {
		return nil, apperrors.MapError(err)
	}
	lead.Status = status
	lead.AssignedTo = &assigneeEmail
	lead.AssignedLevel = &level
	lead.AssignmentHistory = append(lead.AssignmentHistory, record)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventLeadAssigned,
		SubjectID: lead.ID,
		Actor:     events.NewActor(assignerEmail),
		Payload: events.LeadAssignedPayload{
			LeadNumber:    lead.LeadNumber,
			AssignedTo:    assigneeEmail,
			AssignedLevel: level,
			Status:        status,
		},
	})
	return lead, nil
}

// UpdateStatus moves the lead to a new workflow status. It shares the
// transition path with AssignLead: an audit entry is appended with the
// current assignee unchanged, so history consumers see every change.
func (s *LeadService) UpdateStatus(ctx context.Context, leadID string, status domain.LeadStatus, updatedBy string) (*domain.Lead, error) {
	if _, ok := settableStatuses[status]; !ok {
		return nil, apperrors.NewValidationError("status not settable", map[string]any{"status": status})
	}

	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	assignedTo := ""
	if lead.AssignedTo != nil {
		assignedTo = *lead.AssignedTo
	}
	assignedLevel := ""
	if lead.AssignedLevel != nil {
		assignedLevel = *lead.AssignedLevel
	}
	record := domain.AssignmentRecord{
		AssignedTo:    assignedTo,
		AssignedBy:    updatedBy,
		AssignedLevel: assignedLevel,
		AssignedAt:    time.Now(),
		Status:        status,
	}
	oldStatus := lead.Status
	if err := s.leads.AppendAssignment(ctx, leadID, record, status, lead.AssignedTo, lead.AssignedLevel); err != nil {
		return nil, apperrors.MapError(err)
	}
	lead.Status = status
	lead.AssignmentHistory = append(lead.AssignmentHistory, record)

	s.publishEvent(ctx, events.Event{
		Type:      events.EventLeadStatusChanged,
		SubjectID: lead.ID,
		Actor:     events.NewActor(updatedBy),
		Payload: events.LeadStatusChangedPayload{
			LeadNumber: lead.LeadNumber,
			OldStatus:  oldStatus,
			NewStatus:  status,
			AssignedTo: lead.AssignedTo,
		},
	})
	return lead, nil
}

// BulkAssignResult reports the outcome for one lead in a bulk
// assignment. Err is nil on success.
type BulkAssignResult struct {
	LeadID string
	Err    error
}

// FailedCount tallies failures across a bulk result set.
func FailedCount(results []BulkAssignResult) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	return failed
}

// BulkAssign fans the single-lead assignment out over the id list
// concurrently. Outcomes are collected per lead so partial failure is
// observable and retriable item by item; nothing is rolled back.
func (s *LeadService) BulkAssign(ctx context.Context, leadIDs []string, assigneeEmail, assignerEmail, level string) []BulkAssignResult {
	results := make([]BulkAssignResult, len(leadIDs))

	var wg sync.WaitGroup
	for i, leadID := range leadIDs {
		wg.Add(1)
		go func(i int, leadID string) {
			defer wg.Done()
			_, err := s.AssignLead(ctx, leadID, assigneeEmail, assignerEmail, level)
			results[i] = BulkAssignResult{LeadID: leadID, Err: err}
		}(i, leadID)
	}
	wg.Wait()
	return results
}

func (s *LeadService) getLead(ctx context.Context, leadID string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}
	return lead, nil
}

func (s *LeadService) publishEvent(ctx context.Context, event events.Event) {
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
