package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/doutly/doutly-service/internal/domain"
	"github.com/doutly/doutly-service/internal/repository"
)

type fakeDoubtRepo struct {
	mu     sync.Mutex
	seq    int
	doubts map[string]*domain.Doubt
}

func newFakeDoubtRepo() *fakeDoubtRepo {
	return &fakeDoubtRepo{doubts: make(map[string]*domain.Doubt)}
}

func (f *fakeDoubtRepo) Create(_ context.Context, doubt *domain.Doubt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	doubt.ID = fmt.Sprintf("doubt-%d", f.seq)
	doubt.CreatedAt = time.Now()
	doubt.UpdatedAt = doubt.CreatedAt
	stored := *doubt
	f.doubts[doubt.ID] = &stored
	return nil
}

func (f *fakeDoubtRepo) GetByID(_ context.Context, id string) (*domain.Doubt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doubt, ok := f.doubts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *doubt
	return &copied, nil
}

func (f *fakeDoubtRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doubt, ok := f.doubts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	for column, value := range fields {
		switch column {
		case "status":
			doubt.Status = value.(domain.DoubtStatus)
		case "assigned_to":
			email := value.(string)
			doubt.AssignedTo = &email
		}
	}
	doubt.UpdatedAt = time.Now()
	return nil
}

func (f *fakeDoubtRepo) List(_ context.Context, filter repository.DoubtFilter) ([]domain.Doubt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Doubt
	for _, doubt := range f.doubts {
		if doubt.Deleted {
			continue
		}
		if filter.OwnerID != nil && doubt.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && doubt.Status != *filter.Status {
			continue
		}
		if filter.AssignedTo != nil && (doubt.AssignedTo == nil || *doubt.AssignedTo != *filter.AssignedTo) {
			continue
		}
		out = append(out, *doubt)
	}
	return out, nil
}

func (f *fakeDoubtRepo) TicketNumbersByOwner(_ context.Context, ownerID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var numbers []string
	for _, doubt := range f.doubts {
		if doubt.OwnerID == ownerID && !doubt.Deleted {
			numbers = append(numbers, doubt.TicketNumber)
		}
	}
	return numbers, nil
}

func (f *fakeDoubtRepo) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doubt, ok := f.doubts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	doubt.Deleted = true
	return nil
}

type fakeLeadRepo struct {
	mu    sync.Mutex
	seq   int
	leads map[string]*domain.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]*domain.Lead)}
}

func (f *fakeLeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	lead.ID = fmt.Sprintf("lead-%d", f.seq)
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	stored := *lead
	stored.AssignmentHistory = append([]domain.AssignmentRecord(nil), lead.AssignmentHistory...)
	f.leads[lead.ID] = &stored
	return nil
}

func (f *fakeLeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *lead
	copied.AssignmentHistory = append([]domain.AssignmentRecord(nil), lead.AssignmentHistory...)
	return &copied, nil
}

func (f *fakeLeadRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return pgx.ErrNoRows
	}
	for column, value := range fields {
		switch column {
		case "name":
			lead.Name = value.(string)
		case "email":
			lead.Email = value.(string)
		case "phone":
			lead.Phone = value.(string)
		case "vertical":
			lead.Vertical = value.(string)
		case "source":
			lead.Source = value.(string)
		case "notes":
			lead.Notes = value.(string)
		}
	}
	lead.UpdatedAt = time.Now()
	return nil
}

func (f *fakeLeadRepo) AppendAssignment(_ context.Context, id string, record domain.AssignmentRecord, status domain.LeadStatus, assignedTo, assignedLevel *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return pgx.ErrNoRows
	}
	lead.AssignmentHistory = append(lead.AssignmentHistory, record)
	lead.Status = status
	lead.AssignedTo = assignedTo
	lead.AssignedLevel = assignedLevel
	lead.UpdatedAt = time.Now()
	return nil
}

func (f *fakeLeadRepo) List(_ context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Lead
	for _, lead := range f.leads {
		if filter.Status != nil && lead.Status != *filter.Status {
			continue
		}
		if filter.AssignedTo != nil && (lead.AssignedTo == nil || *lead.AssignedTo != *filter.AssignedTo) {
			continue
		}
		out = append(out, *lead)
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	seq           int
	notifications map[string]*domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*domain.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	n.ID = fmt.Sprintf("notification-%d", f.seq)
	n.CreatedAt = time.Now()
	stored := *n
	f.notifications[n.ID] = &stored
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, recipient string, _ int) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.Recipient == recipient {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, recipient string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok || n.Recipient != recipient {
		return pgx.ErrNoRows
	}
	n.Read = true
	return nil
}

type fakeEventRepo struct {
	mu            sync.Mutex
	seq           int
	events        map[string]*domain.Event
	registrations []domain.EventRegistration
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	event.ID = fmt.Sprintf("event-%d", f.seq)
	event.CreatedAt = time.Now()
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) ListUpcoming(_ context.Context, _ int) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Event
	for _, event := range f.events {
		out = append(out, *event)
	}
	return out, nil
}

func (f *fakeEventRepo) CreateRegistration(_ context.Context, reg *domain.EventRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	reg.ID = fmt.Sprintf("registration-%d", f.seq)
	reg.CreatedAt = time.Now()
	f.registrations = append(f.registrations, *reg)
	return nil
}

func (f *fakeEventRepo) ListRegistrations(_ context.Context, eventID string) ([]domain.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.EventRegistration
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	seq      int
	projects []domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{}
}

func (f *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	project.ID = fmt.Sprintf("project-%d", f.seq)
	project.CreatedAt = time.Now()
	f.projects = append(f.projects, *project)
	return nil
}

func (f *fakeProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Project
	for _, project := range f.projects {
		if project.OwnerID == ownerID {
			out = append(out, project)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.UserProfile)}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.profiles[profile.UserID]; ok {
		*profile = *existing
		return nil
	}
	profile.ID = "profile-" + profile.UserID
	stored := *profile
	f.profiles[profile.UserID] = &stored
	return nil
}

func (f *fakeProfileRepo) AppendProject(_ context.Context, userID, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	profile.Projects = append(profile.Projects, projectID)
	return nil
}

func (f *fakeProfileRepo) AppendEvent(_ context.Context, userID, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	profile.Events = append(profile.Events, eventID)
	return nil
}
