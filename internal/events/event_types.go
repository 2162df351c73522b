package events

import (
	"time"

	"github.com/doutly/doutly-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDoubtSubmitted    EventType = "doubt_submitted"
	EventDoubtAssigned     EventType = "doubt_assigned"
	EventDoubtResolved     EventType = "doubt_resolved"
	EventLeadCreated       EventType = "lead_created"
	EventLeadAssigned      EventType = "lead_assigned"
	EventLeadStatusChanged EventType = "lead_status_changed"
)

// Actor encapsulates actor metadata for an event. Role is derived
// from Email at emission time, never read back from storage.
type Actor struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// NewActor derives the actor for an email.
func NewActor(email string) Actor {
	return Actor{Email: email, Role: domain.RoleFromEmail(email)}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DoubtSubmittedPayload payload.
type DoubtSubmittedPayload struct {
	TicketNumber string           `json:"ticket_number"`
	OwnerEmail   string           `json:"owner_email"`
	Subject      string           `json:"subject"`
	Title        string           `json:"title"`
	TutorType    domain.TutorType `json:"tutor_type"`
}

// DoubtAssignedPayload payload.
type DoubtAssignedPayload struct {
	TicketNumber string `json:"ticket_number"`
	AssignedTo   string `json:"assigned_to"`
	OwnerEmail   string `json:"owner_email"`
}

// DoubtResolvedPayload payload.
type DoubtResolvedPayload struct {
	TicketNumber string `json:"ticket_number"`
	OwnerEmail   string `json:"owner_email"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	LeadNumber string `json:"lead_number"`
	Vertical   string `json:"vertical"`
	Source     string `json:"source"`
}

// LeadAssignedPayload payload.
type LeadAssignedPayload struct {
	LeadNumber    string            `json:"lead_number"`
	AssignedTo    string            `json:"assigned_to"`
	AssignedLevel string            `json:"assigned_level"`
	Status        domain.LeadStatus `json:"status"`
}

// LeadStatusChangedPayload payload.
type LeadStatusChangedPayload struct {
	LeadNumber string            `json:"lead_number"`
	OldStatus  domain.LeadStatus `json:"old_status"`
	NewStatus  domain.LeadStatus `json:"new_status"`
	AssignedTo *string           `json:"assigned_to,omitempty"`
}
