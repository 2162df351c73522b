package dto

import (
	"time"

	"github.com/doutly/doutly-service/internal/domain"
)

// CreateLeadRequest payload for lead creation.
type CreateLeadRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Vertical string `json:"vertical"`
	Source   string `json:"source"`
	Notes    string `json:"notes"`
}

// UpdateLeadRequest payload for partial contact-field updates.
type UpdateLeadRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Vertical *string `json:"vertical"`
	Source   *string `json:"source"`
	Notes    *string `json:"notes"`
}

// AssignLeadRequest payload for a single hand-off.
type AssignLeadRequest struct {
	AssigneeEmail string `json:"assignee_email" validate:"required,email"`
	Level         string `json:"level" validate:"required,oneof=vh manager teamlead bda"`
}

// UpdateLeadStatusRequest payload for a status change.
type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BulkAssignRequest payload for a bulk hand-off.
type BulkAssignRequest struct {
	LeadIDs       []string `json:"lead_ids" validate:"required,min=1"`
	AssigneeEmail string   `json:"assignee_email" validate:"required,email"`
	Level         string   `json:"level" validate:"required,oneof=vh manager teamlead bda"`
}

// AssignmentRecordResponse is one audit entry on the wire.
type AssignmentRecordResponse struct {
	AssignedTo    string            `json:"assigned_to"`
	AssignedBy    string            `json:"assigned_by"`
	AssignedLevel string            `json:"assigned_level"`
	AssignedAt    time.Time         `json:"assigned_at"`
	Status        domain.LeadStatus `json:"status"`
}

// LeadResponse is the wire representation of a lead.
type LeadResponse struct {
	ID                string                     `json:"id"`
	LeadNumber        string                     `json:"lead_number"`
	Name              string                     `json:"name"`
	Email             string                     `json:"email,omitempty"`
	Phone             string                     `json:"phone,omitempty"`
	Vertical          string                     `json:"vertical,omitempty"`
	Source            string                     `json:"source,omitempty"`
	Notes             string                     `json:"notes,omitempty"`
	Status            domain.LeadStatus          `json:"status"`
	AssignedTo        *string                    `json:"assigned_to,omitempty"`
	AssignedLevel     *string                    `json:"assigned_level,omitempty"`
	AssignmentHistory []AssignmentRecordResponse `json:"assignment_history"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

// BulkAssignResultResponse reports one lead's outcome in a bulk
// assignment.
type BulkAssignResultResponse struct {
	LeadID string `json:"lead_id"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}
