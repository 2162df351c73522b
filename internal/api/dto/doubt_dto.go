package dto

import (
	"time"

	"github.com/doutly/doutly-service/internal/domain"
)

// SubmitDoubtRequest payload for doubt submission.
type SubmitDoubtRequest struct {
	Subject       string  `json:"subject" validate:"required"`
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description"`
	TutorType     string  `json:"tutor_type" validate:"omitempty,oneof=instant scheduled"`
	ScheduledDate *string `json:"scheduled_date"`
	ScheduledTime *string `json:"scheduled_time"`
}

// AssignDoubtRequest payload for handing a doubt to a tutor.
type AssignDoubtRequest struct {
	TutorEmail string `json:"tutor_email" validate:"required,email"`
}

// DoubtResponse is the wire representation of a doubt.
type DoubtResponse struct {
	ID            string             `json:"id"`
	TicketNumber  string             `json:"ticket_number"`
	OwnerEmail    string             `json:"owner_email"`
	Subject       string             `json:"subject"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	TutorType     domain.TutorType   `json:"tutor_type"`
	ScheduledDate *string            `json:"scheduled_date,omitempty"`
	ScheduledTime *string            `json:"scheduled_time,omitempty"`
	Status        domain.DoubtStatus `json:"status"`
	AssignedTo    *string            `json:"assigned_to,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
