package domain

import "time"

// DoubtStatus enumerates lifecycle states for doubts.
type DoubtStatus string

const (
	DoubtStatusPending  DoubtStatus = "pending"
	DoubtStatusAssigned DoubtStatus = "assigned"
	DoubtStatusResolved DoubtStatus = "resolved"
)

// NormalizeDoubtStatus maps legacy spellings onto the canonical set.
// Older clients submitted "in-progress" for the assigned mid-state.
func NormalizeDoubtStatus(s string) DoubtStatus {
	if s == "in-progress" {
		return DoubtStatusAssigned
	}
	return DoubtStatus(s)
}

// TutorType selects between instant and scheduled help.
type TutorType string

const (
	TutorTypeInstant   TutorType = "instant"
	TutorTypeScheduled TutorType = "scheduled"
)

// Doubt is the aggregate for student help requests. TicketNumber is a
// client-visible reference generated at submission time; it is not
// guaranteed globally unique.
type Doubt struct {
	ID            string
	TicketNumber  string
	OwnerID       string
	OwnerEmail    string
	Subject       string
	Title         string
	Description   string
	TutorType     TutorType
	ScheduledDate *string
	ScheduledTime *string
	Status        DoubtStatus
	AssignedTo    *string
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
