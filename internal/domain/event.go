package domain

import "time"

// Event is a published happening students can register for.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	CreatedBy   string
	CreatedAt   time.Time
}

// EventRegistration records a single attendee signup.
type EventRegistration struct {
	ID        string
	EventID   string
	UserID    string
	Email     string
	CreatedAt time.Time
}
