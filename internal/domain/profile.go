package domain

import "time"

// UserProfile is the per-account record backing the profile screen.
// Tickets is not stored: it is derived by querying doubts by owner, so
// it cannot drift from the doubts collection.
type UserProfile struct {
	ID        string
	UserID    string
	Projects  []string
	Events    []string
	Tickets   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
