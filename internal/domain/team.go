package domain

import "time"

// Team is a named grouping owned by a team leader. Members are stored
// as account email strings; there is no separate membership table.
type Team struct {
	ID          string
	TeamNumber  string
	Name        string
	LeaderEmail string
	Members     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasMember reports whether the email is already on the roster.
func (t *Team) HasMember(email string) bool {
	for _, m := range t.Members {
		if m == email {
			return true
		}
	}
	return false
}
