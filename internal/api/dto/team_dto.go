package dto

import "time"

// CreateTeamRequest payload for team creation.
type CreateTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddMemberRequest payload for roster additions.
type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TeamResponse is the wire representation of a team.
type TeamResponse struct {
	ID          string    `json:"id"`
	TeamNumber  string    `json:"team_number"`
	Name        string    `json:"name"`
	LeaderEmail string    `json:"leader_email"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
