package domain

import "time"

// LeadStatus enumerates workflow states for sales prospects.
type LeadStatus string

const (
	LeadStatusNew              LeadStatus = "new"
	LeadStatusAssignedVH       LeadStatus = "assigned-vh"
	LeadStatusAssignedManager  LeadStatus = "assigned-manager"
	LeadStatusAssignedTeamLead LeadStatus = "assigned-teamlead"
	LeadStatusAssignedBDA      LeadStatus = "assigned-bda"
	LeadStatusInterested       LeadStatus = "interested"
	LeadStatusFollowUp         LeadStatus = "follow-up"
	LeadStatusDemo             LeadStatus = "demo"
	LeadStatusBought           LeadStatus = "bought"

	// LeadStatusClosed is declared terminal but no workflow operation
	// transitions into it. The full transition table was never settled
	// upstream; only the exercised transitions are enforced.
	LeadStatusClosed LeadStatus = "closed"
)

// AssignedStatus returns the workflow status for a hand-off level,
// e.g. "manager" -> "assigned-manager".
func AssignedStatus(level string) LeadStatus {
	return LeadStatus("assigned-" + level)
}

// AssignmentRecord is one hand-off in a lead's audit trail. The list
// it lives in is append-only and is the only audit trail for a lead.
type AssignmentRecord struct {
	AssignedTo    string     `json:"assignedTo"`
	AssignedBy    string     `json:"assignedBy"`
	AssignedLevel string     `json:"assignedLevel"`
	AssignedAt    time.Time  `json:"assignedAt"`
	Status        LeadStatus `json:"status"`
}

// Lead is a sales prospect routed through the role hierarchy.
// LeadNumber carries the same collision caveat as ticket numbers.
type Lead struct {
	ID                string
	LeadNumber        string
	Name              string
	Email             string
	Phone             string
	Vertical          string
	Source            string
	Notes             string
	Status            LeadStatus
	AssignedTo        *string
	AssignedLevel     *string
	AssignmentHistory []AssignmentRecord
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
