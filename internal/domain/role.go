package domain

import "strings"

// Role is an access level derived from the account email address. It
// is never persisted; callers recompute it from the email whenever the
// auth state changes.
type Role string

const (
	RoleStudent       Role = "student"
	RoleFreelancer    Role = "freelancer"
	RoleTutor         Role = "tutor"
	RoleSubjectExpert Role = "subjectexpert"
	RoleAdmin         Role = "admin"
	RoleVerticalHead  Role = "verticalhead"
	RoleManager       Role = "manager"
	RoleTeamLeader    Role = "teamleader"
	RoleBDA           Role = "bda"
)

// exactRoles maps reserved operator addresses. Checked before the
// suffix rules so no suffix pattern can shadow a reserved address.
var exactRoles = map[string]Role{
	"admin@doutly.com":        RoleAdmin,
	"verticalhead@doutly.com": RoleVerticalHead,
	"manager@doutly.com":      RoleManager,
	"teamleader@doutly.com":   RoleTeamLeader,
	"teamlead@doutly.com":     RoleTeamLeader,
	"bda@doutly.com":          RoleBDA,
	"sales@doutly.com":        RoleBDA,
}

// suffixRoles holds role-dotted address patterns. Order matters: a
// fragment must not be preceded by a shorter rule sharing its tail.
var suffixRoles = []struct {
	suffix string
	role   Role
}{
	{".admin@doutly.com", RoleAdmin},
	{".freelancer@doutly.com", RoleFreelancer},
	{".verticalhead@doutly.com", RoleVerticalHead},
	{".manager@doutly.com", RoleManager},
	{".teamleader@doutly.com", RoleTeamLeader},
	{".teamlead@doutly.com", RoleTeamLeader},
	{".subjectexpert@doutly.com", RoleSubjectExpert},
	{".tutor@doutly.com", RoleTutor},
	{".bda@doutly.com", RoleBDA},
	{".sales@doutly.com", RoleBDA},
}

// RoleFromEmail resolves the role for an account email. The mapping is
// a total pure function: it cannot fail, only default to student.
func RoleFromEmail(email string) Role {
	addr := strings.ToLower(strings.TrimSpace(email))
	if role, ok := exactRoles[addr]; ok {
		return role
	}
	for _, rule := range suffixRoles {
		if strings.HasSuffix(addr, rule.suffix) {
			return rule.role
		}
	}
	return RoleStudent
}

// IsSalesRole reports whether the role sits in the lead hierarchy.
func IsSalesRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleVerticalHead, RoleManager, RoleTeamLeader, RoleBDA:
		return true
	}
	return false
}
