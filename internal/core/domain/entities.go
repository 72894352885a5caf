package domain

import "strings"

// Role represents user role in the system. The zero value means no role.
type Role string

const (
	RoleNone   Role = ""
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// ParseRole accepts only the exact lowercase role names
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleMember, RoleAdmin:
		return Role(s), true
	case RoleNone:
		return RoleNone, true
	}
	return RoleNone, false
}

// ApplicationStatus is the lifecycle state of an apartment application.
// Rejected applications are deleted, so StatusRejected is only ever reported
// in transition results and metrics, never stored.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// NormalizeEmail lowercases and trims an email so it can be used as a key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
