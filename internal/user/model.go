package user

import "time"

type Role string

const (
	RoleMember   Role = "member"
	RoleAdmin    Role = "admin"
	RoleVerifier Role = "verifier"
	RolePending  Role = "pending"
)

// ParseRole maps an input string onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleMember, RoleAdmin, RoleVerifier, RolePending:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID           string
	FirstName    string
	LastName     string
	MemberID     *string
	Email        *string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time

	ActivationToken       *string
	ActivationTokenExpiry *time.Time
	ResetToken            *string
	ResetTokenExpiry      *time.Time
}
