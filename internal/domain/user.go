package domain

import "time"

// Role separates the two capability classes of portal users.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
)

// Valid reports whether the role is one of the recognised roles.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// User is an account that either applies to jobs or posts them.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
