package domain

import "time"

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   Role
}

// IsJobSeeker reports whether the actor acts as a job seeker.
func (a Actor) IsJobSeeker() bool { return a.Role == RoleJobSeeker }

// IsEmployer reports whether the actor acts as an employer.
func (a Actor) IsEmployer() bool { return a.Role == RoleEmployer }

// Token represents issued access token metadata.
type Token struct {
	ID        string
	UserID    string
	Role      Role
	ExpiresAt time.Time
	IssuedAt  time.Time
}
