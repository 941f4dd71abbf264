package events

import (
	"time"

	"github.com/spec-kit/job-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventNewApplication EventType = "new_application"
	EventStatusChange   EventType = "status_change"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// ActorFrom converts a service actor into event metadata.
func ActorFrom(actor domain.Actor) Actor {
	return Actor{UserID: actor.UserID, Role: actor.Role}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ApplicationID string      `json:"application_id"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// NewApplicationPayload is addressed to the employer owning the job.
type NewApplicationPayload struct {
	JobID      string `json:"job_id"`
	JobTitle   string `json:"job_title"`
	EmployerID string `json:"employer_id"`
	SeekerID   string `json:"job_seeker_id"`
	SeekerName string `json:"job_seeker_name"`
}

// StatusChangePayload is addressed to the job seeker who applied.
type StatusChangePayload struct {
	JobID     string                   `json:"job_id"`
	JobTitle  string                   `json:"job_title"`
	SeekerID  string                   `json:"job_seeker_id"`
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
}
