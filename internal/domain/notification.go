package domain

import "time"

// NotificationType classifies notifications.
type NotificationType string

const (
	NotificationApplicationStatus NotificationType = "application_status"
	NotificationNewApplication    NotificationType = "new_application"
	NotificationProfileUpdate     NotificationType = "profile_update"
	NotificationSystem            NotificationType = "system"
)

// Notification is an informational message addressed to one user.
type Notification struct {
	ID          string
	UserID      string
	Title       string
	Message     string
	Type        NotificationType
	RelatedID   *string
	RelatedType *string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
