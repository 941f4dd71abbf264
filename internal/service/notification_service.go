package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/notify"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

const relatedTypeApplication = "application"

var statusMessages = map[domain.ApplicationStatus]string{
	domain.ApplicationStatusPending:     "Your application is pending review",
	domain.ApplicationStatusReviewing:   "Your application is under review",
	domain.ApplicationStatusShortlisted: "Congratulations! You have been shortlisted",
	domain.ApplicationStatusRejected:    "Unfortunately, your application was not selected",
	domain.ApplicationStatusAccepted:    "Congratulations! Your application has been accepted",
}

// NotificationService turns ledger events into stored notifications, realtime
// pushes and e-mails, and serves the notification inbox.
type NotificationService struct {
	dispatcher    events.Dispatcher
	notifications repository.NotificationRepository
	users         repository.UserRepository
	publisher     notify.Publisher
	mailer        notify.Mailer
	logger        *zap.Logger
}

// NotificationDependencies bundles collaborators of the notification service.
type NotificationDependencies struct {
	Dispatcher       events.Dispatcher
	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	Publisher        notify.Publisher
	Mailer           notify.Mailer
	Logger           *zap.Logger
}

// NotificationPage is one page of a user's inbox.
type NotificationPage struct {
	Items      []domain.Notification
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	n := &NotificationService{
		dispatcher:    deps.Dispatcher,
		notifications: deps.NotificationRepo,
		users:         deps.UserRepo,
		publisher:     deps.Publisher,
		mailer:        deps.Mailer,
		logger:        deps.Logger,
	}
	if n.publisher == nil {
		n.publisher = notify.NoopPublisher{}
	}
	if n.mailer == nil {
		n.mailer = notify.NoopMailer{}
	}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}
	return n
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventNewApplication, n.handleNewApplication)
	n.dispatcher.Subscribe(events.EventStatusChange, n.handleStatusChange)
}

func (n *NotificationService) handleNewApplication(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.NewApplicationPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("NewApplication",
		zap.String("application_id", event.ApplicationID),
		zap.String("job_id", payload.JobID),
		zap.String("employer_id", payload.EmployerID))

	return n.deliver(ctx, event, &domain.Notification{
		UserID:  payload.EmployerID,
		Title:   "New Application Received",
		Message: fmt.Sprintf(`%s has applied for "%s"`, payload.SeekerName, payload.JobTitle),
		Type:    domain.NotificationNewApplication,
	})
}

func (n *NotificationService) handleStatusChange(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.StatusChangePayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("ApplicationStatusChanged",
		zap.String("application_id", event.ApplicationID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))

	message := fmt.Sprintf(`Your application for "%s" has been updated from "%s" to "%s".`,
		payload.JobTitle, payload.OldStatus, payload.NewStatus)
	if extra, ok := statusMessages[payload.NewStatus]; ok {
		message += " " + extra
	}

	return n.deliver(ctx, event, &domain.Notification{
		UserID:  payload.SeekerID,
		Title:   "Application Status Updated",
		Message: message,
		Type:    domain.NotificationApplicationStatus,
	})
}

// deliver stores the notification, then pushes and mails it. Push and mail
// failures are logged; only a failed insert is reported to the dispatcher.
func (n *NotificationService) deliver(ctx context.Context, event events.Event, notification *domain.Notification) error {
	relatedID := event.ApplicationID
	relatedType := relatedTypeApplication
	notification.RelatedID = &relatedID
	notification.RelatedType = &relatedType

	if err := n.notifications.Create(ctx, notification); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	if err := n.publisher.Publish(ctx, notification); err != nil {
		n.logger.Warn("realtime notification failed",
			zap.String("notification_id", notification.ID),
			zap.Error(err))
	}

	n.sendEmail(ctx, event, notification)
	return nil
}

func (n *NotificationService) sendEmail(ctx context.Context, event events.Event, notification *domain.Notification) {
	if _, ok := n.mailer.(notify.NoopMailer); ok {
		return
	}
	user, err := n.users.GetByID(ctx, notification.UserID)
	if err != nil {
		n.logger.Warn("notification recipient lookup failed", zap.String("user_id", notification.UserID), zap.Error(err))
		return
	}
	if err := n.mailer.Send(ctx, user.Email, notification.Title, notification.Message); err != nil {
		n.logger.Warn("notification e-mail failed",
			zap.String("event_type", string(event.Type)),
			zap.String("notification_id", notification.ID),
			zap.Error(err))
	}
}

// List returns a page of the actor's notifications, newest first.
func (n *NotificationService) List(ctx context.Context, actor domain.Actor, unreadOnly bool, page, limit int) (*NotificationPage, error) {
	page, limit, offset, err := paginate(page, limit, 20)
	if err != nil {
		return nil, err
	}
	items, total, err := n.notifications.ListByUser(ctx, actor.UserID, repository.NotificationFilter{
		UnreadOnly: unreadOnly,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, internal(err)
	}
	return &NotificationPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// UnreadCount returns how many of the actor's notifications are unread.
func (n *NotificationService) UnreadCount(ctx context.Context, actor domain.Actor) (int, error) {
	count, err := n.notifications.CountUnread(ctx, actor.UserID)
	return count, internal(err)
}

// MarkRead marks one of the actor's notifications as read.
func (n *NotificationService) MarkRead(ctx context.Context, actor domain.Actor, id string) (*domain.Notification, error) {
	if _, err := n.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	notification, err := n.notifications.MarkRead(ctx, id)
	if err != nil {
		return nil, lookupError(err, "notification")
	}
	return notification, nil
}

// MarkAllRead marks every unread notification of the actor as read.
func (n *NotificationService) MarkAllRead(ctx context.Context, actor domain.Actor) (int, error) {
	updated, err := n.notifications.MarkAllRead(ctx, actor.UserID)
	return updated, internal(err)
}

// Delete removes one of the actor's notifications.
func (n *NotificationService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := n.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := n.notifications.Delete(ctx, id); err != nil {
		return lookupError(err, "notification")
	}
	return nil
}

func (n *NotificationService) owned(ctx context.Context, actor domain.Actor, id string) (*domain.Notification, error) {
	notification, err := n.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "notification")
	}
	if notification.UserID != actor.UserID {
		return nil, apperrors.NewForbidden("not authorized to access this notification")
	}
	return notification, nil
}
