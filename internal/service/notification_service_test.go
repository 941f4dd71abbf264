package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/repository"
	"github.com/spec-kit/job-portal/internal/repository/memory"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type ledger struct {
	store         *memory.Store
	apps          *ApplicationService
	jobs          *JobService
	notifications *NotificationService
}

func newLedger(t *testing.T, publisher *mockPublisher, mailer *mockMailer, logger *zap.Logger) *ledger {
	t.Helper()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher(logger)
	deps := NotificationDependencies{
		Dispatcher:       dispatcher,
		NotificationRepo: store.Notifications(),
		UserRepo:         store.Users(),
		Logger:           logger,
	}
	if publisher != nil {
		deps.Publisher = publisher
	}
	if mailer != nil {
		deps.Mailer = mailer
	}
	notifications := NewNotificationService(deps)
	notifications.RegisterHandlers()

	return &ledger{
		store: store,
		apps: NewApplicationService(ApplicationDependencies{
			ApplicationRepo: store.Applications(),
			JobRepo:         store.Jobs(),
			Dispatcher:      dispatcher,
		}),
		jobs:          NewJobService(JobDependencies{JobRepo: store.Jobs()}),
		notifications: notifications,
	}
}

func (l *ledger) users(t *testing.T) (employer, seeker domain.Actor) {
	t.Helper()
	f := &fixture{store: l.store}
	return f.employer(t, "hr@acme.test", "Acme"), f.seeker(t, "ada@example.com", "Ada Lovelace")
}

func TestLedgerEventsBecomeNotifications(t *testing.T) {
	t.Parallel()
	publisher := &mockPublisher{}
	mailer := &mockMailer{}
	l := newLedger(t, publisher, mailer, zap.NewNop())
	ctx := context.Background()

	employer, seeker := l.users(t)
	job, err := l.jobs.Create(ctx, employer, JobCreateInput{Title: "Go Developer", Description: "APIs", Location: "Remote"})
	require.NoError(t, err)

	publisher.On("Publish", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
	mailer.On("Send", mock.Anything, "hr@acme.test", "New Application Received", `Ada Lovelace has applied for "Go Developer"`).Return(nil).Once()
	mailer.On("Send", mock.Anything, "ada@example.com", "Application Status Updated",
		`Your application for "Go Developer" has been updated from "pending" to "shortlisted". Congratulations! You have been shortlisted`).Return(nil).Once()

	app, err := l.apps.SubmitApplication(ctx, seeker, SubmitApplicationInput{JobID: job.ID})
	require.NoError(t, err)
	_, err = l.apps.UpdateApplicationStatus(ctx, employer, app.ID, UpdateStatusInput{Status: domain.ApplicationStatusShortlisted})
	require.NoError(t, err)

	inbox, err := l.notifications.List(ctx, employer, false, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, inbox.Total)
	received := inbox.Items[0]
	assert.Equal(t, domain.NotificationNewApplication, received.Type)
	assert.Equal(t, "New Application Received", received.Title)
	require.NotNil(t, received.RelatedID)
	assert.Equal(t, app.ID, *received.RelatedID)
	assert.Equal(t, "application", *received.RelatedType)
	assert.False(t, received.IsRead)

	seekerInbox, err := l.notifications.List(ctx, seeker, false, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, seekerInbox.Total)
	assert.Equal(t, domain.NotificationApplicationStatus, seekerInbox.Items[0].Type)

	publisher.AssertNumberOfCalls(t, "Publish", 2)
	mailer.AssertExpectations(t)
}

func TestDeliveryFailuresDoNotBreakTheLedger(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	publisher := &mockPublisher{}
	mailer := &mockMailer{}
	l := newLedger(t, publisher, mailer, zap.New(core))
	ctx := context.Background()

	employer, seeker := l.users(t)
	job, err := l.jobs.Create(ctx, employer, JobCreateInput{Title: "Go Developer", Description: "APIs", Location: "Remote"})
	require.NoError(t, err)

	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	_, err = l.apps.SubmitApplication(ctx, seeker, SubmitApplicationInput{JobID: job.ID})
	require.NoError(t, err)

	count, err := l.notifications.UnreadCount(ctx, employer)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "the stored notification survives push and mail failures")
	assert.Equal(t, 1, logs.FilterMessage("realtime notification failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("notification e-mail failed").Len())
}

func TestNoStatusChangeNoNotification(t *testing.T) {
	t.Parallel()
	l := newLedger(t, nil, nil, zap.NewNop())
	ctx := context.Background()

	employer, seeker := l.users(t)
	job, err := l.jobs.Create(ctx, employer, JobCreateInput{Title: "Go Developer", Description: "APIs", Location: "Remote"})
	require.NoError(t, err)
	app, err := l.apps.SubmitApplication(ctx, seeker, SubmitApplicationInput{JobID: job.ID})
	require.NoError(t, err)

	_, err = l.apps.UpdateApplicationStatus(ctx, employer, app.ID, UpdateStatusInput{
		Status: domain.ApplicationStatusPending,
		Notes:  ptr("looked at it"),
	})
	require.NoError(t, err)

	count, err := l.notifications.UnreadCount(ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNotificationInbox(t *testing.T) {
	t.Parallel()
	l := newLedger(t, nil, nil, zap.NewNop())
	ctx := context.Background()

	employer, seeker := l.users(t)
	repo := l.store.Notifications()
	var ids []string
	for i := 0; i < 3; i++ {
		n := &domain.Notification{UserID: seeker.UserID, Title: "t", Message: "m", Type: domain.NotificationSystem}
		require.NoError(t, repo.Create(ctx, n))
		ids = append(ids, n.ID)
	}

	_, err := l.notifications.MarkRead(ctx, employer, ids[0])
	requireCode(t, err, apperrors.CodeForbidden)
	requireCode(t, l.notifications.Delete(ctx, employer, ids[0]), apperrors.CodeForbidden)
	_, err = l.notifications.MarkRead(ctx, seeker, uuid.NewString())
	requireCode(t, err, apperrors.CodeNotFound)

	read, err := l.notifications.MarkRead(ctx, seeker, ids[0])
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	unread, err := l.notifications.List(ctx, seeker, true, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, unread.Total)

	page, err := l.notifications.List(ctx, seeker, false, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ids[0], page.Items[0].ID, "oldest is last")

	_, err = l.notifications.List(ctx, seeker, false, 1<<62, 10)
	requireCode(t, err, apperrors.CodeValidationFailed)

	updated, err := l.notifications.MarkAllRead(ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	count, err := l.notifications.UnreadCount(ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, l.notifications.Delete(ctx, seeker, ids[1]))
	_, err = repo.GetByID(ctx, ids[1])
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUnexpectedPayloadIsReported(t *testing.T) {
	t.Parallel()
	l := newLedger(t, nil, nil, zap.NewNop())

	err := l.notifications.handleStatusChange(context.Background(), events.Event{
		Type:      events.EventStatusChange,
		Timestamp: time.Now(),
		Payload:   "not a payload",
	})
	assert.Error(t, err)
}
