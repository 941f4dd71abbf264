package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/repository/memory"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// recordingDispatcher keeps every published event and forwards nothing.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) ofType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	store      *memory.Store
	dispatcher *recordingDispatcher
	apps       *ApplicationService
	jobs       *JobService
	dashboards *DashboardService
}

func newFixture(t *testing.T, policy domain.TransitionPolicy) *fixture {
	t.Helper()
	store := memory.NewStore()
	dispatcher := &recordingDispatcher{}
	return &fixture{
		store:      store,
		dispatcher: dispatcher,
		apps: NewApplicationService(ApplicationDependencies{
			ApplicationRepo: store.Applications(),
			JobRepo:         store.Jobs(),
			Dispatcher:      dispatcher,
			Policy:          policy,
			Now:             func() time.Time { return fixedNow },
		}),
		jobs: NewJobService(JobDependencies{JobRepo: store.Jobs()}),
		dashboards: NewDashboardService(DashboardDependencies{
			ApplicationRepo: store.Applications(),
			JobRepo:         store.Jobs(),
			ProfileRepo:     store.Profiles(),
			RecentLimit:     5,
		}),
	}
}

func (f *fixture) seeker(t *testing.T, email, fullName string) domain.Actor {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "x", Role: domain.RoleJobSeeker, IsActive: true}
	profile := &domain.JobSeekerProfile{FullName: fullName, Skills: []string{}}
	require.NoError(t, f.store.Users().CreateWithSeekerProfile(context.Background(), user, profile))
	return domain.Actor{UserID: user.ID, Role: domain.RoleJobSeeker}
}

func (f *fixture) employer(t *testing.T, email, company string) domain.Actor {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "x", Role: domain.RoleEmployer, IsActive: true}
	profile := &domain.EmployerProfile{CompanyName: company}
	require.NoError(t, f.store.Users().CreateWithEmployerProfile(context.Background(), user, profile))
	return domain.Actor{UserID: user.ID, Role: domain.RoleEmployer}
}

func (f *fixture) job(t *testing.T, owner domain.Actor, title string, mutate ...func(*JobCreateInput)) *domain.Job {
	t.Helper()
	input := JobCreateInput{
		Title:       title,
		Description: "Build things with " + strings.ToLower(title),
		Location:    "Berlin",
	}
	for _, m := range mutate {
		m(&input)
	}
	job, err := f.jobs.Create(context.Background(), owner, input)
	require.NoError(t, err)
	return job
}

func (f *fixture) apply(t *testing.T, seeker domain.Actor, jobID string) *domain.ApplicationWithJob {
	t.Helper()
	app, err := f.apps.SubmitApplication(context.Background(), seeker, SubmitApplicationInput{JobID: jobID, CoverLetter: "hello"})
	require.NoError(t, err)
	return app
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, apperrors.HasCode(err, code), "expected %s, got %v", code, err)
}

func ptr[T any](v T) *T { return &v }
