// Package repotest holds the behaviour shared by every repository backend. The
// in-memory store runs it as a unit test and Postgres runs it under the
// integration build tag.
package repotest

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
)

// Repositories bundles one backend's repository implementations.
type Repositories struct {
	Users         repository.UserRepository
	Profiles      repository.ProfileRepository
	Jobs          repository.JobRepository
	Applications  repository.ApplicationRepository
	Notifications repository.NotificationRepository
}

// Run exercises repos against the storage contract. Every case creates its own
// accounts so a shared database can be reused across cases.
func Run(t *testing.T, repos Repositories) {
	t.Helper()

	t.Run("user email is unique", func(t *testing.T) { testUniqueEmail(t, repos) })
	t.Run("concurrent registrations with one email", func(t *testing.T) { testConcurrentEmail(t, repos) })
	t.Run("registration creates the profile", func(t *testing.T) { testRegistrationProfile(t, repos) })
	t.Run("application pair is unique", func(t *testing.T) { testUniqueApplication(t, repos) })
	t.Run("application references must exist", func(t *testing.T) { testApplicationReferences(t, repos) })
	t.Run("application detail reads are repeatable", func(t *testing.T) { testRepeatableDetail(t, repos) })
	t.Run("listings are newest first", func(t *testing.T) { testNewestFirst(t, repos) })
	t.Run("status counts cover every status", func(t *testing.T) { testStatusCounts(t, repos) })
	t.Run("job delete removes its applications", func(t *testing.T) { testDeleteWithApplications(t, repos) })
	t.Run("search filters", func(t *testing.T) { testSearch(t, repos) })
	t.Run("notification inbox", func(t *testing.T) { testNotifications(t, repos) })
}

func uniqueEmail() string {
	return "user-" + uuid.NewString() + "@example.com"
}

// NewSeeker stores a job seeker with an empty profile.
func NewSeeker(t *testing.T, repos Repositories) *domain.User {
	t.Helper()
	user := &domain.User{Email: uniqueEmail(), PasswordHash: "hash", Role: domain.RoleJobSeeker, IsActive: true}
	require.NoError(t, repos.Users.CreateWithSeekerProfile(context.Background(), user, &domain.JobSeekerProfile{FullName: "Ada Seeker"}))
	return user
}

// NewEmployer stores an employer with a named company.
func NewEmployer(t *testing.T, repos Repositories) *domain.User {
	t.Helper()
	user := &domain.User{Email: uniqueEmail(), PasswordHash: "hash", Role: domain.RoleEmployer, IsActive: true}
	require.NoError(t, repos.Users.CreateWithEmployerProfile(context.Background(), user, &domain.EmployerProfile{CompanyName: "Acme"}))
	return user
}

// NewJob stores an active job owned by employerID. Mutators run before the insert.
func NewJob(t *testing.T, repos Repositories, employerID string, mutators ...func(*domain.Job)) *domain.Job {
	t.Helper()
	job := &domain.Job{
		EmployerID:   employerID,
		Title:        "Backend Engineer",
		Description:  "Build the ledger",
		JobType:      domain.JobTypeFullTime,
		Location:     "Berlin",
		SalaryPeriod: domain.SalaryPeriodYearly,
		Skills:       []string{"go"},
		Status:       domain.JobStatusActive,
	}
	for _, mutate := range mutators {
		mutate(job)
	}
	require.NoError(t, repos.Jobs.Create(context.Background(), job))
	return job
}

// NewApplication stores a pending application.
func NewApplication(t *testing.T, repos Repositories, jobID, seekerID string) *domain.Application {
	t.Helper()
	app := &domain.Application{JobID: jobID, JobSeekerID: seekerID, Status: domain.ApplicationStatusPending}
	require.NoError(t, repos.Applications.Create(context.Background(), app))
	return app
}

func testUniqueEmail(t *testing.T, repos Repositories) {
	ctx := context.Background()
	first := NewSeeker(t, repos)

	dup := &domain.User{Email: first.Email, PasswordHash: "hash", Role: domain.RoleEmployer, IsActive: true}
	err := repos.Users.CreateWithEmployerProfile(ctx, dup, &domain.EmployerProfile{CompanyName: "Other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := repos.Users.GetByEmail(ctx, first.Email)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, domain.RoleJobSeeker, found.Role)
}

func testConcurrentEmail(t *testing.T, repos Repositories) {
	ctx := context.Background()
	email := uniqueEmail()

	const attempts = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user := &domain.User{Email: email, PasswordHash: "hash", Role: domain.RoleJobSeeker, IsActive: true}
			err := repos.Users.CreateWithSeekerProfile(ctx, user, &domain.JobSeekerProfile{})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, repository.ErrDuplicate):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)
}

func testRegistrationProfile(t *testing.T, repos Repositories) {
	ctx := context.Background()
	seeker := NewSeeker(t, repos)
	employer := NewEmployer(t, repos)

	profile, err := repos.Profiles.GetSeeker(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Seeker", profile.FullName)
	assert.Empty(t, profile.Skills)

	company, err := repos.Profiles.GetEmployer(ctx, employer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", company.CompanyName)

	_, err = repos.Profiles.GetEmployer(ctx, seeker.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testUniqueApplication(t *testing.T, repos Repositories) {
	ctx := context.Background()
	employer := NewEmployer(t, repos)
	seeker := NewSeeker(t, repos)
	job := NewJob(t, repos, employer.ID)

	first := NewApplication(t, repos, job.ID, seeker.ID)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	err := repos.Applications.Create(ctx, &domain.Application{JobID: job.ID, JobSeekerID: seeker.ID, Status: domain.ApplicationStatusPending})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	exists, err := repos.Applications.ExistsForJobAndSeeker(ctx, job.ID, seeker.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// the same seeker may still apply elsewhere
	other := NewJob(t, repos, employer.ID)
	NewApplication(t, repos, other.ID, seeker.ID)
}

func testRepeatableDetail(t *testing.T, repos Repositories) {
	ctx := context.Background()
	employer := NewEmployer(t, repos)
	seeker := NewSeeker(t, repos)
	job := NewJob(t, repos, employer.ID)
	app := NewApplication(t, repos, job.ID, seeker.ID)

	first, err := repos.Applications.GetDetail(ctx, app.ID)
	require.NoError(t, err)
	second, err := repos.Applications.GetDetail(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	assert.Equal(t, job.Title, second.Job.Title)
	assert.Equal(t, employer.ID, second.Job.EmployerID)
	assert.Equal(t, "Acme", second.CompanyName)
	assert.Equal(t, seeker.Email, second.Seeker.Email)
}

func testApplicationReferences(t *testing.T, repos Repositories) {
	ctx := context.Background()
	employer := NewEmployer(t, repos)
	seeker := NewSeeker(t, repos)
	job := NewJob(t, repos, employer.ID)

	err := repos.Applications.Create(ctx, &domain.Application{JobID: uuid.NewString(), JobSeekerID: seeker.ID, Status: domain.ApplicationStatusPending})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repos.Applications.Create(ctx, &domain.Application{JobID: job.ID, JobSeekerID: uuid.NewString(), Status: domain.ApplicationStatusPending})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repos.Applications.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repos.Applications.Update(ctx, &domain.Application{ID: uuid.NewString(), Status: domain.ApplicationStatusReviewing})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testNewestFirst(t *testing.T, repos Repositories) {
	ctx := context.Background()
	employer := NewEmployer(t, repos)
	seeker := NewSeeker(t, repos)

	var jobs []*domain.Job
	for i := 0; i < 3; i++ {
		job := NewJob(t, repos, employer.ID)
		NewApplication(t, repos, job.ID, seeker.ID)
		jobs = append(jobs, job)
	}

	mine, err := repos.Applications.ListBySeeker(ctx, seeker.ID, repository.ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, jobs[2].ID, mine[0].JobID)
	assert.Equal(t, jobs[0].ID, mine[2].JobID)
	assert.Equal(t, "Acme", mine[0].CompanyName)

	limited, err := repos.Applications.ListBySeeker(ctx, seeker.ID, repository.ApplicationFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	posted, err := repos.Jobs.ListByEmployer(ctx, employer.ID, 0)
	require.NoError(t, err)
	require.Len(t, posted, 3)
	assert.Equal(t, jobs[2].ID, posted[0].ID)
	assert.Equal(t, 1, posted[0].ApplicationCount)
}

func testStatusCounts(t *testing.T, repos Repositories) {
	ctx := context.Background()
	employer := NewEmployer(t, repos)
	job := NewJob(t, repos, employer.ID)
	NewJob(t, repos, employer.ID, func(j *domain.Job) { j.Status = domain.JobStatusDraft })

	seeker := NewSeeker(t, repos)
	app := NewApplication(t, repos, job.ID, seeker.ID)
	app.Status = domain.ApplicationStatusShortlisted
	app.Notes = "strong portfolio"
	require.NoError(t, repos.Applications.Update(ctx, app))
	NewApplication(t, repos, job.ID, NewSeeker(t, repos).ID)

	stored, err := repos.Applications.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusShortlisted, stored.Status)
	assert.Equal(t, "strong portfolio", stored.Notes)
	assert.Equal(t, job.ID, stored.JobID)

	counts, err := repos.Applications.CountByStatusForJobs(ctx, []string{job.ID})
	require.NoError(t, err)
	assert.Len(t, counts, len(domain.ApplicationStatuses))
	assert.Equal(t, 1, counts[domain.ApplicationStatusPending])
	assert.Equal(t, 1, counts[domain.ApplicationStatusShortlisted])
	assert.Equal(t, 0, counts[domain.ApplicationStatusAccepted])

	mine, err := repos.Applications.CountByStatusForSeeker(ctx, seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total())

	jobCounts, err := repos.Jobs.CountByStatusForEmployer(ctx, employer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, jobCounts[domain.JobStatusActive])
	assert.Equal(t, 1, jobCounts[domain.JobStatusDraft])
	assert.Equal(t, 0, jobCounts[domain.JobStatusClosed])
}

func testDeleteWithApplications(t *testing.T, repos Repositories) {
	ctx := context.Background()
	employer := NewEmployer(t, repos)
	job := NewJob(t, repos, employer.ID)
	kept := NewJob(t, repos, employer.ID)

	var removed []*domain.Application
	for i := 0; i < 3; i++ {
		removed = append(removed, NewApplication(t, repos, job.ID, NewSeeker(t, repos).ID))
	}
	survivor := NewApplication(t, repos, kept.ID, NewSeeker(t, repos).ID)

	count, err := repos.Jobs.DeleteWithApplications(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = repos.Jobs.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	for _, app := range removed {
		_, err = repos.Applications.GetByID(ctx, app.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}
	_, err = repos.Applications.GetByID(ctx, survivor.ID)
	assert.NoError(t, err)

	_, err = repos.Jobs.DeleteWithApplications(ctx, job.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testSearch(t *testing.T, repos Repositories) {
	ctx := context.Background()
	employer := NewEmployer(t, repos)
	marker := uuid.NewString()
	salary := func(lo, hi float64) func(*domain.Job) {
		return func(j *domain.Job) { j.SalaryMin, j.SalaryMax = &lo, &hi }
	}

	remote := NewJob(t, repos, employer.ID, salary(50000, 70000), func(j *domain.Job) {
		j.Title = "Remote Go " + marker
		j.Location = "Remote"
		j.ExperienceLevel = domain.ExperienceSenior
	})
	NewJob(t, repos, employer.ID, salary(90000, 120000), func(j *domain.Job) {
		j.Title = "Staff Go " + marker
		j.JobType = domain.JobTypeContract
	})
	NewJob(t, repos, employer.ID, func(j *domain.Job) {
		j.Title = "Draft " + marker
		j.Status = domain.JobStatusDraft
	})

	lo, hi := 60000.0, 80000.0
	tests := []struct {
		name   string
		filter repository.JobFilter
		want   int
	}{
		{name: "keyword only sees active", filter: repository.JobFilter{Keyword: marker}, want: 2},
		{name: "keyword is case insensitive", filter: repository.JobFilter{Keyword: "REMOTE GO " + marker}, want: 1},
		{name: "job type", filter: repository.JobFilter{Keyword: marker, JobType: domain.JobTypeContract}, want: 1},
		{name: "location substring", filter: repository.JobFilter{Keyword: marker, Location: "remo"}, want: 1},
		{name: "experience level", filter: repository.JobFilter{Keyword: marker, ExperienceLevel: domain.ExperienceSenior}, want: 1},
		{name: "salary window", filter: repository.JobFilter{Keyword: marker, MinSalary: &lo, MaxSalary: &hi}, want: 1},
		{name: "page past the end", filter: repository.JobFilter{Keyword: marker, Limit: 10, Offset: 10}, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, total, err := repos.Jobs.Search(ctx, tc.filter)
			require.NoError(t, err)
			assert.Len(t, items, tc.want)
			if tc.filter.Offset == 0 {
				assert.Equal(t, tc.want, total)
			}
		})
	}

	items, _, err := repos.Jobs.Search(ctx, repository.JobFilter{Keyword: "Remote Go " + marker})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, remote.ID, items[0].ID)
	assert.Equal(t, "Acme", items[0].Employer.CompanyName)
	assert.Equal(t, employer.Email, items[0].Employer.Email)
}

func testNotifications(t *testing.T, repos Repositories) {
	ctx := context.Background()
	user := NewSeeker(t, repos)

	var created []*domain.Notification
	for _, title := range []string{"first", "second", "third"} {
		n := &domain.Notification{UserID: user.ID, Title: title, Message: title, Type: domain.NotificationSystem}
		require.NoError(t, repos.Notifications.Create(ctx, n))
		created = append(created, n)
	}

	err := repos.Notifications.Create(ctx, &domain.Notification{UserID: uuid.NewString(), Title: "x", Message: "x", Type: domain.NotificationSystem})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	read, err := repos.Notifications.MarkRead(ctx, created[0].ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	unread, err := repos.Notifications.CountUnread(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	items, total, err := repos.Notifications.ListByUser(ctx, user.ID, repository.NotificationFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "third", items[0].Title)

	updated, err := repos.Notifications.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	require.NoError(t, repos.Notifications.Delete(ctx, created[1].ID))
	assert.ErrorIs(t, repos.Notifications.Delete(ctx, created[1].ID), repository.ErrNotFound)

	_, total, err = repos.Notifications.ListByUser(ctx, user.ID, repository.NotificationFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
