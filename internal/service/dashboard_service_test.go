package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/domain"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

func TestJobSeekerDashboard(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada")

	empty, err := f.dashboards.JobSeekerDashboard(ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalApplications)
	assert.Len(t, empty.StatusCounts, len(domain.ApplicationStatuses), "every status is present")
	for _, status := range domain.ApplicationStatuses {
		assert.Equal(t, 0, empty.StatusCounts[status])
	}
	assert.Empty(t, empty.RecentApplications)

	applied := f.job(t, owner, "Applied")
	f.job(t, owner, "Recommended")
	f.job(t, owner, "Draft", func(in *JobCreateInput) { in.Status = domain.JobStatusDraft })
	app := f.apply(t, seeker, applied.ID)
	_, err = f.apps.UpdateApplicationStatus(ctx, owner, app.ID, UpdateStatusInput{Status: domain.ApplicationStatusReviewing})
	require.NoError(t, err)

	d, err := f.dashboards.JobSeekerDashboard(ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalApplications)
	assert.Equal(t, 1, d.StatusCounts[domain.ApplicationStatusReviewing])
	assert.Equal(t, 0, d.StatusCounts[domain.ApplicationStatusPending])
	require.Len(t, d.RecentApplications, 1)
	require.Len(t, d.RecommendedJobs, 1)
	assert.Equal(t, "Recommended", d.RecommendedJobs[0].Title)
	assert.Equal(t, 13, d.ProfileCompletion, "only the full name is filled")

	_, err = f.dashboards.JobSeekerDashboard(ctx, owner)
	requireCode(t, err, apperrors.CodeForbidden)
}

func TestEmployerDashboard(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	idle := f.employer(t, "hr@initech.test", "Initech")
	ada := f.seeker(t, "ada@example.com", "Ada")
	bob := f.seeker(t, "bob@example.com", "Bob")

	first := f.job(t, owner, "First")
	second := f.job(t, owner, "Second")
	f.job(t, owner, "Closed", func(in *JobCreateInput) { in.Status = domain.JobStatusClosed })

	f.apply(t, ada, first.ID)
	accepted := f.apply(t, bob, first.ID)
	f.apply(t, ada, second.ID)
	_, err := f.apps.UpdateApplicationStatus(ctx, owner, accepted.ID, UpdateStatusInput{Status: domain.ApplicationStatusAccepted})
	require.NoError(t, err)

	d, err := f.dashboards.EmployerDashboard(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalJobs)
	assert.Equal(t, 2, d.JobStatusCounts[domain.JobStatusActive])
	assert.Equal(t, 1, d.JobStatusCounts[domain.JobStatusClosed])
	assert.Equal(t, 0, d.JobStatusCounts[domain.JobStatusDraft])
	assert.Equal(t, 3, d.TotalApplications)
	assert.Equal(t, 2, d.ApplicationStatusCounts[domain.ApplicationStatusPending])
	assert.Equal(t, 1, d.ApplicationStatusCounts[domain.ApplicationStatusAccepted])
	assert.Len(t, d.RecentJobs, 3)
	assert.Len(t, d.RecentApplications, 3)
	assert.Equal(t, 14, d.ProfileCompletion, "only the company name is filled")

	none, err := f.dashboards.EmployerDashboard(ctx, idle)
	require.NoError(t, err)
	assert.Equal(t, 0, none.TotalJobs)
	assert.Equal(t, 0, none.TotalApplications)
	assert.Len(t, none.ApplicationStatusCounts, len(domain.ApplicationStatuses))
	assert.Len(t, none.JobStatusCounts, len(domain.JobStatuses))
	assert.NotNil(t, none.RecentApplications)

	_, err = f.dashboards.EmployerDashboard(ctx, ada)
	requireCode(t, err, apperrors.CodeForbidden)
}

func TestPlatformStats(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()
	stats := NewStatsService(f.store.Jobs(), f.store.Users(), f.store.Applications())

	owner := f.employer(t, "hr@acme.test", "Acme")
	f.employer(t, "hr@globex.test", "Globex")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	job := f.job(t, owner, "Go Developer")
	f.job(t, owner, "Draft", func(in *JobCreateInput) { in.Status = domain.JobStatusDraft })
	f.apply(t, seeker, job.ID)

	got, err := stats.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &PlatformStats{ActiveJobs: 1, Employers: 2, TotalApplications: 1}, got)
}
