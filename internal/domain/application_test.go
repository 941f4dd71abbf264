package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatusValid(t *testing.T) {
	t.Parallel()
	for _, status := range ApplicationStatuses {
		assert.True(t, status.Valid(), status)
	}
	assert.False(t, ApplicationStatus("hired").Valid())
	assert.False(t, ApplicationStatus("").Valid())
}

func TestStrictTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to ApplicationStatus
		allowed  bool
	}{
		{ApplicationStatusPending, ApplicationStatusReviewing, true},
		{ApplicationStatusPending, ApplicationStatusRejected, true},
		{ApplicationStatusPending, ApplicationStatusShortlisted, false},
		{ApplicationStatusPending, ApplicationStatusAccepted, false},
		{ApplicationStatusReviewing, ApplicationStatusShortlisted, true},
		{ApplicationStatusReviewing, ApplicationStatusPending, false},
		{ApplicationStatusShortlisted, ApplicationStatusAccepted, true},
		{ApplicationStatusShortlisted, ApplicationStatusRejected, true},
		{ApplicationStatusRejected, ApplicationStatusAccepted, false},
		{ApplicationStatusAccepted, ApplicationStatusRejected, false},
		{ApplicationStatusAccepted, ApplicationStatusAccepted, true},
		{ApplicationStatusPending, "hired", false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, StrictTransitions{}.Allows(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestFlatTransitions(t *testing.T) {
	t.Parallel()
	for _, from := range ApplicationStatuses {
		for _, to := range ApplicationStatuses {
			assert.True(t, FlatTransitions{}.Allows(from, to))
		}
	}
	assert.False(t, FlatTransitions{}.Allows(ApplicationStatusPending, "hired"))
}

func TestStatusCountsStartAtZero(t *testing.T) {
	t.Parallel()
	counts := NewStatusCounts()
	assert.Len(t, counts, 5)
	assert.Zero(t, counts.Total())

	counts[ApplicationStatusAccepted] += 2
	counts[ApplicationStatusPending]++
	assert.Equal(t, 3, counts.Total())

	jobs := NewJobStatusCounts()
	assert.Len(t, jobs, 3)
	assert.Zero(t, jobs.Total())
}

func TestApplicationDetailViews(t *testing.T) {
	t.Parallel()
	detail := ApplicationDetail{
		Application: Application{ID: "a-1"},
		Job:         JobSummary{ID: "j-1", Title: "Go Developer"},
		CompanyName: "Acme",
		Seeker:      SeekerSummary{UserID: "s-1", Email: "ada@example.com"},
	}
	assert.Equal(t, ApplicationWithJob{Application: detail.Application, Job: detail.Job, CompanyName: "Acme"}, detail.WithJob())
	assert.Equal(t, ApplicationWithSeeker{Application: detail.Application, Seeker: detail.Seeker}, detail.WithSeeker())
}

func TestJobAcceptsApplications(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name string
		job  Job
		want bool
	}{
		{name: "active without deadline", job: Job{Status: JobStatusActive}, want: true},
		{name: "active before deadline", job: Job{Status: JobStatusActive, ApplicationDeadline: &future}, want: true},
		{name: "active after deadline", job: Job{Status: JobStatusActive, ApplicationDeadline: &past}},
		{name: "closed", job: Job{Status: JobStatusClosed}},
		{name: "draft", job: Job{Status: JobStatusDraft}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.job.AcceptsApplicationsAt(now), tc.name)
	}
	assert.True(t, (&Job{EmployerID: "e-1"}).OwnedBy("e-1"))
	assert.False(t, (*Job)(nil).OwnedBy("e-1"))
}
