package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

func TestSubmitApplication(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	employer := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada Lovelace")
	job := f.job(t, employer, "Go Developer")

	app, err := f.apps.SubmitApplication(ctx, seeker, SubmitApplicationInput{JobID: job.ID, CoverLetter: "  hire me  "})
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.Equal(t, "hire me", app.CoverLetter)
	assert.Equal(t, job.ID, app.JobID)
	assert.Equal(t, seeker.UserID, app.JobSeekerID)
	assert.Equal(t, "Go Developer", app.Job.Title)
	assert.Equal(t, "Acme", app.CompanyName)

	published := f.dispatcher.ofType(events.EventNewApplication)
	require.Len(t, published, 1)
	assert.Equal(t, app.ID, published[0].ApplicationID)
	payload, ok := published[0].Payload.(events.NewApplicationPayload)
	require.True(t, ok)
	assert.Equal(t, employer.UserID, payload.EmployerID)
	assert.Equal(t, "Ada Lovelace", payload.SeekerName)
	assert.Equal(t, "Go Developer", payload.JobTitle)
}

func TestSubmitApplicationRejections(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	employer := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	active := f.job(t, employer, "Active")
	closed := f.job(t, employer, "Closed", func(in *JobCreateInput) { in.Status = domain.JobStatusClosed })
	draft := f.job(t, employer, "Draft", func(in *JobCreateInput) { in.Status = domain.JobStatusDraft })
	expired := f.job(t, employer, "Expired", func(in *JobCreateInput) {
		in.ApplicationDeadline = ptr(fixedNow.Add(-time.Hour))
	})
	open := f.job(t, employer, "Open until tomorrow", func(in *JobCreateInput) {
		in.ApplicationDeadline = ptr(fixedNow.Add(24 * time.Hour))
	})

	cases := []struct {
		name  string
		actor domain.Actor
		jobID string
		code  string
	}{
		{name: "employer cannot apply", actor: employer, jobID: active.ID, code: apperrors.CodeForbidden},
		{name: "unknown job", actor: seeker, jobID: uuid.NewString(), code: apperrors.CodeNotFound},
		{name: "closed job", actor: seeker, jobID: closed.ID, code: apperrors.CodeInvalidState},
		{name: "draft job", actor: seeker, jobID: draft.ID, code: apperrors.CodeInvalidState},
		{name: "deadline passed", actor: seeker, jobID: expired.ID, code: apperrors.CodeInvalidState},
	}
	for _, tc := range cases {
		_, err := f.apps.SubmitApplication(ctx, tc.actor, SubmitApplicationInput{JobID: tc.jobID})
		requireCode(t, err, tc.code)
	}

	_, err := f.apps.SubmitApplication(ctx, seeker, SubmitApplicationInput{JobID: open.ID})
	require.NoError(t, err)

	assert.Len(t, f.dispatcher.ofType(events.EventNewApplication), 1, "rejected submissions publish nothing")
}

func TestSubmitApplicationTwiceConflicts(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	employer := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	job := f.job(t, employer, "Go Developer")

	f.apply(t, seeker, job.ID)
	_, err := f.apps.SubmitApplication(context.Background(), seeker, SubmitApplicationInput{JobID: job.ID})
	requireCode(t, err, apperrors.CodeConflict)
}

func TestConcurrentSubmissionsCreateOneApplication(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	employer := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	job := f.job(t, employer, "Go Developer")

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.apps.SubmitApplication(context.Background(), seeker, SubmitApplicationInput{JobID: job.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperrors.HasCode(err, apperrors.CodeConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	count, err := f.store.Applications().CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateApplicationStatus(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	other := f.employer(t, "hr@globex.test", "Globex")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	job := f.job(t, owner, "Go Developer")
	app := f.apply(t, seeker, job.ID)

	t.Run("unknown status is rejected before lookup", func(t *testing.T) {
		_, err := f.apps.UpdateApplicationStatus(ctx, owner, uuid.NewString(), UpdateStatusInput{Status: "hired"})
		requireCode(t, err, apperrors.CodeValidationFailed)
	})
	t.Run("missing application", func(t *testing.T) {
		_, err := f.apps.UpdateApplicationStatus(ctx, owner, uuid.NewString(), UpdateStatusInput{Status: domain.ApplicationStatusReviewing})
		requireCode(t, err, apperrors.CodeNotFound)
	})
	t.Run("other employer", func(t *testing.T) {
		_, err := f.apps.UpdateApplicationStatus(ctx, other, app.ID, UpdateStatusInput{Status: domain.ApplicationStatusReviewing})
		requireCode(t, err, apperrors.CodeForbidden)
	})
	t.Run("job seeker", func(t *testing.T) {
		_, err := f.apps.UpdateApplicationStatus(ctx, seeker, app.ID, UpdateStatusInput{Status: domain.ApplicationStatusAccepted})
		requireCode(t, err, apperrors.CodeForbidden)
	})

	updated, err := f.apps.UpdateApplicationStatus(ctx, owner, app.ID, UpdateStatusInput{
		Status: domain.ApplicationStatusShortlisted,
		Notes:  ptr(" strong Go background "),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusShortlisted, updated.Status)
	assert.Equal(t, "strong Go background", updated.Notes)
	assert.Equal(t, "Go Developer", updated.Job.Title)

	changes := f.dispatcher.ofType(events.EventStatusChange)
	require.Len(t, changes, 1)
	payload := changes[0].Payload.(events.StatusChangePayload)
	assert.Equal(t, domain.ApplicationStatusPending, payload.OldStatus)
	assert.Equal(t, domain.ApplicationStatusShortlisted, payload.NewStatus)
	assert.Equal(t, seeker.UserID, payload.SeekerID)

	// same status only amends notes
	again, err := f.apps.UpdateApplicationStatus(ctx, owner, app.ID, UpdateStatusInput{
		Status: domain.ApplicationStatusShortlisted,
		Notes:  ptr("second interview booked"),
	})
	require.NoError(t, err)
	assert.Equal(t, "second interview booked", again.Notes)
	assert.Len(t, f.dispatcher.ofType(events.EventStatusChange), 1)

	// nil notes keep the stored notes
	kept, err := f.apps.UpdateApplicationStatus(ctx, owner, app.ID, UpdateStatusInput{Status: domain.ApplicationStatusAccepted})
	require.NoError(t, err)
	assert.Equal(t, "second interview booked", kept.Notes)

	// blank notes count as not provided
	blank, err := f.apps.UpdateApplicationStatus(ctx, owner, app.ID, UpdateStatusInput{
		Status: domain.ApplicationStatusAccepted,
		Notes:  ptr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, "second interview booked", blank.Notes)
}

func TestFlatPolicyAllowsAnyRecognisedTransition(t *testing.T) {
	t.Parallel()
	f := newFixture(t, domain.FlatTransitions{})
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	app := f.apply(t, seeker, f.job(t, owner, "Go Developer").ID)

	for _, status := range []domain.ApplicationStatus{
		domain.ApplicationStatusAccepted,
		domain.ApplicationStatusPending,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusReviewing,
	} {
		updated, err := f.apps.UpdateApplicationStatus(ctx, owner, app.ID, UpdateStatusInput{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestStrictPolicyRejectsSkippedSteps(t *testing.T) {
	t.Parallel()
	f := newFixture(t, domain.StrictTransitions{})
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	app := f.apply(t, seeker, f.job(t, owner, "Go Developer").ID)

	_, err := f.apps.UpdateApplicationStatus(ctx, owner, app.ID, UpdateStatusInput{Status: domain.ApplicationStatusAccepted})
	requireCode(t, err, apperrors.CodeInvalidState)

	_, err = f.apps.UpdateApplicationStatus(ctx, owner, app.ID, UpdateStatusInput{Status: domain.ApplicationStatusReviewing})
	require.NoError(t, err)

	stored, err := f.store.Applications().GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusReviewing, stored.Status)
}

func TestGetApplicationVisibility(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	other := f.employer(t, "hr@globex.test", "Globex")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	stranger := f.seeker(t, "bob@example.com", "Bob")
	app := f.apply(t, seeker, f.job(t, owner, "Go Developer").ID)

	cases := []struct {
		name  string
		actor domain.Actor
		code  string
	}{
		{name: "applicant", actor: seeker},
		{name: "job owner", actor: owner},
		{name: "other seeker", actor: stranger, code: apperrors.CodeForbidden},
		{name: "other employer", actor: other, code: apperrors.CodeForbidden},
	}
	for _, tc := range cases {
		detail, err := f.apps.GetApplication(ctx, tc.actor, app.ID)
		if tc.code != "" {
			requireCode(t, err, tc.code)
			continue
		}
		require.NoError(t, err, tc.name)
		assert.Equal(t, "ada@example.com", detail.Seeker.Email)
		assert.Equal(t, "Acme", detail.CompanyName)
	}

	_, err := f.apps.GetApplication(ctx, seeker, uuid.NewString())
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestGetApplicationIsRepeatable(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	app := f.apply(t, seeker, f.job(t, owner, "Go Developer").ID)
	_, err := f.apps.UpdateApplicationStatus(ctx, owner, app.ID, UpdateStatusInput{
		Status: domain.ApplicationStatusReviewing,
		Notes:  ptr("phone screen"),
	})
	require.NoError(t, err)

	for _, actor := range []domain.Actor{seeker, owner} {
		first, err := f.apps.GetApplication(ctx, actor, app.ID)
		require.NoError(t, err)
		second, err := f.apps.GetApplication(ctx, actor, app.ID)
		require.NoError(t, err)
		require.Equal(t, first, second)
		assert.Equal(t, domain.ApplicationStatusReviewing, second.Status)
	}
	assert.Len(t, f.dispatcher.ofType(events.EventStatusChange), 1, "reads publish nothing")
}

func TestListings(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	other := f.employer(t, "hr@globex.test", "Globex")
	idle := f.employer(t, "hr@initech.test", "Initech")
	ada := f.seeker(t, "ada@example.com", "Ada")
	bob := f.seeker(t, "bob@example.com", "Bob")

	goJob := f.job(t, owner, "Go Developer")
	rustJob := f.job(t, owner, "Rust Developer")
	foreign := f.job(t, other, "Accountant")

	first := f.apply(t, ada, goJob.ID)
	second := f.apply(t, ada, rustJob.ID)
	third := f.apply(t, bob, goJob.ID)
	f.apply(t, bob, foreign.ID)

	_, err := f.apps.UpdateApplicationStatus(ctx, owner, first.ID, UpdateStatusInput{Status: domain.ApplicationStatusRejected})
	require.NoError(t, err)

	mine, err := f.apps.ListMyApplications(ctx, ada, nil)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")

	rejected := domain.ApplicationStatusRejected
	mine, err = f.apps.ListMyApplications(ctx, ada, &rejected)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	bogus := domain.ApplicationStatus("hired")
	_, err = f.apps.ListMyApplications(ctx, ada, &bogus)
	requireCode(t, err, apperrors.CodeValidationFailed)

	forJob, err := f.apps.ListApplicationsForJob(ctx, owner, goJob.ID, nil)
	require.NoError(t, err)
	require.Len(t, forJob, 2)
	assert.Equal(t, third.ID, forJob[0].ID)
	assert.Equal(t, "bob@example.com", forJob[0].Seeker.Email)

	_, err = f.apps.ListApplicationsForJob(ctx, other, goJob.ID, nil)
	requireCode(t, err, apperrors.CodeForbidden)
	_, err = f.apps.ListApplicationsForJob(ctx, owner, uuid.NewString(), nil)
	requireCode(t, err, apperrors.CodeNotFound)
	_, err = f.apps.ListApplicationsForJob(ctx, ada, goJob.ID, nil)
	requireCode(t, err, apperrors.CodeForbidden)

	all, err := f.apps.ListEmployerApplications(ctx, owner, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, item := range all {
		assert.Equal(t, owner.UserID, item.Job.EmployerID)
	}

	none, err := f.apps.ListEmployerApplications(ctx, idle, nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestWithdrawApplication(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	ada := f.seeker(t, "ada@example.com", "Ada")
	bob := f.seeker(t, "bob@example.com", "Bob")
	job := f.job(t, owner, "Go Developer")
	app := f.apply(t, ada, job.ID)

	requireCode(t, f.apps.WithdrawApplication(ctx, bob, app.ID), apperrors.CodeForbidden)
	requireCode(t, f.apps.WithdrawApplication(ctx, owner, app.ID), apperrors.CodeForbidden)
	require.NoError(t, f.apps.WithdrawApplication(ctx, ada, app.ID))
	requireCode(t, f.apps.WithdrawApplication(ctx, ada, app.ID), apperrors.CodeNotFound)

	// withdrawing frees the (job, seeker) pair
	f.apply(t, ada, job.ID)
}
