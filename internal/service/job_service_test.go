package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-portal/internal/domain"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

func TestCreateJobDefaults(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	employer := f.employer(t, "hr@acme.test", "Acme")
	job, err := f.jobs.Create(context.Background(), employer, JobCreateInput{
		Title:       "  Go Developer ",
		Description: "APIs",
		Location:    "Remote",
		Skills:      []string{"Go", " go ", "", "SQL"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "Go Developer", job.Title)
	assert.Equal(t, employer.UserID, job.EmployerID)
	assert.Equal(t, domain.JobTypeFullTime, job.JobType)
	assert.Equal(t, domain.SalaryPeriodYearly, job.SalaryPeriod)
	assert.Equal(t, domain.JobStatusActive, job.Status)
	assert.Equal(t, []string{"Go", "SQL"}, job.Skills)
}

func TestCreateJobValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	employer := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada")

	_, err := f.jobs.Create(ctx, seeker, JobCreateInput{Title: "x", Description: "y", Location: "z"})
	requireCode(t, err, apperrors.CodeForbidden)

	cases := []struct {
		name  string
		input JobCreateInput
		field string
	}{
		{name: "missing title", input: JobCreateInput{Description: "d", Location: "l"}, field: "title"},
		{name: "bad job type", input: JobCreateInput{Title: "t", Description: "d", Location: "l", JobType: "gig"}, field: "job_type"},
		{name: "bad status", input: JobCreateInput{Title: "t", Description: "d", Location: "l", Status: "archived"}, field: "status"},
		{
			name:  "inverted salary range",
			input: JobCreateInput{Title: "t", Description: "d", Location: "l", SalaryMin: ptr(90000.0), SalaryMax: ptr(50000.0)},
			field: "salary_max",
		},
	}
	for _, tc := range cases {
		_, err := f.jobs.Create(ctx, employer, tc.input)
		requireCode(t, err, apperrors.CodeValidationFailed)
		assert.Contains(t, apperrors.ToDomainError(err).Details, tc.field, tc.name)
	}
}

func TestUpdateJob(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	other := f.employer(t, "hr@globex.test", "Globex")
	job := f.job(t, owner, "Go Developer")

	_, err := f.jobs.Update(ctx, other, job.ID, JobUpdateInput{Title: ptr("Stolen")})
	requireCode(t, err, apperrors.CodeForbidden)
	_, err = f.jobs.Update(ctx, owner, uuid.NewString(), JobUpdateInput{})
	requireCode(t, err, apperrors.CodeNotFound)

	closed := domain.JobStatusClosed
	updated, err := f.jobs.Update(ctx, owner, job.ID, JobUpdateInput{Title: ptr("Senior Go Developer"), Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Developer", updated.Title)
	assert.Equal(t, domain.JobStatusClosed, updated.Status)
	assert.Equal(t, "Berlin", updated.Location, "omitted fields are kept")
}

func TestGetJobHidesInactiveFromOthers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	other := f.employer(t, "hr@globex.test", "Globex")
	active := f.job(t, owner, "Active")
	draft := f.job(t, owner, "Draft", func(in *JobCreateInput) { in.Status = domain.JobStatusDraft })

	got, err := f.jobs.Get(ctx, nil, active.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Employer.CompanyName)

	_, err = f.jobs.Get(ctx, nil, draft.ID)
	requireCode(t, err, apperrors.CodeNotFound)
	_, err = f.jobs.Get(ctx, &other, draft.ID)
	requireCode(t, err, apperrors.CodeNotFound)

	got, err = f.jobs.Get(ctx, &owner, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusDraft, got.Status)
}

func TestSearchJobs(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	employer := f.employer(t, "hr@acme.test", "Acme")
	for i := 0; i < 12; i++ {
		f.job(t, employer, fmt.Sprintf("Engineer %02d", i))
	}
	f.job(t, employer, "Barista", func(in *JobCreateInput) {
		in.JobType = domain.JobTypePartTime
		in.Location = "Hamburg"
		in.SalaryMin = ptr(20000.0)
		in.SalaryMax = ptr(30000.0)
	})
	f.job(t, employer, "Hidden Engineer", func(in *JobCreateInput) { in.Status = domain.JobStatusDraft })

	page, err := f.jobs.Search(ctx, JobSearchInput{Keyword: "engineer"})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total, "drafts are not searchable")
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, "Engineer 11", page.Items[0].Title)

	page, err = f.jobs.Search(ctx, JobSearchInput{Keyword: "engineer", Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = f.jobs.Search(ctx, JobSearchInput{JobType: domain.JobTypePartTime, Location: "hamburg"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Barista", page.Items[0].Title)

	page, err = f.jobs.Search(ctx, JobSearchInput{MinSalary: ptr(25000.0), MaxSalary: ptr(28000.0)})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	page, err = f.jobs.Search(ctx, JobSearchInput{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)

	_, err = f.jobs.Search(ctx, JobSearchInput{JobType: "gig"})
	requireCode(t, err, apperrors.CodeValidationFailed)

	page, err = f.jobs.Search(ctx, JobSearchInput{Keyword: "engineer", Page: maxPage, Limit: maxPageSize})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = f.jobs.Search(ctx, JobSearchInput{Page: 1 << 62, Limit: 4})
	requireCode(t, err, apperrors.CodeValidationFailed)
}

func TestPaginate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
		wantOffset          int
		invalid             bool
	}{
		{name: "defaults", wantPage: 1, wantLimit: 10},
		{name: "negative page", page: -3, limit: 5, wantPage: 1, wantLimit: 5},
		{name: "second page", page: 2, limit: 5, wantPage: 2, wantLimit: 5, wantOffset: 5},
		{name: "limit capped", page: 3, limit: 500, wantPage: 3, wantLimit: maxPageSize, wantOffset: 2 * maxPageSize},
		{name: "last page", page: maxPage, limit: maxPageSize, wantPage: maxPage, wantLimit: maxPageSize, wantOffset: (maxPage - 1) * maxPageSize},
		{name: "past last page", page: maxPage + 1, limit: 1, invalid: true},
		{name: "huge page", page: 1 << 62, limit: 4, invalid: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit, offset, err := paginate(tc.page, tc.limit, defaultPageSize)
			if tc.invalid {
				requireCode(t, err, apperrors.CodeValidationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestDeleteJobCascadesApplications(t *testing.T) {
	t.Parallel()

	for _, k := range []int{0, 1, 3} {
		k := k
		t.Run(fmt.Sprintf("%d applications", k), func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)
			ctx := context.Background()

			owner := f.employer(t, "hr@acme.test", "Acme")
			other := f.employer(t, "hr@globex.test", "Globex")
			job := f.job(t, owner, "Go Developer")
			keep := f.job(t, owner, "Keep me")

			var appIDs []string
			for i := 0; i < k; i++ {
				seeker := f.seeker(t, fmt.Sprintf("seeker%d@example.com", i), "")
				appIDs = append(appIDs, f.apply(t, seeker, job.ID).ID)
				f.apply(t, seeker, keep.ID)
			}

			_, err := f.jobs.Delete(ctx, other, job.ID)
			requireCode(t, err, apperrors.CodeForbidden)

			removed, err := f.jobs.Delete(ctx, owner, job.ID)
			require.NoError(t, err)
			assert.Equal(t, k, removed)

			for _, id := range appIDs {
				_, err := f.store.Applications().GetByID(ctx, id)
				assert.Error(t, err)
			}
			remaining, err := f.store.Applications().CountAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, k, remaining, "applications to other jobs survive")

			_, err = f.jobs.Get(ctx, &owner, job.ID)
			requireCode(t, err, apperrors.CodeNotFound)
			_, err = f.jobs.Delete(ctx, owner, job.ID)
			requireCode(t, err, apperrors.CodeNotFound)
		})
	}
}

func TestListMineCountsApplications(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	ctx := context.Background()

	owner := f.employer(t, "hr@acme.test", "Acme")
	seeker := f.seeker(t, "ada@example.com", "Ada")
	first := f.job(t, owner, "First")
	f.job(t, owner, "Second", func(in *JobCreateInput) { in.Status = domain.JobStatusDraft })
	f.apply(t, seeker, first.ID)

	mine, err := f.jobs.ListMine(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Second", mine[0].Title)
	assert.Equal(t, 0, mine[0].ApplicationCount)
	assert.Equal(t, 1, mine[1].ApplicationCount)

	_, err = f.jobs.ListMine(ctx, seeker)
	requireCode(t, err, apperrors.CodeForbidden)
}
