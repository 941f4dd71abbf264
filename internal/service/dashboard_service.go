package service

import (
	"context"
	"errors"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

const defaultRecentLimit = 5

// DashboardService aggregates read-only summaries for both roles. The individual
// reads are independent and are not taken from a single snapshot.
type DashboardService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	profiles     repository.ProfileRepository
	recentLimit  int
}

// DashboardDependencies bundles repositories for the dashboard service.
type DashboardDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	JobRepo         repository.JobRepository
	ProfileRepo     repository.ProfileRepository
	RecentLimit     int
}

// JobSeekerDashboard summarises a job seeker's activity.
type JobSeekerDashboard struct {
	TotalApplications  int
	StatusCounts       domain.StatusCounts
	ProfileCompletion  int
	RecentApplications []domain.ApplicationWithJob
	RecommendedJobs    []domain.JobWithEmployer
}

// EmployerDashboard summarises an employer's postings and the applications to them.
type EmployerDashboard struct {
	TotalJobs               int
	JobStatusCounts         domain.JobStatusCounts
	TotalApplications       int
	ApplicationStatusCounts domain.StatusCounts
	RecentJobs              []domain.JobWithApplicationCount
	RecentApplications      []domain.ApplicationDetail
	ProfileCompletion       int
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	limit := deps.RecentLimit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return &DashboardService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		profiles:     deps.ProfileRepo,
		recentLimit:  limit,
	}
}

// JobSeekerDashboard builds the seeker summary.
func (s *DashboardService) JobSeekerDashboard(ctx context.Context, actor domain.Actor) (*JobSeekerDashboard, error) {
	if !actor.IsJobSeeker() {
		return nil, apperrors.NewForbidden("job seeker dashboard requires the job_seeker role")
	}

	counts, err := s.applications.CountByStatusForSeeker(ctx, actor.UserID)
	if err != nil {
		return nil, internal(err)
	}
	recent, err := s.applications.ListBySeeker(ctx, actor.UserID, repository.ApplicationFilter{Limit: s.recentLimit})
	if err != nil {
		return nil, internal(err)
	}
	recommended, err := s.jobs.ListRecommended(ctx, actor.UserID, s.recentLimit)
	if err != nil {
		return nil, internal(err)
	}

	completion := 0
	profile, err := s.profiles.GetSeeker(ctx, actor.UserID)
	switch {
	case err == nil:
		completion = profile.Completion()
	case !errors.Is(err, repository.ErrNotFound):
		return nil, internal(err)
	}

	return &JobSeekerDashboard{
		TotalApplications:  counts.Total(),
		StatusCounts:       counts,
		ProfileCompletion:  completion,
		RecentApplications: recent,
		RecommendedJobs:    recommended,
	}, nil
}

// EmployerDashboard builds the employer summary.
func (s *DashboardService) EmployerDashboard(ctx context.Context, actor domain.Actor) (*EmployerDashboard, error) {
	if !actor.IsEmployer() {
		return nil, apperrors.NewForbidden("employer dashboard requires the employer role")
	}

	jobCounts, err := s.jobs.CountByStatusForEmployer(ctx, actor.UserID)
	if err != nil {
		return nil, internal(err)
	}
	recentJobs, err := s.jobs.ListByEmployer(ctx, actor.UserID, s.recentLimit)
	if err != nil {
		return nil, internal(err)
	}
	jobIDs, err := s.jobs.IDsByEmployer(ctx, actor.UserID)
	if err != nil {
		return nil, internal(err)
	}

	appCounts := domain.NewStatusCounts()
	recentApps := []domain.ApplicationDetail{}
	if len(jobIDs) > 0 {
		if appCounts, err = s.applications.CountByStatusForJobs(ctx, jobIDs); err != nil {
			return nil, internal(err)
		}
		if recentApps, err = s.applications.ListByJobIDs(ctx, jobIDs, repository.ApplicationFilter{Limit: s.recentLimit}); err != nil {
			return nil, internal(err)
		}
	}

	completion := 0
	profile, err := s.profiles.GetEmployer(ctx, actor.UserID)
	switch {
	case err == nil:
		completion = profile.Completion()
	case !errors.Is(err, repository.ErrNotFound):
		return nil, internal(err)
	}

	return &EmployerDashboard{
		TotalJobs:               jobCounts.Total(),
		JobStatusCounts:         jobCounts,
		TotalApplications:       appCounts.Total(),
		ApplicationStatusCounts: appCounts,
		RecentJobs:              recentJobs,
		RecentApplications:      recentApps,
		ProfileCompletion:       completion,
	}, nil
}
