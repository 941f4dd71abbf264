package service

import (
	"context"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
)

// PlatformStats are the public headline numbers.
type PlatformStats struct {
	ActiveJobs        int
	Employers         int
	TotalApplications int
}

// StatsService reports public platform counts.
type StatsService struct {
	jobs         repository.JobRepository
	users        repository.UserRepository
	applications repository.ApplicationRepository
}

// NewStatsService constructs the service.
func NewStatsService(jobs repository.JobRepository, users repository.UserRepository, applications repository.ApplicationRepository) *StatsService {
	return &StatsService{jobs: jobs, users: users, applications: applications}
}

// Stats returns the current counts.
func (s *StatsService) Stats(ctx context.Context) (*PlatformStats, error) {
	active, err := s.jobs.CountActive(ctx)
	if err != nil {
		return nil, internal(err)
	}
	employers, err := s.users.CountByRole(ctx, domain.RoleEmployer)
	if err != nil {
		return nil, internal(err)
	}
	applications, err := s.applications.CountAll(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return &PlatformStats{ActiveJobs: active, Employers: employers, TotalApplications: applications}, nil
}
