package memory

import (
	"context"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
)

type profileRepo struct{ s *Store }

func (r *profileRepo) GetSeeker(_ context.Context, userID string) (*domain.JobSeekerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.seekers[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Skills = cloneStrings(p.Skills)
	return &p, nil
}

func (r *profileRepo) UpsertSeeker(_ context.Context, profile *domain.JobSeekerProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[profile.UserID]; !ok {
		return repository.ErrNotFound
	}
	upsertSeekerLocked(r.s, profile)
	return nil
}

func (r *profileRepo) GetEmployer(_ context.Context, userID string) (*domain.EmployerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.employers[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *profileRepo) UpsertEmployer(_ context.Context, profile *domain.EmployerProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[profile.UserID]; !ok {
		return repository.ErrNotFound
	}
	upsertEmployerLocked(r.s, profile)
	return nil
}

func upsertSeekerLocked(s *Store, profile *domain.JobSeekerProfile) {
	now := s.stamp()
	if existing, ok := s.seekers[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.ID = newID()
		profile.CreatedAt = now
	}
	profile.Skills = cloneStrings(profile.Skills)
	profile.UpdatedAt = now
	s.seekers[profile.UserID] = *profile
}

func upsertEmployerLocked(s *Store, profile *domain.EmployerProfile) {
	now := s.stamp()
	if existing, ok := s.employers[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.ID = newID()
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	s.employers[profile.UserID] = *profile
}
