package memory

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
)

type jobRepo struct{ s *Store }

func (r *jobRepo) Create(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[job.EmployerID]; !ok {
		return repository.ErrNotFound
	}
	job.ID = newID()
	job.Skills = cloneStrings(job.Skills)
	job.CreatedAt = r.s.stamp()
	job.UpdatedAt = job.CreatedAt
	r.s.jobs[job.ID] = *job
	return nil
}

func (r *jobRepo) Update(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.jobs[job.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := *job
	updated.EmployerID = existing.EmployerID
	updated.CreatedAt = existing.CreatedAt
	updated.Skills = cloneStrings(job.Skills)
	updated.UpdatedAt = r.s.stamp()
	r.s.jobs[job.ID] = updated
	job.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *jobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	job.Skills = cloneStrings(job.Skills)
	return &job, nil
}

func (r *jobRepo) GetWithEmployer(_ context.Context, id string) (*domain.JobWithEmployer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	item := r.withEmployerLocked(job)
	return &item, nil
}

func (r *jobRepo) withEmployerLocked(job domain.Job) domain.JobWithEmployer {
	job.Skills = cloneStrings(job.Skills)
	item := domain.JobWithEmployer{Job: job}
	item.Employer.UserID = job.EmployerID
	if user, ok := r.s.users[job.EmployerID]; ok {
		item.Employer.Email = user.Email
	}
	if profile, ok := r.s.employers[job.EmployerID]; ok {
		item.Employer.CompanyName = profile.CompanyName
		item.Employer.Location = profile.Location
		item.Employer.Website = profile.CompanyWebsite
		item.Employer.LogoPath = profile.LogoPath
	}
	return item
}

func (r *jobRepo) Search(_ context.Context, filter repository.JobFilter) ([]domain.JobWithEmployer, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	status := filter.Status
	if status == "" {
		status = domain.JobStatusActive
	}
	keyword := strings.TrimSpace(filter.Keyword)
	location := strings.TrimSpace(filter.Location)

	matched := []domain.JobWithEmployer{}
	for _, job := range r.s.jobs {
		if job.Status != status {
			continue
		}
		if keyword != "" && !containsFold(job.Title, keyword) && !containsFold(job.Description, keyword) {
			continue
		}
		if filter.JobType != "" && job.JobType != filter.JobType {
			continue
		}
		if location != "" && !containsFold(job.Location, location) {
			continue
		}
		if filter.ExperienceLevel != "" && job.ExperienceLevel != filter.ExperienceLevel {
			continue
		}
		if filter.MinSalary != nil && (job.SalaryMax == nil || *job.SalaryMax < *filter.MinSalary) {
			continue
		}
		if filter.MaxSalary != nil && (job.SalaryMin == nil || *job.SalaryMin > *filter.MaxSalary) {
			continue
		}
		matched = append(matched, r.withEmployerLocked(job))
	}
	sortNewestFirst(matched, func(j domain.JobWithEmployer) time.Time { return j.CreatedAt })

	total := len(matched)
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []domain.JobWithEmployer{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *jobRepo) ListByEmployer(_ context.Context, employerID string, limit int) ([]domain.JobWithApplicationCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []domain.JobWithApplicationCount{}
	for _, job := range r.s.jobs {
		if job.EmployerID != employerID {
			continue
		}
		count := 0
		for _, app := range r.s.applications {
			if app.JobID == job.ID {
				count++
			}
		}
		job.Skills = cloneStrings(job.Skills)
		result = append(result, domain.JobWithApplicationCount{Job: job, ApplicationCount: count})
	}
	sortNewestFirst(result, func(j domain.JobWithApplicationCount) time.Time { return j.CreatedAt })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *jobRepo) IDsByEmployer(_ context.Context, employerID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := []string{}
	for id, job := range r.s.jobs {
		if job.EmployerID == employerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *jobRepo) CountByStatusForEmployer(_ context.Context, employerID string) (domain.JobStatusCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := domain.NewJobStatusCounts()
	for _, job := range r.s.jobs {
		if job.EmployerID == employerID {
			counts[job.Status]++
		}
	}
	return counts, nil
}

func (r *jobRepo) ListRecommended(_ context.Context, seekerID string, limit int) ([]domain.JobWithEmployer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	applied := make(map[string]bool)
	for _, app := range r.s.applications {
		if app.JobSeekerID == seekerID {
			applied[app.JobID] = true
		}
	}

	result := []domain.JobWithEmployer{}
	for _, job := range r.s.jobs {
		if job.Status != domain.JobStatusActive || applied[job.ID] {
			continue
		}
		result = append(result, r.withEmployerLocked(job))
	}
	sortNewestFirst(result, func(j domain.JobWithEmployer) time.Time { return j.CreatedAt })
	if limit <= 0 {
		limit = 5
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *jobRepo) DeleteWithApplications(_ context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return 0, repository.ErrNotFound
	}
	removed := 0
	for appID, app := range r.s.applications {
		if app.JobID == id {
			delete(r.s.applications, appID)
			removed++
		}
	}
	delete(r.s.jobs, id)
	return removed, nil
}

func (r *jobRepo) CountActive(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, job := range r.s.jobs {
		if job.Status == domain.JobStatusActive {
			count++
		}
	}
	return count, nil
}
