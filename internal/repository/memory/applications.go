package memory

import (
	"context"
	"time"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
)

type applicationRepo struct{ s *Store }

func (r *applicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[app.JobID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.users[app.JobSeekerID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.s.applications {
		if existing.JobID == app.JobID && existing.JobSeekerID == app.JobSeekerID {
			return repository.ErrDuplicate
		}
	}
	app.ID = newID()
	app.CreatedAt = r.s.stamp()
	app.UpdatedAt = app.CreatedAt
	r.s.applications[app.ID] = *app
	return nil
}

func (r *applicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &app, nil
}

func (r *applicationRepo) GetDetail(_ context.Context, id string) (*domain.ApplicationDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	detail := r.detailLocked(app)
	return &detail, nil
}

func (r *applicationRepo) detailLocked(app domain.Application) domain.ApplicationDetail {
	detail := domain.ApplicationDetail{Application: app}
	if job, ok := r.s.jobs[app.JobID]; ok {
		detail.Job = domain.JobSummary{
			ID:           job.ID,
			EmployerID:   job.EmployerID,
			Title:        job.Title,
			Location:     job.Location,
			JobType:      job.JobType,
			Status:       job.Status,
			SalaryMin:    job.SalaryMin,
			SalaryMax:    job.SalaryMax,
			SalaryPeriod: job.SalaryPeriod,
		}
		if employer, ok := r.s.employers[job.EmployerID]; ok {
			detail.CompanyName = employer.CompanyName
		}
	}
	detail.Seeker = domain.SeekerSummary{UserID: app.JobSeekerID, Skills: []string{}}
	if user, ok := r.s.users[app.JobSeekerID]; ok {
		detail.Seeker.Email = user.Email
	}
	if profile, ok := r.s.seekers[app.JobSeekerID]; ok {
		detail.Seeker.FullName = profile.FullName
		detail.Seeker.Phone = profile.Phone
		detail.Seeker.Location = profile.Location
		detail.Seeker.Skills = cloneStrings(profile.Skills)
		detail.Seeker.Experience = profile.Experience
		detail.Seeker.Education = profile.Education
		detail.Seeker.ResumePath = profile.ResumePath
	}
	return detail
}

func (r *applicationRepo) ExistsForJobAndSeeker(_ context.Context, jobID, seekerID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, app := range r.s.applications {
		if app.JobID == jobID && app.JobSeekerID == seekerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *applicationRepo) Update(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.applications[app.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Status = app.Status
	existing.Notes = app.Notes
	existing.UpdatedAt = r.s.stamp()
	r.s.applications[app.ID] = existing
	app.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *applicationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.applications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.applications, id)
	return nil
}

func (r *applicationRepo) ListBySeeker(_ context.Context, seekerID string, filter repository.ApplicationFilter) ([]domain.ApplicationWithJob, error) {
	details := r.listDetails(func(app domain.Application) bool { return app.JobSeekerID == seekerID }, filter)
	result := make([]domain.ApplicationWithJob, 0, len(details))
	for _, d := range details {
		result = append(result, d.WithJob())
	}
	return result, nil
}

func (r *applicationRepo) ListByJob(_ context.Context, jobID string, filter repository.ApplicationFilter) ([]domain.ApplicationWithSeeker, error) {
	details := r.listDetails(func(app domain.Application) bool { return app.JobID == jobID }, filter)
	result := make([]domain.ApplicationWithSeeker, 0, len(details))
	for _, d := range details {
		result = append(result, d.WithSeeker())
	}
	return result, nil
}

func (r *applicationRepo) ListByJobIDs(_ context.Context, jobIDs []string, filter repository.ApplicationFilter) ([]domain.ApplicationDetail, error) {
	scope := toSet(jobIDs)
	return r.listDetails(func(app domain.Application) bool { return scope[app.JobID] }, filter), nil
}

func (r *applicationRepo) listDetails(match func(domain.Application) bool, filter repository.ApplicationFilter) []domain.ApplicationDetail {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []domain.ApplicationDetail{}
	for _, app := range r.s.applications {
		if !match(app) {
			continue
		}
		if filter.Status != nil && app.Status != *filter.Status {
			continue
		}
		result = append(result, r.detailLocked(app))
	}
	sortNewestFirst(result, func(d domain.ApplicationDetail) time.Time { return d.CreatedAt })
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result
}

func (r *applicationRepo) CountByStatusForSeeker(_ context.Context, seekerID string) (domain.StatusCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := domain.NewStatusCounts()
	for _, app := range r.s.applications {
		if app.JobSeekerID == seekerID {
			counts[app.Status]++
		}
	}
	return counts, nil
}

func (r *applicationRepo) CountByStatusForJobs(_ context.Context, jobIDs []string) (domain.StatusCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	scope := toSet(jobIDs)
	counts := domain.NewStatusCounts()
	for _, app := range r.s.applications {
		if scope[app.JobID] {
			counts[app.Status]++
		}
	}
	return counts, nil
}

func (r *applicationRepo) CountAll(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.applications), nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
