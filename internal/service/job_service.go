package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxPage         = 10000
)

// paginate clamps a 1-based page and a limit and returns the row offset.
// Pages past maxPage are rejected so that the offset cannot overflow.
func paginate(page, limit, defaultLimit int) (int, int, int, error) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		return 0, 0, 0, apperrors.NewValidationError("page out of range", map[string]any{"page": fmt.Sprintf("must be at most %d", maxPage)})
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit, nil
}

// JobService manages job postings.
type JobService struct {
	jobs repository.JobRepository
}

// JobDependencies bundles repositories for the job service.
type JobDependencies struct {
	JobRepo repository.JobRepository
}

// JobCreateInput describes a new posting. Zero enum values take their defaults.
type JobCreateInput struct {
	Title               string
	Description         string
	Qualifications      string
	Responsibilities    string
	JobType             domain.JobType
	Location            string
	SalaryMin           *float64
	SalaryMax           *float64
	SalaryPeriod        domain.SalaryPeriod
	ExperienceLevel     domain.ExperienceLevel
	Skills              []string
	Benefits            string
	Status              domain.JobStatus
	ApplicationDeadline *time.Time
}

// JobUpdateInput is a partial update; nil fields keep their current value.
type JobUpdateInput struct {
	Title               *string
	Description         *string
	Qualifications      *string
	Responsibilities    *string
	JobType             *domain.JobType
	Location            *string
	SalaryMin           *float64
	SalaryMax           *float64
	SalaryPeriod        *domain.SalaryPeriod
	ExperienceLevel     *domain.ExperienceLevel
	Skills              []string
	Benefits            *string
	Status              *domain.JobStatus
	ApplicationDeadline *time.Time
}

// JobSearchInput holds public search parameters. Page is 1-based.
type JobSearchInput struct {
	Keyword         string
	JobType         domain.JobType
	Location        string
	ExperienceLevel domain.ExperienceLevel
	MinSalary       *float64
	MaxSalary       *float64
	Page            int
	Limit           int
}

// JobSearchResult is one page of search hits.
type JobSearchResult struct {
	Items      []domain.JobWithEmployer
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{jobs: deps.JobRepo}
}

// Create publishes a job owned by the acting employer.
func (s *JobService) Create(ctx context.Context, actor domain.Actor, input JobCreateInput) (*domain.Job, error) {
	if !actor.IsEmployer() {
		return nil, apperrors.NewForbidden("only employers can post jobs")
	}

	job := &domain.Job{
		EmployerID:          actor.UserID,
		Title:               strings.TrimSpace(input.Title),
		Description:         strings.TrimSpace(input.Description),
		Qualifications:      strings.TrimSpace(input.Qualifications),
		Responsibilities:    strings.TrimSpace(input.Responsibilities),
		JobType:             input.JobType,
		Location:            strings.TrimSpace(input.Location),
		SalaryMin:           input.SalaryMin,
		SalaryMax:           input.SalaryMax,
		SalaryPeriod:        input.SalaryPeriod,
		ExperienceLevel:     input.ExperienceLevel,
		Skills:              normalizeSkills(input.Skills),
		Benefits:            strings.TrimSpace(input.Benefits),
		Status:              input.Status,
		ApplicationDeadline: input.ApplicationDeadline,
	}
	if job.JobType == "" {
		job.JobType = domain.JobTypeFullTime
	}
	if job.SalaryPeriod == "" {
		job.SalaryPeriod = domain.SalaryPeriodYearly
	}
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, internal(err)
	}
	return job, nil
}

// Update applies a partial update to one of the actor's jobs.
func (s *JobService) Update(ctx context.Context, actor domain.Actor, jobID string, input JobUpdateInput) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, actor, jobID, "update")
	if err != nil {
		return nil, err
	}

	applyString(&job.Title, input.Title)
	applyString(&job.Description, input.Description)
	applyString(&job.Qualifications, input.Qualifications)
	applyString(&job.Responsibilities, input.Responsibilities)
	applyString(&job.Location, input.Location)
	applyString(&job.Benefits, input.Benefits)
	if input.JobType != nil {
		job.JobType = *input.JobType
	}
	if input.SalaryMin != nil {
		job.SalaryMin = input.SalaryMin
	}
	if input.SalaryMax != nil {
		job.SalaryMax = input.SalaryMax
	}
	if input.SalaryPeriod != nil {
		job.SalaryPeriod = *input.SalaryPeriod
	}
	if input.ExperienceLevel != nil {
		job.ExperienceLevel = *input.ExperienceLevel
	}
	if input.Skills != nil {
		job.Skills = normalizeSkills(input.Skills)
	}
	if input.Status != nil {
		job.Status = *input.Status
	}
	if input.ApplicationDeadline != nil {
		job.ApplicationDeadline = input.ApplicationDeadline
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, lookupError(err, "job")
	}
	return job, nil
}

// Delete removes one of the actor's jobs together with all of its applications
// and returns how many applications were removed.
func (s *JobService) Delete(ctx context.Context, actor domain.Actor, jobID string) (int, error) {
	if _, err := s.ownedJob(ctx, actor, jobID, "delete"); err != nil {
		return 0, err
	}
	removed, err := s.jobs.DeleteWithApplications(ctx, jobID)
	if err != nil {
		return 0, lookupError(err, "job")
	}
	return removed, nil
}

// Get returns a job with its employer summary. Jobs that are not active are only
// visible to their owner; viewer may be nil for anonymous callers.
func (s *JobService) Get(ctx context.Context, viewer *domain.Actor, jobID string) (*domain.JobWithEmployer, error) {
	job, err := s.jobs.GetWithEmployer(ctx, jobID)
	if err != nil {
		return nil, lookupError(err, "job")
	}
	if job.Status != domain.JobStatusActive && (viewer == nil || !job.OwnedBy(viewer.UserID)) {
		return nil, apperrors.NewNotFound("job", nil)
	}
	return job, nil
}

// Search lists active jobs matching the filters, newest first.
func (s *JobService) Search(ctx context.Context, input JobSearchInput) (*JobSearchResult, error) {
	if input.JobType != "" && !input.JobType.Valid() {
		return nil, apperrors.NewValidationError("invalid job type", map[string]any{"job_type": input.JobType})
	}
	if !input.ExperienceLevel.Valid() {
		return nil, apperrors.NewValidationError("invalid experience level", map[string]any{"experience_level": input.ExperienceLevel})
	}

	page, limit, offset, err := paginate(input.Page, input.Limit, defaultPageSize)
	if err != nil {
		return nil, err
	}

	items, total, err := s.jobs.Search(ctx, repository.JobFilter{
		Keyword:         input.Keyword,
		JobType:         input.JobType,
		Location:        input.Location,
		ExperienceLevel: input.ExperienceLevel,
		MinSalary:       input.MinSalary,
		MaxSalary:       input.MaxSalary,
		Status:          domain.JobStatusActive,
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		return nil, internal(err)
	}

	return &JobSearchResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// ListMine lists the actor's jobs with per-job application counts.
func (s *JobService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.JobWithApplicationCount, error) {
	if !actor.IsEmployer() {
		return nil, apperrors.NewForbidden("only employers own jobs")
	}
	items, err := s.jobs.ListByEmployer(ctx, actor.UserID, 0)
	return items, internal(err)
}

func (s *JobService) ownedJob(ctx context.Context, actor domain.Actor, jobID, verb string) (*domain.Job, error) {
	if !actor.IsEmployer() {
		return nil, apperrors.NewForbidden("only employers can " + verb + " jobs")
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, lookupError(err, "job")
	}
	if !job.OwnedBy(actor.UserID) {
		return nil, apperrors.NewForbidden("not authorized to " + verb + " this job")
	}
	return job, nil
}

func validateJob(job *domain.Job) error {
	details := map[string]any{}
	if job.Title == "" {
		details["title"] = "is required"
	}
	if job.Description == "" {
		details["description"] = "is required"
	}
	if job.Location == "" {
		details["location"] = "is required"
	}
	if !job.JobType.Valid() {
		details["job_type"] = "is not a valid job type"
	}
	if !job.SalaryPeriod.Valid() {
		details["salary_period"] = "is not a valid salary period"
	}
	if !job.ExperienceLevel.Valid() {
		details["experience_level"] = "is not a valid experience level"
	}
	if !job.Status.Valid() {
		details["status"] = "is not a valid job status"
	}
	if job.SalaryMin != nil && *job.SalaryMin < 0 {
		details["salary_min"] = "must not be negative"
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		details["salary_max"] = "must be greater than or equal to salary_min"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid job", details)
	}
	return nil
}

func normalizeSkills(skills []string) []string {
	result := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, skill)
	}
	return result
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
