package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/events"
	"github.com/spec-kit/job-portal/internal/repository"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

// ApplicationService owns the application lifecycle: submission, employer review,
// withdrawal and the listings on both sides.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	dispatcher   events.Dispatcher
	policy       domain.TransitionPolicy
	now          func() time.Time
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	JobRepo         repository.JobRepository
	Dispatcher      events.Dispatcher
	// Policy defaults to domain.FlatTransitions.
	Policy domain.TransitionPolicy
	// Now defaults to time.Now.
	Now func() time.Time
}

// SubmitApplicationInput describes a job seeker's application.
type SubmitApplicationInput struct {
	JobID       string
	CoverLetter string
}

// UpdateStatusInput describes an employer's review decision. Notes are only
// overwritten when non-nil and not blank.
type UpdateStatusInput struct {
	Status domain.ApplicationStatus
	Notes  *string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	svc := &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		dispatcher:   deps.Dispatcher,
		policy:       deps.Policy,
		now:          deps.Now,
	}
	if svc.policy == nil {
		svc.policy = domain.FlatTransitions{}
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// SubmitApplication records a pending application of the actor to an active job.
func (s *ApplicationService) SubmitApplication(ctx context.Context, actor domain.Actor, input SubmitApplicationInput) (*domain.ApplicationWithJob, error) {
	if !actor.IsJobSeeker() {
		return nil, apperrors.NewForbidden("only job seekers can apply for jobs")
	}

	job, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		return nil, lookupError(err, "job")
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperrors.NewInvalidState("job is not accepting applications", map[string]any{"job_status": job.Status})
	}
	if job.DeadlinePassed(s.now()) {
		return nil, apperrors.NewInvalidState("application deadline has passed", map[string]any{"deadline": job.ApplicationDeadline})
	}

	exists, err := s.applications.ExistsForJobAndSeeker(ctx, job.ID, actor.UserID)
	if err != nil {
		return nil, internal(err)
	}
	if exists {
		return nil, duplicateApplication(job.ID)
	}

	app := &domain.Application{
		JobID:       job.ID,
		JobSeekerID: actor.UserID,
		CoverLetter: strings.TrimSpace(input.CoverLetter),
		Status:      domain.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			// lost the race against a concurrent submission
			return nil, duplicateApplication(job.ID)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, internal(err)
	}

	detail, err := s.applications.GetDetail(ctx, app.ID)
	if err != nil {
		return nil, internal(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventNewApplication,
		ApplicationID: app.ID,
		Actor:         events.ActorFrom(actor),
		Payload: events.NewApplicationPayload{
			JobID:      job.ID,
			JobTitle:   job.Title,
			EmployerID: job.EmployerID,
			SeekerID:   actor.UserID,
			SeekerName: seekerDisplayName(detail.Seeker),
		},
	})

	result := detail.WithJob()
	return &result, nil
}

// UpdateApplicationStatus lets the employer owning the job move an application
// through the hiring pipeline.
func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, actor domain.Actor, applicationID string, input UpdateStatusInput) (*domain.ApplicationWithJob, error) {
	if !input.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid application status", map[string]any{
			"status":  input.Status,
			"allowed": domain.ApplicationStatuses,
		})
	}

	detail, err := s.applications.GetDetail(ctx, applicationID)
	if err != nil {
		return nil, lookupError(err, "application")
	}
	if !actor.IsEmployer() || detail.Job.EmployerID != actor.UserID {
		return nil, apperrors.NewForbidden("not authorized to update this application")
	}

	oldStatus := detail.Status
	if !s.policy.Allows(oldStatus, input.Status) {
		return nil, apperrors.NewInvalidState("status transition not allowed", map[string]any{
			"from": oldStatus,
			"to":   input.Status,
		})
	}

	app := detail.Application
	app.Status = input.Status
	if input.Notes != nil {
		if notes := strings.TrimSpace(*input.Notes); notes != "" {
			app.Notes = notes
		}
	}
	if err := s.applications.Update(ctx, &app); err != nil {
		return nil, lookupError(err, "application")
	}

	if oldStatus != app.Status {
		s.publishEvent(ctx, events.Event{
			Type:          events.EventStatusChange,
			ApplicationID: app.ID,
			Actor:         events.ActorFrom(actor),
			Payload: events.StatusChangePayload{
				JobID:     detail.JobID,
				JobTitle:  detail.Job.Title,
				SeekerID:  detail.JobSeekerID,
				OldStatus: oldStatus,
				NewStatus: app.Status,
			},
		})
	}

	return &domain.ApplicationWithJob{Application: app, Job: detail.Job, CompanyName: detail.CompanyName}, nil
}

// GetApplication returns the application to either of its two parties.
func (s *ApplicationService) GetApplication(ctx context.Context, actor domain.Actor, applicationID string) (*domain.ApplicationDetail, error) {
	detail, err := s.applications.GetDetail(ctx, applicationID)
	if err != nil {
		return nil, lookupError(err, "application")
	}
	isSeeker := actor.IsJobSeeker() && detail.JobSeekerID == actor.UserID
	isOwner := actor.IsEmployer() && detail.Job.EmployerID == actor.UserID
	if !isSeeker && !isOwner {
		return nil, apperrors.NewForbidden("not authorized to view this application")
	}
	return detail, nil
}

// ListMyApplications lists the actor's own applications, newest first.
func (s *ApplicationService) ListMyApplications(ctx context.Context, actor domain.Actor, status *domain.ApplicationStatus) ([]domain.ApplicationWithJob, error) {
	if !actor.IsJobSeeker() {
		return nil, apperrors.NewForbidden("only job seekers have applications")
	}
	if err := checkStatusFilter(status); err != nil {
		return nil, err
	}
	items, err := s.applications.ListBySeeker(ctx, actor.UserID, repository.ApplicationFilter{Status: status})
	return items, internal(err)
}

// ListApplicationsForJob lists applications to one of the actor's jobs, newest first.
func (s *ApplicationService) ListApplicationsForJob(ctx context.Context, actor domain.Actor, jobID string, status *domain.ApplicationStatus) ([]domain.ApplicationWithSeeker, error) {
	if !actor.IsEmployer() {
		return nil, apperrors.NewForbidden("only employers can review applications")
	}
	if err := checkStatusFilter(status); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, lookupError(err, "job")
	}
	if !job.OwnedBy(actor.UserID) {
		return nil, apperrors.NewForbidden("not authorized to view applications for this job")
	}

	items, err := s.applications.ListByJob(ctx, jobID, repository.ApplicationFilter{Status: status})
	return items, internal(err)
}

// ListEmployerApplications lists applications across every job the actor owns.
func (s *ApplicationService) ListEmployerApplications(ctx context.Context, actor domain.Actor, status *domain.ApplicationStatus) ([]domain.ApplicationDetail, error) {
	if !actor.IsEmployer() {
		return nil, apperrors.NewForbidden("only employers can review applications")
	}
	if err := checkStatusFilter(status); err != nil {
		return nil, err
	}

	jobIDs, err := s.jobs.IDsByEmployer(ctx, actor.UserID)
	if err != nil {
		return nil, internal(err)
	}
	if len(jobIDs) == 0 {
		return []domain.ApplicationDetail{}, nil
	}

	items, err := s.applications.ListByJobIDs(ctx, jobIDs, repository.ApplicationFilter{Status: status})
	return items, internal(err)
}

// WithdrawApplication permanently deletes the actor's own application.
func (s *ApplicationService) WithdrawApplication(ctx context.Context, actor domain.Actor, applicationID string) error {
	if !actor.IsJobSeeker() {
		return apperrors.NewForbidden("only job seekers can withdraw applications")
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return lookupError(err, "application")
	}
	if app.JobSeekerID != actor.UserID {
		return apperrors.NewForbidden("not authorized to withdraw this application")
	}

	if err := s.applications.Delete(ctx, app.ID); err != nil {
		return lookupError(err, "application")
	}
	return nil
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func checkStatusFilter(status *domain.ApplicationStatus) error {
	if status == nil || status.Valid() {
		return nil
	}
	return apperrors.NewValidationError("invalid status filter", map[string]any{
		"status":  *status,
		"allowed": domain.ApplicationStatuses,
	})
}

func duplicateApplication(jobID string) error {
	return apperrors.NewConflict("you have already applied for this job", map[string]any{"job_id": jobID})
}

func seekerDisplayName(seeker domain.SeekerSummary) string {
	if name := strings.TrimSpace(seeker.FullName); name != "" {
		return name
	}
	return domain.DefaultDisplayName(seeker.Email)
}
