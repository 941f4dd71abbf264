package domain

import "time"

// ApplicationStatus enumerates the states of a job application.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewing   ApplicationStatus = "reviewing"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
)

// ApplicationStatuses lists every application status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewing,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
	ApplicationStatusAccepted,
}

// Valid reports whether the status is one of the five recognised statuses.
func (s ApplicationStatus) Valid() bool {
	for _, candidate := range ApplicationStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// TransitionPolicy decides which status changes an employer may make.
type TransitionPolicy interface {
	Allows(from, to ApplicationStatus) bool
}

// FlatTransitions allows any recognised status to follow any other.
type FlatTransitions struct{}

// Allows implements TransitionPolicy.
func (FlatTransitions) Allows(from, to ApplicationStatus) bool {
	return from.Valid() && to.Valid()
}

// StrictTransitions walks the hiring pipeline forward only. Rejected and accepted
// are terminal.
type StrictTransitions struct{}

var strictTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:     {ApplicationStatusReviewing, ApplicationStatusRejected},
	ApplicationStatusReviewing:   {ApplicationStatusShortlisted, ApplicationStatusRejected},
	ApplicationStatusShortlisted: {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusRejected:    {},
	ApplicationStatusAccepted:    {},
}

// Allows implements TransitionPolicy. Re-setting the current status is permitted so
// notes can be amended.
func (StrictTransitions) Allows(from, to ApplicationStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, candidate := range strictTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Application links one job seeker to one job. JobID and JobSeekerID never change.
type Application struct {
	ID          string
	JobID       string
	JobSeekerID string
	CoverLetter string
	Status      ApplicationStatus
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatusCounts maps every application status to a count. Use NewStatusCounts so
// that all keys are present.
type StatusCounts map[ApplicationStatus]int

// NewStatusCounts returns counts with every status present and zero.
func NewStatusCounts() StatusCounts {
	counts := make(StatusCounts, len(ApplicationStatuses))
	for _, status := range ApplicationStatuses {
		counts[status] = 0
	}
	return counts
}

// Total sums the counts.
func (c StatusCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// JobStatusCounts maps every job status to a count.
type JobStatusCounts map[JobStatus]int

// NewJobStatusCounts returns counts with every job status present and zero.
func NewJobStatusCounts() JobStatusCounts {
	counts := make(JobStatusCounts, len(JobStatuses))
	for _, status := range JobStatuses {
		counts[status] = 0
	}
	return counts
}

// Total sums the counts.
func (c JobStatusCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// JobSummary is the slice of a job shown alongside an application.
type JobSummary struct {
	ID           string
	EmployerID   string
	Title        string
	Location     string
	JobType      JobType
	Status       JobStatus
	SalaryMin    *float64
	SalaryMax    *float64
	SalaryPeriod SalaryPeriod
}

// SeekerSummary is the slice of a job seeker shown to employers.
type SeekerSummary struct {
	UserID     string
	Email      string
	FullName   string
	Phone      string
	Location   string
	Skills     []string
	Experience string
	Education  string
	ResumePath string
}

// ApplicationWithJob is what a job seeker sees of an application.
type ApplicationWithJob struct {
	Application
	Job         JobSummary
	CompanyName string
}

// ApplicationWithSeeker is what an employer sees when reviewing one job.
type ApplicationWithSeeker struct {
	Application
	Seeker SeekerSummary
}

// ApplicationDetail joins both parties of an application.
type ApplicationDetail struct {
	Application
	Job         JobSummary
	CompanyName string
	Seeker      SeekerSummary
}

// WithJob narrows the detail to the job seeker's view.
func (d ApplicationDetail) WithJob() ApplicationWithJob {
	return ApplicationWithJob{Application: d.Application, Job: d.Job, CompanyName: d.CompanyName}
}

// WithSeeker narrows the detail to the employer's per-job view.
func (d ApplicationDetail) WithSeeker() ApplicationWithSeeker {
	return ApplicationWithSeeker{Application: d.Application, Seeker: d.Seeker}
}
