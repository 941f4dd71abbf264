package domain

import "time"

// JobStatus enumerates lifecycle states of a job posting.
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

// JobStatuses lists every job status in display order.
var JobStatuses = []JobStatus{JobStatusActive, JobStatusClosed, JobStatusDraft}

// Valid reports whether the status is recognised.
func (s JobStatus) Valid() bool {
	for _, candidate := range JobStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// JobType enumerates employment types.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeTemporary  JobType = "temporary"
)

// Valid reports whether the job type is recognised.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeTemporary:
		return true
	}
	return false
}

// SalaryPeriod enumerates the unit of the salary range.
type SalaryPeriod string

const (
	SalaryPeriodHourly  SalaryPeriod = "hourly"
	SalaryPeriodMonthly SalaryPeriod = "monthly"
	SalaryPeriodYearly  SalaryPeriod = "yearly"
)

// Valid reports whether the period is recognised.
func (p SalaryPeriod) Valid() bool {
	return p == SalaryPeriodHourly || p == SalaryPeriodMonthly || p == SalaryPeriodYearly
}

// ExperienceLevel enumerates seniority expectations.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// Valid reports whether the level is recognised. The empty level means unspecified.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case "", ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}

// Job is a posting owned by exactly one employer for its whole lifetime.
type Job struct {
	ID                  string
	EmployerID          string
	Title               string
	Description         string
	Qualifications      string
	Responsibilities    string
	JobType             JobType
	Location            string
	SalaryMin           *float64
	SalaryMax           *float64
	SalaryPeriod        SalaryPeriod
	ExperienceLevel     ExperienceLevel
	Skills              []string
	Benefits            string
	Status              JobStatus
	ApplicationDeadline *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OwnedBy reports whether userID is the job's employer.
func (j *Job) OwnedBy(userID string) bool {
	return j != nil && j.EmployerID == userID
}

// AcceptsApplicationsAt reports whether a seeker may apply at the given instant.
func (j *Job) AcceptsApplicationsAt(now time.Time) bool {
	if j.Status != JobStatusActive {
		return false
	}
	return !j.DeadlinePassed(now)
}

// DeadlinePassed reports whether the application deadline is set and behind now.
func (j *Job) DeadlinePassed(now time.Time) bool {
	return j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(now)
}

// EmployerSummary is the company information shown next to a job.
type EmployerSummary struct {
	UserID      string
	Email       string
	CompanyName string
	Location    string
	Website     string
	LogoPath    string
}

// JobWithEmployer joins a job with its employer's company summary.
type JobWithEmployer struct {
	Job
	Employer EmployerSummary
}

// JobWithApplicationCount joins a job with the number of applications it received.
type JobWithApplicationCount struct {
	Job
	ApplicationCount int
}
