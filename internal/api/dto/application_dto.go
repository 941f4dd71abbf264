package dto

import "time"

// SubmitApplicationRequest payload for applying to a job.
type SubmitApplicationRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid"`
	CoverLetter string `json:"cover_letter" validate:"max=10000"`
}

// UpdateApplicationStatusRequest payload for an employer decision. Status is
// checked by the service so that an unknown value yields the status-specific
// error.
type UpdateApplicationStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes" validate:"omitempty,max=10000"`
}

// JobSummaryResponse is the job shown with an application.
type JobSummaryResponse struct {
	ID           string   `json:"id"`
	EmployerID   string   `json:"employer_id"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	JobType      string   `json:"job_type"`
	Status       string   `json:"status"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	SalaryPeriod string   `json:"salary_period"`
	CompanyName  string   `json:"company_name"`
}

// SeekerSummaryResponse is the applicant shown to employers.
type SeekerSummaryResponse struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	FullName   string   `json:"full_name"`
	Phone      string   `json:"phone"`
	Location   string   `json:"location"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
	ResumePath string   `json:"resume_path"`
}

// ApplicationResponse renders an application with whichever parties the caller
// may see.
type ApplicationResponse struct {
	ID          string                 `json:"id"`
	JobID       string                 `json:"job_id"`
	JobSeekerID string                 `json:"job_seeker_id"`
	CoverLetter string                 `json:"cover_letter"`
	Status      string                 `json:"status"`
	Notes       string                 `json:"notes"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Job         *JobSummaryResponse    `json:"job,omitempty"`
	JobSeeker   *SeekerSummaryResponse `json:"job_seeker,omitempty"`
}
