package dto

import "time"

// CreateJobRequest payload for posting a job.
type CreateJobRequest struct {
	Title               string     `json:"title" validate:"required,max=255"`
	Description         string     `json:"description" validate:"required"`
	Qualifications      string     `json:"qualifications"`
	Responsibilities    string     `json:"responsibilities"`
	JobType             string     `json:"job_type" validate:"omitempty,job_type"`
	Location            string     `json:"location" validate:"required,max=255"`
	SalaryMin           *float64   `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax           *float64   `json:"salary_max" validate:"omitempty,gte=0"`
	SalaryPeriod        string     `json:"salary_period" validate:"omitempty,salary_period"`
	ExperienceLevel     string     `json:"experience_level" validate:"omitempty,experience_level"`
	Skills              []string   `json:"skills" validate:"omitempty,max=100,dive,max=100"`
	Benefits            string     `json:"benefits"`
	Status              string     `json:"status" validate:"omitempty,job_status"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

// UpdateJobRequest is a partial update; omitted fields keep their value.
type UpdateJobRequest struct {
	Title               *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description         *string    `json:"description" validate:"omitempty,min=1"`
	Qualifications      *string    `json:"qualifications"`
	Responsibilities    *string    `json:"responsibilities"`
	JobType             *string    `json:"job_type" validate:"omitempty,job_type"`
	Location            *string    `json:"location" validate:"omitempty,min=1,max=255"`
	SalaryMin           *float64   `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax           *float64   `json:"salary_max" validate:"omitempty,gte=0"`
	SalaryPeriod        *string    `json:"salary_period" validate:"omitempty,salary_period"`
	ExperienceLevel     *string    `json:"experience_level" validate:"omitempty,experience_level"`
	Skills              []string   `json:"skills" validate:"omitempty,max=100,dive,max=100"`
	Benefits            *string    `json:"benefits"`
	Status              *string    `json:"status" validate:"omitempty,job_status"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

// EmployerSummaryResponse is the company shown with a job.
type EmployerSummaryResponse struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"company_website,omitempty"`
	LogoPath    string `json:"logo_path,omitempty"`
}

// JobResponse renders a job.
type JobResponse struct {
	ID                  string                   `json:"id"`
	EmployerID          string                   `json:"employer_id"`
	Title               string                   `json:"title"`
	Description         string                   `json:"description"`
	Qualifications      string                   `json:"qualifications"`
	Responsibilities    string                   `json:"responsibilities"`
	JobType             string                   `json:"job_type"`
	Location            string                   `json:"location"`
	SalaryMin           *float64                 `json:"salary_min"`
	SalaryMax           *float64                 `json:"salary_max"`
	SalaryPeriod        string                   `json:"salary_period"`
	ExperienceLevel     string                   `json:"experience_level"`
	Skills              []string                 `json:"skills"`
	Benefits            string                   `json:"benefits"`
	Status              string                   `json:"status"`
	ApplicationDeadline *time.Time               `json:"application_deadline"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
	Employer            *EmployerSummaryResponse `json:"employer,omitempty"`
	ApplicationCount    *int                     `json:"application_count,omitempty"`
}

// JobDeletedResponse reports the cascade performed by a job deletion.
type JobDeletedResponse struct {
	ID                  string `json:"id"`
	DeletedApplications int    `json:"deleted_applications"`
}
