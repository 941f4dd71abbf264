package dto

// JobSeekerDashboardResponse renders the job seeker dashboard.
type JobSeekerDashboardResponse struct {
	TotalApplications  int                   `json:"total_applications"`
	StatusCounts       map[string]int        `json:"status_counts"`
	ProfileCompletion  int                   `json:"profile_completion"`
	RecentApplications []ApplicationResponse `json:"recent_applications"`
	RecommendedJobs    []JobResponse         `json:"recommended_jobs"`
}

// EmployerDashboardResponse renders the employer dashboard.
type EmployerDashboardResponse struct {
	TotalJobs               int                   `json:"total_jobs"`
	JobStatusCounts         map[string]int        `json:"job_status_counts"`
	TotalApplications       int                   `json:"total_applications"`
	ApplicationStatusCounts map[string]int        `json:"application_status_counts"`
	RecentJobs              []JobResponse         `json:"recent_jobs"`
	RecentApplications      []ApplicationResponse `json:"recent_applications"`
	ProfileCompletion       int                   `json:"profile_completion"`
}

// StatsResponse renders public platform numbers.
type StatsResponse struct {
	ActiveJobs        int `json:"active_jobs"`
	Employers         int `json:"employers"`
	TotalApplications int `json:"total_applications"`
}
