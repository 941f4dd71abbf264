package handlers

import (
	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
)

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func accountResponse(a *service.Account) dto.AccountResponse {
	resp := dto.AccountResponse{User: userResponse(a.User)}
	if a.SeekerProfile != nil {
		p := seekerProfileResponse(a.SeekerProfile)
		resp.SeekerProfile = &p
	}
	if a.EmployerProfile != nil {
		p := employerProfileResponse(a.EmployerProfile)
		resp.EmployerProfile = &p
	}
	return resp
}

func sessionResponse(s *service.Session) dto.AuthResponse {
	return dto.AuthResponse{
		AccountResponse: accountResponse(&s.Account),
		Token:           s.AccessToken,
		ExpiresAt:       s.Token.ExpiresAt,
	}
}

func seekerProfileResponse(p *domain.JobSeekerProfile) dto.SeekerProfileResponse {
	return dto.SeekerProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		FullName:          p.FullName,
		Phone:             p.Phone,
		Location:          p.Location,
		Skills:            nonNil(p.Skills),
		Experience:        p.Experience,
		Education:         p.Education,
		ResumePath:        p.ResumePath,
		Bio:               p.Bio,
		ProfileCompletion: p.Completion(),
		UpdatedAt:         p.UpdatedAt,
	}
}

func employerProfileResponse(p *domain.EmployerProfile) dto.EmployerProfileResponse {
	return dto.EmployerProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		CompanyName:       p.CompanyName,
		CompanyWebsite:    p.CompanyWebsite,
		CompanySize:       p.CompanySize,
		Industry:          p.Industry,
		Location:          p.Location,
		Phone:             p.Phone,
		Description:       p.Description,
		LogoPath:          p.LogoPath,
		ProfileCompletion: p.Completion(),
		UpdatedAt:         p.UpdatedAt,
	}
}

func jobResponse(j *domain.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:                  j.ID,
		EmployerID:          j.EmployerID,
		Title:               j.Title,
		Description:         j.Description,
		Qualifications:      j.Qualifications,
		Responsibilities:    j.Responsibilities,
		JobType:             string(j.JobType),
		Location:            j.Location,
		SalaryMin:           j.SalaryMin,
		SalaryMax:           j.SalaryMax,
		SalaryPeriod:        string(j.SalaryPeriod),
		ExperienceLevel:     string(j.ExperienceLevel),
		Skills:              nonNil(j.Skills),
		Benefits:            j.Benefits,
		Status:              string(j.Status),
		ApplicationDeadline: j.ApplicationDeadline,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func jobWithEmployerResponse(j *domain.JobWithEmployer) dto.JobResponse {
	resp := jobResponse(&j.Job)
	resp.Employer = &dto.EmployerSummaryResponse{
		ID:          j.Employer.UserID,
		CompanyName: j.Employer.CompanyName,
		Location:    j.Employer.Location,
		Website:     j.Employer.Website,
		LogoPath:    j.Employer.LogoPath,
	}
	return resp
}

func jobsWithEmployer(items []domain.JobWithEmployer) []dto.JobResponse {
	out := make([]dto.JobResponse, 0, len(items))
	for i := range items {
		out = append(out, jobWithEmployerResponse(&items[i]))
	}
	return out
}

func jobsWithCount(items []domain.JobWithApplicationCount) []dto.JobResponse {
	out := make([]dto.JobResponse, 0, len(items))
	for i := range items {
		resp := jobResponse(&items[i].Job)
		count := items[i].ApplicationCount
		resp.ApplicationCount = &count
		out = append(out, resp)
	}
	return out
}

func applicationResponse(a *domain.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		JobSeekerID: a.JobSeekerID,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func jobSummaryResponse(j domain.JobSummary, companyName string) *dto.JobSummaryResponse {
	return &dto.JobSummaryResponse{
		ID:           j.ID,
		EmployerID:   j.EmployerID,
		Title:        j.Title,
		Location:     j.Location,
		JobType:      string(j.JobType),
		Status:       string(j.Status),
		SalaryMin:    j.SalaryMin,
		SalaryMax:    j.SalaryMax,
		SalaryPeriod: string(j.SalaryPeriod),
		CompanyName:  companyName,
	}
}

func seekerSummaryResponse(s domain.SeekerSummary) *dto.SeekerSummaryResponse {
	return &dto.SeekerSummaryResponse{
		ID:         s.UserID,
		Email:      s.Email,
		FullName:   s.FullName,
		Phone:      s.Phone,
		Location:   s.Location,
		Skills:     nonNil(s.Skills),
		Experience: s.Experience,
		Education:  s.Education,
		ResumePath: s.ResumePath,
	}
}

func applicationWithJobResponse(a *domain.ApplicationWithJob) dto.ApplicationResponse {
	resp := applicationResponse(&a.Application)
	resp.Job = jobSummaryResponse(a.Job, a.CompanyName)
	return resp
}

func applicationWithSeekerResponse(a *domain.ApplicationWithSeeker) dto.ApplicationResponse {
	resp := applicationResponse(&a.Application)
	resp.JobSeeker = seekerSummaryResponse(a.Seeker)
	return resp
}

func applicationDetailResponse(a *domain.ApplicationDetail) dto.ApplicationResponse {
	resp := applicationResponse(&a.Application)
	resp.Job = jobSummaryResponse(a.Job, a.CompanyName)
	resp.JobSeeker = seekerSummaryResponse(a.Seeker)
	return resp
}

func applicationsWithJob(items []domain.ApplicationWithJob) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(items))
	for i := range items {
		out = append(out, applicationWithJobResponse(&items[i]))
	}
	return out
}

func applicationsWithSeeker(items []domain.ApplicationWithSeeker) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(items))
	for i := range items {
		out = append(out, applicationWithSeekerResponse(&items[i]))
	}
	return out
}

func applicationDetails(items []domain.ApplicationDetail) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(items))
	for i := range items {
		out = append(out, applicationDetailResponse(&items[i]))
	}
	return out
}

func notificationResponse(n *domain.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        string(n.Type),
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		IsRead:      n.IsRead,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}

func statusCounts(counts domain.StatusCounts) map[string]int {
	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	return out
}

func jobStatusCounts(counts domain.JobStatusCounts) map[string]int {
	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
