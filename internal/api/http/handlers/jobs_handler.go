package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
	"github.com/spec-kit/job-portal/internal/validation"
)

// JobsHandler serves the public job board and employer job management.
type JobsHandler struct {
	jobs      *service.JobService
	validator *validation.Validator
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobs *service.JobService, v *validation.Validator) *JobsHandler {
	return &JobsHandler{jobs: jobs, validator: v}
}

// Search handles GET /api/jobs.
func (h *JobsHandler) Search(c *fiber.Ctx) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	minSalary, err := queryFloat(c, "min_salary")
	if err != nil {
		return err
	}
	maxSalary, err := queryFloat(c, "max_salary")
	if err != nil {
		return err
	}

	result, err := h.jobs.Search(c.UserContext(), service.JobSearchInput{
		Keyword:         c.Query("keyword"),
		JobType:         domain.JobType(c.Query("job_type")),
		Location:        c.Query("location"),
		ExperienceLevel: domain.ExperienceLevel(c.Query("experience_level")),
		MinSalary:       minSalary,
		MaxSalary:       maxSalary,
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		return err
	}
	return respondPage(c, jobsWithEmployer(result.Items), dto.Pagination{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /api/jobs/:id. Owners also see their drafts and closed jobs.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	var viewer *domain.Actor
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.User != nil {
		a := principal.Actor()
		viewer = &a
	}
	job, err := h.jobs.Get(c.UserContext(), viewer, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, jobWithEmployerResponse(job))
}

// Create handles POST /api/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreateJobRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}
	job, err := h.jobs.Create(c.UserContext(), a, service.JobCreateInput{
		Title:               req.Title,
		Description:         req.Description,
		Qualifications:      req.Qualifications,
		Responsibilities:    req.Responsibilities,
		JobType:             domain.JobType(req.JobType),
		Location:            req.Location,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryPeriod:        domain.SalaryPeriod(req.SalaryPeriod),
		ExperienceLevel:     domain.ExperienceLevel(req.ExperienceLevel),
		Skills:              req.Skills,
		Benefits:            req.Benefits,
		Status:              domain.JobStatus(req.Status),
		ApplicationDeadline: req.ApplicationDeadline,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, jobResponse(job))
}

// Update handles PUT /api/jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}
	job, err := h.jobs.Update(c.UserContext(), a, c.Params("id"), service.JobUpdateInput{
		Title:               req.Title,
		Description:         req.Description,
		Qualifications:      req.Qualifications,
		Responsibilities:    req.Responsibilities,
		JobType:             enumPtr[domain.JobType](req.JobType),
		Location:            req.Location,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryPeriod:        enumPtr[domain.SalaryPeriod](req.SalaryPeriod),
		ExperienceLevel:     enumPtr[domain.ExperienceLevel](req.ExperienceLevel),
		Skills:              req.Skills,
		Benefits:            req.Benefits,
		Status:              enumPtr[domain.JobStatus](req.Status),
		ApplicationDeadline: req.ApplicationDeadline,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, jobResponse(job))
}

// Delete handles DELETE /api/jobs/:id. Applications to the job are removed with it.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	jobID := c.Params("id")
	removed, err := h.jobs.Delete(c.UserContext(), a, jobID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.JobDeletedResponse{ID: jobID, DeletedApplications: removed})
}

// ListMine handles GET /api/jobs/employer/my-jobs.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobs.ListMine(c.UserContext(), a)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, jobsWithCount(jobs))
}

func enumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}
