package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/service"
)

// DashboardHandler serves role dashboards and public stats.
type DashboardHandler struct {
	dashboards *service.DashboardService
	stats      *service.StatsService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboards *service.DashboardService, stats *service.StatsService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, stats: stats}
}

// JobSeeker handles GET /api/dashboard/job-seeker.
func (h *DashboardHandler) JobSeeker(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	d, err := h.dashboards.JobSeekerDashboard(c.UserContext(), a)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.JobSeekerDashboardResponse{
		TotalApplications:  d.TotalApplications,
		StatusCounts:       statusCounts(d.StatusCounts),
		ProfileCompletion:  d.ProfileCompletion,
		RecentApplications: applicationsWithJob(d.RecentApplications),
		RecommendedJobs:    jobsWithEmployer(d.RecommendedJobs),
	})
}

// Employer handles GET /api/dashboard/employer.
func (h *DashboardHandler) Employer(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	d, err := h.dashboards.EmployerDashboard(c.UserContext(), a)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.EmployerDashboardResponse{
		TotalJobs:               d.TotalJobs,
		JobStatusCounts:         jobStatusCounts(d.JobStatusCounts),
		TotalApplications:       d.TotalApplications,
		ApplicationStatusCounts: statusCounts(d.ApplicationStatusCounts),
		RecentJobs:              jobsWithCount(d.RecentJobs),
		RecentApplications:      applicationDetails(d.RecentApplications),
		ProfileCompletion:       d.ProfileCompletion,
	})
}

// Stats handles GET /api/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	s, err := h.stats.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.StatsResponse{
		ActiveJobs:        s.ActiveJobs,
		Employers:         s.Employers,
		TotalApplications: s.TotalApplications,
	})
}
