package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
	"github.com/spec-kit/job-portal/internal/validation"
)

// ApplicationsHandler exposes the application ledger.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	validator    *validation.Validator
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications *service.ApplicationService, v *validation.Validator) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications, validator: v}
}

// Submit handles POST /api/applications.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.SubmitApplicationRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}
	app, err := h.applications.SubmitApplication(c.UserContext(), a, service.SubmitApplicationInput{
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, applicationWithJobResponse(app))
}

// ListMine handles GET /api/applications/my-applications.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	items, err := h.applications.ListMyApplications(c.UserContext(), a, optionalStatus(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, applicationsWithJob(items))
}

// ListForJob handles GET /api/applications/job/:jobId.
func (h *ApplicationsHandler) ListForJob(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	items, err := h.applications.ListApplicationsForJob(c.UserContext(), a, c.Params("jobId"), optionalStatus(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, applicationsWithSeeker(items))
}

// ListForEmployer handles GET /api/applications/employer/all.
func (h *ApplicationsHandler) ListForEmployer(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	items, err := h.applications.ListEmployerApplications(c.UserContext(), a, optionalStatus(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, applicationDetails(items))
}

// UpdateStatus handles PUT /api/applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateApplicationStatusRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}
	app, err := h.applications.UpdateApplicationStatus(c.UserContext(), a, c.Params("id"), service.UpdateStatusInput{
		Status: domain.ApplicationStatus(req.Status),
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, applicationWithJobResponse(app))
}

// Get handles GET /api/applications/:id. Each party sees the other's summary.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	detail, err := h.applications.GetApplication(c.UserContext(), a, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, applicationDetailResponse(detail))
}

// Withdraw handles DELETE /api/applications/:id.
func (h *ApplicationsHandler) Withdraw(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if err := h.applications.WithdrawApplication(c.UserContext(), a, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, fiber.Map{"id": id, "message": "application withdrawn"})
}
