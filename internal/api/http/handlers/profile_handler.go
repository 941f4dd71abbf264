package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/service"
	"github.com/spec-kit/job-portal/internal/validation"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	profiles  *service.ProfileService
	validator *validation.Validator
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService, v *validation.Validator) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, validator: v}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	account, err := h.profiles.GetProfile(c.UserContext(), a)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, accountResponse(account))
}

// GetJobSeeker handles GET /api/profile/job-seeker.
func (h *ProfileHandler) GetJobSeeker(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.GetSeekerProfile(c.UserContext(), a)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, seekerProfileResponse(profile))
}

// UpdateJobSeeker handles PUT /api/profile/job-seeker.
func (h *ProfileHandler) UpdateJobSeeker(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSeekerProfileRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}
	profile, err := h.profiles.UpdateSeekerProfile(c.UserContext(), a, service.SeekerProfileInput{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Location:   req.Location,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
		ResumePath: req.ResumePath,
		Bio:        req.Bio,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, seekerProfileResponse(profile))
}

// RemoveResume handles DELETE /api/profile/resume.
func (h *ProfileHandler) RemoveResume(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.RemoveResume(c.UserContext(), a)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, seekerProfileResponse(profile))
}

// GetEmployer handles GET /api/profile/employer.
func (h *ProfileHandler) GetEmployer(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.GetEmployerProfile(c.UserContext(), a)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, employerProfileResponse(profile))
}

// UpdateEmployer handles PUT /api/profile/employer.
func (h *ProfileHandler) UpdateEmployer(c *fiber.Ctx) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateEmployerProfileRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}
	profile, err := h.profiles.UpdateEmployerProfile(c.UserContext(), a, service.EmployerProfileInput{
		CompanyName:    req.CompanyName,
		CompanyWebsite: req.CompanyWebsite,
		CompanySize:    req.CompanySize,
		Industry:       req.Industry,
		Location:       req.Location,
		Phone:          req.Phone,
		Description:    req.Description,
		LogoPath:       req.LogoPath,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, employerProfileResponse(profile))
}
