package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
	"github.com/spec-kit/job-portal/internal/validation"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	auth      *service.AuthService
	validator *validation.Validator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, v *validation.Validator) *AuthHandler {
	return &AuthHandler{auth: authService, validator: v}
}

// Register handles POST /api/auth/register. The role field selects which
// profile is created with the account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var head dto.RegisterRequest
	if err := bind(c, h.validator, &head); err != nil {
		return err
	}

	var (
		session *service.Session
		err     error
	)
	switch domain.Role(head.Role) {
	case domain.RoleEmployer:
		var req dto.RegisterEmployerRequest
		if err := bind(c, h.validator, &req); err != nil {
			return err
		}
		session, err = h.auth.RegisterEmployer(c.UserContext(), service.RegisterEmployerInput{
			Email:          req.Email,
			Password:       req.Password,
			CompanyName:    req.CompanyName,
			CompanyWebsite: req.CompanyWebsite,
			Industry:       req.Industry,
			Location:       req.Location,
			Phone:          req.Phone,
		})
	default:
		var req dto.RegisterJobSeekerRequest
		if err := bind(c, h.validator, &req); err != nil {
			return err
		}
		session, err = h.auth.RegisterJobSeeker(c.UserContext(), service.RegisterJobSeekerInput{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
			Phone:    req.Phone,
			Location: req.Location,
		})
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, sessionResponse(session))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}
	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, sessionResponse(session))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	account, err := h.auth.Me(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, accountResponse(account))
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.UserContext(), principal.Token); err != nil {
		return err
	}
	return respond(c, http.StatusOK, fiber.Map{"message": "logged out"})
}

// ChangePassword handles POST /api/auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, fiber.Map{"message": "password updated"})
}
