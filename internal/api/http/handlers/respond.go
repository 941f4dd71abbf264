package handlers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/auth"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/validation"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"status": "success", "data": data})
}

func respondPage(c *fiber.Ctx, data any, page dto.Pagination) error {
	return c.JSON(fiber.Map{"status": "success", "data": data, "pagination": page})
}

// bind decodes the request body into req and runs its validation tags.
func bind(c *fiber.Ctx, v *validation.Validator, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return v.Struct(req)
}

// actor returns the authenticated caller. Routes are guarded by the auth
// middleware, so a missing principal only happens on misconfigured routes.
func actor(c *fiber.Ctx) (domain.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return domain.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return principal.Actor(), nil
}

func optionalStatus(c *fiber.Ctx) *domain.ApplicationStatus {
	raw := c.Query("status")
	if raw == "" {
		return nil
	}
	status := domain.ApplicationStatus(raw)
	return &status
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewValidationError("invalid query parameter", map[string]any{key: "must be a non-negative integer"})
	}
	return n, nil
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, apperrors.NewValidationError("invalid query parameter", map[string]any{key: "must be a number"})
	}
	return &f, nil
}
