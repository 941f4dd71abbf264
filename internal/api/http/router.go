package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/http/handlers"
	"github.com/spec-kit/job-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfileHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	Dashboards     *handlers.DashboardHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	authRequired := cfg.AuthMiddleware.Handle
	seekerOnly := auth.RequireJobSeeker()
	employerOnly := auth.RequireEmployer()

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", authRequired, cfg.Auth.Me)
	authGroup.Post("/logout", authRequired, cfg.Auth.Logout)
	authGroup.Post("/password/change", authRequired, cfg.Auth.ChangePassword)

	profile := api.Group("/profile", authRequired)
	profile.Get("/", cfg.Profiles.Get)
	profile.Get("/job-seeker", seekerOnly, cfg.Profiles.GetJobSeeker)
	profile.Put("/job-seeker", seekerOnly, cfg.Profiles.UpdateJobSeeker)
	profile.Delete("/resume", seekerOnly, cfg.Profiles.RemoveResume)
	profile.Get("/employer", employerOnly, cfg.Profiles.GetEmployer)
	profile.Put("/employer", employerOnly, cfg.Profiles.UpdateEmployer)

	jobs := api.Group("/jobs")
	jobs.Get("/", cfg.Jobs.Search)
	jobs.Get("/employer/my-jobs", authRequired, employerOnly, cfg.Jobs.ListMine)
	jobs.Get("/:id", cfg.AuthMiddleware.OptionalHandle, cfg.Jobs.Get)
	jobs.Post("/", authRequired, employerOnly, cfg.Jobs.Create)
	jobs.Put("/:id", authRequired, employerOnly, cfg.Jobs.Update)
	jobs.Delete("/:id", authRequired, employerOnly, cfg.Jobs.Delete)

	applications := api.Group("/applications", authRequired)
	applications.Post("/", seekerOnly, cfg.Applications.Submit)
	applications.Get("/my-applications", seekerOnly, cfg.Applications.ListMine)
	applications.Get("/job/:jobId", employerOnly, cfg.Applications.ListForJob)
	applications.Get("/employer/all", employerOnly, cfg.Applications.ListForEmployer)
	applications.Put("/:id/status", employerOnly, cfg.Applications.UpdateStatus)
	applications.Get("/:id", cfg.Applications.Get)
	applications.Delete("/:id", seekerOnly, cfg.Applications.Withdraw)

	dashboard := api.Group("/dashboard", authRequired)
	dashboard.Get("/job-seeker", seekerOnly, cfg.Dashboards.JobSeeker)
	dashboard.Get("/employer", employerOnly, cfg.Dashboards.Employer)

	notifications := api.Group("/notifications", authRequired)
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Put("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Put("/:id/read", cfg.Notifications.MarkRead)
	notifications.Delete("/:id", cfg.Notifications.Delete)

	api.Get("/stats", cfg.Dashboards.Stats)
}
