package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/member-directory/internal/api/http/handlers"
	"github.com/spec-kit/member-directory/internal/auth"
	"github.com/spec-kit/member-directory/internal/config"
	"github.com/spec-kit/member-directory/internal/observability"
	apperrors "github.com/spec-kit/member-directory/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Config         *config.Config
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Directory      *handlers.DirectoryHandler
	Announcements  *handlers.AnnouncementsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	// Every route beyond this point sees the caller's auth state.
	app.Use(cfg.AuthMiddleware.Handle)

	gated := cfg.AuthMiddleware.Guard(auth.GatedPolicy(cfg.Config.Auth.GuardPolicy))
	member := cfg.AuthMiddleware.Guard(auth.PolicyAuthenticatedOnly)
	devotee := cfg.AuthMiddleware.Guard(auth.PolicyStrict)
	admin := cfg.AuthMiddleware.Guard(auth.PolicyAdminOnly)

	limiter := newAuthRateLimiter(cfg.Config.RateLimit)

	authGroup := app.Group("/auth")
	authGroup.Get("/", cfg.Auth.View)
	authGroup.Post("/signup", limiter.Handle, cfg.Auth.SignUp)
	authGroup.Post("/signin", limiter.Handle, cfg.Auth.SignIn)
	authGroup.Post("/signout", auth.RequireSession(), cfg.Auth.SignOut)
	authGroup.Post("/refresh", auth.RequireSession(), cfg.Auth.Refresh)
	authGroup.Post("/password/reset/request", limiter.Handle, cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", limiter.Handle, cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", auth.RequireSession(), cfg.Auth.ChangePassword)

	app.Get("/profile", member, cfg.Profile.GetOwn)
	app.Put("/profile", member, cfg.Profile.Upsert)

	app.Get("/directory", gated, cfg.Directory.List)
	app.Get("/directory/countries", gated, cfg.Directory.Countries)

	app.Get("/announcements", gated, cfg.Announcements.List)
	app.Get("/announcements/new", gated, cfg.Announcements.NewForm)
	app.Post("/announcements", devotee, cfg.Announcements.Create)
	app.Delete("/announcements/:id", auth.RequireSession(), cfg.Announcements.Delete)

	adminGroup := app.Group("/admin", admin)
	adminGroup.Get("/stats", cfg.Admin.Stats)
	adminGroup.Get("/profiles", cfg.Admin.ListProfiles)
	adminGroup.Delete("/profiles/:id", cfg.Admin.DeleteProfile)
	adminGroup.Get("/announcements", cfg.Admin.ListAnnouncements)
	adminGroup.Patch("/announcements/:id/status", cfg.Admin.SetAnnouncementStatus)
	adminGroup.Delete("/announcements/:id", cfg.Admin.DeleteAnnouncement)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("route", map[string]any{"path": c.Path()})
	})
}
