package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-directory/internal/api/dto"
	"github.com/spec-kit/member-directory/internal/auth"
	"github.com/spec-kit/member-directory/internal/authstate"
	"github.com/spec-kit/member-directory/internal/service"
	apperrors "github.com/spec-kit/member-directory/pkg/util"
)

// ProfileHandler serves the signed-in member's own profile.
type ProfileHandler struct {
	profiles *service.ProfileService
	tracker  *authstate.Tracker
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService, tracker *authstate.Tracker) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, tracker: tracker}
}

// GetOwn handles GET /profile. A member without a saved profile gets an
// empty form marker rather than a 404 so the client can open in create mode.
func (h *ProfileHandler) GetOwn(c *fiber.Ctx) error {
	st := auth.StateFromContext(c)
	if !st.Authenticated {
		return apperrors.NewUnauthorized("authentication required")
	}

	profile, err := h.profiles.GetOwn(c.Context(), st.UserID)
	if err != nil {
		return err
	}
	if profile == nil {
		return c.JSON(fiber.Map{"data": fiber.Map{"profile": nil, "exists": false}})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"profile": dto.NewProfileResponse(profile), "exists": true}})
}

// Upsert handles PUT /profile, creating the profile on first save and
// updating it afterwards.
func (h *ProfileHandler) Upsert(c *fiber.Ctx) error {
	st := auth.StateFromContext(c)
	if !st.Authenticated {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	profile, created, err := h.profiles.Upsert(c.Context(), st.UserID, req.ToInput())
	if err != nil {
		return err
	}

	// A first save may change the member's directory visibility; refresh the
	// cached auth state so guards see it without waiting for a new session.
	if err := h.tracker.RefreshProfile(c.Context(), st.Token); err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.NewProfileResponse(profile)})
}
