package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-directory/internal/api/dto"
	"github.com/spec-kit/member-directory/internal/auth"
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/service"
)

// AdminHandler serves the moderation dashboard.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.Context(), auth.StateFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"total_profiles":  stats.TotalProfiles,
		"public_profiles": stats.PublicProfiles,
		"countries":       stats.Countries,
	}})
}

// ListProfiles handles GET /admin/profiles, public and private alike.
func (h *AdminHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.admin.ListProfiles(c.Context(), auth.StateFromContext(c))
	if err != nil {
		return err
	}
	out := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, dto.NewProfileResponse(&profiles[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"profiles": out}})
}

// DeleteProfile handles DELETE /admin/profiles/:id.
func (h *AdminHandler) DeleteProfile(c *fiber.Ctx) error {
	if err := h.admin.DeleteProfile(c.Context(), auth.StateFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// ListAnnouncements handles GET /admin/announcements, every status included
// so pending submissions are visible for moderation.
func (h *AdminHandler) ListAnnouncements(c *fiber.Ctx) error {
	announcements, err := h.admin.ListAnnouncements(c.Context(), auth.StateFromContext(c))
	if err != nil {
		return err
	}
	out := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		out = append(out, dto.NewAnnouncementResponse(&announcements[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"announcements": out}})
}

// SetAnnouncementStatus handles PATCH /admin/announcements/:id/status.
func (h *AdminHandler) SetAnnouncementStatus(c *fiber.Ctx) error {
	var req dto.SetAnnouncementStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	err := h.admin.SetAnnouncementStatus(c.Context(), auth.StateFromContext(c), c.Params("id"), domain.AnnouncementStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": req.Status}})
}

// DeleteAnnouncement handles DELETE /admin/announcements/:id.
func (h *AdminHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	if err := h.admin.DeleteAnnouncement(c.Context(), auth.StateFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}
